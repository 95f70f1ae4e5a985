package keys

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type HashIdKind struct{}

func (HashIdKind) Name() string { return "hash_id" }
func (HashIdKind) Size() int    { return ffi.KeyIdSize }

func (HashIdKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeKeyId(p)
}

func (HashIdKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeKeyId(hex)
}

// HashId identifies the sub-address an output pays to.
type HashId struct {
	blsct.Value[HashIdKind]
}

// NewHashId computes the id of the sub-address behind the one-time
// spending key of an output.
func NewHashId(blindingPubKey, spendingPubKey *curve.PublicKey, viewKey ViewKey) *HashId {
	lib := viewKey.Lib()
	p := lib.CalcKeyId(blindingPubKey.Ptr(), spendingPubKey.Ptr(), viewKey.Ptr())
	return &HashId{Value: blsct.Wrap(blsct.FromRawStatic[HashIdKind](lib, p))}
}

func HashIdFromHex(s string) (*HashId, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	h, err := blsct.Deserialize[HashIdKind](lib, s)
	if err != nil {
		return nil, err
	}
	return &HashId{Value: blsct.Wrap(h)}, nil
}

func (id *HashId) Equal(other *HashId) bool {
	if id == nil || other == nil {
		return false
	}
	return id.BytesEqual(other.Value)
}
