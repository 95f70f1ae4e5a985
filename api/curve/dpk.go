package curve

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type DoublePublicKeyKind struct{}

func (DoublePublicKeyKind) Name() string { return "double_public_key" }
func (DoublePublicKeyKind) Size() int    { return ffi.DoublePublicKeySize }

func (DoublePublicKeyKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeDpk(p)
}

func (DoublePublicKeyKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeDpk(hex)
}

// DoublePublicKey is a pair of public keys, the form addresses encode.
type DoublePublicKey struct {
	blsct.Value[DoublePublicKeyKind]
}

func DoublePublicKeyFromHandle(h *blsct.Handle[DoublePublicKeyKind]) *DoublePublicKey {
	return &DoublePublicKey{Value: blsct.Wrap(h)}
}

func NewDoublePublicKey(pk1, pk2 *PublicKey) (*DoublePublicKey, error) {
	h, err := blsct.FromEnvelope[DoublePublicKeyKind](pk1.Lib(), pk1.Lib().GenDoublePubKey(pk1.Ptr(), pk2.Ptr()))
	if err != nil {
		return nil, err
	}
	return DoublePublicKeyFromHandle(h), nil
}

// DoublePublicKeyFromKeysAcctAddr derives the key pair of the sub-address
// (account, address) of the wallet holding viewKey and spendingPubKey.
func DoublePublicKeyFromKeysAcctAddr(viewKey *Scalar, spendingPubKey *PublicKey, account int64, address uint64) *DoublePublicKey {
	lib := viewKey.Lib()
	p := lib.GenDpkWithKeysAcctAddr(viewKey.Ptr(), spendingPubKey.Ptr(), account, address)
	return DoublePublicKeyFromHandle(blsct.FromRawStatic[DoublePublicKeyKind](lib, p))
}

func DoublePublicKeyFromHex(s string) (*DoublePublicKey, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	h, err := blsct.Deserialize[DoublePublicKeyKind](lib, s)
	if err != nil {
		return nil, err
	}
	return DoublePublicKeyFromHandle(h), nil
}

func (d *DoublePublicKey) Equal(other *DoublePublicKey) bool {
	if d == nil || other == nil {
		return false
	}
	return d.BytesEqual(other.Value)
}

func (d *DoublePublicKey) Clone() (*DoublePublicKey, error) {
	h, err := d.CloneHandle()
	if err != nil {
		return nil, err
	}
	return DoublePublicKeyFromHandle(h), nil
}
