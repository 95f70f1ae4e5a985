package curve

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type PublicKeyKind struct{}

func (PublicKeyKind) Name() string { return "public_key" }
func (PublicKeyKind) Size() int    { return ffi.PublicKeySize }

func (PublicKeyKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializePoint(p)
}

func (PublicKeyKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializePoint(hex)
}

// PublicKey is a point used as a key. Its encoding is canonical, so
// equality compares bytes.
type PublicKey struct {
	blsct.Value[PublicKeyKind]
}

func PublicKeyFromHandle(h *blsct.Handle[PublicKeyKind]) *PublicKey {
	return &PublicKey{Value: blsct.Wrap(h)}
}

func RandomPublicKey() (*PublicKey, error) {
	h, err := blsct.Envelope[PublicKeyKind](func(lib ffi.Library) ffi.Ptr {
		return lib.GenRandomPublicKey()
	})
	if err != nil {
		return nil, err
	}
	return PublicKeyFromHandle(h), nil
}

// PublicKeyFromScalar returns s*G as a public key.
func PublicKeyFromScalar(s *Scalar) *PublicKey {
	lib := s.Lib()
	return PublicKeyFromHandle(blsct.FromRawStatic[PublicKeyKind](lib, lib.ScalarToPubKey(s.Ptr())))
}

func PublicKeyFromPoint(p *Point) *PublicKey {
	lib := p.Lib()
	return PublicKeyFromHandle(blsct.FromRawStatic[PublicKeyKind](lib, lib.PointToPublicKey(p.Ptr())))
}

func PublicKeyFromHex(s string) (*PublicKey, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	h, err := blsct.Deserialize[PublicKeyKind](lib, s)
	if err != nil {
		return nil, err
	}
	return PublicKeyFromHandle(h), nil
}

// Point returns a copy of the point the key is made of.
func (pk *PublicKey) Point() *Point {
	lib := pk.Lib()
	return PointFromHandle(blsct.FromRawStatic[PointKind](lib, lib.GetPublicKeyPoint(pk.Ptr())))
}

// GenerateNonce returns viewKey*pk, the nonce shared between the sender of
// an output with blinding key pk and the holder of viewKey.
func (pk *PublicKey) GenerateNonce(viewKey *Scalar) *Point {
	lib := pk.Lib()
	return PointFromHandle(blsct.FromRawStatic[PointKind](lib, lib.CalcNonce(pk.Ptr(), viewKey.Ptr())))
}

func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return false
	}
	return pk.BytesEqual(other.Value)
}

func (pk *PublicKey) Clone() (*PublicKey, error) {
	h, err := pk.CloneHandle()
	if err != nil {
		return nil, err
	}
	return PublicKeyFromHandle(h), nil
}
