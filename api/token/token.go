// Package token wraps token ids: a token number and a sub-id for
// non-fungible tokens.
package token

import (
	"math"

	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// DefaultSubid marks a fungible token.
const DefaultSubid = math.MaxUint64

type IdKind struct{}

func (IdKind) Name() string { return "token_id" }
func (IdKind) Size() int    { return ffi.TokenIdSize }

func (IdKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeTokenId(p)
}

func (IdKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeTokenId(hex)
}

type Id struct {
	blsct.Value[IdKind]
}

func IdFromHandle(h *blsct.Handle[IdKind]) *Id {
	return &Id{Value: blsct.Wrap(h)}
}

func newId(fn func(lib ffi.Library) ffi.Ptr) (*Id, error) {
	h, err := blsct.Envelope[IdKind](fn)
	if err != nil {
		return nil, err
	}
	return IdFromHandle(h), nil
}

// Default returns the id of the native coin: token 0 with the default
// sub-id.
func Default() (*Id, error) {
	return newId(func(lib ffi.Library) ffi.Ptr { return lib.GenDefaultTokenId() })
}

func FromToken(token uint64) (*Id, error) {
	return newId(func(lib ffi.Library) ffi.Ptr { return lib.GenTokenId(token) })
}

func FromTokenAndSubid(token, subid uint64) (*Id, error) {
	return newId(func(lib ffi.Library) ffi.Ptr { return lib.GenTokenIdWithTokenAndSubid(token, subid) })
}

func FromHex(s string) (*Id, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	h, err := blsct.Deserialize[IdKind](lib, s)
	if err != nil {
		return nil, err
	}
	return IdFromHandle(h), nil
}

func (id *Id) Token() uint64 { return id.Lib().GetTokenIdToken(id.Ptr()) }
func (id *Id) Subid() uint64 { return id.Lib().GetTokenIdSubid(id.Ptr()) }

func (id *Id) Equal(other *Id) bool {
	if id == nil || other == nil {
		return false
	}
	return id.BytesEqual(other.Value)
}
