package curve

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type ScalarKind struct{}

func (ScalarKind) Name() string { return "scalar" }
func (ScalarKind) Size() int    { return ffi.ScalarSize }

func (ScalarKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeScalar(p)
}

func (ScalarKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeScalar(hex)
}

// Scalar represents an element of the BLS12-381 scalar field.
//
// The library does not promise a canonical byte encoding, so equality goes
// through the library rather than comparing bytes.
type Scalar struct {
	blsct.Value[ScalarKind]
}

// ScalarFromHandle wraps a handle another package obtained.
func ScalarFromHandle(h *blsct.Handle[ScalarKind]) *Scalar {
	return &Scalar{Value: blsct.Wrap(h)}
}

func RandomScalar() (*Scalar, error) {
	h, err := blsct.Envelope[ScalarKind](func(lib ffi.Library) ffi.Ptr {
		return lib.GenRandomScalar()
	})
	if err != nil {
		return nil, err
	}
	return ScalarFromHandle(h), nil
}

// NewScalar creates a scalar holding n.
func NewScalar(n uint64) (*Scalar, error) {
	h, err := blsct.Envelope[ScalarKind](func(lib ffi.Library) ffi.Ptr {
		return lib.GenScalar(n)
	})
	if err != nil {
		return nil, err
	}
	return ScalarFromHandle(h), nil
}

func ScalarFromHex(s string) (*Scalar, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	h, err := blsct.Deserialize[ScalarKind](lib, s)
	if err != nil {
		return nil, err
	}
	return ScalarFromHandle(h), nil
}

// Uint64 returns the low 64 bits of the scalar.
func (s *Scalar) Uint64() uint64 {
	return s.Lib().ScalarToUint64(s.Ptr())
}

// Equal returns true if s and other represent the same scalar value.
// Returns false if either scalar is nil.
func (s *Scalar) Equal(other *Scalar) bool {
	if s == nil || other == nil {
		return false
	}
	return s.Lib().AreScalarEqual(s.Ptr(), other.Ptr())
}

func (s *Scalar) Clone() (*Scalar, error) {
	h, err := s.CloneHandle()
	if err != nil {
		return nil, err
	}
	return ScalarFromHandle(h), nil
}
