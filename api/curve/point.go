package curve

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type PointKind struct{}

func (PointKind) Name() string { return "point" }
func (PointKind) Size() int    { return ffi.PointSize }

func (PointKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializePoint(p)
}

func (PointKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializePoint(hex)
}

// Point represents a point on the BLS12-381 G1 curve
type Point struct {
	blsct.Value[PointKind]
}

func PointFromHandle(h *blsct.Handle[PointKind]) *Point {
	return &Point{Value: blsct.Wrap(h)}
}

func newPoint(fn func(lib ffi.Library) ffi.Ptr) (*Point, error) {
	h, err := blsct.Envelope[PointKind](fn)
	if err != nil {
		return nil, err
	}
	return PointFromHandle(h), nil
}

// RandomPoint returns s*G for a random scalar s
func RandomPoint() (*Point, error) {
	return newPoint(func(lib ffi.Library) ffi.Ptr { return lib.GenRandomPoint() })
}

// BasePoint returns the generator G
func BasePoint() (*Point, error) {
	return newPoint(func(lib ffi.Library) ffi.Ptr { return lib.GenBasePoint() })
}

// PointFromScalar returns s*G
func PointFromScalar(s *Scalar) *Point {
	lib := s.Lib()
	return PointFromHandle(blsct.FromRawStatic[PointKind](lib, lib.PointFromScalar(s.Ptr())))
}

func PointFromHex(s string) (*Point, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	h, err := blsct.Deserialize[PointKind](lib, s)
	if err != nil {
		return nil, err
	}
	return PointFromHandle(h), nil
}

// Multiply multiplies the point by a scalar
func (p *Point) Multiply(s *Scalar) *Point {
	lib := p.Lib()
	return PointFromHandle(blsct.FromRawStatic[PointKind](lib, lib.ScalarMultiplyPoint(p.Ptr(), s.Ptr())))
}

// IsValid reports whether p is a point of the group other than the
// identity.
func (p *Point) IsValid() bool {
	return p.Lib().IsValidPoint(p.Ptr())
}

// Equal checks if two points are equal
func (p *Point) Equal(other *Point) bool {
	if p == nil || other == nil {
		return false
	}
	return p.Lib().ArePointEqual(p.Ptr(), other.Ptr())
}

func (p *Point) Clone() (*Point, error) {
	h, err := p.CloneHandle()
	if err != nil {
		return nil, err
	}
	return PointFromHandle(h), nil
}
