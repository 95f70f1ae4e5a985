package softlib

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

func (l *Library) GenRandomScalar() ffi.Ptr {
	s := randomScalar()
	return l.succ(scalarBytes(&s))
}

func (l *Library) GenScalar(n uint64) ffi.Ptr {
	var s fr.Element
	s.SetUint64(n)
	return l.succ(scalarBytes(&s))
}

// ScalarToUint64 returns the low 64 bits of the scalar.
func (l *Library) ScalarToUint64(p ffi.Ptr) uint64 {
	s := l.scalarAt(p)
	return bigOf(&s).Uint64()
}

func (l *Library) AreScalarEqual(a, b ffi.Ptr) bool {
	x, y := l.scalarAt(a), l.scalarAt(b)
	return x.Equal(&y)
}

func (l *Library) SerializeScalar(p ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(p, ffi.ScalarSize))
}

func (l *Library) DeserializeScalar(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.ScalarSize, func(b []byte) bool {
		_, ok := decodeScalar(b)
		return ok
	})
}
