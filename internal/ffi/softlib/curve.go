package softlib

import (
	"encoding/binary"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/blake2b"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

const (
	sigDST   = "BLSCT_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_"
	tokenDST = "BLSCT_TOKEN_GENERATOR_BLS12381G1_XMD:SHA-256_SSWU_RO_"
)

var g1Gen, g2Gen = func() (bls12381.G1Affine, bls12381.G2Affine) {
	_, _, g1, g2 := bls12381.Generators()
	return g1, g2
}()

func decodeScalar(b []byte) (fr.Element, bool) {
	var s fr.Element
	if err := s.SetBytesCanonical(b); err != nil {
		return s, false
	}
	return s, true
}

func decodePoint(b []byte) (bls12381.G1Affine, bool) {
	var p bls12381.G1Affine
	if len(b) != ffi.PointSize {
		return p, false
	}
	if _, err := p.SetBytes(b); err != nil {
		return p, false
	}
	return p, true
}

func scalarBytes(s *fr.Element) []byte {
	b := s.Bytes()
	return b[:]
}

func pointBytes(p *bls12381.G1Affine) []byte {
	b := p.Bytes()
	return b[:]
}

// scalarAt reads a scalar the library placed on the heap itself.
func (l *Library) scalarAt(p ffi.Ptr) fr.Element {
	s, ok := decodeScalar(l.read(p, ffi.ScalarSize))
	if !ok {
		panic("softlib: corrupted scalar")
	}
	return s
}

func (l *Library) pointAt(p ffi.Ptr) bls12381.G1Affine {
	pt, ok := decodePoint(l.read(p, ffi.PointSize))
	if !ok {
		panic("softlib: corrupted point")
	}
	return pt
}

func bigOf(s *fr.Element) *big.Int {
	return s.BigInt(new(big.Int))
}

func mulBase(s *fr.Element) bls12381.G1Affine {
	var p bls12381.G1Affine
	p.ScalarMultiplicationBase(bigOf(s))
	return p
}

func mul(p *bls12381.G1Affine, s *fr.Element) bls12381.G1Affine {
	var r bls12381.G1Affine
	r.ScalarMultiplication(p, bigOf(s))
	return r
}

func add(a, b *bls12381.G1Affine) bls12381.G1Affine {
	var r bls12381.G1Affine
	r.Add(a, b)
	return r
}

func sub(a, b *bls12381.G1Affine) bls12381.G1Affine {
	var r bls12381.G1Affine
	r.Sub(a, b)
	return r
}

func randomScalar() fr.Element {
	var s fr.Element
	if _, err := s.SetRandom(); err != nil {
		panic(err)
	}
	return s
}

// hashToScalar maps length-prefixed parts to a scalar through a 512-bit
// blake2b digest, which keeps the modular bias negligible.
func hashToScalar(parts ...[]byte) fr.Element {
	h, _ := blake2b.New512(nil)
	var n [4]byte
	for _, part := range parts {
		binary.LittleEndian.PutUint32(n[:], uint32(len(part)))
		h.Write(n[:])
		h.Write(part)
	}
	var s fr.Element
	s.SetBytes(h.Sum(nil))
	return s
}

func tokenGenerator(tokenId []byte) bls12381.G1Affine {
	p, err := bls12381.HashToG1(tokenId, []byte(tokenDST))
	if err != nil {
		panic(err)
	}
	return p
}

func u64le(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}
