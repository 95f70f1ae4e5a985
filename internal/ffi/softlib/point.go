package softlib

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

func (l *Library) GenRandomPoint() ffi.Ptr {
	s := randomScalar()
	p := mulBase(&s)
	return l.succ(pointBytes(&p))
}

func (l *Library) GenBasePoint() ffi.Ptr {
	return l.succ(pointBytes(&g1Gen))
}

func (l *Library) PointFromScalar(s ffi.Ptr) ffi.Ptr {
	x := l.scalarAt(s)
	p := mulBase(&x)
	return l.raw(pointBytes(&p))
}

func (l *Library) IsValidPoint(p ffi.Ptr) bool {
	pt, ok := decodePoint(l.read(p, ffi.PointSize))
	return ok && !pt.IsInfinity()
}

func (l *Library) ArePointEqual(a, b ffi.Ptr) bool {
	x, y := l.pointAt(a), l.pointAt(b)
	return x.Equal(&y)
}

func (l *Library) ScalarMultiplyPoint(p, s ffi.Ptr) ffi.Ptr {
	pt, x := l.pointAt(p), l.scalarAt(s)
	r := mul(&pt, &x)
	return l.raw(pointBytes(&r))
}

func (l *Library) SerializePoint(p ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(p, ffi.PointSize))
}

func (l *Library) DeserializePoint(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.PointSize, func(b []byte) bool {
		_, ok := decodePoint(b)
		return ok
	})
}

func (l *Library) GenRandomPublicKey() ffi.Ptr {
	s := randomScalar()
	p := mulBase(&s)
	return l.succ(pointBytes(&p))
}

func (l *Library) ScalarToPubKey(s ffi.Ptr) ffi.Ptr {
	return l.PointFromScalar(s)
}

// GetPublicKeyPoint copies the point a public key is made of. Both share a
// layout.
func (l *Library) GetPublicKeyPoint(pk ffi.Ptr) ffi.Ptr {
	return l.raw(l.Bytes(pk, ffi.PublicKeySize))
}

func (l *Library) PointToPublicKey(p ffi.Ptr) ffi.Ptr {
	return l.raw(l.Bytes(p, ffi.PointSize))
}

// SignMessage produces a BLS signature on G2: sk * H(msg).
func (l *Library) SignMessage(privKey, msg ffi.Ptr) ffi.Ptr {
	sk := l.scalarAt(privKey)
	sig, err := sign(&sk, l.cstrArg(msg))
	if err != nil {
		return 0
	}
	return l.raw(sig)
}

func sign(sk *fr.Element, msg []byte) ([]byte, error) {
	h, err := bls12381.HashToG2(msg, []byte(sigDST))
	if err != nil {
		return nil, err
	}
	var sig bls12381.G2Affine
	sig.ScalarMultiplication(&h, bigOf(sk))
	b := sig.Bytes()
	return b[:], nil
}

// VerifyMsgSig checks e(pk, H(msg)) == e(G1, sig).
func (l *Library) VerifyMsgSig(pubKey, msg, sig ffi.Ptr) bool {
	pk, ok := decodePoint(l.read(pubKey, ffi.PublicKeySize))
	if !ok {
		return false
	}
	var s bls12381.G2Affine
	if _, err := s.SetBytes(l.read(sig, ffi.SignatureSize)); err != nil {
		return false
	}
	h, err := bls12381.HashToG2(l.cstrArg(msg), []byte(sigDST))
	if err != nil {
		return false
	}
	var negG1 bls12381.G1Affine
	negG1.Neg(&g1Gen)
	ok, err = bls12381.PairingCheck(
		[]bls12381.G1Affine{pk, negG1},
		[]bls12381.G2Affine{h, s},
	)
	return err == nil && ok
}

func (l *Library) SerializeSignature(sig ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(sig, ffi.SignatureSize))
}

func (l *Library) DeserializeSignature(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.SignatureSize, nil)
}
