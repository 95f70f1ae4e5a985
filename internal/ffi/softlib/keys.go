package softlib

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// Labels of the key derivation tree.
const (
	labelChild    = "blsct/child"
	labelBlinding = "blsct/blinding"
	labelToken    = "blsct/token"
	labelTx       = "blsct/tx"
	labelView     = "blsct/view"
	labelSpending = "blsct/spending"
	labelSubAddr  = "SubAddress"
	labelNonce    = "blsct/nonce"
)

// deriveScalar expands parent through HKDF-SHA256 with label as info and
// reduces 64 output bytes modulo the group order.
func deriveScalar(parent *fr.Element, label string) fr.Element {
	r := hkdf.New(sha256.New, scalarBytes(parent), nil, []byte(label))
	var okm [64]byte
	if _, err := io.ReadFull(r, okm[:]); err != nil {
		panic(err)
	}
	var s fr.Element
	s.SetBytes(okm[:])
	return s
}

func (l *Library) derive(parent ffi.Ptr, label string) ffi.Ptr {
	p := l.scalarAt(parent)
	s := deriveScalar(&p, label)
	return l.raw(scalarBytes(&s))
}

func (l *Library) FromSeedToChildKey(seed ffi.Ptr) ffi.Ptr {
	return l.derive(seed, labelChild)
}

func (l *Library) FromChildKeyToBlindingKey(childKey ffi.Ptr) ffi.Ptr {
	return l.derive(childKey, labelBlinding)
}

func (l *Library) FromChildKeyToTokenKey(childKey ffi.Ptr) ffi.Ptr {
	return l.derive(childKey, labelToken)
}

func (l *Library) FromChildKeyToTxKey(childKey ffi.Ptr) ffi.Ptr {
	return l.derive(childKey, labelTx)
}

func (l *Library) FromTxKeyToViewKey(txKey ffi.Ptr) ffi.Ptr {
	return l.derive(txKey, labelView)
}

func (l *Library) FromTxKeyToSpendingKey(txKey ffi.Ptr) ffi.Ptr {
	return l.derive(txKey, labelSpending)
}

// subAddrScalar is the tweak that moves a spending key to the sub-address
// (account, address).
func subAddrScalar(viewKey *fr.Element, account int64, address uint64) fr.Element {
	return hashToScalar([]byte(labelSubAddr), scalarBytes(viewKey), u64le(uint64(account)), u64le(address))
}

// nonceScalar hashes the shared nonce of an output to the scalar that
// separates its one-time spending key from the sub-address spend key.
func nonceScalar(nonce []byte) fr.Element {
	return hashToScalar([]byte(labelNonce), nonce)
}

func (l *Library) CalcPrivSpendingKey(blindingPubKey, viewKey, spendingKey ffi.Ptr, account int64, address uint64) ffi.Ptr {
	b := l.pointAt(blindingPubKey)
	v := l.scalarAt(viewKey)
	s := l.scalarAt(spendingKey)
	nonce := mul(&b, &v)
	t := nonceScalar(pointBytes(&nonce))
	m := subAddrScalar(&v, account, address)
	var k fr.Element
	k.Add(&s, &m)
	k.Add(&k, &t)
	return l.raw(scalarBytes(&k))
}

func (l *Library) CalcNonce(blindingPubKey, viewKey ffi.Ptr) ffi.Ptr {
	b := l.pointAt(blindingPubKey)
	v := l.scalarAt(viewKey)
	n := mul(&b, &v)
	return l.raw(pointBytes(&n))
}

func viewTag(nonce []byte) uint16 {
	h := blake2b.Sum256(nonce)
	return binary.LittleEndian.Uint16(h[:2])
}

func (l *Library) CalcViewTag(blindingPubKey, viewKey ffi.Ptr) uint64 {
	b := l.pointAt(blindingPubKey)
	v := l.scalarAt(viewKey)
	n := mul(&b, &v)
	return uint64(viewTag(pointBytes(&n)))
}

func keyId(spendKey []byte) []byte {
	h, _ := blake2b.New(ffi.KeyIdSize, nil)
	h.Write(spendKey)
	return h.Sum(nil)
}

// CalcKeyId recovers the sub-address spend key D = P - H(v*B)*G behind a
// one-time spending key P and hashes it.
func (l *Library) CalcKeyId(blindingPubKey, spendingPubKey, viewKey ffi.Ptr) ffi.Ptr {
	b := l.pointAt(blindingPubKey)
	p := l.pointAt(spendingPubKey)
	v := l.scalarAt(viewKey)
	nonce := mul(&b, &v)
	t := nonceScalar(pointBytes(&nonce))
	tg := mulBase(&t)
	d := sub(&p, &tg)
	return l.raw(keyId(pointBytes(&d)))
}

func (l *Library) SerializeKeyId(p ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(p, ffi.KeyIdSize))
}

func (l *Library) DeserializeKeyId(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.KeyIdSize, nil)
}
