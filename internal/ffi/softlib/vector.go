package softlib

import (
	"encoding/binary"
	"fmt"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// vec is the payload of every std::vector the library hands out.
type vec[T any] struct {
	kind  string
	items []T
}

type recoveryReq struct {
	proof []byte
	nonce []byte
}

func newVec[T any](l *Library, kind string) ffi.Ptr {
	return l.alloc(nil, &vec[T]{kind: kind})
}

func vecAt[T any](l *Library, p ffi.Ptr, kind string) *vec[T] {
	v, ok := l.get(p).obj.(*vec[T])
	if !ok || v.kind != kind {
		panic(fmt.Sprintf("softlib: %#x is not a %s vector", uintptr(p), kind))
	}
	return v
}

func pushVec[T any](l *Library, p ffi.Ptr, kind string, item T) {
	v := vecAt[T](l, p, kind)
	l.mu.Lock()
	defer l.mu.Unlock()
	v.items = append(v.items, item)
}

func itemsOf[T any](l *Library, p ffi.Ptr, kind string) []T {
	v := vecAt[T](l, p, kind)
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), v.items...)
}

func deleteVec[T any](l *Library, p ffi.Ptr, kind string) {
	vecAt[T](l, p, kind)
	l.Free(p)
}

const (
	kindTxIn     = "tx_in"
	kindTxOut    = "tx_out"
	kindUint64   = "uint64"
	kindProof    = "range_proof"
	kindRecovery = "amount_recovery_req"
)

func (l *Library) CreateTxInVec() ffi.Ptr { return newVec[[]byte](l, kindTxIn) }

func (l *Library) AddToTxInVec(vp, txIn ffi.Ptr) {
	pushVec(l, vp, kindTxIn, l.Bytes(txIn, txInSize))
}

func (l *Library) DeleteTxInVec(vp ffi.Ptr) { deleteVec[[]byte](l, vp, kindTxIn) }

func (l *Library) CreateTxOutVec() ffi.Ptr { return newVec[[]byte](l, kindTxOut) }

func (l *Library) AddToTxOutVec(vp, txOut ffi.Ptr) {
	pushVec(l, vp, kindTxOut, l.Bytes(txOut, txOutSize))
}

func (l *Library) DeleteTxOutVec(vp ffi.Ptr) { deleteVec[[]byte](l, vp, kindTxOut) }

func (l *Library) CreateUint64Vec() ffi.Ptr { return newVec[uint64](l, kindUint64) }

func (l *Library) AddToUint64Vec(vp ffi.Ptr, v uint64) { pushVec(l, vp, kindUint64, v) }

func (l *Library) DeleteUint64Vec(vp ffi.Ptr) { deleteVec[uint64](l, vp, kindUint64) }

func (l *Library) CreateRangeProofVec() ffi.Ptr { return newVec[[]byte](l, kindProof) }

func (l *Library) AddToRangeProofVec(vp, proof ffi.Ptr, size int) {
	pushVec(l, vp, kindProof, l.Bytes(proof, size))
}

func (l *Library) DeleteRangeProofVec(vp ffi.Ptr) { deleteVec[[]byte](l, vp, kindProof) }

func (l *Library) CreateAmountRecoveryReqVec() ffi.Ptr {
	return newVec[ffi.Ptr](l, kindRecovery)
}

// AddToAmountRecoveryReqVec takes ownership of req; it is released with
// the vector.
func (l *Library) AddToAmountRecoveryReqVec(vp, req ffi.Ptr) {
	if _, ok := l.get(req).obj.(*recoveryReq); !ok {
		panic(fmt.Sprintf("softlib: %#x is not an amount recovery request", uintptr(req)))
	}
	l.adopt(vp, req)
	pushVec(l, vp, kindRecovery, req)
}

func (l *Library) DeleteAmountRecoveryReqVec(vp ffi.Ptr) {
	deleteVec[ffi.Ptr](l, vp, kindRecovery)
}

// reader walks a byte layout and panics when it runs short.
type reader struct {
	b   []byte
	off int
}

func (r *reader) take(n int) []byte {
	if n < 0 || r.off+n > len(r.b) {
		panic(errShort)
	}
	out := append([]byte(nil), r.b[r.off:r.off+n]...)
	r.off += n
	return out
}

func (r *reader) u8() byte    { return r.take(1)[0] }
func (r *reader) bool() bool  { return r.u8() != 0 }
func (r *reader) u16() uint16 { return binary.LittleEndian.Uint16(r.take(2)) }
func (r *reader) u32() uint32 { return binary.LittleEndian.Uint32(r.take(4)) }
func (r *reader) u64() uint64 { return binary.LittleEndian.Uint64(r.take(8)) }
func (r *reader) done() bool  { return r.off == len(r.b) }

type shortRead struct{}

var errShort = shortRead{}

// parse runs fn and converts a short read into ok == false.
func parse(fn func()) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			if _, short := rec.(shortRead); !short {
				panic(rec)
			}
			ok = false
		}
	}()
	fn()
	return true
}
