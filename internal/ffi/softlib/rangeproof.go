package softlib

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// MaxRangeProofValues bounds the number of amounts aggregated in one proof.
const MaxRangeProofValues = 16

const (
	labelGamma    = "blsct/rangeproof/gamma"
	labelRecovery = "blsct/rangeproof/recovery"
)

// rangeProof is the layout of a proof blob:
//
//	n u8 | V[n] | A | A_wip | B | r' | s' | delta' | alpha_hat | tau_x |
//	token id | len u8 | sealed(amount_0 || msg) | tag
//
// The tag is a blake2b-256 digest of everything before it.
type rangeProof struct {
	vs      [][]byte
	points  [3][]byte
	scalars [5][]byte
	tokenId []byte
	sealed  []byte
	tag     []byte
}

const (
	rpA = iota
	rpAWip
	rpB
)

const (
	rpRPrime = iota
	rpSPrime
	rpDeltaPrime
	rpAlphaHat
	rpTauX
)

var (
	rpPointLabels  = [3]string{"A", "A_wip", "B"}
	rpScalarLabels = [5]string{"r_prime", "s_prime", "delta_prime", "alpha_hat", "tau_x"}
)

func (rp *rangeProof) body() []byte {
	var b []byte
	b = append(b, byte(len(rp.vs)))
	for _, v := range rp.vs {
		b = append(b, v...)
	}
	for _, p := range rp.points {
		b = append(b, p...)
	}
	for _, s := range rp.scalars {
		b = append(b, s...)
	}
	b = append(b, rp.tokenId...)
	b = append(b, byte(len(rp.sealed)))
	return append(b, rp.sealed...)
}

func (rp *rangeProof) encode() []byte {
	body := rp.body()
	tag := blake2b.Sum256(body)
	return append(body, tag[:]...)
}

// decodeRangeProof parses and fully validates a proof blob.
func decodeRangeProof(b []byte) (*rangeProof, bool) {
	rp := &rangeProof{}
	ok := parse(func() {
		r := reader{b: b}
		n := int(r.u8())
		for i := 0; i < n; i++ {
			rp.vs = append(rp.vs, r.take(ffi.PointSize))
		}
		for i := range rp.points {
			rp.points[i] = r.take(ffi.PointSize)
		}
		for i := range rp.scalars {
			rp.scalars[i] = r.take(ffi.ScalarSize)
		}
		rp.tokenId = r.take(ffi.TokenIdSize)
		rp.sealed = r.take(int(r.u8()))
		rp.tag = r.take(32)
		if !r.done() {
			panic(errShort)
		}
	})
	if !ok || len(rp.vs) == 0 || len(rp.vs) > MaxRangeProofValues || len(rp.sealed) < 8 {
		return nil, false
	}
	for _, v := range rp.vs {
		if _, ok := decodePoint(v); !ok {
			return nil, false
		}
	}
	for _, p := range rp.points {
		if _, ok := decodePoint(p); !ok {
			return nil, false
		}
	}
	for _, s := range rp.scalars {
		if _, ok := decodeScalar(s); !ok {
			return nil, false
		}
	}
	tag := blake2b.Sum256(rp.body())
	if !bytes.Equal(tag[:], rp.tag) {
		return nil, false
	}
	return rp, true
}

func gammaOf(nonce []byte, i int) fr.Element {
	return hashToScalar([]byte(labelGamma), nonce, u64le(uint64(i)))
}

func commitment(gamma *fr.Element, amount uint64, h *bls12381.G1Affine) bls12381.G1Affine {
	var v fr.Element
	v.SetUint64(amount)
	gg := mulBase(gamma)
	vh := mul(h, &v)
	return add(&gg, &vh)
}

// seal xors data with a keystream bound to the nonce.
func seal(nonce, data []byte) []byte {
	ks := make([]byte, len(data))
	if _, err := io.ReadFull(hkdf.New(sha256.New, nonce, nil, []byte(labelRecovery)), ks); err != nil {
		panic(err)
	}
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ ks[i]
	}
	return out
}

func buildRangeProof(amounts []uint64, nonce, msg, tokenId []byte) *rangeProof {
	h := tokenGenerator(tokenId)
	rp := &rangeProof{tokenId: tokenId}
	transcript, _ := blake2b.New256(nil)
	for i, amount := range amounts {
		gamma := gammaOf(nonce, i)
		v := commitment(&gamma, amount, &h)
		vb := pointBytes(&v)
		rp.vs = append(rp.vs, vb)
		transcript.Write(vb)
	}
	transcript.Write(tokenId)
	t := transcript.Sum(nil)
	for i, label := range rpPointLabels {
		s := hashToScalar([]byte(label), t)
		p := mulBase(&s)
		rp.points[i] = pointBytes(&p)
	}
	for i, label := range rpScalarLabels {
		s := hashToScalar([]byte(label), t)
		rp.scalars[i] = scalarBytes(&s)
	}
	plain := binary.LittleEndian.AppendUint64(nil, amounts[0])
	rp.sealed = seal(nonce, append(plain, msg...))
	return rp
}

func (l *Library) BuildRangeProof(amounts, nonce, msg, tokenId ffi.Ptr) ffi.Ptr {
	values := itemsOf[uint64](l, amounts, kindUint64)
	if len(values) == 0 || len(values) > MaxRangeProofValues {
		return l.fail(ffi.StatusValueOutsideRange)
	}
	m := l.cstrArg(msg)
	if len(m) > ffi.MemoMaxSize {
		return l.fail(ffi.StatusMemoTooLong)
	}
	rp := buildRangeProof(values, l.Bytes(nonce, ffi.PointSize), m, l.Bytes(tokenId, ffi.TokenIdSize))
	return l.succ(rp.encode())
}

func (l *Library) VerifyRangeProofs(proofs ffi.Ptr) ffi.Ptr {
	valid := true
	for _, p := range itemsOf[[]byte](l, proofs, kindProof) {
		if _, ok := decodeRangeProof(p); !ok {
			valid = false
			break
		}
	}
	return l.alloc(nil, ffi.BoolRetVal{Status: ffi.StatusSuccess, Value: valid})
}

func (l *Library) SerializeRangeProof(proof ffi.Ptr, size int) ffi.Ptr {
	return l.hexCStr(l.read(proof, size))
}

func (l *Library) DeserializeRangeProof(hex ffi.Ptr) ffi.Ptr {
	b, ok := l.decodeHexArg(hex)
	if !ok {
		return l.fail(ffi.StatusUnknownEncoding)
	}
	if _, ok := decodeRangeProof(b); !ok {
		return l.fail(ffi.StatusFailure)
	}
	return l.succ(b)
}

func (l *Library) rangeProofAt(p ffi.Ptr, size int) *rangeProof {
	rp, ok := decodeRangeProof(l.read(p, size))
	if !ok {
		panic("softlib: corrupted range proof")
	}
	return rp
}

func (l *Library) GetRangeProofA(p ffi.Ptr, size int) ffi.Ptr {
	return l.raw(l.rangeProofAt(p, size).points[rpA])
}

func (l *Library) GetRangeProofAWip(p ffi.Ptr, size int) ffi.Ptr {
	return l.raw(l.rangeProofAt(p, size).points[rpAWip])
}

func (l *Library) GetRangeProofB(p ffi.Ptr, size int) ffi.Ptr {
	return l.raw(l.rangeProofAt(p, size).points[rpB])
}

func (l *Library) GetRangeProofRPrime(p ffi.Ptr, size int) ffi.Ptr {
	return l.raw(l.rangeProofAt(p, size).scalars[rpRPrime])
}

func (l *Library) GetRangeProofSPrime(p ffi.Ptr, size int) ffi.Ptr {
	return l.raw(l.rangeProofAt(p, size).scalars[rpSPrime])
}

func (l *Library) GetRangeProofDeltaPrime(p ffi.Ptr, size int) ffi.Ptr {
	return l.raw(l.rangeProofAt(p, size).scalars[rpDeltaPrime])
}

func (l *Library) GetRangeProofAlphaHat(p ffi.Ptr, size int) ffi.Ptr {
	return l.raw(l.rangeProofAt(p, size).scalars[rpAlphaHat])
}

func (l *Library) GetRangeProofTauX(p ffi.Ptr, size int) ffi.Ptr {
	return l.raw(l.rangeProofAt(p, size).scalars[rpTauX])
}

func (l *Library) GenAmountRecoveryReq(proof ffi.Ptr, size int, nonce ffi.Ptr) ffi.Ptr {
	return l.alloc(nil, &recoveryReq{
		proof: l.Bytes(proof, size),
		nonce: l.Bytes(nonce, ffi.PointSize),
	})
}

type recoveryResult struct {
	isSucc bool
	amount uint64
	msg    ffi.Ptr
}

func recover1(req *recoveryReq) (uint64, []byte, bool) {
	rp, ok := decodeRangeProof(req.proof)
	if !ok {
		return 0, nil, false
	}
	plain := seal(req.nonce, rp.sealed)
	amount := binary.LittleEndian.Uint64(plain[:8])
	gamma := gammaOf(req.nonce, 0)
	h := tokenGenerator(rp.tokenId)
	v := commitment(&gamma, amount, &h)
	if !bytes.Equal(pointBytes(&v), rp.vs[0]) {
		return 0, nil, false
	}
	return amount, plain[8:], true
}

// RecoverAmount returns a BlsctAmountsRetVal; the results and their
// messages are released by FreeAmountsRetVal.
func (l *Library) RecoverAmount(reqs ffi.Ptr) ffi.Ptr {
	ptrs := itemsOf[ffi.Ptr](l, reqs, kindRecovery)
	results := l.alloc(nil, nil)
	if results.IsNull() {
		return l.alloc(nil, ffi.AmountsRetVal{Status: ffi.StatusMemAllocFailed})
	}
	out := make([]recoveryResult, len(ptrs))
	for i, p := range ptrs {
		req := l.get(p).obj.(*recoveryReq)
		amount, msg, ok := recover1(req)
		out[i] = recoveryResult{
			isSucc: ok,
			amount: amount,
			msg:    l.borrow(results, append(msg, 0), nil),
		}
	}
	l.mu.Lock()
	l.heap[results].obj = out
	l.mu.Unlock()

	rv := l.alloc(nil, ffi.AmountsRetVal{Status: ffi.StatusSuccess, Value: results})
	if rv.IsNull() {
		l.Free(results)
		return 0
	}
	l.adopt(rv, results)
	return rv
}

func (l *Library) resultsAt(p ffi.Ptr) []recoveryResult {
	res, ok := l.get(p).obj.([]recoveryResult)
	if !ok {
		panic("softlib: not an amount recovery result")
	}
	return res
}

func (l *Library) GetAmountRecoveryResultSize(p ffi.Ptr) int {
	return len(l.resultsAt(p))
}

func (l *Library) GetAmountRecoveryResultIsSucc(p ffi.Ptr, i int) bool {
	return l.resultsAt(p)[i].isSucc
}

func (l *Library) GetAmountRecoveryResultAmount(p ffi.Ptr, i int) uint64 {
	return l.resultsAt(p)[i].amount
}

func (l *Library) GetAmountRecoveryResultMsg(p ffi.Ptr, i int) ffi.Ptr {
	return l.resultsAt(p)[i].msg
}

func (l *Library) FreeAmountsRetVal(rv ffi.Ptr) {
	l.AmountsRetVal(rv)
	l.Free(rv)
}
