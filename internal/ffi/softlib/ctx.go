package softlib

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"math/bits"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/log"
)

const (
	// FeePerComponent is charged per input and per output.
	FeePerComponent uint64 = 200000
	// MaxMoney is the largest amount an input or output may carry.
	MaxMoney uint64 = math.MaxInt64

	ctxVersion = 2

	seqFinal = 0xffffffff
	seqRbf   = 0xfffffffd

	opTrue    = 0x51
	opStake   = 0xc1
	opReturn  = 0x6a
	flagBlsct = 1
)

type ctxIn struct {
	prevHash      []byte
	n             uint32
	scriptSig     []byte
	sequence      uint32
	scriptWitness []byte
}

type blsctData struct {
	spendingKey  []byte
	ephemeralKey []byte
	blindingKey  []byte
	viewTag      uint16
	rangeProof   []byte
}

type ctxOut struct {
	value     uint64
	script    []byte
	tokenId   []byte
	blsct     *blsctData
	predicate []byte
}

type ctx struct {
	version uint32
	ins     []ctxIn
	outs    []ctxOut
	sig     []byte
}

// views caches the borrowed input and output vectors of a ctx.
type views struct {
	ins  ffi.Ptr
	outs ffi.Ptr
}

func script(op byte) []byte {
	b := make([]byte, ffi.ScriptSize)
	b[0] = op
	return b
}

var identity = func() []byte {
	var p bls12381.G1Affine
	return pointBytes(&p)
}()

func (in *ctxIn) encode(b []byte) []byte {
	b = append(b, in.prevHash...)
	b = binary.LittleEndian.AppendUint32(b, in.n)
	b = append(b, in.scriptSig...)
	b = binary.LittleEndian.AppendUint32(b, in.sequence)
	return append(b, in.scriptWitness...)
}

func (out *ctxOut) encode(b []byte) []byte {
	b = binary.LittleEndian.AppendUint64(b, out.value)
	b = append(b, out.script...)
	b = append(b, out.tokenId...)
	if out.blsct == nil {
		b = append(b, 0)
	} else {
		d := out.blsct
		b = append(b, flagBlsct)
		b = append(b, d.spendingKey...)
		b = append(b, d.ephemeralKey...)
		b = append(b, d.blindingKey...)
		b = binary.LittleEndian.AppendUint16(b, d.viewTag)
		b = binary.LittleEndian.AppendUint32(b, uint32(len(d.rangeProof)))
		b = append(b, d.rangeProof...)
	}
	b = binary.LittleEndian.AppendUint32(b, uint32(len(out.predicate)))
	return append(b, out.predicate...)
}

// unsigned is the serialization the ctx id commits to.
func (tx *ctx) unsigned() []byte {
	b := binary.LittleEndian.AppendUint32(nil, tx.version)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(tx.ins)))
	for i := range tx.ins {
		b = tx.ins[i].encode(b)
	}
	b = binary.LittleEndian.AppendUint32(b, uint32(len(tx.outs)))
	for i := range tx.outs {
		b = tx.outs[i].encode(b)
	}
	return b
}

func (tx *ctx) encode() []byte {
	return append(tx.unsigned(), tx.sig...)
}

func (tx *ctx) id() []byte {
	first := sha256.Sum256(tx.unsigned())
	id := sha256.Sum256(first[:])
	return id[:]
}

func decodeCtx(b []byte) (*ctx, bool) {
	tx := &ctx{}
	ok := parse(func() {
		r := reader{b: b}
		tx.version = r.u32()
		nIn := int(r.u32())
		for i := 0; i < nIn; i++ {
			tx.ins = append(tx.ins, ctxIn{
				prevHash:      r.take(ffi.CTxIdSize),
				n:             r.u32(),
				scriptSig:     r.take(ffi.ScriptSize),
				sequence:      r.u32(),
				scriptWitness: r.take(ffi.ScriptSize),
			})
		}
		nOut := int(r.u32())
		for i := 0; i < nOut; i++ {
			out := ctxOut{
				value:   r.u64(),
				script:  r.take(ffi.ScriptSize),
				tokenId: r.take(ffi.TokenIdSize),
			}
			if r.u8()&flagBlsct != 0 {
				out.blsct = &blsctData{
					spendingKey:  r.take(ffi.PointSize),
					ephemeralKey: r.take(ffi.PointSize),
					blindingKey:  r.take(ffi.PointSize),
					viewTag:      r.u16(),
				}
				out.blsct.rangeProof = r.take(int(r.u32()))
			}
			out.predicate = r.take(int(r.u32()))
			tx.outs = append(tx.outs, out)
		}
		tx.sig = r.take(ffi.SignatureSize)
		if !r.done() {
			panic(errShort)
		}
	})
	if !ok {
		return nil, false
	}
	for _, out := range tx.outs {
		if out.blsct == nil {
			continue
		}
		for _, k := range [][]byte{out.blsct.spendingKey, out.blsct.ephemeralKey, out.blsct.blindingKey} {
			if _, ok := decodePoint(k); !ok {
				return nil, false
			}
		}
		if _, ok := decodeRangeProof(out.blsct.rangeProof); !ok {
			return nil, false
		}
	}
	return tx, true
}

// buildError carries the status and index BuildCtx reports.
type buildError struct {
	status ffi.Status
	index  int
}

func (l *Library) BuildCtx(txIns, txOuts ffi.Ptr) ffi.Ptr {
	var ins []txIn
	for _, b := range itemsOf[[]byte](l, txIns, kindTxIn) {
		in, ok := decodeTxIn(b)
		if !ok {
			return l.alloc(nil, ffi.CTxRetVal{Status: ffi.StatusBadSize})
		}
		ins = append(ins, in)
	}
	var outs []txOut
	for _, b := range itemsOf[[]byte](l, txOuts, kindTxOut) {
		out, ok := decodeTxOut(b)
		if !ok {
			return l.alloc(nil, ffi.CTxRetVal{Status: ffi.StatusBadSize})
		}
		outs = append(outs, out)
	}
	if len(ins) == 0 || len(outs) == 0 {
		return l.alloc(nil, ffi.CTxRetVal{Status: ffi.StatusFailure})
	}

	tx, berr := buildCtx(ins, outs)
	if berr != nil {
		log.Debugw("softlib: ctx rejected", "status", berr.status.String(), "index", berr.index)
		rv := ffi.CTxRetVal{Status: berr.status}
		if berr.status == ffi.StatusInAmountError {
			rv.InAmountErrIndex = berr.index
		} else {
			rv.OutAmountErrIndex = berr.index
		}
		return l.alloc(nil, rv)
	}

	data := tx.encode()
	v := l.alloc(data, nil)
	if v.IsNull() {
		return l.alloc(nil, ffi.CTxRetVal{Status: ffi.StatusMemAllocFailed})
	}
	rv := l.alloc(nil, ffi.CTxRetVal{Status: ffi.StatusSuccess, Value: v, Size: len(data)})
	if rv.IsNull() {
		l.Free(v)
	}
	return rv
}

func checkedAdd(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0 && sum <= MaxMoney
}

func buildCtx(ins []txIn, outs []txOut) (*ctx, *buildError) {
	fee := uint64(len(ins)+len(outs)) * FeePerComponent

	type balance struct {
		in, out uint64
		firstIn int
		tokenId []byte
	}
	var order []string
	balances := map[string]*balance{}
	at := func(tokenId []byte) *balance {
		k := string(tokenId)
		b, ok := balances[k]
		if !ok {
			b = &balance{firstIn: -1, tokenId: tokenId}
			balances[k] = b
			order = append(order, k)
		}
		return b
	}

	for i, in := range ins {
		if in.amount > MaxMoney {
			return nil, &buildError{ffi.StatusInAmountError, i}
		}
		b := at(in.tokenId)
		if b.firstIn < 0 {
			b.firstIn = i
		}
		var ok bool
		if b.in, ok = checkedAdd(b.in, in.amount); !ok {
			return nil, &buildError{ffi.StatusInAmountError, i}
		}
	}

	feeFromOutput := false
	for i, out := range outs {
		if out.amount > MaxMoney {
			return nil, &buildError{ffi.StatusOutAmountError, i}
		}
		if out.outputType == ffi.TxOutputStakedCommitment && out.amount < out.minStake {
			return nil, &buildError{ffi.StatusOutAmountError, i}
		}
		b := at(out.tokenId)
		if out.subtractFee {
			if out.amount < fee || !isDefaultToken(out.tokenId) || feeFromOutput {
				return nil, &buildError{ffi.StatusOutAmountError, i}
			}
			feeFromOutput = true
		}
		var ok bool
		if b.out, ok = checkedAdd(b.out, out.amount); !ok {
			return nil, &buildError{ffi.StatusOutAmountError, i}
		}
	}

	def := at(defaultTokenId)
	if !feeFromOutput {
		var ok bool
		if def.out, ok = checkedAdd(def.out, fee); !ok {
			return nil, &buildError{ffi.StatusOutAmountError, len(outs) - 1}
		}
	}
	for _, k := range order {
		b := balances[k]
		if b.in < b.out {
			idx := b.firstIn
			if idx < 0 {
				idx = 0
			}
			return nil, &buildError{ffi.StatusInAmountError, idx}
		}
	}

	tx := &ctx{version: ctxVersion}
	var sk fr.Element
	for _, in := range ins {
		seq := uint32(seqFinal)
		if in.rbf {
			seq = seqRbf
		}
		tx.ins = append(tx.ins, ctxIn{
			prevHash:      in.outPoint[:ffi.CTxIdSize],
			n:             binary.LittleEndian.Uint32(in.outPoint[ffi.CTxIdSize:]),
			scriptSig:     make([]byte, ffi.ScriptSize),
			sequence:      seq,
			scriptWitness: make([]byte, ffi.ScriptSize),
		})
		k, _ := decodeScalar(in.spendingKey)
		sk.Add(&sk, &k)
	}

	for _, out := range outs {
		amount := out.amount
		if out.subtractFee {
			amount -= fee
		}
		var blinding *fr.Element
		if out.blindingKey != nil {
			b, _ := decodeScalar(out.blindingKey)
			blinding = &b
		}
		op := byte(opTrue)
		if out.outputType == ffi.TxOutputStakedCommitment {
			op = opStake
		}
		tx.outs = append(tx.outs, payment(out.destination, amount, out.memo, out.tokenId, op, blinding))
	}

	for _, k := range order {
		b := balances[k]
		if b.firstIn < 0 && !bytes.Equal(b.tokenId, defaultTokenId) {
			continue
		}
		tx.outs = append(tx.outs, payment(randomDestination(), b.in-b.out, nil, b.tokenId, opTrue, nil))
	}

	tx.outs = append(tx.outs, ctxOut{
		value:   fee,
		script:  script(opReturn),
		tokenId: defaultTokenId,
	})

	sig, err := sign(&sk, []byte(hex.EncodeToString(tx.id())))
	if err != nil {
		panic(err)
	}
	tx.sig = sig
	return tx, nil
}

func randomDestination() []byte {
	v, s := randomScalar(), randomScalar()
	d := mulBase(&s)
	c := mul(&d, &v)
	return append(pointBytes(&c), pointBytes(&d)...)
}

// payment builds a confidential output to the sub-address dest = C || D.
// With blinding key b the output carries B = b*D, E = b*G and the one-time
// key P = D + H(b*C)*G, which the owner of C = v*D recovers as v*B.
func payment(dest []byte, amount uint64, memo, tokenId []byte, op byte, blinding *fr.Element) ctxOut {
	c, _ := decodePoint(dest[:ffi.PointSize])
	d, _ := decodePoint(dest[ffi.PointSize:])
	var b fr.Element
	if blinding != nil {
		b = *blinding
	} else {
		b = randomScalar()
	}
	bd := mul(&d, &b)
	eg := mulBase(&b)
	nonce := mul(&c, &b)
	nb := pointBytes(&nonce)
	t := nonceScalar(nb)
	tg := mulBase(&t)
	p := add(&d, &tg)
	rp := buildRangeProof([]uint64{amount}, nb, memo, tokenId)
	return ctxOut{
		script:  script(op),
		tokenId: tokenId,
		blsct: &blsctData{
			spendingKey:  pointBytes(&p),
			ephemeralKey: pointBytes(&eg),
			blindingKey:  pointBytes(&bd),
			viewTag:      viewTag(nb),
			rangeProof:   rp.encode(),
		},
	}
}

func (l *Library) ctxAt(p ffi.Ptr, size int) *ctx {
	tx, ok := decodeCtx(l.read(p, size))
	if !ok {
		panic("softlib: corrupted ctx")
	}
	return tx
}

// GetCtxId returns the hex ctx id as a C string the caller frees.
func (l *Library) GetCtxId(p ffi.Ptr, size int) ffi.Ptr {
	return l.hexCStr(l.ctxAt(p, size).id())
}

func (l *Library) SerializeCtx(p ffi.Ptr, size int) ffi.Ptr {
	return l.hexCStr(l.read(p, size))
}

func (l *Library) DeserializeCtx(hexStr ffi.Ptr) ffi.Ptr {
	b, ok := l.decodeHexArg(hexStr)
	if !ok {
		return l.fail(ffi.StatusUnknownEncoding)
	}
	if _, ok := decodeCtx(b); !ok {
		return l.fail(ffi.StatusFailure)
	}
	return l.succ(b)
}

// viewsOf builds the borrowed views of a ctx once and caches them on it.
func (l *Library) viewsOf(p ffi.Ptr, size int) *views {
	blk := l.get(p)
	l.mu.Lock()
	v, ok := blk.obj.(*views)
	l.mu.Unlock()
	if ok {
		return v
	}

	tx := l.ctxAt(p, size)
	v = &views{}
	var ins []ffi.Ptr
	for i := range tx.ins {
		in := tx.ins[i]
		ins = append(ins, l.borrow(p, in.encode(nil), &in))
	}
	v.ins = l.borrow(p, nil, inViews(ins))
	var outPtrs []ffi.Ptr
	for i := range tx.outs {
		out := &tx.outs[i]
		outPtrs = append(outPtrs, l.borrow(p, out.encode(nil), out))
	}
	v.outs = l.borrow(p, nil, outViews(outPtrs))

	l.mu.Lock()
	blk.obj = v
	l.mu.Unlock()
	return v
}

type (
	inViews  []ffi.Ptr
	outViews []ffi.Ptr
)

func (l *Library) GetCtxIns(p ffi.Ptr, size int) ffi.Ptr {
	return l.viewsOf(p, size).ins
}

func (l *Library) GetCtxOuts(p ffi.Ptr, size int) ffi.Ptr {
	return l.viewsOf(p, size).outs
}

func (l *Library) insAt(p ffi.Ptr) inViews {
	v, ok := l.get(p).obj.(inViews)
	if !ok {
		panic("softlib: not a ctx input vector")
	}
	return v
}

func (l *Library) outsAt(p ffi.Ptr) outViews {
	v, ok := l.get(p).obj.(outViews)
	if !ok {
		panic("softlib: not a ctx output vector")
	}
	return v
}

func (l *Library) GetCtxInsSize(p ffi.Ptr) int          { return len(l.insAt(p)) }
func (l *Library) GetCtxInAt(p ffi.Ptr, i int) ffi.Ptr  { return l.insAt(p)[i] }
func (l *Library) GetCtxOutsSize(p ffi.Ptr) int         { return len(l.outsAt(p)) }
func (l *Library) GetCtxOutAt(p ffi.Ptr, i int) ffi.Ptr { return l.outsAt(p)[i] }

func (l *Library) ctxInAt(p ffi.Ptr) *ctxIn {
	in, ok := l.get(p).obj.(*ctxIn)
	if !ok {
		panic("softlib: not a ctx input")
	}
	return in
}

func (l *Library) ctxOutAt(p ffi.Ptr) *ctxOut {
	out, ok := l.get(p).obj.(*ctxOut)
	if !ok {
		panic("softlib: not a ctx output")
	}
	return out
}

func (l *Library) GetCtxInPrevOutHash(p ffi.Ptr) ffi.Ptr {
	return l.raw(bytes.Clone(l.ctxInAt(p).prevHash))
}

func (l *Library) GetCtxInPrevOutN(p ffi.Ptr) uint32 { return l.ctxInAt(p).n }

func (l *Library) GetCtxInScriptSig(p ffi.Ptr) ffi.Ptr {
	return l.raw(bytes.Clone(l.ctxInAt(p).scriptSig))
}

func (l *Library) GetCtxInSequence(p ffi.Ptr) uint32 { return l.ctxInAt(p).sequence }

func (l *Library) GetCtxInScriptWitness(p ffi.Ptr) ffi.Ptr {
	return l.raw(bytes.Clone(l.ctxInAt(p).scriptWitness))
}

func (l *Library) GetCtxOutValue(p ffi.Ptr) uint64 { return l.ctxOutAt(p).value }

func (l *Library) GetCtxOutScriptPubKey(p ffi.Ptr) ffi.Ptr {
	return l.raw(bytes.Clone(l.ctxOutAt(p).script))
}

func (l *Library) GetCtxOutTokenId(p ffi.Ptr) ffi.Ptr {
	return l.raw(bytes.Clone(l.ctxOutAt(p).tokenId))
}

// GetCtxOutVectorPredicate returns an envelope; an output without a
// predicate yields an empty value.
func (l *Library) GetCtxOutVectorPredicate(p ffi.Ptr) ffi.Ptr {
	return l.succ(bytes.Clone(l.ctxOutAt(p).predicate))
}

// blsctKey returns one of the output's keys, or the identity point for an
// output without confidential data.
func (l *Library) blsctKey(p ffi.Ptr, pick func(*blsctData) []byte) ffi.Ptr {
	d := l.ctxOutAt(p).blsct
	if d == nil {
		return l.raw(bytes.Clone(identity))
	}
	return l.raw(bytes.Clone(pick(d)))
}

func (l *Library) GetCtxOutSpendingKey(p ffi.Ptr) ffi.Ptr {
	return l.blsctKey(p, func(d *blsctData) []byte { return d.spendingKey })
}

func (l *Library) GetCtxOutEphemeralKey(p ffi.Ptr) ffi.Ptr {
	return l.blsctKey(p, func(d *blsctData) []byte { return d.ephemeralKey })
}

func (l *Library) GetCtxOutBlindingKey(p ffi.Ptr) ffi.Ptr {
	return l.blsctKey(p, func(d *blsctData) []byte { return d.blindingKey })
}

// GetCtxOutRangeProof returns an envelope holding the proof; it fails for
// outputs without confidential data.
func (l *Library) GetCtxOutRangeProof(p ffi.Ptr) ffi.Ptr {
	d := l.ctxOutAt(p).blsct
	if d == nil {
		return l.fail(ffi.StatusFailure)
	}
	return l.succ(bytes.Clone(d.rangeProof))
}

func (l *Library) GetCtxOutViewTag(p ffi.Ptr) uint16 {
	d := l.ctxOutAt(p).blsct
	if d == nil {
		return 0
	}
	return d.viewTag
}
