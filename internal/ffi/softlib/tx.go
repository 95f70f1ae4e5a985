package softlib

import (
	"encoding/binary"
	"fmt"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

const (
	txInSize  = 8 + 8 + ffi.ScalarSize + ffi.TokenIdSize + ffi.OutPointSize + 1 + 1
	txOutSize = ffi.SubAddrSize + 8 + 1 + ffi.MemoMaxSize + ffi.TokenIdSize + 1 + 8 + 1 + 1 + ffi.ScalarSize
)

type txIn struct {
	amount      uint64
	gamma       uint64
	spendingKey []byte
	tokenId     []byte
	outPoint    []byte
	staked      bool
	rbf         bool
}

func (in *txIn) encode() []byte {
	b := make([]byte, 0, txInSize)
	b = binary.LittleEndian.AppendUint64(b, in.amount)
	b = binary.LittleEndian.AppendUint64(b, in.gamma)
	b = append(b, in.spendingKey...)
	b = append(b, in.tokenId...)
	b = append(b, in.outPoint...)
	return append(b, boolByte(in.staked), boolByte(in.rbf))
}

// decodeTxIn parses the layout written by encode. It reports false for a
// wrong length, a non-canonical spending key or a flag byte other than 0
// or 1.
func decodeTxIn(b []byte) (txIn, bool) {
	if len(b) != txInSize {
		return txIn{}, false
	}
	r := reader{b: b}
	in := txIn{
		amount:      r.u64(),
		gamma:       r.u64(),
		spendingKey: r.take(ffi.ScalarSize),
		tokenId:     r.take(ffi.TokenIdSize),
		outPoint:    r.take(ffi.OutPointSize),
	}
	staked, rbf := r.u8(), r.u8()
	if staked > 1 || rbf > 1 {
		return txIn{}, false
	}
	if _, ok := decodeScalar(in.spendingKey); !ok {
		return txIn{}, false
	}
	in.staked, in.rbf = staked == 1, rbf == 1
	return in, true
}

type txOut struct {
	destination []byte
	amount      uint64
	memo        []byte
	tokenId     []byte
	outputType  ffi.TxOutputType
	minStake    uint64
	subtractFee bool
	blindingKey []byte
}

func (out *txOut) encode() []byte {
	b := make([]byte, 0, txOutSize)
	b = append(b, out.destination...)
	b = binary.LittleEndian.AppendUint64(b, out.amount)
	b = append(b, byte(len(out.memo)))
	memo := make([]byte, ffi.MemoMaxSize)
	copy(memo, out.memo)
	b = append(b, memo...)
	b = append(b, out.tokenId...)
	b = append(b, byte(out.outputType))
	b = binary.LittleEndian.AppendUint64(b, out.minStake)
	b = append(b, boolByte(out.subtractFee), boolByte(out.blindingKey != nil))
	key := make([]byte, ffi.ScalarSize)
	copy(key, out.blindingKey)
	return append(b, key...)
}

// decodeTxOut parses the layout written by encode and applies the checks
// BuildTxOut makes on its arguments.
func decodeTxOut(b []byte) (txOut, bool) {
	if len(b) != txOutSize {
		return txOut{}, false
	}
	r := reader{b: b}
	var out txOut
	out.destination = r.take(ffi.SubAddrSize)
	out.amount = r.u64()
	n := int(r.u8())
	memo := r.take(ffi.MemoMaxSize)
	out.tokenId = r.take(ffi.TokenIdSize)
	out.outputType = ffi.TxOutputType(r.u8())
	out.minStake = r.u64()
	subtractFee, hasKey := r.u8(), r.u8()
	key := r.take(ffi.ScalarSize)

	if n > ffi.MemoMaxSize || subtractFee > 1 || hasKey > 1 {
		return txOut{}, false
	}
	if out.outputType != ffi.TxOutputNormal && out.outputType != ffi.TxOutputStakedCommitment {
		return txOut{}, false
	}
	if !validPointPair(out.destination) {
		return txOut{}, false
	}
	out.memo = memo[:n]
	out.subtractFee = subtractFee == 1
	if hasKey == 1 {
		if _, ok := decodeScalar(key); !ok {
			return txOut{}, false
		}
		out.blindingKey = key
	}
	return out, true
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func (l *Library) BuildTxIn(amount, gamma uint64, spendingKey, tokenId, outPoint ffi.Ptr, isStakedCommitment, isRbf bool) ffi.Ptr {
	in := txIn{
		amount:      amount,
		gamma:       gamma,
		spendingKey: l.Bytes(spendingKey, ffi.ScalarSize),
		tokenId:     l.Bytes(tokenId, ffi.TokenIdSize),
		outPoint:    l.Bytes(outPoint, ffi.OutPointSize),
		staked:      isStakedCommitment,
		rbf:         isRbf,
	}
	return l.succ(in.encode())
}

func (l *Library) txInAt(p ffi.Ptr) txIn {
	in, ok := decodeTxIn(l.read(p, txInSize))
	if !ok {
		panic(fmt.Sprintf("softlib: %#x is not a tx in", uintptr(p)))
	}
	return in
}

func (l *Library) GetTxInAmount(p ffi.Ptr) uint64 { return l.txInAt(p).amount }
func (l *Library) GetTxInGamma(p ffi.Ptr) uint64  { return l.txInAt(p).gamma }

func (l *Library) GetTxInSpendingKey(p ffi.Ptr) ffi.Ptr {
	return l.raw(l.txInAt(p).spendingKey)
}

func (l *Library) GetTxInTokenId(p ffi.Ptr) ffi.Ptr {
	return l.raw(l.txInAt(p).tokenId)
}

func (l *Library) GetTxInOutPoint(p ffi.Ptr) ffi.Ptr {
	return l.raw(l.txInAt(p).outPoint)
}

func (l *Library) GetTxInStakedCommitment(p ffi.Ptr) bool { return l.txInAt(p).staked }
func (l *Library) GetTxInRbf(p ffi.Ptr) bool              { return l.txInAt(p).rbf }

func (l *Library) SerializeTxIn(p ffi.Ptr, _ int) ffi.Ptr {
	return l.hexCStr(l.read(p, txInSize))
}

func (l *Library) DeserializeTxIn(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, txInSize, func(b []byte) bool {
		_, ok := decodeTxIn(b)
		return ok
	})
}

func (l *Library) BuildTxOut(destination ffi.Ptr, amount uint64, memo, tokenId ffi.Ptr, outputType ffi.TxOutputType, minStake uint64, subtractFeeFromAmount bool, blindingKey ffi.Ptr) ffi.Ptr {
	m := l.cstrArg(memo)
	if len(m) > ffi.MemoMaxSize {
		return l.fail(ffi.StatusMemoTooLong)
	}
	if outputType != ffi.TxOutputNormal && outputType != ffi.TxOutputStakedCommitment {
		return l.fail(ffi.StatusBadOutType)
	}
	out := txOut{
		destination: l.Bytes(destination, ffi.SubAddrSize),
		amount:      amount,
		memo:        m,
		tokenId:     l.Bytes(tokenId, ffi.TokenIdSize),
		outputType:  outputType,
		minStake:    minStake,
		subtractFee: subtractFeeFromAmount,
	}
	if !blindingKey.IsNull() {
		out.blindingKey = l.Bytes(blindingKey, ffi.ScalarSize)
	}
	return l.succ(out.encode())
}

func (l *Library) txOutAt(p ffi.Ptr) txOut {
	out, ok := decodeTxOut(l.read(p, txOutSize))
	if !ok {
		panic(fmt.Sprintf("softlib: %#x is not a tx out", uintptr(p)))
	}
	return out
}

func (l *Library) GetTxOutDestination(p ffi.Ptr) ffi.Ptr {
	return l.raw(l.txOutAt(p).destination)
}

func (l *Library) GetTxOutAmount(p ffi.Ptr) uint64 { return l.txOutAt(p).amount }

// GetTxOutMemo returns a C string the caller frees.
func (l *Library) GetTxOutMemo(p ffi.Ptr) ffi.Ptr {
	return l.cstr(l.txOutAt(p).memo)
}

func (l *Library) GetTxOutTokenId(p ffi.Ptr) ffi.Ptr {
	return l.raw(l.txOutAt(p).tokenId)
}

func (l *Library) GetTxOutOutputType(p ffi.Ptr) ffi.TxOutputType { return l.txOutAt(p).outputType }
func (l *Library) GetTxOutMinStake(p ffi.Ptr) uint64             { return l.txOutAt(p).minStake }
func (l *Library) GetTxOutSubtractFeeFromAmount(p ffi.Ptr) bool  { return l.txOutAt(p).subtractFee }

func (l *Library) GetTxOutBlindingKey(p ffi.Ptr) ffi.Ptr {
	key := l.txOutAt(p).blindingKey
	if key == nil {
		return 0
	}
	return l.raw(key)
}

func (l *Library) SerializeTxOut(p ffi.Ptr, _ int) ffi.Ptr {
	return l.hexCStr(l.read(p, txOutSize))
}

func (l *Library) DeserializeTxOut(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, txOutSize, func(b []byte) bool {
		_, ok := decodeTxOut(b)
		return ok
	})
}
