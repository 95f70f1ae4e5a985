package tx

import (
	"github.com/nav-io/libblsct-bindings/api/address"
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/api/token"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type OutputType = ffi.TxOutputType

const (
	Normal           = ffi.TxOutputNormal
	StakedCommitment = ffi.TxOutputStakedCommitment
)

type TxOutKind struct{}

func (TxOutKind) Name() string { return "tx_out" }
func (TxOutKind) Size() int    { return 0 }

func (TxOutKind) Serialize(lib ffi.Library, p ffi.Ptr, size int) ffi.Ptr {
	return lib.SerializeTxOut(p, size)
}

func (TxOutKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeTxOut(hex)
}

// TxOutParams describes a payment. A nil BlindingKey lets the builder draw
// a random one.
type TxOutParams struct {
	Destination           *address.SubAddress
	Amount                uint64
	Memo                  string
	TokenId               *token.Id
	OutputType            OutputType
	MinStake              uint64
	SubtractFeeFromAmount bool
	BlindingKey           *curve.Scalar
}

type TxOut struct {
	blsct.Value[TxOutKind]
}

func NewTxOut(p TxOutParams) (*TxOut, error) {
	lib := p.Destination.Lib()
	memo, err := blsct.CString(lib, "build_tx_out", p.Memo)
	if err != nil {
		return nil, err
	}
	defer lib.Free(memo)

	var bk ffi.Ptr
	if p.BlindingKey != nil {
		bk = p.BlindingKey.Ptr()
	}
	env := lib.BuildTxOut(p.Destination.Ptr(), p.Amount, memo, p.TokenId.Ptr(), p.OutputType, p.MinStake, p.SubtractFeeFromAmount, bk)
	h, err := blsct.FromEnvelope[TxOutKind](lib, env)
	if err != nil {
		return nil, err
	}
	return &TxOut{Value: blsct.Wrap(h)}, nil
}

func TxOutFromHex(s string) (*TxOut, error) {
	h, err := fromHex[TxOutKind](s)
	if err != nil {
		return nil, err
	}
	return &TxOut{Value: blsct.Wrap(h)}, nil
}

func (out *TxOut) Equal(other *TxOut) bool {
	if out == nil || other == nil {
		return false
	}
	return out.BytesEqual(other.Value)
}

func (out *TxOut) Clone() (*TxOut, error) {
	h, err := out.CloneHandle()
	if err != nil {
		return nil, err
	}
	return &TxOut{Value: blsct.Wrap(h)}, nil
}

func (out *TxOut) Amount() uint64         { return out.Lib().GetTxOutAmount(out.Ptr()) }
func (out *TxOut) OutputType() OutputType { return out.Lib().GetTxOutOutputType(out.Ptr()) }
func (out *TxOut) MinStake() uint64       { return out.Lib().GetTxOutMinStake(out.Ptr()) }

func (out *TxOut) SubtractFeeFromAmount() bool {
	return out.Lib().GetTxOutSubtractFeeFromAmount(out.Ptr())
}

func (out *TxOut) Destination() *address.SubAddress {
	lib := out.Lib()
	return address.SubAddressFromHandle(blsct.FromRawStatic[address.SubAddressKind](lib, lib.GetTxOutDestination(out.Ptr())))
}

func (out *TxOut) Memo() (string, error) {
	lib := out.Lib()
	return blsct.GoString(lib, "tx_out_memo", lib.GetTxOutMemo(out.Ptr()))
}

func (out *TxOut) TokenId() *token.Id {
	lib := out.Lib()
	return token.IdFromHandle(blsct.FromRawStatic[token.IdKind](lib, lib.GetTxOutTokenId(out.Ptr())))
}

// BlindingKey returns nil when the output was built without one.
func (out *TxOut) BlindingKey() *curve.Scalar {
	lib := out.Lib()
	p := lib.GetTxOutBlindingKey(out.Ptr())
	if p.IsNull() {
		return nil
	}
	return curve.ScalarFromHandle(blsct.FromRawStatic[curve.ScalarKind](lib, p))
}

type txOutVecKind struct{ blsct.NoCodec }

func (txOutVecKind) Name() string { return "tx_out_vec" }
func (txOutVecKind) Size() int    { return 0 }

func newTxOutVec(lib ffi.Library, outs []*TxOut) *blsct.Handle[txOutVecKind] {
	vec := blsct.FromRawSized[txOutVecKind](lib, lib.CreateTxOutVec(), 0, ffi.Library.DeleteTxOutVec)
	for _, out := range outs {
		lib.AddToTxOutVec(vec.Ptr(), out.Ptr())
	}
	return vec
}
