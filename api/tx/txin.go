package tx

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/api/token"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type TxInKind struct{}

func (TxInKind) Name() string { return "tx_in" }
func (TxInKind) Size() int    { return 0 }

func (TxInKind) Serialize(lib ffi.Library, p ffi.Ptr, size int) ffi.Ptr {
	return lib.SerializeTxIn(p, size)
}

func (TxInKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeTxIn(hex)
}

// TxInParams describes an output being spent.
type TxInParams struct {
	Amount           uint64
	Gamma            uint64
	SpendingKey      *curve.Scalar
	TokenId          *token.Id
	OutPoint         *OutPoint
	StakedCommitment bool
	Rbf              bool
}

// TxIn is a builder input. It is copied into the native input vector when a
// transaction is built, so it stays owned by the caller.
type TxIn struct {
	blsct.Value[TxInKind]
}

func NewTxIn(p TxInParams) (*TxIn, error) {
	lib := p.SpendingKey.Lib()
	env := lib.BuildTxIn(p.Amount, p.Gamma, p.SpendingKey.Ptr(), p.TokenId.Ptr(), p.OutPoint.Ptr(), p.StakedCommitment, p.Rbf)
	h, err := blsct.FromEnvelope[TxInKind](lib, env)
	if err != nil {
		return nil, err
	}
	return &TxIn{Value: blsct.Wrap(h)}, nil
}

func TxInFromHex(s string) (*TxIn, error) {
	h, err := fromHex[TxInKind](s)
	if err != nil {
		return nil, err
	}
	return &TxIn{Value: blsct.Wrap(h)}, nil
}

func (in *TxIn) Equal(other *TxIn) bool {
	if in == nil || other == nil {
		return false
	}
	return in.BytesEqual(other.Value)
}

func (in *TxIn) Clone() (*TxIn, error) {
	h, err := in.CloneHandle()
	if err != nil {
		return nil, err
	}
	return &TxIn{Value: blsct.Wrap(h)}, nil
}

func (in *TxIn) Amount() uint64         { return in.Lib().GetTxInAmount(in.Ptr()) }
func (in *TxIn) Gamma() uint64          { return in.Lib().GetTxInGamma(in.Ptr()) }
func (in *TxIn) StakedCommitment() bool { return in.Lib().GetTxInStakedCommitment(in.Ptr()) }
func (in *TxIn) Rbf() bool              { return in.Lib().GetTxInRbf(in.Ptr()) }

func (in *TxIn) SpendingKey() *curve.Scalar {
	lib := in.Lib()
	return curve.ScalarFromHandle(blsct.FromRawStatic[curve.ScalarKind](lib, lib.GetTxInSpendingKey(in.Ptr())))
}

func (in *TxIn) TokenId() *token.Id {
	lib := in.Lib()
	return token.IdFromHandle(blsct.FromRawStatic[token.IdKind](lib, lib.GetTxInTokenId(in.Ptr())))
}

func (in *TxIn) OutPoint() *OutPoint {
	lib := in.Lib()
	return &OutPoint{Value: blsct.Wrap(blsct.FromRawStatic[OutPointKind](lib, lib.GetTxInOutPoint(in.Ptr())))}
}

type txInVecKind struct{ blsct.NoCodec }

func (txInVecKind) Name() string { return "tx_in_vec" }
func (txInVecKind) Size() int    { return 0 }

func newTxInVec(lib ffi.Library, ins []*TxIn) *blsct.Handle[txInVecKind] {
	vec := blsct.FromRawSized[txInVecKind](lib, lib.CreateTxInVec(), 0, ffi.Library.DeleteTxInVec)
	for _, in := range ins {
		lib.AddToTxInVec(vec.Ptr(), in.Ptr())
	}
	return vec
}
