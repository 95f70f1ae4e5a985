package rangeproof

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// RecoveryRequest asks to open Proof with Nonce.
type RecoveryRequest struct {
	Proof *RangeProof
	Nonce *curve.Point
}

// RecoveryResult is the outcome of one request. Amount and Msg are set
// only when IsSucc is.
type RecoveryResult struct {
	IsSucc bool
	Amount uint64
	Msg    string
}

type recoveryReqVecKind struct{ blsct.NoCodec }

func (recoveryReqVecKind) Name() string { return "amount_recovery_req_vec" }
func (recoveryReqVecKind) Size() int    { return 0 }

// RecoverAmounts opens every proof it can. A request whose nonce does not
// match its proof yields a result with IsSucc unset, not an error.
func RecoverAmounts(reqs []RecoveryRequest) ([]RecoveryResult, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	vec := blsct.FromRawSized[recoveryReqVecKind](lib, lib.CreateAmountRecoveryReqVec(), 0, ffi.Library.DeleteAmountRecoveryReqVec)
	defer vec.Free()

	for _, r := range reqs {
		req := lib.GenAmountRecoveryReq(r.Proof.Ptr(), r.Proof.Size(), r.Nonce.Ptr())
		if req.IsNull() {
			blsct.Violate("gen_amount_recovery_req", "null request")
		}
		// The vector owns req from here on.
		lib.AddToAmountRecoveryReqVec(vec.Ptr(), req)
	}

	rv, release, err := blsct.TakeAmountsEnvelope(lib, "recover_amount", lib.RecoverAmount(vec.Ptr()))
	if err != nil {
		return nil, err
	}
	defer release()

	n := lib.GetAmountRecoveryResultSize(rv.Value)
	out := make([]RecoveryResult, n)
	for i := 0; i < n; i++ {
		if !lib.GetAmountRecoveryResultIsSucc(rv.Value, i) {
			continue
		}
		msg, err := blsct.BorrowedString(lib, "recover_amount", lib.GetAmountRecoveryResultMsg(rv.Value, i))
		if err != nil {
			return nil, err
		}
		out[i] = RecoveryResult{
			IsSucc: true,
			Amount: lib.GetAmountRecoveryResultAmount(rv.Value, i),
			Msg:    msg,
		}
	}
	return out, nil
}
