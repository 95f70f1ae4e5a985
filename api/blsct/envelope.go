package blsct

import (
	"github.com/pkg/errors"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/log"
	"github.com/nav-io/libblsct-bindings/internal/metrics"
)

// TakeEnvelope consumes a BlsctRetVal. The envelope struct is always
// released; on success the caller owns Value.
func TakeEnvelope(lib ffi.Library, op string, env ffi.Ptr) (ffi.RetVal, error) {
	if env.IsNull() {
		return ffi.RetVal{}, allocationFailure(op)
	}
	rv := lib.RetVal(env)
	lib.Free(env)
	if rv.Status != ffi.StatusSuccess {
		return ffi.RetVal{}, domainFailure(op, rv.Status)
	}
	if rv.Value.IsNull() {
		Violate(op, "successful envelope without a value")
	}
	return rv, nil
}

// TakeBoolEnvelope consumes a BlsctBoolRetVal.
func TakeBoolEnvelope(lib ffi.Library, op string, env ffi.Ptr) (bool, error) {
	if env.IsNull() {
		return false, allocationFailure(op)
	}
	rv := lib.BoolRetVal(env)
	lib.Free(env)
	if rv.Status != ffi.StatusSuccess {
		return false, domainFailure(op, rv.Status)
	}
	return rv.Value, nil
}

// TakeAmountsEnvelope consumes a BlsctAmountsRetVal. On success it returns
// the envelope unchanged together with a release function for it; the
// results live inside the envelope.
func TakeAmountsEnvelope(lib ffi.Library, op string, env ffi.Ptr) (ffi.AmountsRetVal, func(), error) {
	if env.IsNull() {
		return ffi.AmountsRetVal{}, nil, allocationFailure(op)
	}
	rv := lib.AmountsRetVal(env)
	release := func() {
		lib.FreeAmountsRetVal(env)
		metrics.Released("amounts_ret_val")
	}
	metrics.Acquired("amounts_ret_val")
	if rv.Status != ffi.StatusSuccess {
		release()
		return ffi.AmountsRetVal{}, nil, domainFailure(op, rv.Status)
	}
	return rv, release, nil
}

// TakeCTxEnvelope consumes a BlsctCTxRetVal. Amount errors carry the index
// of the offending input or output.
func TakeCTxEnvelope(lib ffi.Library, op string, env ffi.Ptr) (ffi.CTxRetVal, error) {
	if env.IsNull() {
		return ffi.CTxRetVal{}, allocationFailure(op)
	}
	rv := lib.CTxRetVal(env)
	lib.Free(env)
	switch rv.Status {
	case ffi.StatusSuccess:
		if rv.Value.IsNull() {
			Violate(op, "successful envelope without a transaction")
		}
		return rv, nil
	case ffi.StatusInAmountError, ffi.StatusOutAmountError:
		idx := rv.InAmountErrIndex
		if rv.Status == ffi.StatusOutAmountError {
			idx = rv.OutAmountErrIndex
		}
		metrics.Failure("domain")
		log.Debugw("foreign call failed", "op", op, "status", uint8(rv.Status), "index", idx)
		return ffi.CTxRetVal{}, errors.WithStack(&DomainFailure{Op: op, Status: rv.Status, Index: idx, HasIndex: true})
	default:
		return ffi.CTxRetVal{}, domainFailure(op, rv.Status)
	}
}
