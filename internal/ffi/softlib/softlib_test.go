package softlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

func newScalar(t *testing.T, l *Library) ffi.Ptr {
	t.Helper()
	rv := l.RetVal(l.GenRandomScalar())
	require.Equal(t, ffi.StatusSuccess, rv.Status)
	return rv.Value
}

func TestHeapAccounting(t *testing.T) {
	l := New()

	t.Run("envelope_and_value_are_separate_allocations", func(t *testing.T) {
		before := l.Stats()
		env := l.GenRandomScalar()
		v := l.RetVal(env).Value
		assert.Equal(t, before.Live+2, l.Stats().Live)

		l.Free(env)
		l.Free(v)
		assert.Equal(t, before.Live, l.Stats().Live)
		assert.False(t, l.Live(v))
	})

	t.Run("double_free_panics", func(t *testing.T) {
		p := l.Alloc([]byte{1, 2, 3})
		l.Free(p)
		assert.Panics(t, func() { l.Free(p) })
	})

	t.Run("use_after_free_panics", func(t *testing.T) {
		p := l.Alloc([]byte{1})
		l.Free(p)
		assert.Panics(t, func() { l.Bytes(p, 1) })
	})

	t.Run("free_of_null_is_a_no_op", func(t *testing.T) {
		assert.NotPanics(t, func() { l.Free(0) })
	})
}

func TestInjectedAllocationFailure(t *testing.T) {
	l := New()

	t.Run("value_allocation_fails", func(t *testing.T) {
		l.FailAllocations(1)
		env := l.GenRandomScalar()
		require.False(t, env.IsNull())
		assert.Equal(t, ffi.StatusMemAllocFailed, l.RetVal(env).Status)
		l.Free(env)
	})

	t.Run("envelope_allocation_fails", func(t *testing.T) {
		before := l.Stats().Live
		l.FailAllocations(2)
		assert.True(t, l.GenRandomScalar().IsNull())
		assert.Equal(t, before, l.Stats().Live)
	})
}

func TestDeserializeFixed(t *testing.T) {
	l := New()
	hexOf := func(s string) ffi.Ptr { return l.cstr([]byte(s)) }

	tests := []struct {
		name   string
		in     string
		status ffi.Status
	}{
		{"not_hex", "zz", ffi.StatusUnknownEncoding},
		{"short", "00ff", ffi.StatusBadSize},
		{"valid", "0000000000000000000000000000000000000000", ffi.StatusSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := l.DeserializeKeyId(hexOf(tt.in))
			defer l.Free(env)
			rv := l.RetVal(env)
			assert.Equal(t, tt.status, rv.Status)
			if rv.Status == ffi.StatusSuccess {
				assert.Equal(t, ffi.KeyIdSize, rv.Size)
				l.Free(rv.Value)
			}
		})
	}
}

func TestAddressRoundTrip(t *testing.T) {
	l := New()
	v := newScalar(t, l)
	s := newScalar(t, l)
	spendPub := l.PointFromScalar(s)
	dpk := l.GenDpkWithKeysAcctAddr(v, spendPub, 0, 1)

	for _, enc := range []ffi.AddressEncoding{ffi.Bech32, ffi.Bech32M} {
		rv := l.RetVal(l.EncodeAddress(dpk, enc))
		require.Equal(t, ffi.StatusSuccess, rv.Status)
		addr := l.CStringBytes(rv.Value)
		assert.Equal(t, "nv1", string(addr[:3]))

		back := l.RetVal(l.DecodeAddress(rv.Value))
		require.Equal(t, ffi.StatusSuccess, back.Status)
		assert.Equal(t, l.Bytes(dpk, ffi.DoublePublicKeySize), l.Bytes(back.Value, ffi.DoublePublicKeySize))
	}

	l.SetBlsctChain(ffi.Testnet)
	rv := l.RetVal(l.EncodeAddress(dpk, ffi.Bech32M))
	l.SetBlsctChain(ffi.Mainnet)
	assert.Equal(t, ffi.StatusFailure, l.RetVal(l.DecodeAddress(rv.Value)).Status)
}

func TestRangeProofRecovery(t *testing.T) {
	l := New()
	amounts := l.CreateUint64Vec()
	l.AddToUint64Vec(amounts, 123)
	nonce := l.RetVal(l.GenRandomPoint()).Value
	token := l.RetVal(l.GenDefaultTokenId()).Value

	rv := l.RetVal(l.BuildRangeProof(amounts, nonce, l.cstr([]byte("navio")), token))
	require.Equal(t, ffi.StatusSuccess, rv.Status)

	proofs := l.CreateRangeProofVec()
	l.AddToRangeProofVec(proofs, rv.Value, rv.Size)
	assert.True(t, l.BoolRetVal(l.VerifyRangeProofs(proofs)).Value)

	reqs := l.CreateAmountRecoveryReqVec()
	l.AddToAmountRecoveryReqVec(reqs, l.GenAmountRecoveryReq(rv.Value, rv.Size, nonce))
	other := l.RetVal(l.GenRandomPoint()).Value
	l.AddToAmountRecoveryReqVec(reqs, l.GenAmountRecoveryReq(rv.Value, rv.Size, other))

	res := l.AmountsRetVal(l.RecoverAmount(reqs))
	require.Equal(t, ffi.StatusSuccess, res.Status)
	require.Equal(t, 2, l.GetAmountRecoveryResultSize(res.Value))
	assert.True(t, l.GetAmountRecoveryResultIsSucc(res.Value, 0))
	assert.Equal(t, uint64(123), l.GetAmountRecoveryResultAmount(res.Value, 0))
	assert.Equal(t, "navio", string(l.CStringBytes(l.GetAmountRecoveryResultMsg(res.Value, 0))))
	assert.False(t, l.GetAmountRecoveryResultIsSucc(res.Value, 1))

	t.Run("borrowed_message_cannot_be_freed", func(t *testing.T) {
		assert.Panics(t, func() { l.Free(l.GetAmountRecoveryResultMsg(res.Value, 0)) })
	})

	t.Run("tampered_proof_fails_verification", func(t *testing.T) {
		b := l.Bytes(rv.Value, rv.Size)
		b[len(b)-1] ^= 1
		bad := l.CreateRangeProofVec()
		l.AddToRangeProofVec(bad, l.Alloc(b), len(b))
		assert.False(t, l.BoolRetVal(l.VerifyRangeProofs(bad)).Value)
	})
}

func TestBuildCtx(t *testing.T) {
	l := New()
	token := l.RetVal(l.GenDefaultTokenId()).Value
	ctxId := l.Alloc(make([]byte, ffi.CTxIdSize))
	outPoint := l.RetVal(l.GenOutPoint(ctxId, 0)).Value
	spendKey := newScalar(t, l)
	v := newScalar(t, l)
	s := newScalar(t, l)
	dest := l.GenDpkWithKeysAcctAddr(v, l.PointFromScalar(s), 0, 0)

	build := func(inAmount, outAmount uint64) ffi.CTxRetVal {
		ins := l.CreateTxInVec()
		defer l.DeleteTxInVec(ins)
		outs := l.CreateTxOutVec()
		defer l.DeleteTxOutVec(outs)

		in := l.RetVal(l.BuildTxIn(inAmount, 100, spendKey, token, outPoint, false, false)).Value
		l.AddToTxInVec(ins, in)
		out := l.RetVal(l.BuildTxOut(dest, outAmount, l.cstr([]byte("navio")), token, ffi.TxOutputNormal, 0, false, 0)).Value
		l.AddToTxOutVec(outs, out)
		return l.CTxRetVal(l.BuildCtx(ins, outs))
	}

	t.Run("underfunded_input", func(t *testing.T) {
		rv := build(10000, 10000)
		assert.Equal(t, ffi.StatusInAmountError, rv.Status)
		assert.Equal(t, 0, rv.InAmountErrIndex)
	})

	t.Run("payment_change_and_fee", func(t *testing.T) {
		rv := build(1000000, 10000)
		require.Equal(t, ffi.StatusSuccess, rv.Status)

		outs := l.GetCtxOuts(rv.Value, rv.Size)
		require.Equal(t, 3, l.GetCtxOutsSize(outs))
		assert.Equal(t, l.GetCtxOuts(rv.Value, rv.Size), outs)
		fee := l.GetCtxOutAt(outs, 2)
		assert.Equal(t, 2*FeePerComponent, l.GetCtxOutValue(fee))
		assert.Equal(t, ffi.StatusFailure, l.RetVal(l.GetCtxOutRangeProof(fee)).Status)

		ins := l.GetCtxIns(rv.Value, rv.Size)
		require.Equal(t, 1, l.GetCtxInsSize(ins))
		assert.Equal(t, uint32(seqFinal), l.GetCtxInSequence(l.GetCtxInAt(ins, 0)))

		assert.Panics(t, func() { l.Free(outs) })

		before := l.Stats().Live
		l.Free(rv.Value)
		assert.Equal(t, before-1, l.Stats().Live)
		assert.False(t, l.Live(outs))
	})

	t.Run("empty_lists_are_rejected", func(t *testing.T) {
		ins := l.CreateTxInVec()
		defer l.DeleteTxInVec(ins)
		outs := l.CreateTxOutVec()
		defer l.DeleteTxOutVec(outs)
		assert.Equal(t, ffi.StatusFailure, l.CTxRetVal(l.BuildCtx(ins, outs)).Status)
	})

	t.Run("malformed_input_is_a_status", func(t *testing.T) {
		good := l.RetVal(l.BuildTxIn(1000000, 100, spendKey, token, outPoint, false, false)).Value
		b := l.Bytes(good, txInSize)
		b[len(b)-1] = 2
		bad := l.Alloc(b)

		ins := l.CreateTxInVec()
		defer l.DeleteTxInVec(ins)
		l.AddToTxInVec(ins, bad)
		outs := l.CreateTxOutVec()
		defer l.DeleteTxOutVec(outs)
		out := l.RetVal(l.BuildTxOut(dest, 10000, l.cstr(nil), token, ffi.TxOutputNormal, 0, false, 0)).Value
		l.AddToTxOutVec(outs, out)

		assert.Equal(t, ffi.StatusBadSize, l.CTxRetVal(l.BuildCtx(ins, outs)).Status)
	})
}

func TestTxInOutCodec(t *testing.T) {
	l := New()
	token := l.RetVal(l.GenDefaultTokenId()).Value
	outPoint := l.RetVal(l.GenOutPoint(l.Alloc(make([]byte, ffi.CTxIdSize)), 0)).Value
	in := l.RetVal(l.BuildTxIn(5000, 100, newScalar(t, l), token, outPoint, true, false)).Value
	good := string(l.CStringBytes(l.SerializeTxIn(in, txInSize)))

	t.Run("round_trip", func(t *testing.T) {
		rv := l.RetVal(l.DeserializeTxIn(l.cstr([]byte(good))))
		require.Equal(t, ffi.StatusSuccess, rv.Status)
		assert.Equal(t, txInSize, rv.Size)
		assert.Equal(t, uint64(5000), l.GetTxInAmount(rv.Value))
		assert.True(t, l.GetTxInStakedCommitment(rv.Value))
	})

	tests := []struct {
		name   string
		hex    string
		status ffi.Status
	}{
		{"tx_in_too_short", "00", ffi.StatusBadSize},
		{"tx_in_bad_flag", good[:len(good)-2] + "02", ffi.StatusFailure},
		{"tx_in_not_hex", "zz", ffi.StatusUnknownEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, l.RetVal(l.DeserializeTxIn(l.cstr([]byte(tt.hex)))).Status)
		})
	}

	t.Run("tx_out_wrong_length", func(t *testing.T) {
		assert.Equal(t, ffi.StatusBadSize, l.RetVal(l.DeserializeTxOut(l.cstr([]byte("abcd")))).Status)
	})
}
