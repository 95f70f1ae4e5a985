package tx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-io/libblsct-bindings/api/address"
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/api/keys"
	"github.com/nav-io/libblsct-bindings/api/rangeproof"
	"github.com/nav-io/libblsct-bindings/api/token"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/ffi/softlib"
)

// wallet holds the receiving side of a payment.
type wallet struct {
	view     keys.ViewKey
	spending keys.SpendingKey
	dest     *address.SubAddress
}

func newWallet(t *testing.T) wallet {
	t.Helper()
	seed, err := curve.RandomScalar()
	require.NoError(t, err)
	defer seed.Free()

	child := keys.ChildKeyFromSeed(seed)
	defer child.Free()
	txKey := child.TxKey()
	defer txKey.Free()

	w := wallet{view: txKey.ViewKey(), spending: txKey.SpendingKey()}
	spendPub := curve.PublicKeyFromScalar(w.spending.Scalar)
	defer spendPub.Free()
	id, err := address.NewSubAddressId(0, 0)
	require.NoError(t, err)
	defer id.Free()
	w.dest = address.NewSubAddress(w.view, spendPub, id)

	t.Cleanup(func() {
		w.view.Free()
		w.spending.Free()
		w.dest.Free()
	})
	return w
}

type builder struct {
	tok      *token.Id
	outPoint *OutPoint
	key      *curve.Scalar
}

func newBuilder(t *testing.T) builder {
	t.Helper()
	tok, err := token.Default()
	require.NoError(t, err)
	ctxId, err := RandomCTxId()
	require.NoError(t, err)
	defer ctxId.Free()
	op, err := NewOutPoint(ctxId, 0)
	require.NoError(t, err)
	key, err := curve.RandomScalar()
	require.NoError(t, err)
	t.Cleanup(func() {
		tok.Free()
		op.Free()
		key.Free()
	})
	return builder{tok: tok, outPoint: op, key: key}
}

func (b builder) in(t *testing.T, amount uint64) *TxIn {
	t.Helper()
	in, err := NewTxIn(TxInParams{Amount: amount, Gamma: 100, SpendingKey: b.key, TokenId: b.tok, OutPoint: b.outPoint})
	require.NoError(t, err)
	t.Cleanup(in.Free)
	return in
}

func (b builder) out(t *testing.T, dest *address.SubAddress, amount uint64) *TxOut {
	t.Helper()
	return b.outWith(t, TxOutParams{Destination: dest, Amount: amount, Memo: "navio", OutputType: Normal})
}

// outWith fills in the builder's token.
func (b builder) outWith(t *testing.T, p TxOutParams) *TxOut {
	t.Helper()
	p.TokenId = b.tok
	out, err := NewTxOut(p)
	require.NoError(t, err)
	t.Cleanup(out.Free)
	return out
}

func requireDomain(t *testing.T, err error, status ffi.Status) *blsct.DomainFailure {
	t.Helper()
	var df *blsct.DomainFailure
	require.True(t, errors.As(err, &df), "got %v", err)
	assert.Equal(t, status, df.Status)
	return df
}

func TestIds(t *testing.T) {
	blsct.Use(softlib.New())

	ctxId, err := RandomCTxId()
	require.NoError(t, err)
	defer ctxId.Free()

	t.Run("out_point_index", func(t *testing.T) {
		op, err := NewOutPoint(ctxId, 7)
		require.NoError(t, err)
		defer op.Free()
		assert.Equal(t, uint32(7), op.N())

		s, err := op.Hex()
		require.NoError(t, err)
		back, err := OutPointFromHex(s)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, op.Equal(back))
	})

	t.Run("script_round_trip", func(t *testing.T) {
		sc, err := RandomScript()
		require.NoError(t, err)
		defer sc.Free()
		s, err := sc.Hex()
		require.NoError(t, err)
		back, err := ScriptFromHex(s)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, sc.Equal(back))
	})

	t.Run("vector_predicate_equality", func(t *testing.T) {
		a, err := VectorPredicateFromHex("0102ab")
		require.NoError(t, err)
		defer a.Free()
		b, err := VectorPredicateFromHex("0102AB")
		require.NoError(t, err)
		defer b.Free()
		c, err := VectorPredicateFromHex("0102")
		require.NoError(t, err)
		defer c.Free()

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
		assert.Equal(t, 3, a.Size())

		s, err := a.Hex()
		require.NoError(t, err)
		assert.Equal(t, "0102ab", s)
	})
}

func TestTxInOut(t *testing.T) {
	blsct.Use(softlib.New())
	b := newBuilder(t)
	w := newWallet(t)

	t.Run("tx_in_accessors", func(t *testing.T) {
		in := b.in(t, 5000)
		assert.Equal(t, uint64(5000), in.Amount())
		assert.Equal(t, uint64(100), in.Gamma())
		assert.False(t, in.StakedCommitment())

		key := in.SpendingKey()
		defer key.Free()
		assert.True(t, key.Equal(b.key))
		op := in.OutPoint()
		defer op.Free()
		assert.True(t, op.Equal(b.outPoint))
	})

	t.Run("tx_out_accessors", func(t *testing.T) {
		out := b.out(t, w.dest, 42)
		assert.Equal(t, uint64(42), out.Amount())
		assert.Equal(t, Normal, out.OutputType())
		assert.Nil(t, out.BlindingKey())

		memo, err := out.Memo()
		require.NoError(t, err)
		assert.Equal(t, "navio", memo)

		dest := out.Destination()
		defer dest.Free()
		assert.True(t, dest.Equal(w.dest))
	})

	t.Run("tx_in_hex_round_trip", func(t *testing.T) {
		in := b.in(t, 5000)
		s, err := in.Hex()
		require.NoError(t, err)
		back, err := TxInFromHex(s)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, in.Equal(back))
		assert.Equal(t, uint64(5000), back.Amount())
	})

	t.Run("tx_out_hex_round_trip", func(t *testing.T) {
		out := b.out(t, w.dest, 42)
		s, err := out.Hex()
		require.NoError(t, err)
		back, err := TxOutFromHex(s)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, out.Equal(back))
		assert.Equal(t, uint64(42), back.Amount())
	})

	t.Run("equal_and_clone", func(t *testing.T) {
		in := b.in(t, 5000)
		other := b.in(t, 5001)
		assert.False(t, in.Equal(other))
		inCopy, err := in.Clone()
		require.NoError(t, err)
		defer inCopy.Free()
		assert.True(t, in.Equal(inCopy))
		assert.NotEqual(t, in.Ptr(), inCopy.Ptr())

		out := b.out(t, w.dest, 42)
		assert.False(t, out.Equal(b.out(t, w.dest, 43)))
		outCopy, err := out.Clone()
		require.NoError(t, err)
		defer outCopy.Free()
		assert.True(t, out.Equal(outCopy))
		assert.False(t, out.Equal(nil))
	})

	t.Run("malformed_hex_is_a_domain_failure", func(t *testing.T) {
		_, err := TxInFromHex("00")
		requireDomain(t, err, ffi.StatusBadSize)
		_, err = TxOutFromHex("abcd")
		requireDomain(t, err, ffi.StatusBadSize)

		in := b.in(t, 5000)
		s, err := in.Hex()
		require.NoError(t, err)
		_, err = TxInFromHex(s[:len(s)-2] + "02")
		assert.True(t, errors.Is(err, blsct.ErrDomain))
	})

	t.Run("memo_too_long", func(t *testing.T) {
		long := make([]byte, ffi.MemoMaxSize+1)
		for i := range long {
			long[i] = 'm'
		}
		_, err := NewTxOut(TxOutParams{Destination: w.dest, Amount: 1, Memo: string(long), TokenId: b.tok})
		var df *blsct.DomainFailure
		require.True(t, errors.As(err, &df))
		assert.Equal(t, ffi.StatusMemoTooLong, df.Status)
	})
}

func TestBuild(t *testing.T) {
	blsct.Use(softlib.New())
	b := newBuilder(t)
	w := newWallet(t)

	t.Run("underfunded_reports_input_index", func(t *testing.T) {
		_, err := Build([]*TxIn{b.in(t, 10000)}, []*TxOut{b.out(t, w.dest, 10000)})
		df := requireDomain(t, err, ffi.StatusInAmountError)
		assert.True(t, df.HasIndex)
		assert.Equal(t, 0, df.Index)
	})

	outputErrors := []struct {
		name string
		bad  TxOutParams
	}{
		{"staked_below_min_stake", TxOutParams{Amount: 100, OutputType: StakedCommitment, MinStake: 1000}},
		{"fee_subtracting_output_below_fee", TxOutParams{Amount: 1000, OutputType: Normal, SubtractFeeFromAmount: true}},
		{"amount_above_max_money", TxOutParams{Amount: softlib.MaxMoney + 1, OutputType: Normal}},
	}
	for _, tt := range outputErrors {
		t.Run(tt.name+"_reports_output_index", func(t *testing.T) {
			tt.bad.Destination = w.dest
			outs := []*TxOut{b.out(t, w.dest, 10000), b.outWith(t, tt.bad)}
			_, err := Build([]*TxIn{b.in(t, 1000000)}, outs)
			df := requireDomain(t, err, ffi.StatusOutAmountError)
			assert.True(t, df.HasIndex)
			assert.Equal(t, 1, df.Index)
		})
	}

	t.Run("empty_lists_are_rejected", func(t *testing.T) {
		_, err := Build(nil, []*TxOut{b.out(t, w.dest, 10000)})
		requireDomain(t, err, ffi.StatusFailure)
		_, err = Build([]*TxIn{b.in(t, 1000000)}, nil)
		requireDomain(t, err, ffi.StatusFailure)
		_, err = Build(nil, nil)
		requireDomain(t, err, ffi.StatusFailure)
	})

	ctx, err := Build([]*TxIn{b.in(t, 1000000)}, []*TxOut{b.out(t, w.dest, 10000)})
	require.NoError(t, err)
	defer ctx.Free()

	t.Run("payment_change_and_fee", func(t *testing.T) {
		require.Equal(t, 1, ctx.Ins().Len())
		require.Equal(t, 3, ctx.Outs().Len())
		fee, err := ctx.Outs().At(2)
		require.NoError(t, err)
		assert.Equal(t, 2*softlib.FeePerComponent, fee.Value())
		assert.Equal(t, uint16(0), fee.ViewTag())
		_, err = fee.RangeProof()
		assert.True(t, errors.Is(err, blsct.ErrDomain))

		in, err := ctx.Ins().At(0)
		require.NoError(t, err)
		prev := in.PrevOutHash()
		defer prev.Free()
		assert.Equal(t, uint32(0), in.PrevOutN())
	})

	t.Run("recipient_recovers_payment", func(t *testing.T) {
		out, err := ctx.Outs().At(0)
		require.NoError(t, err)
		bk := out.BlindingKey()
		defer bk.Free()
		blindingPub := curve.PublicKeyFromPoint(bk)
		defer blindingPub.Free()

		nonce := keys.CalcNonce(blindingPub, w.view)
		defer nonce.Free()
		rp, err := out.RangeProof()
		require.NoError(t, err)
		defer rp.Free()

		res, err := rangeproof.RecoverAmounts([]rangeproof.RecoveryRequest{{Proof: rp, Nonce: nonce}})
		require.NoError(t, err)
		assert.Equal(t, rangeproof.RecoveryResult{IsSucc: true, Amount: 10000, Msg: "navio"}, res[0])

		assert.Equal(t, uint64(out.ViewTag()), keys.CalcViewTag(blindingPub, w.view))

		priv := keys.CalcPrivSpendingKey(blindingPub, w.view, w.spending, 0, 0)
		defer priv.Free()
		got := curve.PublicKeyFromScalar(priv.Scalar)
		defer got.Free()
		sk := out.SpendingKey()
		defer sk.Free()
		want := curve.PublicKeyFromPoint(sk)
		defer want.Free()
		assert.True(t, got.Equal(want))
	})

	t.Run("equal_and_clone", func(t *testing.T) {
		cp, err := ctx.Clone()
		require.NoError(t, err)
		defer cp.Free()
		assert.True(t, ctx.Equal(cp))

		other, err := Build([]*TxIn{b.in(t, 1000000)}, []*TxOut{b.out(t, w.dest, 10000)})
		require.NoError(t, err)
		defer other.Free()
		assert.False(t, ctx.Equal(other))
	})

	t.Run("id_and_hex_round_trip", func(t *testing.T) {
		id, err := ctx.Id()
		require.NoError(t, err)
		defer id.Free()

		s, err := ctx.Hex()
		require.NoError(t, err)
		back, err := CTxFromHex(s)
		require.NoError(t, err)
		defer back.Free()
		id2, err := back.Id()
		require.NoError(t, err)
		defer id2.Free()
		assert.True(t, id.Equal(id2))
	})
}

func TestViewOutlivesTransaction(t *testing.T) {
	blsct.Use(softlib.New())
	b := newBuilder(t)
	w := newWallet(t)

	ctx, err := Build([]*TxIn{b.in(t, 1000000)}, []*TxOut{b.out(t, w.dest, 10000)})
	require.NoError(t, err)
	outs := ctx.Outs()
	out, err := outs.At(0)
	require.NoError(t, err)
	ctx.Free()

	assert.Panics(t, func() { outs.Len() })
	assert.Panics(t, func() { out.Value() })

	t.Run("index_out_of_range", func(t *testing.T) {
		ctx, err := Build([]*TxIn{b.in(t, 1000000)}, []*TxOut{b.out(t, w.dest, 10000)})
		require.NoError(t, err)
		defer ctx.Free()
		_, err = ctx.Outs().At(3)
		var oor *blsct.IndexOutOfRange
		require.True(t, errors.As(err, &oor))
		assert.Equal(t, 3, oor.Index)
		assert.Equal(t, 3, oor.Len)

		_, err = ctx.Ins().At(-1)
		assert.True(t, errors.Is(err, blsct.ErrIndex))
	})
}
