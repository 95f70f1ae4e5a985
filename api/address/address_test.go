package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/api/keys"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/ffi/softlib"
)

type wallet struct {
	view     keys.ViewKey
	spendPub *curve.PublicKey
}

func newWallet(t *testing.T) wallet {
	t.Helper()
	v, err := curve.RandomScalar()
	require.NoError(t, err)
	s, err := curve.RandomScalar()
	require.NoError(t, err)
	w := wallet{view: keys.ViewKey{Scalar: v}, spendPub: curve.PublicKeyFromScalar(s)}
	s.Free()
	t.Cleanup(func() {
		v.Free()
		w.spendPub.Free()
	})
	return w
}

func TestSubAddressId(t *testing.T) {
	blsct.Use(softlib.New())

	id, err := NewSubAddressId(-3, 7)
	require.NoError(t, err)
	defer id.Free()
	assert.Equal(t, int64(-3), id.Account())
	assert.Equal(t, uint64(7), id.Address())

	h, err := id.Hex()
	require.NoError(t, err)
	back, err := SubAddressIdFromHex(h)
	require.NoError(t, err)
	defer back.Free()
	assert.True(t, id.Equal(back))
}

func TestSubAddress(t *testing.T) {
	blsct.Use(softlib.New())
	w := newWallet(t)

	id, err := NewSubAddressId(0, 1)
	require.NoError(t, err)
	defer id.Free()

	sa := NewSubAddress(w.view, w.spendPub, id)
	defer sa.Free()

	t.Run("matches_key_pair_derivation", func(t *testing.T) {
		dpk := curve.DoublePublicKeyFromKeysAcctAddr(w.view.Scalar, w.spendPub, 0, 1)
		defer dpk.Free()
		fromDpk, err := SubAddressFromDoublePublicKey(dpk)
		require.NoError(t, err)
		defer fromDpk.Free()
		assert.True(t, sa.Equal(fromDpk))

		back := sa.DoublePublicKey()
		defer back.Free()
		assert.True(t, dpk.Equal(back))
	})

	t.Run("other_index_other_address", func(t *testing.T) {
		other, err := NewSubAddressId(0, 2)
		require.NoError(t, err)
		defer other.Free()
		sa2 := NewSubAddress(w.view, w.spendPub, other)
		defer sa2.Free()
		assert.False(t, sa.Equal(sa2))
	})

	t.Run("round_trip", func(t *testing.T) {
		h, err := sa.Hex()
		require.NoError(t, err)
		back, err := SubAddressFromHex(h)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, sa.Equal(back))
	})
}

func TestEncodeDecode(t *testing.T) {
	blsct.Use(softlib.New())
	w := newWallet(t)
	dpk := curve.DoublePublicKeyFromKeysAcctAddr(w.view.Scalar, w.spendPub, 0, 0)
	defer dpk.Free()

	for _, enc := range []Encoding{Bech32, Bech32M} {
		addr, err := Encode(dpk, enc)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(addr, "nv1"), addr)

		back, err := Decode(addr)
		require.NoError(t, err)
		assert.True(t, dpk.Equal(back))
		back.Free()
	}

	t.Run("chain_selects_prefix", func(t *testing.T) {
		require.NoError(t, blsct.SetChain(blsct.Testnet))
		defer func() { require.NoError(t, blsct.SetChain(blsct.Mainnet)) }()

		addr, err := Encode(dpk, Bech32M)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(addr, "tn1"), addr)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Decode("nv1notanaddress")
		var df *blsct.DomainFailure
		require.ErrorAs(t, err, &df)
		assert.Equal(t, ffi.StatusUnknownEncoding, df.Status)
	})

	t.Run("nul_byte", func(t *testing.T) {
		_, err := Decode("nv1\x00")
		assert.ErrorIs(t, err, blsct.ErrEncoding)
	})
}
