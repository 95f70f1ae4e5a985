package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/internal/ffi/softlib"
)

type chain struct {
	child    ChildKey
	blinding BlindingKey
	token    TokenKey
	tx       TxKey
	view     ViewKey
	spending SpendingKey
}

func deriveAll(seed *curve.Scalar) chain {
	c := chain{child: ChildKeyFromSeed(seed)}
	c.blinding = c.child.BlindingKey()
	c.token = c.child.TokenKey()
	c.tx = c.child.TxKey()
	c.view = c.tx.ViewKey()
	c.spending = c.tx.SpendingKey()
	return c
}

func (c chain) scalars() []*curve.Scalar {
	return []*curve.Scalar{c.child.Scalar, c.blinding.Scalar, c.token.Scalar, c.tx.Scalar, c.view.Scalar, c.spending.Scalar}
}

func (c chain) free() {
	for _, s := range c.scalars() {
		s.Free()
	}
}

func TestDerivationDeterminism(t *testing.T) {
	blsct.Use(softlib.New())

	seed, err := curve.RandomScalar()
	require.NoError(t, err)
	defer seed.Free()

	a, b := deriveAll(seed), deriveAll(seed)
	defer a.free()
	defer b.free()

	t.Run("same_seed_same_keys", func(t *testing.T) {
		for i, s := range a.scalars() {
			assert.True(t, s.Equal(b.scalars()[i]), "key %d differs", i)
		}
	})

	t.Run("keys_are_distinct", func(t *testing.T) {
		ks := a.scalars()
		for i := range ks {
			for j := i + 1; j < len(ks); j++ {
				assert.False(t, ks[i].Equal(ks[j]), "keys %d and %d collide", i, j)
			}
		}
	})

	t.Run("other_seed_other_keys", func(t *testing.T) {
		other, err := curve.RandomScalar()
		require.NoError(t, err)
		defer other.Free()
		c := deriveAll(other)
		defer c.free()
		assert.False(t, a.view.Equal(c.view.Scalar))
	})
}

func TestOutputKeys(t *testing.T) {
	blsct.Use(softlib.New())

	view, err := curve.RandomScalar()
	require.NoError(t, err)
	defer view.Free()
	vk := ViewKey{view}

	b, err := curve.RandomScalar()
	require.NoError(t, err)
	defer b.Free()
	blindingPub := curve.PublicKeyFromScalar(b)
	defer blindingPub.Free()

	t.Run("view_tag_is_16_bits_and_stable", func(t *testing.T) {
		tag := CalcViewTag(blindingPub, vk)
		assert.Less(t, tag, uint64(1<<16))
		assert.Equal(t, tag, CalcViewTag(blindingPub, vk))
	})

	t.Run("nonce_matches_sender_side", func(t *testing.T) {
		viewPub := curve.PublicKeyFromScalar(view)
		defer viewPub.Free()

		receiver := CalcNonce(blindingPub, vk)
		defer receiver.Free()
		sender := viewPub.GenerateNonce(b)
		defer sender.Free()
		assert.True(t, receiver.Equal(sender))
	})

	t.Run("hash_id_round_trip", func(t *testing.T) {
		spendPub, err := curve.RandomPublicKey()
		require.NoError(t, err)
		defer spendPub.Free()

		id := NewHashId(blindingPub, spendPub, vk)
		defer id.Free()
		again := NewHashId(blindingPub, spendPub, vk)
		defer again.Free()
		assert.True(t, id.Equal(again))

		h, err := id.Hex()
		require.NoError(t, err)
		back, err := HashIdFromHex(h)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, id.Equal(back))
	})
}
