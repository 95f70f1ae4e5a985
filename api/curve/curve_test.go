package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/ffi/softlib"
)

func useSoft(t *testing.T) *softlib.Library {
	t.Helper()
	lib := softlib.New()
	blsct.Use(lib)
	return lib
}

// maxRun returns the length of the longest run of consecutive equal hex
// strings.
func maxRun(xs []string) int {
	best, run := 0, 0
	for i := range xs {
		if i > 0 && xs[i] == xs[i-1] {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

func TestScalarEqual(t *testing.T) {
	useSoft(t)

	t.Run("equal_scalars", func(t *testing.T) {
		scalar1, err := RandomScalar()
		require.NoError(t, err)
		defer scalar1.Free()

		scalar2, err := scalar1.Clone()
		require.NoError(t, err)
		defer scalar2.Free()

		assert.True(t, scalar1.Equal(scalar2), "scalars with same value should be equal")
		assert.True(t, scalar2.Equal(scalar1), "equality should be symmetric")
	})

	t.Run("different_scalars", func(t *testing.T) {
		scalar1, err := RandomScalar()
		require.NoError(t, err)
		defer scalar1.Free()

		scalar2, err := RandomScalar()
		require.NoError(t, err)
		defer scalar2.Free()

		assert.False(t, scalar1.Equal(scalar2), "different random scalars should not be equal")
		assert.False(t, scalar2.Equal(scalar1))
	})

	t.Run("nil_scalars", func(t *testing.T) {
		scalar, err := RandomScalar()
		require.NoError(t, err)
		defer scalar.Free()

		var nilScalar *Scalar

		assert.False(t, scalar.Equal(nilScalar), "scalar should not equal nil")
		assert.False(t, nilScalar.Equal(scalar), "nil should not equal scalar")
		assert.False(t, nilScalar.Equal(nilScalar), "nil should not equal nil")
	})

	t.Run("self_equality", func(t *testing.T) {
		scalar, err := RandomScalar()
		require.NoError(t, err)
		defer scalar.Free()

		assert.True(t, scalar.Equal(scalar), "scalar should equal itself")
	})
}

func TestScalarFromUint64(t *testing.T) {
	useSoft(t)

	for _, n := range []uint64{0, 1, 42, 1 << 63} {
		s, err := NewScalar(n)
		require.NoError(t, err)
		assert.Equal(t, n, s.Uint64())
		s.Free()
	}
}

func TestRoundTrip(t *testing.T) {
	useSoft(t)

	t.Run("scalar", func(t *testing.T) {
		s, err := RandomScalar()
		require.NoError(t, err)
		defer s.Free()
		h, err := s.Hex()
		require.NoError(t, err)
		assert.Len(t, h, 2*ffi.ScalarSize)

		back, err := ScalarFromHex(h)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, s.Equal(back))
	})

	t.Run("point", func(t *testing.T) {
		p, err := RandomPoint()
		require.NoError(t, err)
		defer p.Free()
		h, err := p.Hex()
		require.NoError(t, err)

		back, err := PointFromHex(h)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, p.Equal(back))
	})

	t.Run("public_key", func(t *testing.T) {
		pk, err := RandomPublicKey()
		require.NoError(t, err)
		defer pk.Free()
		h, err := pk.Hex()
		require.NoError(t, err)

		back, err := PublicKeyFromHex(h)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, pk.Equal(back))
	})

	t.Run("double_public_key", func(t *testing.T) {
		pk1, err := RandomPublicKey()
		require.NoError(t, err)
		defer pk1.Free()
		pk2, err := RandomPublicKey()
		require.NoError(t, err)
		defer pk2.Free()

		dpk, err := NewDoublePublicKey(pk1, pk2)
		require.NoError(t, err)
		defer dpk.Free()
		h, err := dpk.Hex()
		require.NoError(t, err)
		assert.Len(t, h, 2*ffi.DoublePublicKeySize)

		back, err := DoublePublicKeyFromHex(h)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, dpk.Equal(back))
	})

	t.Run("signature", func(t *testing.T) {
		sig, err := RandomSignature()
		require.NoError(t, err)
		defer sig.Free()
		h, err := sig.Hex()
		require.NoError(t, err)

		back, err := SignatureFromHex(h)
		require.NoError(t, err)
		defer back.Free()
		assert.True(t, sig.Equal(back))
	})

	t.Run("text_marshaling", func(t *testing.T) {
		s, err := RandomScalar()
		require.NoError(t, err)
		defer s.Free()
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back Scalar
		require.NoError(t, back.UnmarshalText(text))
		defer back.Free()
		assert.True(t, s.Equal(&back))
	})
}

func TestInvalidPointHex(t *testing.T) {
	useSoft(t)

	_, err := PointFromHex("00")
	var df *blsct.DomainFailure
	require.ErrorAs(t, err, &df)
	assert.Equal(t, ffi.StatusBadSize, df.Status)
}

func TestRandomness(t *testing.T) {
	useSoft(t)
	const samples = 1000

	t.Run("scalars", func(t *testing.T) {
		xs := make([]string, 0, samples)
		for i := 0; i < samples; i++ {
			s, err := RandomScalar()
			require.NoError(t, err)
			xs = append(xs, s.String())
			s.Free()
		}
		assert.Less(t, maxRun(xs), 5)
	})

	t.Run("points", func(t *testing.T) {
		xs := make([]string, 0, samples)
		for i := 0; i < samples; i++ {
			p, err := RandomPoint()
			require.NoError(t, err)
			xs = append(xs, p.String())
			p.Free()
		}
		assert.Less(t, maxRun(xs), 5)
	})
}

func TestPointArithmetic(t *testing.T) {
	useSoft(t)

	one, err := NewScalar(1)
	require.NoError(t, err)
	defer one.Free()
	two, err := NewScalar(2)
	require.NoError(t, err)
	defer two.Free()

	g, err := BasePoint()
	require.NoError(t, err)
	defer g.Free()

	t.Run("one_times_g_is_g", func(t *testing.T) {
		p := PointFromScalar(one)
		defer p.Free()
		assert.True(t, p.Equal(g))
		assert.True(t, p.IsValid())
	})

	t.Run("multiply_matches_from_scalar", func(t *testing.T) {
		a := g.Multiply(two)
		defer a.Free()
		b := PointFromScalar(two)
		defer b.Free()
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(g))
	})

	t.Run("public_key_point", func(t *testing.T) {
		pk := PublicKeyFromScalar(one)
		defer pk.Free()
		p := pk.Point()
		defer p.Free()
		assert.True(t, p.Equal(g))

		back := PublicKeyFromPoint(p)
		defer back.Free()
		assert.True(t, pk.Equal(back))
	})

	t.Run("nonce_is_symmetric", func(t *testing.T) {
		a, err := RandomScalar()
		require.NoError(t, err)
		defer a.Free()
		b, err := RandomScalar()
		require.NoError(t, err)
		defer b.Free()

		pa, pb := PublicKeyFromScalar(a), PublicKeyFromScalar(b)
		defer pa.Free()
		defer pb.Free()
		n1, n2 := pa.GenerateNonce(b), pb.GenerateNonce(a)
		defer n1.Free()
		defer n2.Free()
		assert.True(t, n1.Equal(n2))
	})
}

func TestSignature(t *testing.T) {
	useSoft(t)

	sk, err := RandomScalar()
	require.NoError(t, err)
	defer sk.Free()
	pk := PublicKeyFromScalar(sk)
	defer pk.Free()

	sig, err := Sign(sk, "navio")
	require.NoError(t, err)
	defer sig.Free()

	t.Run("valid", func(t *testing.T) {
		ok, err := sig.Verify(pk, "navio")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("other_message", func(t *testing.T) {
		ok, err := sig.Verify(pk, "navi0")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("other_key", func(t *testing.T) {
		other, err := RandomPublicKey()
		require.NoError(t, err)
		defer other.Free()
		ok, err := sig.Verify(other, "navio")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("nul_in_message", func(t *testing.T) {
		_, err := Sign(sk, "na\x00vio")
		assert.ErrorIs(t, err, blsct.ErrEncoding)
	})
}

func TestNoLeaks(t *testing.T) {
	lib := useSoft(t)
	before := lib.Stats().Live

	s, err := RandomScalar()
	require.NoError(t, err)
	p := PointFromScalar(s)
	pk := PublicKeyFromPoint(p)
	sig, err := Sign(s, "navio")
	require.NoError(t, err)
	for _, v := range []interface{ Free() }{s, p, pk, sig} {
		v.Free()
		v.Free()
	}
	assert.Equal(t, before, lib.Stats().Live)
}
