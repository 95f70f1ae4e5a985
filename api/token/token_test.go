package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/ffi/softlib"
)

func TestTokenId(t *testing.T) {
	blsct.Use(softlib.New())

	tests := []struct {
		name  string
		make  func() (*Id, error)
		token uint64
		subid uint64
	}{
		{"default", Default, 0, DefaultSubid},
		{"token", func() (*Id, error) { return FromToken(123) }, 123, DefaultSubid},
		{"token_and_subid", func() (*Id, error) { return FromTokenAndSubid(123, 456) }, 123, 456},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.make()
			require.NoError(t, err)
			defer id.Free()
			assert.Equal(t, tt.token, id.Token())
			assert.Equal(t, tt.subid, id.Subid())

			h, err := id.Hex()
			require.NoError(t, err)
			back, err := FromHex(h)
			require.NoError(t, err)
			defer back.Free()
			assert.True(t, id.Equal(back))
		})
	}

	t.Run("default_is_token_zero", func(t *testing.T) {
		a, err := Default()
		require.NoError(t, err)
		defer a.Free()
		b, err := FromToken(0)
		require.NoError(t, err)
		defer b.Free()
		c, err := FromToken(1)
		require.NoError(t, err)
		defer c.Free()
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})
}
