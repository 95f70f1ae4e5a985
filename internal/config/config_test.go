package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ffi.Mainnet, cfg.Chain)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, []string{"stderr"}, cfg.Log.Outputs)
		assert.Equal(t, 100, cfg.Log.File.MaxSizeMB)
	})

	t.Run("yaml_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blsct.yaml")
		data := "chain: testnet\nlibrary: soft\nlog:\n  level: debug\n  outputs: [stdout]\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ffi.Testnet, cfg.Chain)
		assert.Equal(t, LibrarySoft, cfg.Library)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, []string{"stdout"}, cfg.Log.Outputs)
	})

	t.Run("environment_variable", func(t *testing.T) {
		t.Setenv("BLSCT_CHAIN", "regtest")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ffi.Regtest, cfg.Chain)
	})

	t.Run("unknown_chain", func(t *testing.T) {
		t.Setenv("BLSCT_CHAIN", "moonnet")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("unknown_library", func(t *testing.T) {
		t.Setenv("BLSCT_LIBRARY", "rust")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
