// Package config loads the bindings' settings from a YAML file and BLSCT_*
// environment variables.
package config

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

const (
	LibraryNative = "native"
	LibrarySoft   = "soft"
)

type Config struct {
	Chain   ffi.Chain `mapstructure:"chain"`
	Library string    `mapstructure:"library"`
	Log     struct {
		Level   string   `mapstructure:"level"`
		Outputs []string `mapstructure:"outputs"`
		File    struct {
			MaxSizeMB  int `mapstructure:"max_size_mb"`
			MaxBackups int `mapstructure:"max_backups"`
		} `mapstructure:"file"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chain", "mainnet")
	v.SetDefault("library", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.outputs", []string{"stderr"})
	v.SetDefault("log.file.max_size_mb", 100)
	v.SetDefault("log.file.max_backups", 3)
}

// New returns a viper instance with defaults and environment binding set
// up. BLSCT_LOG_LEVEL overrides log.level and so on.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("blsct")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path when it is not empty and decodes the result.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "Error reading config file")
		}
	}
	return Decode(v)
}

// Decode unmarshals v into a Config.
func Decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	hook := mapstructure.ComposeDecodeHookFunc(
		chainHook,
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(cfg, viper.DecodeHook(hook)); err != nil {
		return nil, errors.Wrap(err, "Error parsing config")
	}
	switch cfg.Library {
	case "", LibraryNative, LibrarySoft:
	default:
		return nil, errors.Errorf("unknown library %q, want %q or %q", cfg.Library, LibraryNative, LibrarySoft)
	}
	return cfg, nil
}

func chainHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(ffi.Chain(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	return ffi.ParseChain(strings.ToLower(data.(string)))
}
