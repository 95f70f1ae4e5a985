package blsct

import (
	"github.com/pkg/errors"

	"github.com/nav-io/libblsct-bindings/internal/config"
	"github.com/nav-io/libblsct-bindings/internal/ffi/softlib"
	"github.com/nav-io/libblsct-bindings/internal/log"
)

// Configure applies cfg: logging first, then the library selection, then
// the chain.
func Configure(cfg *config.Config) error {
	err := log.Configure(log.Options{
		Level:      cfg.Log.Level,
		Outputs:    cfg.Log.Outputs,
		MaxSizeMB:  cfg.Log.File.MaxSizeMB,
		MaxBackups: cfg.Log.File.MaxBackups,
	})
	if err != nil {
		return errors.Wrap(err, "blsct: configure logging")
	}

	switch cfg.Library {
	case config.LibraryNative:
		lib, err := nativeLibrary()
		if err != nil {
			return err
		}
		Use(lib)
	case config.LibrarySoft:
		Use(softlib.New())
	}
	return SetChain(cfg.Chain)
}
