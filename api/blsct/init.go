package blsct

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/log"
)

// Initializer is implemented by libraries whose init entry point can
// report failure.
type Initializer interface {
	TryInit() error
}

var (
	libMu       sync.Mutex
	active      ffi.Library
	initialized bool
)

// Use selects the library every later call goes through. The init gate is
// reset, so the next call initializes lib.
func Use(lib ffi.Library) {
	libMu.Lock()
	defer libMu.Unlock()
	active = lib
	initialized = false
}

// Init runs the library's init entry point once. A successful run is
// cached; a failed one is retried by the next call.
func Init() error {
	_, err := Lib()
	return err
}

// Lib returns the initialized active library.
func Lib() (ffi.Library, error) {
	libMu.Lock()
	defer libMu.Unlock()
	if active == nil {
		active = defaultLibrary()
	}
	if initialized {
		return active, nil
	}
	if err := runInit(active); err != nil {
		log.Warnw("library initialization failed", "error", err)
		return nil, err
	}
	initialized = true
	log.Debugw("library initialized", "impl", fmt.Sprintf("%T", active))
	return active, nil
}

func runInit(lib ffi.Library) (err error) {
	if in, ok := lib.(Initializer); ok {
		return errors.Wrap(in.TryInit(), "blsct: init")
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("blsct: init panicked: %v", r)
		}
	}()
	lib.Init()
	return nil
}

// Static calls fn with the initialized library and takes ownership of the
// statically sized object it returns.
func Static[K Kind](fn func(lib ffi.Library) ffi.Ptr) (*Handle[K], error) {
	lib, err := Lib()
	if err != nil {
		return nil, err
	}
	return FromRawStatic[K](lib, fn(lib)), nil
}

// Envelope calls fn with the initialized library and takes ownership of
// the value inside the envelope it returns.
func Envelope[K Kind](fn func(lib ffi.Library) ffi.Ptr) (*Handle[K], error) {
	lib, err := Lib()
	if err != nil {
		return nil, err
	}
	return FromEnvelope[K](lib, fn(lib))
}
