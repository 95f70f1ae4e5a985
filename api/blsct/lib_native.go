//go:build cgo && blsct

package blsct

import (
	"github.com/nav-io/libblsct-bindings/internal/cgobinding"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

func defaultLibrary() ffi.Library { return cgobinding.New() }

func nativeLibrary() (ffi.Library, error) { return cgobinding.New(), nil }
