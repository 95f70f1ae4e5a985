//go:build !(cgo && blsct)

package blsct

import (
	"github.com/pkg/errors"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/ffi/softlib"
)

func defaultLibrary() ffi.Library { return softlib.New() }

func nativeLibrary() (ffi.Library, error) {
	return nil, errors.New("blsct: built without the native library; rebuild with -tags blsct and cgo enabled")
}
