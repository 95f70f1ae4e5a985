//go:build cgo && blsct

package cgobinding

import (
	"unsafe"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

/*
#cgo                 CXXFLAGS: -std=c++20
#cgo                 CFLAGS:   -I${SRCDIR}
#cgo                 CFLAGS:   -I/usr/local/opt/blsct/include
#cgo                 LDFLAGS:  -L/usr/local/opt/blsct/lib
#cgo                 LDFLAGS:  -lblsct -lunivalue -lmcl -lbls384_256
#cgo linux,!android  LDFLAGS:  -lstdc++ -lm
#cgo darwin          LDFLAGS:  -lc++
#cgo darwin          CFLAGS:   -I/opt/homebrew/opt/blsct/include
#cgo darwin          LDFLAGS:  -L/opt/homebrew/opt/blsct/lib

#include <stdlib.h>
#include <string.h>
#include "blsct_shim.h"
*/
import "C"

// Library calls into the linked libblsct. It carries no state; the C
// library keeps its own.
type Library struct{}

var _ ffi.Library = Library{}

// New returns the native library. Call Init (directly or through the
// blsct package) before anything else.
func New() ffi.Library { return Library{} }

func cptr(p ffi.Ptr) unsafe.Pointer { return unsafe.Pointer(uintptr(p)) }

func gptr[T any](p *T) ffi.Ptr { return ffi.Ptr(uintptr(unsafe.Pointer(p))) }

func vptr(p unsafe.Pointer) ffi.Ptr { return ffi.Ptr(uintptr(p)) }

func cstr(p ffi.Ptr) *C.char { return (*C.char)(cptr(p)) }

func cbool(b C.int) bool { return b != 0 }

func (Library) Init() { C.init() }

func (Library) Free(p ffi.Ptr) { C.free_obj(cptr(p)) }

func (Library) Alloc(b []byte) ffi.Ptr {
	n := len(b)
	if n == 0 {
		n = 1
	}
	p := C.malloc(C.size_t(n))
	if p == nil {
		return 0
	}
	if len(b) > 0 {
		C.memcpy(p, unsafe.Pointer(&b[0]), C.size_t(len(b)))
	}
	return vptr(p)
}

func (Library) Bytes(p ffi.Ptr, n int) []byte {
	return C.GoBytes(cptr(p), C.int(n))
}

func (Library) CStringBytes(p ffi.Ptr) []byte {
	return C.GoBytes(cptr(p), C.int(C.strlen(cstr(p))))
}

func (Library) RetVal(p ffi.Ptr) ffi.RetVal {
	rv := (*C.BlsctRetVal)(cptr(p))
	return ffi.RetVal{Status: ffi.Status(rv.result), Value: vptr(rv.value), Size: int(rv.value_size)}
}

func (Library) BoolRetVal(p ffi.Ptr) ffi.BoolRetVal {
	rv := (*C.BlsctBoolRetVal)(cptr(p))
	return ffi.BoolRetVal{Status: ffi.Status(rv.result), Value: bool(rv.value)}
}

func (Library) AmountsRetVal(p ffi.Ptr) ffi.AmountsRetVal {
	rv := (*C.BlsctAmountsRetVal)(cptr(p))
	return ffi.AmountsRetVal{Status: ffi.Status(rv.result), Value: vptr(rv.value)}
}

func (Library) CTxRetVal(p ffi.Ptr) ffi.CTxRetVal {
	rv := (*C.BlsctCTxRetVal)(cptr(p))
	return ffi.CTxRetVal{
		Status:            ffi.Status(rv.result),
		Value:             vptr(rv.ctx),
		Size:              int(rv.ctx_size),
		InAmountErrIndex:  int(rv.in_amount_err_index),
		OutAmountErrIndex: int(rv.out_amount_err_index),
	}
}

func (Library) FreeAmountsRetVal(p ffi.Ptr) { C.free_amounts_ret_val(cptr(p)) }

func (Library) GetBlsctChain() ffi.Chain  { return ffi.Chain(C.get_blsct_chain()) }
func (Library) SetBlsctChain(c ffi.Chain) { C.set_blsct_chain(C.uint8_t(c)) }
