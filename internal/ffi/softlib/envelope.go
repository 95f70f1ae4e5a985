package softlib

import (
	"encoding/hex"
	"fmt"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

func (l *Library) RetVal(p ffi.Ptr) ffi.RetVal {
	rv, ok := l.get(p).obj.(ffi.RetVal)
	if !ok {
		panic(fmt.Sprintf("softlib: %#x is not a BlsctRetVal", uintptr(p)))
	}
	return rv
}

func (l *Library) BoolRetVal(p ffi.Ptr) ffi.BoolRetVal {
	rv, ok := l.get(p).obj.(ffi.BoolRetVal)
	if !ok {
		panic(fmt.Sprintf("softlib: %#x is not a BlsctBoolRetVal", uintptr(p)))
	}
	return rv
}

func (l *Library) AmountsRetVal(p ffi.Ptr) ffi.AmountsRetVal {
	rv, ok := l.get(p).obj.(ffi.AmountsRetVal)
	if !ok {
		panic(fmt.Sprintf("softlib: %#x is not a BlsctAmountsRetVal", uintptr(p)))
	}
	return rv
}

func (l *Library) CTxRetVal(p ffi.Ptr) ffi.CTxRetVal {
	rv, ok := l.get(p).obj.(ffi.CTxRetVal)
	if !ok {
		panic(fmt.Sprintf("softlib: %#x is not a BlsctCTxRetVal", uintptr(p)))
	}
	return rv
}

// succ moves data into a fresh allocation and wraps it in a success
// envelope. Running out of memory for the payload yields a failure
// envelope; running out of memory for the envelope yields null.
func (l *Library) succ(data []byte) ffi.Ptr {
	v := l.alloc(data, nil)
	if v.IsNull() {
		return l.fail(ffi.StatusMemAllocFailed)
	}
	env := l.alloc(nil, ffi.RetVal{Status: ffi.StatusSuccess, Value: v, Size: len(data)})
	if env.IsNull() {
		l.Free(v)
	}
	return env
}

func (l *Library) fail(status ffi.Status) ffi.Ptr {
	return l.alloc(nil, ffi.RetVal{Status: status})
}

// raw moves data into a fresh allocation and returns it without an
// envelope.
func (l *Library) raw(data []byte) ffi.Ptr {
	return l.alloc(data, nil)
}

func (l *Library) hexCStr(data []byte) ffi.Ptr {
	return l.cstr([]byte(hex.EncodeToString(data)))
}

// decodeHexArg decodes a hex C string argument.
func (l *Library) decodeHexArg(p ffi.Ptr) ([]byte, bool) {
	b, err := hex.DecodeString(string(l.cstrArg(p)))
	return b, err == nil
}

// deserializeFixed decodes a hex C string of a fixed-size type and checks
// it with valid before placing it on the heap.
func (l *Library) deserializeFixed(p ffi.Ptr, size int, valid func([]byte) bool) ffi.Ptr {
	b, ok := l.decodeHexArg(p)
	if !ok {
		return l.fail(ffi.StatusUnknownEncoding)
	}
	if len(b) != size {
		return l.fail(ffi.StatusBadSize)
	}
	if valid != nil && !valid(b) {
		return l.fail(ffi.StatusFailure)
	}
	return l.succ(b)
}
