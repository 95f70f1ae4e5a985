package blsct

import (
	"strings"
	"unicode/utf8"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// CString copies s into a NUL-terminated native buffer. The caller frees
// it with lib.Free, normally in a defer.
func CString(lib ffi.Library, op, s string) (ffi.Ptr, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return 0, encodingFailure(op, "string contains a NUL byte")
	}
	p := lib.Alloc(append([]byte(s), 0))
	if p.IsNull() {
		return 0, allocationFailure(op)
	}
	return p, nil
}

// GoString takes ownership of a native C string, releases it and returns
// its contents.
func GoString(lib ffi.Library, op string, p ffi.Ptr) (string, error) {
	if p.IsNull() {
		return "", allocationFailure(op)
	}
	defer lib.Free(p)
	return borrowedString(lib, op, p)
}

// BorrowedString reads a C string the library keeps ownership of.
func BorrowedString(lib ffi.Library, op string, p ffi.Ptr) (string, error) {
	if p.IsNull() {
		Violate(op, "null string")
	}
	return borrowedString(lib, op, p)
}

func borrowedString(lib ffi.Library, op string, p ffi.Ptr) (string, error) {
	b := lib.CStringBytes(p)
	if !utf8.Valid(b) {
		return "", encodingFailure(op, "string is not valid UTF-8")
	}
	return string(b), nil
}
