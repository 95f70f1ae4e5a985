package blsct

import (
	"encoding/hex"
	"strings"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// validHex checks the shape the library expects before it sees the input.
func validHex(op, s string) error {
	if len(s)%2 != 0 {
		return encodingFailure(op, "hex string has odd length")
	}
	if _, err := hex.DecodeString(s); err != nil {
		return encodingFailure(op, "hex string has a character outside [0-9a-fA-F]")
	}
	return nil
}

// Deserialize decodes a hex string into a new object of kind K.
func Deserialize[K Kind](lib ffi.Library, s string) (*Handle[K], error) {
	k := kindOf[K]()
	if err := validHex(k.Name(), s); err != nil {
		return nil, err
	}
	cs, err := CString(lib, k.Name(), strings.ToLower(s))
	if err != nil {
		return nil, err
	}
	defer lib.Free(cs)

	h, err := FromEnvelope[K](lib, k.Deserialize(lib, cs))
	if err != nil {
		return nil, err
	}
	if k.Size() == 0 && h.size != len(s)/2 {
		size := h.size
		h.Free()
		Violate(k.Name(), "decoded %d bytes from %d hex digits", size, len(s))
	}
	return h, nil
}
