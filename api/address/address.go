package address

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// Encoding selects the checksum variant of an address string.
type Encoding = ffi.AddressEncoding

const (
	Bech32  = ffi.Bech32
	Bech32M = ffi.Bech32M
)

// Encode renders dpk as an address of the active chain.
func Encode(dpk *curve.DoublePublicKey, enc Encoding) (string, error) {
	lib := dpk.Lib()
	rv, err := blsct.TakeEnvelope(lib, "encode_address", lib.EncodeAddress(dpk.Ptr(), enc))
	if err != nil {
		return "", err
	}
	return blsct.GoString(lib, "encode_address", rv.Value)
}

// Decode parses an address of the active chain in either encoding.
func Decode(addr string) (*curve.DoublePublicKey, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	cs, err := blsct.CString(lib, "decode_address", addr)
	if err != nil {
		return nil, err
	}
	defer lib.Free(cs)
	h, err := blsct.FromEnvelope[curve.DoublePublicKeyKind](lib, lib.DecodeAddress(cs))
	if err != nil {
		return nil, err
	}
	return curve.DoublePublicKeyFromHandle(h), nil
}
