package blsct

import (
	"bytes"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// Value is embedded by every typed value. It owns one Handle and supplies
// the hex codec, text marshaling and the release contract.
type Value[K Kind] struct {
	h *Handle[K]
}

// Wrap makes h the handle of a new Value.
func Wrap[K Kind](h *Handle[K]) Value[K] {
	return Value[K]{h: h}
}

// Handle returns the underlying handle.
func (v Value[K]) Handle() *Handle[K] { return v.h }

func (v Value[K]) Lib() ffi.Library { return v.h.Lib() }
func (v Value[K]) Ptr() ffi.Ptr     { return v.h.Ptr() }
func (v Value[K]) Size() int        { return v.h.Size() }
func (v Value[K]) Bytes() []byte    { return v.h.Bytes() }
func (v Value[K]) Free()            { v.h.Free() }
func (v Value[K]) Released() bool   { return v.h.Released() }

func (v Value[K]) Hex() (string, error) { return v.h.Hex() }

// String returns the hex form, or a placeholder once released.
func (v Value[K]) String() string {
	if v.h.Released() {
		return "<released " + kindOf[K]().Name() + ">"
	}
	s, err := v.h.Hex()
	if err != nil {
		return "<" + kindOf[K]().Name() + ": " + err.Error() + ">"
	}
	return s
}

// BytesEqual compares the owned memory of two values.
func (v Value[K]) BytesEqual(o Value[K]) bool {
	if v.h == nil || o.h == nil {
		return false
	}
	return bytes.Equal(v.h.Bytes(), o.h.Bytes())
}

func (v Value[K]) MarshalText() ([]byte, error) {
	s, err := v.h.Hex()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText replaces the value with one decoded from hex, releasing the
// previous handle.
func (v *Value[K]) UnmarshalText(text []byte) error {
	lib, err := Lib()
	if err != nil {
		return err
	}
	h, err := Deserialize[K](lib, string(text))
	if err != nil {
		return err
	}
	v.h.Free()
	v.h = h
	return nil
}

// CloneHandle deserializes a fresh handle from v's hex form.
func (v Value[K]) CloneHandle() (*Handle[K], error) { return v.h.Clone() }
