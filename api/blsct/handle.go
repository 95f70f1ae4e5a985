package blsct

import (
	"sync"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/metrics"
)

// Kind describes one native type: its name, its static size (0 when the
// size travels with each value) and its hex codec entry points.
type Kind interface {
	Name() string
	Size() int
	Serialize(lib ffi.Library, p ffi.Ptr, size int) ffi.Ptr
	Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr
}

// Dealloc releases a native object that is not freed with the generic
// free, such as a std::vector.
type Dealloc func(lib ffi.Library, p ffi.Ptr)

// Handle owns exactly one native allocation of kind K.
//
// A Handle must be released with Free. Free is idempotent and safe to call
// from several goroutines; every other method panics with a
// *ContractViolation once the handle has been released.
type Handle[K Kind] struct {
	mu       sync.Mutex
	lib      ffi.Library
	ptr      ffi.Ptr
	size     int
	dealloc  Dealloc
	released bool
}

func kindOf[K Kind]() K {
	var k K
	return k
}

func newHandle[K Kind](lib ffi.Library, p ffi.Ptr, size int, dealloc Dealloc) *Handle[K] {
	metrics.Acquired(kindOf[K]().Name())
	return &Handle[K]{lib: lib, ptr: p, size: size, dealloc: dealloc}
}

// FromEnvelope takes ownership of the value inside a result envelope.
func FromEnvelope[K Kind](lib ffi.Library, env ffi.Ptr) (*Handle[K], error) {
	k := kindOf[K]()
	rv, err := TakeEnvelope(lib, k.Name(), env)
	if err != nil {
		return nil, err
	}
	if k.Size() != 0 && rv.Size != k.Size() {
		lib.Free(rv.Value)
		Violate(k.Name(), "envelope holds %d bytes, want %d", rv.Size, k.Size())
	}
	return newHandle[K](lib, rv.Value, rv.Size, nil), nil
}

// FromRawStatic takes ownership of a pointer to a statically sized object.
func FromRawStatic[K Kind](lib ffi.Library, p ffi.Ptr) *Handle[K] {
	k := kindOf[K]()
	if k.Size() == 0 {
		Violate(k.Name(), "kind has no static size")
	}
	if p.IsNull() {
		Violate(k.Name(), "null pointer where an object was promised")
	}
	return newHandle[K](lib, p, k.Size(), nil)
}

// FromRawSized takes ownership of a pointer of known size. A nil dealloc
// selects the generic free.
func FromRawSized[K Kind](lib ffi.Library, p ffi.Ptr, size int, dealloc Dealloc) *Handle[K] {
	if p.IsNull() {
		Violate(kindOf[K]().Name(), "null pointer where an object was promised")
	}
	return newHandle[K](lib, p, size, dealloc)
}

func (h *Handle[K]) live() {
	if h == nil {
		Violate(kindOf[K]().Name(), "use of a nil handle")
	}
	h.mu.Lock()
	released := h.released
	h.mu.Unlock()
	if released {
		Violate(kindOf[K]().Name(), "use of a released handle")
	}
}

// Lib returns the library the object was allocated by.
func (h *Handle[K]) Lib() ffi.Library {
	h.live()
	return h.lib
}

// Ptr returns the native address. It stays valid until Free.
func (h *Handle[K]) Ptr() ffi.Ptr {
	h.live()
	return h.ptr
}

func (h *Handle[K]) Size() int {
	h.live()
	return h.size
}

// Bytes copies the object out of native memory.
func (h *Handle[K]) Bytes() []byte {
	h.live()
	return h.lib.Bytes(h.ptr, h.size)
}

// Released reports whether Free has been called.
func (h *Handle[K]) Released() bool {
	if h == nil {
		return true
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Free releases the native object. Later calls do nothing.
func (h *Handle[K]) Free() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return
	}
	h.released = true
	if h.dealloc != nil {
		h.dealloc(h.lib, h.ptr)
	} else {
		h.lib.Free(h.ptr)
	}
	metrics.Released(kindOf[K]().Name())
}

// Hex serializes the object through the library's codec.
func (h *Handle[K]) Hex() (string, error) {
	h.live()
	k := kindOf[K]()
	return GoString(h.lib, k.Name(), k.Serialize(h.lib, h.ptr, h.size))
}

// Clone deserializes a fresh copy of the object from its hex form.
func (h *Handle[K]) Clone() (*Handle[K], error) {
	s, err := h.Hex()
	if err != nil {
		return nil, err
	}
	return Deserialize[K](h.lib, s)
}

// NoCodec is embedded by kinds that have no hex form, such as native
// vectors. Serializing one is a contract violation.
type NoCodec struct{}

func (NoCodec) Serialize(ffi.Library, ffi.Ptr, int) ffi.Ptr {
	Violate("serialize", "kind has no hex form")
	return 0
}

func (NoCodec) Deserialize(ffi.Library, ffi.Ptr) ffi.Ptr {
	Violate("deserialize", "kind has no hex form")
	return 0
}
