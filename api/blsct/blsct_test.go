package blsct

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/ffi/softlib"
)

type keyIdKind struct{}

func (keyIdKind) Name() string { return "key_id" }
func (keyIdKind) Size() int    { return ffi.KeyIdSize }
func (keyIdKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeKeyId(p)
}
func (keyIdKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeKeyId(hex)
}

const keyIdHex = "000102030405060708090a0b0c0d0e0f10111213"

func useSoft(t *testing.T) *softlib.Library {
	t.Helper()
	lib := softlib.New()
	Use(lib)
	return lib
}

func TestSingleOwnership(t *testing.T) {
	lib := useSoft(t)
	before := lib.Stats()

	const n = 25
	handles := make([]*Handle[keyIdKind], 0, n)
	for i := 0; i < n; i++ {
		h, err := Deserialize[keyIdKind](lib, keyIdHex)
		require.NoError(t, err)
		handles = append(handles, h)
	}
	assert.Equal(t, before.Live+n, lib.Stats().Live)

	for _, h := range handles {
		h.Free()
		h.Free()
		assert.True(t, h.Released())
	}
	after := lib.Stats()
	assert.Equal(t, before.Live, after.Live)
	assert.Equal(t, after.Allocs, after.Frees)
}

func TestConcurrentFreeReleasesOnce(t *testing.T) {
	lib := useSoft(t)
	h, err := Deserialize[keyIdKind](lib, keyIdHex)
	require.NoError(t, err)
	live := lib.Stats().Live

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			h.Free()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, live-1, lib.Stats().Live)
}

func TestHandleContract(t *testing.T) {
	lib := useSoft(t)

	t.Run("null_static_pointer", func(t *testing.T) {
		defer func() {
			cv, ok := recover().(*ContractViolation)
			require.True(t, ok)
			assert.Equal(t, "key_id", cv.Op)
		}()
		FromRawStatic[keyIdKind](lib, 0)
	})

	t.Run("use_after_free", func(t *testing.T) {
		h, err := Deserialize[keyIdKind](lib, keyIdHex)
		require.NoError(t, err)
		h.Free()
		assert.Panics(t, func() { h.Ptr() })
	})

	t.Run("custom_dealloc", func(t *testing.T) {
		var calls int
		p := lib.Alloc([]byte{1, 2})
		h := FromRawSized[keyIdKind](lib, p, 2, func(l ffi.Library, p ffi.Ptr) {
			calls++
			l.Free(p)
		})
		h.Free()
		h.Free()
		assert.Equal(t, 1, calls)
		assert.False(t, lib.Live(p))
	})
}

func TestEnvelopeFailures(t *testing.T) {
	lib := useSoft(t)

	t.Run("null_envelope", func(t *testing.T) {
		lib.FailAllocations(2)
		_, err := FromEnvelope[keyIdKind](lib, lib.GenRandomScalar())
		var af *AllocationFailure
		require.ErrorAs(t, err, &af)
		assert.ErrorIs(t, err, ErrAllocation)
	})

	t.Run("bad_size", func(t *testing.T) {
		_, err := Deserialize[keyIdKind](lib, "00ff")
		var df *DomainFailure
		require.ErrorAs(t, err, &df)
		assert.Equal(t, ffi.StatusBadSize, df.Status)
		assert.False(t, df.HasIndex)
		assert.ErrorIs(t, err, ErrDomain)
	})

	t.Run("envelope_is_released_on_failure", func(t *testing.T) {
		live := lib.Stats().Live
		_, err := Deserialize[keyIdKind](lib, "00")
		require.Error(t, err)
		assert.Equal(t, live, lib.Stats().Live)
	})
}

func TestEncodingFailures(t *testing.T) {
	lib := useSoft(t)

	tests := []struct {
		name string
		hex  string
	}{
		{"odd_length", "abc"},
		{"bad_alphabet", strings.Repeat("zz", ffi.KeyIdSize)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize[keyIdKind](lib, tt.hex)
			var ef *EncodingFailure
			require.ErrorAs(t, err, &ef)
			assert.ErrorIs(t, err, ErrEncoding)
		})
	}

	t.Run("embedded_nul", func(t *testing.T) {
		_, err := CString(lib, "memo", "na\x00vio")
		assert.ErrorIs(t, err, ErrEncoding)
	})

	t.Run("invalid_utf8_from_library", func(t *testing.T) {
		_, err := GoString(lib, "memo", lib.Alloc([]byte{0xff, 0xfe, 0}))
		assert.ErrorIs(t, err, ErrEncoding)
	})

	t.Run("upper_case_hex_is_accepted", func(t *testing.T) {
		h, err := Deserialize[keyIdKind](lib, strings.ToUpper(keyIdHex))
		require.NoError(t, err)
		defer h.Free()
		s, err := h.Hex()
		require.NoError(t, err)
		assert.Equal(t, keyIdHex, s)
	})
}

func TestValueText(t *testing.T) {
	lib := useSoft(t)
	h, err := Deserialize[keyIdKind](lib, keyIdHex)
	require.NoError(t, err)
	v := Wrap(h)
	defer v.Free()

	text, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, keyIdHex, string(text))
	assert.Equal(t, keyIdHex, v.String())

	var w Value[keyIdKind]
	require.NoError(t, w.UnmarshalText(text))
	defer w.Free()
	assert.True(t, v.BytesEqual(w))

	c, err := v.CloneHandle()
	require.NoError(t, err)
	defer c.Free()
	assert.NotEqual(t, v.Ptr(), c.Ptr())
	assert.True(t, v.BytesEqual(Wrap(c)))
}

// flakyLib fails its first initialization.
type flakyLib struct {
	*softlib.Library
	calls atomic.Int32
}

func (f *flakyLib) TryInit() error {
	if f.calls.Add(1) == 1 {
		return errors.New("not ready")
	}
	f.Init()
	return nil
}

func TestInitGate(t *testing.T) {
	lib := &flakyLib{Library: softlib.New()}
	Use(lib)

	var failures atomic.Int32
	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			if err := Init(); err != nil {
				failures.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), failures.Load())
	assert.Equal(t, int32(2), lib.calls.Load())
	assert.Equal(t, 1, lib.InitCalls())

	require.NoError(t, Init())
	assert.Equal(t, int32(2), lib.calls.Load())
}

func TestChain(t *testing.T) {
	useSoft(t)
	require.NoError(t, SetChain(Regtest))
	c, err := GetChain()
	require.NoError(t, err)
	assert.Equal(t, Regtest, c)
	assert.Equal(t, "regtest", c.String())
}
