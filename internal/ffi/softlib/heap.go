// Package softlib is an in-process implementation of the libblsct call
// surface.
//
// It follows the native memory protocol to the letter: every object,
// envelope, string and vector is a separate allocation on a guarded heap,
// views into a transaction are borrowed from it, and releasing memory twice
// or touching memory after release panics. The heap counts allocations and
// releases, which makes the library usable as an allocation-counting stub
// in tests.
package softlib

import (
	"fmt"
	"sync"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/log"
)

const heapBase ffi.Ptr = 0x10000

type block struct {
	data []byte
	obj  any
	// owner is set on blocks whose lifetime is bound to another block.
	owner ffi.Ptr
	kids  []ffi.Ptr
	// counted blocks were handed out as owned memory at some point.
	counted bool
}

// Stats reports owned allocations made and released so far.
type Stats struct {
	Allocs int
	Frees  int
	Live   int
}

// Library is the in-process libblsct.
type Library struct {
	mu         sync.Mutex
	heap       map[ffi.Ptr]*block
	next       ffi.Ptr
	stats      Stats
	failAllocs int
	chain      ffi.Chain
	initCalls  int
}

var _ ffi.Library = (*Library)(nil)

// New returns an empty library configured for mainnet.
func New() *Library {
	return &Library{
		heap:  make(map[ffi.Ptr]*block),
		next:  heapBase,
		chain: ffi.Mainnet,
	}
}

// Stats returns a snapshot of the allocation counters.
func (l *Library) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// InitCalls reports how many times Init ran.
func (l *Library) InitCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.initCalls
}

// FailAllocations makes the next n allocations return null.
func (l *Library) FailAllocations(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failAllocs = n
}

// Live reports whether p is an allocation that has not been released.
func (l *Library) Live(p ffi.Ptr) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.heap[p]
	return ok
}

func (l *Library) Init() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.initCalls++
}

// alloc places an owned block on the heap. It returns null when an
// injected failure is pending.
func (l *Library) alloc(data []byte, obj any) ffi.Ptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failAllocs > 0 {
		l.failAllocs--
		log.Debugw("softlib: injected allocation failure", "size", len(data))
		return 0
	}
	p := l.place(&block{data: data, obj: obj, counted: true})
	l.stats.Allocs++
	l.stats.Live++
	return p
}

// borrow places a block owned by owner. It is released together with
// owner and never counted.
func (l *Library) borrow(owner ffi.Ptr, data []byte, obj any) ffi.Ptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	ob := l.heap[owner]
	if ob == nil {
		panic(fmt.Sprintf("softlib: borrow from released pointer %#x", uintptr(owner)))
	}
	p := l.place(&block{data: data, obj: obj, owner: owner})
	ob.kids = append(ob.kids, p)
	return p
}

// adopt moves ownership of an owned block to owner.
func (l *Library) adopt(owner, p ffi.Ptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ob, b := l.heap[owner], l.heap[p]
	if ob == nil || b == nil {
		panic(fmt.Sprintf("softlib: adopt of released pointer %#x", uintptr(p)))
	}
	if b.owner != 0 {
		panic(fmt.Sprintf("softlib: pointer %#x already has an owner", uintptr(p)))
	}
	b.owner = owner
	ob.kids = append(ob.kids, p)
}

func (l *Library) place(b *block) ffi.Ptr {
	p := l.next
	l.next += ffi.Ptr((len(b.data)+31)&^15) + 16
	l.heap[p] = b
	return p
}

func (l *Library) Free(p ffi.Ptr) {
	if p.IsNull() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b := l.heap[p]
	if b == nil {
		log.Errorw("softlib: double free", "ptr", fmt.Sprintf("%#x", uintptr(p)))
		panic(fmt.Sprintf("softlib: free of released or unknown pointer %#x", uintptr(p)))
	}
	if b.owner != 0 {
		panic(fmt.Sprintf("softlib: free of borrowed pointer %#x", uintptr(p)))
	}
	l.release(p)
}

func (l *Library) release(p ffi.Ptr) {
	b := l.heap[p]
	for _, kid := range b.kids {
		if _, ok := l.heap[kid]; ok {
			l.release(kid)
		}
	}
	delete(l.heap, p)
	if b.counted {
		l.stats.Frees++
		l.stats.Live--
	}
}

// get returns the live block at p or panics.
func (l *Library) get(p ffi.Ptr) *block {
	if p.IsNull() {
		panic("softlib: null pointer dereference")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b := l.heap[p]
	if b == nil {
		panic(fmt.Sprintf("softlib: use of released or unknown pointer %#x", uintptr(p)))
	}
	return b
}

// read returns the first n bytes of the block at p.
func (l *Library) read(p ffi.Ptr, n int) []byte {
	b := l.get(p)
	if len(b.data) < n {
		panic(fmt.Sprintf("softlib: read of %d bytes from a %d byte object", n, len(b.data)))
	}
	return b.data[:n]
}

func (l *Library) Alloc(b []byte) ffi.Ptr {
	return l.alloc(append([]byte(nil), b...), nil)
}

func (l *Library) Bytes(p ffi.Ptr, n int) []byte {
	return append([]byte(nil), l.read(p, n)...)
}

func (l *Library) CStringBytes(p ffi.Ptr) []byte {
	data := l.get(p).data
	for i, c := range data {
		if c == 0 {
			return append([]byte(nil), data[:i]...)
		}
	}
	panic(fmt.Sprintf("softlib: unterminated string at %#x", uintptr(p)))
}

// cstr allocates a NUL-terminated copy of s.
func (l *Library) cstr(s []byte) ffi.Ptr {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return l.alloc(buf, nil)
}

// cstrArg reads a NUL-terminated argument.
func (l *Library) cstrArg(p ffi.Ptr) []byte {
	return l.CStringBytes(p)
}

func (l *Library) GetBlsctChain() ffi.Chain {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chain
}

func (l *Library) SetBlsctChain(c ffi.Chain) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.chain = c
}
