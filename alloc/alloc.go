// Package alloc defines the allocator capability the sequence container core
// depends on, plus the default heap-backed implementation.
//
// The core never calls make or append for element storage directly; every byte
// of storage it owns comes from an Allocator. This keeps allocation policy
// pluggable (arenas, pools, fail-injection for tests) without the core caring.
//
// # Contract
//
// Implementations must behave like a standard allocator:
//
//   - ZeroAlloc returns a zero-filled block of exactly the requested size.
//   - Reallocate preserves existing bytes up to the smaller of the old and new
//     sizes, and on failure returns an error while leaving the original block
//     valid and untouched.
//   - Release frees a block obtained from either of the above. Releasing nil
//     is a no-op.
//   - Failure is reported by error return, never by panic.
//
// # Basic Usage
//
// Most users never touch this package directly; the container defaults to the
// heap allocator:
//
//	buf, err := seq.New(8)                          // uses alloc.Heap()
//	buf, err := seq.New(8, seq.WithAllocator(a))    // custom allocator
package alloc

import "github.com/BareRose/dynarr/errs"

// Allocator is the capability the container core requires from its environment.
//
// All sizes are byte counts. Blocks are plain byte slices; the core treats the
// slice it receives as exclusively owned until it passes it to Release.
type Allocator interface {
	// ZeroAlloc allocates a zero-filled block of byteSize bytes.
	ZeroAlloc(byteSize int) ([]byte, error)

	// Reallocate resizes block to newByteSize bytes, preserving existing bytes
	// up to min(len(block), newByteSize). The returned block may alias the
	// original or be a fresh allocation. On error the original block remains
	// valid and unmodified.
	Reallocate(block []byte, newByteSize int) ([]byte, error)

	// Release frees a block obtained from ZeroAlloc or Reallocate.
	Release(block []byte)
}

// heapAllocator is the default Allocator backed by the Go runtime heap.
//
// It can never fail: the runtime aborts the process on true memory exhaustion,
// so the error results are always nil. Release only drops the reference and
// lets the garbage collector reclaim the block.
type heapAllocator struct{}

var heap = heapAllocator{}

// Heap returns the default heap-backed allocator.
//
// The returned value is stateless and safe for concurrent use.
func Heap() Allocator {
	return heap
}

func (heapAllocator) ZeroAlloc(byteSize int) ([]byte, error) {
	return make([]byte, byteSize), nil
}

func (heapAllocator) Reallocate(block []byte, newByteSize int) ([]byte, error) {
	if newByteSize <= cap(block) {
		return block[:newByteSize], nil
	}

	grown := make([]byte, newByteSize)
	copy(grown, block)

	return grown, nil
}

func (heapAllocator) Release([]byte) {}

// Flaky wraps an inner Allocator with a budget of successful allocation calls.
//
// Each ZeroAlloc or Reallocate consumes one unit of budget; once the budget is
// spent every further allocation fails with errs.ErrAllocExhausted while the
// wrapped allocator is left untouched. Release always passes through.
//
// Flaky exists to exercise the exhaustion paths of the container: it lets a
// test make exactly the Nth growth fail and then verify the container state is
// byte-identical to the state before the failing call.
type Flaky struct {
	inner  Allocator
	budget int
	calls  int
}

// NewFlaky returns a Flaky allocator that forwards to inner for the first
// budget allocation calls and fails every call after that.
//
// A budget of 0 fails the very first allocation, which makes even container
// creation fail.
func NewFlaky(inner Allocator, budget int) *Flaky {
	return &Flaky{inner: inner, budget: budget}
}

// Calls returns the number of allocation calls seen so far, including failed ones.
func (f *Flaky) Calls() int {
	return f.calls
}

func (f *Flaky) ZeroAlloc(byteSize int) ([]byte, error) {
	f.calls++
	if f.calls > f.budget {
		return nil, errs.ErrAllocExhausted
	}

	return f.inner.ZeroAlloc(byteSize)
}

func (f *Flaky) Reallocate(block []byte, newByteSize int) ([]byte, error) {
	f.calls++
	if f.calls > f.budget {
		return nil, errs.ErrAllocExhausted
	}

	return f.inner.Reallocate(block, newByteSize)
}

func (f *Flaky) Release(block []byte) {
	f.inner.Release(block)
}
