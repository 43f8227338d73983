// Package dynarr provides a generic, resizable sequence container with a
// multi-purpose interface: the same instance serves as a dynamic array, a
// stack, a queue, a binary-searchable list, or all of the above at once,
// depending only on which operations the caller uses.
//
// # Core Features
//
//   - Double-ended growth: Push/Pop at the tail, Dequeue at the head, all O(1)
//     (Push amortized)
//   - Head removal by offset, with head-room reclaimed by compaction before
//     any reallocation happens, so queue workloads rarely reallocate
//   - Random insertion and removal with a choice of ordering policy:
//     order-preserving (Insert/Remove, O(n)) or fast order-breaking
//     (Shove/Ditch, O(1))
//   - Explicit size and capacity control independent of each other
//   - Comparator-driven search and sort: linear and binary find, a stable
//     insertion sort, and an unstable O(n log n) sort
//   - Pluggable allocator with strict failure atomicity: a failed allocation
//     leaves the container exactly as it was
//
// # Basic Usage
//
//	arr, _ := dynarr.New[int64]()
//	defer arr.Free()
//
//	arr.Push(3)
//	arr.Push(1)
//	arr.Push(2)
//
//	byValue := func(a, b int64) int { return cmp.Compare(a, b) }
//	arr.SortStandard(byValue)
//	idx := arr.FindBinary(byValue, 2)
//	fmt.Println(idx, *arr.At(idx)) // 1 2
//
// Queue and stack usage on one container:
//
//	jobs, _ := dynarr.New[Job](dynarr.WithCapacity(64))
//	jobs.Push(j1)          // enqueue
//	next := jobs.Dequeue() // FIFO head
//	top := jobs.Pop()      // LIFO tail
//
// # Element Types
//
// Elements are stored as raw fixed-width bytes, so element types must be
// pointer-free: integers, floats, bools, arrays and structs thereof. Types
// containing pointers, slices, maps, strings, channels, or interfaces must
// not be used, because their referents are invisible to the garbage collector
// once copied into container storage. Zero-size types are rejected at creation.
//
// # Package Structure
//
// This package is a typed façade over the seq package, which implements the
// container core on raw element bytes. Use seq directly when the element
// width is only known at runtime. The alloc package defines the pluggable
// allocator boundary.
//
// Containers are not safe for concurrent use without external locking.
package dynarr

import (
	"unsafe"

	"github.com/BareRose/dynarr/alloc"
	"github.com/BareRose/dynarr/seq"
)

// Option represents a functional option for configuring a container at creation.
type Option = seq.Option

// WithAllocator sets the allocator backing the container's storage.
// The default is alloc.Heap().
func WithAllocator(a alloc.Allocator) Option {
	return seq.WithAllocator(a)
}

// WithCapacity pre-reserves storage for n elements at creation.
// The default is one slot.
func WithCapacity(n int) Option {
	return seq.WithCapacity(n)
}

// CompareFunc is a caller-supplied three-way ordering: positive when a orders
// after b, zero when they are equal, negative when a orders before b.
type CompareFunc[T any] func(a, b T) int

// Arr is a resizable sequence of T backed by a single contiguous allocation.
//
// Create instances with New; the zero value is not usable. An Arr is
// exclusively owned by its creator and must be released with Free. It is not
// safe for concurrent use.
type Arr[T any] struct {
	buf *seq.Buffer
}

// New creates an empty container for elements of type T.
//
// T must be pointer-free and have nonzero size; see the package documentation.
//
// Returns:
//   - *Arr[T]: The new container, owned by the caller
//   - error: errs.ErrInvalidElemSize for zero-size T, an option validation
//     error, or an allocation failure wrapping errs.ErrAllocExhausted
func New[T any](opts ...Option) (*Arr[T], error) {
	var zero T

	buf, err := seq.New(int(unsafe.Sizeof(zero)), opts...)
	if err != nil {
		return nil, err
	}

	return &Arr[T]{buf: buf}, nil
}

// bytesOf views v's storage as raw bytes, without copying.
func bytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// deref views an element byte span as a *T, without copying.
func deref[T any](span []byte) *T {
	return (*T)(unsafe.Pointer(unsafe.SliceData(span)))
}

// adapt lowers a typed comparator to the byte-span comparator the core uses.
func adapt[T any](cmp CompareFunc[T]) seq.CompareFunc {
	return func(a, b []byte) int {
		return cmp(*deref[T](a), *deref[T](b))
	}
}

// Free releases the container's storage back to its allocator.
// The container must not be used afterward.
func (a *Arr[T]) Free() {
	a.buf.Free()
}

// Size returns the number of elements currently stored. O(1).
func (a *Arr[T]) Size() int {
	return a.buf.Size()
}

// Capacity returns the total number of element slots currently allocated.
func (a *Arr[T]) Capacity() int {
	return a.buf.Capacity()
}

// Valid reports whether index is a valid element index. O(1).
func (a *Arr[T]) Valid(index int) bool {
	return a.buf.Valid(index)
}

// Clear resets the container to size 0 without touching storage or capacity. O(1).
func (a *Arr[T]) Clear() {
	a.buf.Clear()
}

// Raw returns the underlying byte-level container. Mutating it mutates the
// Arr; the element width stays fixed either way.
func (a *Arr[T]) Raw() *seq.Buffer {
	return a.buf
}

// Sum64 returns the xxHash64 digest of the stored elements' raw bytes, a
// cheap change-detection fingerprint independent of capacity and offset.
func (a *Arr[T]) Sum64() uint64 {
	return a.buf.Sum64()
}

// Push appends value to the end of the container, growing if needed.
// Amortized O(1).
//
// Returns the index the element was placed at, or an allocation failure
// wrapping errs.ErrAllocExhausted with the container unchanged.
func (a *Arr[T]) Push(value T) (int, error) {
	return a.buf.Push(bytesOf(&value))
}

// Pop removes and returns the last element. The container must not be empty. O(1).
func (a *Arr[T]) Pop() T {
	return *deref[T](a.buf.Pop())
}

// Dequeue removes and returns the first element. The container must not be
// empty. O(1): only the head offset advances, no data moves.
func (a *Arr[T]) Dequeue() T {
	return *deref[T](a.buf.Dequeue())
}

// At returns a pointer to the element at index, writable in place. The index
// must be valid. The pointer is invalidated by any growing operation. O(1).
func (a *Arr[T]) At(index int) *T {
	return deref[T](a.buf.At(index))
}

// First returns a pointer to the first element. The container must not be
// empty. The pointer is invalidated by any growing operation. O(1).
func (a *Arr[T]) First() *T {
	return deref[T](a.buf.First())
}

// Last returns a pointer to the last element. The container must not be
// empty. The pointer is invalidated by any growing operation. O(1).
func (a *Arr[T]) Last() *T {
	return deref[T](a.buf.Last())
}

// Set overwrites the element at index with value. The index must be valid. O(1).
func (a *Arr[T]) Set(index int, value T) {
	a.buf.Set(index, bytesOf(&value))
}

// Insert places value at index, shifting elements [index, size) one slot
// forward to preserve order. The index must be valid. O(n).
//
// Returns the index the element was placed at, or an allocation failure
// wrapping errs.ErrAllocExhausted with the container unchanged.
func (a *Arr[T]) Insert(index int, value T) (int, error) {
	return a.buf.Insert(index, bytesOf(&value))
}

// Shove is the order-breaking fast alternative to Insert: the element
// currently at index moves to the tail and value takes its slot; every other
// element keeps its index. Amortized O(1).
//
// Returns the index the new element was placed at, or an allocation failure
// wrapping errs.ErrAllocExhausted with the container unchanged.
func (a *Arr[T]) Shove(index int, value T) (int, error) {
	return a.buf.Shove(index, bytesOf(&value))
}

// Remove deletes the element at index, shifting later elements back to
// preserve order. The index must be valid. O(n).
func (a *Arr[T]) Remove(index int) {
	a.buf.Remove(index)
}

// Ditch is the order-breaking fast alternative to Remove: the last element
// moves into the slot at index. The index must be valid. O(1).
func (a *Arr[T]) Ditch(index int) {
	a.buf.Ditch(index)
}

// Resize sets the logical size directly. Shrinking truncates; growing
// zero-fills the added elements, reallocating to exactly newSize slots if
// needed. See seq.Buffer.Resize for the full contract.
//
// Returns the resulting size (unchanged on failure), and an allocation
// failure wrapping errs.ErrAllocExhausted with the container unchanged.
func (a *Arr[T]) Resize(newSize int) (int, error) {
	return a.buf.Resize(newSize)
}

// SetCapacity adjusts the allocated capacity to most closely match target,
// clamped so storage never shrinks below the current size. See
// seq.Buffer.SetCapacity for the full contract.
//
// Returns the resulting capacity (unchanged on failure), and an allocation
// failure wrapping errs.ErrAllocExhausted.
func (a *Arr[T]) SetCapacity(target int) (int, error) {
	return a.buf.SetCapacity(target)
}

// FindLinear returns the index of the first element byte-for-byte equal to
// key, or -1 if absent. O(n). Equality is raw byte equality: padding bytes in
// struct types participate, so prefer fully packed element types with it.
func (a *Arr[T]) FindLinear(key T) int {
	return a.buf.FindLinear(bytesOf(&key))
}

// FindBinary returns the index of an element comparing equal to key per cmp,
// or -1 if absent. O(log n). The container must already be sorted ascending
// under cmp, otherwise the result is undefined. When several elements compare
// equal the lowest matching index is returned.
func (a *Arr[T]) FindBinary(cmp CompareFunc[T], key T) int {
	return a.buf.FindBinary(adapt(cmp), bytesOf(&key))
}

// SortInsert insertion-sorts the container ascending per cmp. O(n²), stable:
// elements comparing equal keep their relative order.
func (a *Arr[T]) SortInsert(cmp CompareFunc[T]) {
	a.buf.SortInsert(adapt(cmp))
}

// SortStandard sorts the container ascending per cmp using the
// general-purpose standard library sort. O(n log n), not stable.
func (a *Arr[T]) SortStandard(cmp CompareFunc[T]) {
	a.buf.SortStandard(adapt(cmp))
}

// View returns the elements as a []T aliasing the container's storage.
// Writes through it mutate elements in place; any growing operation may
// invalidate it. Returns nil when the container is empty.
func (a *Arr[T]) View() []T {
	if a.buf.Size() == 0 {
		return nil
	}

	return unsafe.Slice(deref[T](a.buf.Bytes()), a.buf.Size())
}
