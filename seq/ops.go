package seq

import (
	"fmt"

	"github.com/BareRose/dynarr/internal/pool"
)

// Valid reports whether index is a valid logical element index. O(1).
func (b *Buffer) Valid(index int) bool {
	return index >= 0 && index < b.size
}

// mustValid panics when index is outside the active region.
func (b *Buffer) mustValid(index int) {
	if !b.Valid(index) {
		panic(fmt.Sprintf("seq: index %d out of range [0, %d)", index, b.size))
	}
}

// mustNotEmpty panics when the container holds no elements.
func (b *Buffer) mustNotEmpty() {
	if b.size == 0 {
		panic("seq: container is empty")
	}
}

// Push appends value to the end of the container, growing if needed.
// Amortized O(1).
//
// The value must be exactly ElemSize bytes; its bytes are copied in.
//
// Returns:
//   - int: The index the element was placed at
//   - error: nil, or an allocation failure wrapping errs.ErrAllocExhausted,
//     in which case the container is unchanged and value was not added
func (b *Buffer) Push(value []byte) (int, error) {
	b.mustElemSized(value)

	if err := b.grow(); err != nil {
		return 0, err
	}

	copy(b.slot(b.offs+b.size), value)
	b.size++

	return b.size - 1, nil
}

// Pop removes the last element and returns its bytes. The container must not
// be empty. O(1).
//
// The returned slice aliases storage; its contents stay intact only until the
// next mutating operation. Callers that keep the value must copy it out.
func (b *Buffer) Pop() []byte {
	b.mustNotEmpty()
	b.size--
	tail := b.slot(b.offs + b.size)

	// An emptied container normalizes back to offset 0.
	if b.size == 0 {
		b.offs = 0
	}

	return tail
}

// Dequeue removes the first element and returns its bytes. The container must
// not be empty. O(1).
//
// Dequeue only advances the offset; it never moves data. The head-room it
// leaves behind is reclaimed by the next growth-triggering Push or by an
// explicit Resize/SetCapacity. The returned slice aliases storage and stays
// intact only until the next mutating operation.
func (b *Buffer) Dequeue() []byte {
	b.mustNotEmpty()
	head := b.slot(b.offs)
	b.offs++
	b.size--

	// An emptied container normalizes back to offset 0.
	if b.size == 0 {
		b.offs = 0
	}

	return head
}

// First returns the byte span of the first element, writable in place. The
// container must not be empty. The span is invalidated by growth. O(1).
func (b *Buffer) First() []byte {
	b.mustNotEmpty()
	return b.elemAt(0)
}

// Last returns the byte span of the last element, writable in place. The
// container must not be empty. The span is invalidated by growth. O(1).
func (b *Buffer) Last() []byte {
	b.mustNotEmpty()
	return b.elemAt(b.size - 1)
}

// At returns the byte span of the element at index, writable in place.
// The index must be valid. The span is invalidated by growth. O(1).
func (b *Buffer) At(index int) []byte {
	b.mustValid(index)
	return b.elemAt(index)
}

// Set overwrites the element at index with value. The index must be valid and
// value must be exactly ElemSize bytes. O(1).
func (b *Buffer) Set(index int, value []byte) {
	b.mustValid(index)
	b.mustElemSized(value)
	copy(b.elemAt(index), value)
}

// Insert places value at index, shifting elements [index, size) one slot
// forward. The index must be valid; appending at size is Push's job. O(n).
//
// Returns:
//   - int: The index the element was placed at (always index)
//   - error: nil, or an allocation failure wrapping errs.ErrAllocExhausted,
//     in which case the container is unchanged
func (b *Buffer) Insert(index int, value []byte) (int, error) {
	b.mustValid(index)
	b.mustElemSized(value)

	if err := b.grow(); err != nil {
		return 0, err
	}

	at := (b.offs + index) * b.elem
	end := (b.offs + b.size) * b.elem
	copy(b.storage[at+b.elem:end+b.elem], b.storage[at:end])
	copy(b.storage[at:at+b.elem], value)
	b.size++

	return index, nil
}

// Shove is the order-breaking fast alternative to Insert: the element
// currently at index is pushed to the tail and value takes its slot. Every
// other element keeps its index. Amortized O(1).
//
// Returns:
//   - int: The index the new element was placed at (always index)
//   - error: nil, or an allocation failure wrapping errs.ErrAllocExhausted,
//     in which case the container is unchanged
func (b *Buffer) Shove(index int, value []byte) (int, error) {
	b.mustValid(index)
	b.mustElemSized(value)

	// The displaced element goes through a bounce buffer: Push may trigger a
	// reallocation that moves storage, after which a span captured from the
	// old block would be dead.
	displaced, release := pool.GetScratch(b.elem)
	defer release()
	copy(displaced, b.elemAt(index))

	if _, err := b.Push(displaced); err != nil {
		return 0, err
	}

	copy(b.elemAt(index), value)

	return index, nil
}

// Remove deletes the element at index, shifting elements [index+1, size) back
// one slot to preserve order. The index must be valid. O(n).
func (b *Buffer) Remove(index int) {
	b.mustValid(index)

	at := (b.offs + index) * b.elem
	end := (b.offs + b.size) * b.elem
	copy(b.storage[at:], b.storage[at+b.elem:end])
	b.size--

	if b.size == 0 {
		b.offs = 0
	}
}

// Ditch is the order-breaking fast alternative to Remove: the last element is
// popped into the slot at index. The index must be valid. O(1).
func (b *Buffer) Ditch(index int) {
	b.mustValid(index)
	copy(b.elemAt(index), b.Pop())
}

// mustElemSized panics when value is not exactly one element wide.
func (b *Buffer) mustElemSized(value []byte) {
	if len(value) != b.elem {
		panic(fmt.Sprintf("seq: value is %d bytes, element size is %d", len(value), b.elem))
	}
}
