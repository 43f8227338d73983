package seq

import (
	"fmt"

	"github.com/BareRose/dynarr/alloc"
	"github.com/BareRose/dynarr/errs"
	"github.com/BareRose/dynarr/internal/hash"
	"github.com/BareRose/dynarr/internal/options"
)

// Buffer is a resizable sequence of fixed-width elements backed by a single
// contiguous allocation.
//
// The zero value is not usable; create instances with New. A Buffer is
// exclusively owned by its creator and must be released with Free. It is not
// safe for concurrent use.
type Buffer struct {
	storage []byte
	alloc   alloc.Allocator
	elem    int // element width in bytes, fixed at creation
	capa    int // total slot capacity, >= 1 always
	offs    int // slot index of the first logical element
	size    int // logical element count
}

// config collects creation-time settings before the storage allocation happens.
type config struct {
	alloc    alloc.Allocator
	capacity int
}

// Option represents a functional option for configuring a Buffer at creation.
type Option = options.Option[*config]

// WithAllocator sets the allocator backing the container's storage.
// The default is alloc.Heap().
func WithAllocator(a alloc.Allocator) Option {
	return options.New(func(c *config) error {
		if a == nil {
			return fmt.Errorf("seq: nil allocator")
		}
		c.alloc = a

		return nil
	})
}

// WithCapacity pre-reserves storage for n elements at creation, avoiding
// early growth reallocations. The default is one slot.
func WithCapacity(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("seq: initial capacity must be at least 1, got %d", n)
		}
		c.capacity = n

		return nil
	})
}

// New creates an empty Buffer for elements of elemSize bytes.
//
// The container starts with size 0 and capacity of one slot (or the capacity
// requested via WithCapacity), zero-initialized.
//
// Returns:
//   - *Buffer: The new container, owned by the caller
//   - error: errs.ErrInvalidElemSize for non-positive elemSize, an option
//     validation error, or an allocation failure wrapping errs.ErrAllocExhausted
func New(elemSize int, opts ...Option) (*Buffer, error) {
	if elemSize <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidElemSize, elemSize)
	}

	cfg := &config{alloc: alloc.Heap(), capacity: 1}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	storage, err := cfg.alloc.ZeroAlloc(cfg.capacity * elemSize)
	if err != nil {
		return nil, fmt.Errorf("seq: initial allocation of %d slots: %w", cfg.capacity, err)
	}

	return &Buffer{
		storage: storage,
		alloc:   cfg.alloc,
		elem:    elemSize,
		capa:    cfg.capacity,
	}, nil
}

// Free releases the container's storage back to its allocator.
//
// The Buffer must not be used afterward; any further operation on it is a
// contract violation with undefined behavior.
func (b *Buffer) Free() {
	b.alloc.Release(b.storage)
	b.storage = nil
}

// Size returns the number of logical elements currently stored. O(1).
func (b *Buffer) Size() int {
	return b.size
}

// Capacity returns the total number of element slots currently allocated.
func (b *Buffer) Capacity() int {
	return b.capa
}

// Offset returns the slot index of the first logical element. It is zero
// unless elements have been dequeued since the last compaction.
func (b *Buffer) Offset() int {
	return b.offs
}

// ElemSize returns the fixed element width in bytes.
func (b *Buffer) ElemSize() int {
	return b.elem
}

// Clear resets the container to size 0 and offset 0 without touching storage
// or capacity. O(1).
func (b *Buffer) Clear() {
	b.offs = 0
	b.size = 0
}

// Bytes returns the live active region as a byte slice of size*elemSize
// bytes. The slice aliases the container's storage: writes through it mutate
// elements in place, and any growing operation may invalidate it.
func (b *Buffer) Bytes() []byte {
	return b.active()
}

// Sum64 returns the xxHash64 digest of the active region's raw bytes.
//
// Two containers with equal element bytes in equal order produce the same
// digest regardless of their capacity or offset, which makes Sum64 a cheap
// change-detection fingerprint.
func (b *Buffer) Sum64() uint64 {
	return hash.Sum(b.active())
}

// active returns the byte span of slots [offs, offs+size).
func (b *Buffer) active() []byte {
	return b.storage[b.offs*b.elem : (b.offs+b.size)*b.elem]
}

// slot returns the byte span of the raw storage slot at pos.
func (b *Buffer) slot(pos int) []byte {
	return b.storage[pos*b.elem : (pos+1)*b.elem]
}

// elemAt returns the byte span of the logical element at index i.
// Callers must have validated i.
func (b *Buffer) elemAt(i int) []byte {
	return b.slot(b.offs + i)
}

// compact moves the active region to the start of storage and resets the
// offset. The move is front-to-back, which is safe for the overlapping case.
func (b *Buffer) compact() {
	copy(b.storage, b.active())
	b.offs = 0
}

// grow ensures there is a free slot after the active region, growing only
// when the region is flush against the end of capacity.
//
// Head-room reclaim is preferred over reallocation: when the unused prefix is
// at least as large as the active region, compaction alone doubles the usable
// tail space without touching the allocator. Otherwise capacity doubles via
// reallocation. On allocation failure the container is unchanged.
func (b *Buffer) grow() error {
	if b.offs+b.size < b.capa {
		return nil
	}

	if b.offs >= b.size {
		b.compact()
		return nil
	}

	storage, err := b.alloc.Reallocate(b.storage, b.capa*2*b.elem)
	if err != nil {
		return fmt.Errorf("seq: grow to %d slots: %w", b.capa*2, err)
	}

	b.storage = storage
	b.capa *= 2

	return nil
}

// Resize sets the logical size directly, independent of push/pop.
//
// Shrinking truncates immediately; shrinking to 0 (negative values clamp to
// 0) also resets the offset. Growing compacts away any offset when the tail
// no longer fits, and reallocates to exactly newSize slots when even the full
// buffer is too small: this path trusts the caller's explicit request rather
// than doubling. Slots added by growth are zero-filled.
//
// Returns:
//   - int: The resulting size (the unchanged size on failure)
//   - error: nil, or an allocation failure wrapping errs.ErrAllocExhausted,
//     in which case the container state is exactly as before the call
func (b *Buffer) Resize(newSize int) (int, error) {
	switch {
	case newSize < b.size:
		if newSize < 0 {
			newSize = 0
		}
		b.size = newSize
		if b.size == 0 {
			b.offs = 0
		}

	case newSize > b.size:
		if b.offs+newSize > b.capa {
			// Reallocate before compacting so a failure leaves the container
			// untouched. Compaction never changes whether the reallocation is
			// needed, only where the active region sits.
			if newSize > b.capa {
				storage, err := b.alloc.Reallocate(b.storage, newSize*b.elem)
				if err != nil {
					return b.size, fmt.Errorf("seq: resize to %d slots: %w", newSize, err)
				}
				b.storage = storage
				b.capa = newSize
			}
			if b.offs > 0 {
				b.compact()
			}
		}

		clear(b.storage[(b.offs+b.size)*b.elem : (b.offs+newSize)*b.elem])
		b.size = newSize
	}

	return b.size, nil
}

// SetCapacity adjusts the allocated capacity to most closely match target,
// independent of size.
//
// The target is clamped upward to the current size (storage never shrinks
// below logical content) and to one slot. Any offset is compacted away first,
// then storage reallocates to exactly the clamped target if it differs from
// the current capacity.
//
// Returns:
//   - int: The resulting capacity (the unchanged capacity on failure); it can
//     differ from target only through the clamps above
//   - error: nil, or an allocation failure wrapping errs.ErrAllocExhausted,
//     in which case the container state is exactly as before the call
func (b *Buffer) SetCapacity(target int) (int, error) {
	if target < b.size {
		target = b.size
	}
	if target < 1 {
		target = 1
	}

	// When the target still covers the active region's current position the
	// reallocation can happen first, keeping failure fully atomic. Shrinking
	// below offs+size must compact first or the tail would be cut off; in
	// that one case a reallocation failure leaves the offset compacted, which
	// is still a valid equivalent state.
	if target >= b.offs+b.size {
		if target != b.capa {
			storage, err := b.alloc.Reallocate(b.storage, target*b.elem)
			if err != nil {
				return b.capa, fmt.Errorf("seq: set capacity to %d slots: %w", target, err)
			}
			b.storage = storage
			b.capa = target
		}
		if b.offs > 0 {
			b.compact()
		}

		return b.capa, nil
	}

	b.compact()

	if target != b.capa {
		storage, err := b.alloc.Reallocate(b.storage, target*b.elem)
		if err != nil {
			return b.capa, fmt.Errorf("seq: set capacity to %d slots: %w", target, err)
		}
		b.storage = storage
		b.capa = target
	}

	return b.capa, nil
}
