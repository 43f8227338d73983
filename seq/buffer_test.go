package seq

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BareRose/dynarr/alloc"
	"github.com/BareRose/dynarr/errs"
)

const elem8 = 8

// u64 encodes v as one 8-byte element.
func u64(v uint64) []byte {
	b := make([]byte, elem8)
	binary.LittleEndian.PutUint64(b, v)

	return b
}

// decode64 reads an 8-byte element back.
func decode64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

// cmp64 is a three-way comparator over 8-byte unsigned elements.
func cmp64(a, b []byte) int {
	av, bv := decode64(a), decode64(b)
	switch {
	case av > bv:
		return 1
	case av < bv:
		return -1
	default:
		return 0
	}
}

// mustPush pushes values, failing the test on allocation errors.
func mustPush(t *testing.T, b *Buffer, values ...uint64) {
	t.Helper()
	for _, v := range values {
		_, err := b.Push(u64(v))
		require.NoError(t, err)
	}
}

// contents reads the active region back as uint64 values.
func contents(b *Buffer) []uint64 {
	out := make([]uint64, 0, b.Size())
	for i := 0; i < b.Size(); i++ {
		out = append(out, decode64(b.At(i)))
	}

	return out
}

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		b, err := New(elem8)
		require.NoError(t, err)
		defer b.Free()

		assert.Equal(t, 0, b.Size())
		assert.Equal(t, 1, b.Capacity())
		assert.Equal(t, 0, b.Offset())
		assert.Equal(t, elem8, b.ElemSize())
	})

	t.Run("With capacity", func(t *testing.T) {
		b, err := New(elem8, WithCapacity(32))
		require.NoError(t, err)
		defer b.Free()

		assert.Equal(t, 32, b.Capacity())
		assert.Equal(t, 0, b.Size())
	})

	t.Run("Invalid element size", func(t *testing.T) {
		_, err := New(0)
		require.ErrorIs(t, err, errs.ErrInvalidElemSize)

		_, err = New(-4)
		require.ErrorIs(t, err, errs.ErrInvalidElemSize)
	})

	t.Run("Invalid capacity option", func(t *testing.T) {
		_, err := New(elem8, WithCapacity(0))
		require.Error(t, err)
	})

	t.Run("Nil allocator option", func(t *testing.T) {
		_, err := New(elem8, WithAllocator(nil))
		require.Error(t, err)
	})

	t.Run("Creation allocation failure", func(t *testing.T) {
		b, err := New(elem8, WithAllocator(alloc.NewFlaky(alloc.Heap(), 0)))
		require.ErrorIs(t, err, errs.ErrAllocExhausted)
		require.Nil(t, b)
	})
}

func TestBuffer_Clear(t *testing.T) {
	b, err := New(elem8)
	require.NoError(t, err)
	defer b.Free()

	mustPush(t, b, 1, 2, 3, 4)
	b.Dequeue()
	require.Equal(t, 1, b.Offset())

	before := b.Capacity()
	b.Clear()

	assert.Equal(t, 0, b.Size())
	assert.Equal(t, 0, b.Offset())
	assert.Equal(t, before, b.Capacity(), "Clear must not touch capacity")
}

func TestBuffer_GrowthDoubling(t *testing.T) {
	b, err := New(elem8)
	require.NoError(t, err)
	defer b.Free()

	// Capacity under repeated pushes follows 1, 2, 4, 8, ... and never drops.
	prev := b.Capacity()
	for i := uint64(0); i < 100; i++ {
		mustPush(t, b, i)
		require.GreaterOrEqual(t, b.Capacity(), b.Size())
		require.GreaterOrEqual(t, b.Capacity(), prev, "push growth never shrinks capacity")
		prev = b.Capacity()
	}

	assert.Equal(t, 128, b.Capacity())
	assert.Equal(t, 100, b.Size())
}

func TestBuffer_OffsetReclaim(t *testing.T) {
	b, err := New(elem8, WithCapacity(8))
	require.NoError(t, err)
	defer b.Free()

	// Fill to capacity, dequeue half, then push: the dequeued prefix (4) is
	// >= the remaining size (4), so growth must compact instead of
	// reallocating.
	mustPush(t, b, 0, 1, 2, 3, 4, 5, 6, 7)
	for i := 0; i < 4; i++ {
		b.Dequeue()
	}
	require.Equal(t, 4, b.Offset())

	mustPush(t, b, 8)

	assert.Equal(t, 8, b.Capacity(), "growth should reclaim head-room, not reallocate")
	assert.Equal(t, 0, b.Offset())
	assert.Equal(t, []uint64{4, 5, 6, 7, 8}, contents(b))
}

func TestBuffer_GrowthPrefersReallocWhenPrefixSmall(t *testing.T) {
	b, err := New(elem8, WithCapacity(8))
	require.NoError(t, err)
	defer b.Free()

	// Only 2 slots of head-room against 6 live elements: compaction cannot
	// double the usable tail, so capacity doubles instead.
	mustPush(t, b, 0, 1, 2, 3, 4, 5, 6, 7)
	b.Dequeue()
	b.Dequeue()

	mustPush(t, b, 8)

	assert.Equal(t, 16, b.Capacity())
	assert.Equal(t, []uint64{2, 3, 4, 5, 6, 7, 8}, contents(b))
}

func TestBuffer_Resize(t *testing.T) {
	t.Run("Idempotent at current size", func(t *testing.T) {
		b, err := New(elem8)
		require.NoError(t, err)
		defer b.Free()

		mustPush(t, b, 1, 2, 3)
		sum := b.Sum64()
		capa := b.Capacity()

		size, err := b.Resize(3)
		require.NoError(t, err)
		assert.Equal(t, 3, size)
		assert.Equal(t, capa, b.Capacity(), "no reallocation on no-op resize")
		assert.Equal(t, sum, b.Sum64(), "no byte changes on no-op resize")
	})

	t.Run("Shrink truncates", func(t *testing.T) {
		b, err := New(elem8)
		require.NoError(t, err)
		defer b.Free()

		mustPush(t, b, 1, 2, 3, 4, 5)
		size, err := b.Resize(2)
		require.NoError(t, err)

		assert.Equal(t, 2, size)
		assert.Equal(t, []uint64{1, 2}, contents(b))
	})

	t.Run("Shrink to zero resets offset", func(t *testing.T) {
		b, err := New(elem8)
		require.NoError(t, err)
		defer b.Free()

		mustPush(t, b, 1, 2, 3)
		b.Dequeue()
		require.Equal(t, 1, b.Offset())

		size, err := b.Resize(0)
		require.NoError(t, err)
		assert.Equal(t, 0, size)
		assert.Equal(t, 0, b.Offset())
	})

	t.Run("Negative clamps to zero", func(t *testing.T) {
		b, err := New(elem8)
		require.NoError(t, err)
		defer b.Free()

		mustPush(t, b, 1, 2)
		size, err := b.Resize(-5)
		require.NoError(t, err)
		assert.Equal(t, 0, size)
	})

	t.Run("Grow zero-fills new slots", func(t *testing.T) {
		b, err := New(elem8)
		require.NoError(t, err)
		defer b.Free()

		mustPush(t, b, 7, 8)
		size, err := b.Resize(6)
		require.NoError(t, err)

		assert.Equal(t, 6, size)
		assert.Equal(t, []uint64{7, 8, 0, 0, 0, 0}, contents(b))
		assert.Equal(t, 6, b.Capacity(), "resize growth allocates exactly the requested size")
	})

	t.Run("Grow compacts offset unconditionally", func(t *testing.T) {
		b, err := New(elem8, WithCapacity(8))
		require.NoError(t, err)
		defer b.Free()

		// Offset 2 with size 4: growing to 7 exceeds capacity at the current
		// offset but fits after compaction, so no reallocation happens.
		mustPush(t, b, 1, 2, 3, 4, 5, 6)
		b.Dequeue()
		b.Dequeue()

		size, err := b.Resize(7)
		require.NoError(t, err)

		assert.Equal(t, 7, size)
		assert.Equal(t, 0, b.Offset())
		assert.Equal(t, 8, b.Capacity())
		assert.Equal(t, []uint64{3, 4, 5, 6, 0, 0, 0}, contents(b))
	})

	t.Run("Stale bytes do not leak into grown slots", func(t *testing.T) {
		b, err := New(elem8)
		require.NoError(t, err)
		defer b.Free()

		// Leave non-zero garbage behind by shrinking, then grow over it.
		mustPush(t, b, 1, 2, 3, 4)
		_, err = b.Resize(1)
		require.NoError(t, err)

		_, err = b.Resize(4)
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 0, 0, 0}, contents(b))
	})

	t.Run("Allocation failure leaves state untouched", func(t *testing.T) {
		flaky := alloc.NewFlaky(alloc.Heap(), 1) // budget: creation only
		b, err := New(elem8, WithAllocator(flaky))
		require.NoError(t, err)
		defer b.Free()

		mustPush(t, b, 42) // fits in the initial slot, no allocation
		sum := b.Sum64()

		size, err := b.Resize(100)
		require.ErrorIs(t, err, errs.ErrAllocExhausted)
		assert.Equal(t, 1, size, "failed resize reports the unchanged size")
		assert.Equal(t, 1, b.Size())
		assert.Equal(t, 1, b.Capacity())
		assert.Equal(t, 0, b.Offset())
		assert.Equal(t, sum, b.Sum64(), "contents must be byte-identical after failure")
	})
}

func TestBuffer_SetCapacity(t *testing.T) {
	t.Run("Reserve", func(t *testing.T) {
		b, err := New(elem8)
		require.NoError(t, err)
		defer b.Free()

		capa, err := b.SetCapacity(64)
		require.NoError(t, err)
		assert.Equal(t, 64, capa)
		assert.Equal(t, 64, b.Capacity())
		assert.Equal(t, 0, b.Size())

		// Subsequent pushes up to the reserve must not reallocate.
		for i := uint64(0); i < 64; i++ {
			mustPush(t, b, i)
		}
		assert.Equal(t, 64, b.Capacity())
	})

	t.Run("Clamps to size", func(t *testing.T) {
		b, err := New(elem8)
		require.NoError(t, err)
		defer b.Free()

		mustPush(t, b, 1, 2, 3, 4, 5)
		capa, err := b.SetCapacity(2)
		require.NoError(t, err)

		assert.Equal(t, 5, capa, "capacity cannot shrink below logical content")
		assert.Equal(t, []uint64{1, 2, 3, 4, 5}, contents(b))
	})

	t.Run("Clamps to one slot when empty", func(t *testing.T) {
		b, err := New(elem8, WithCapacity(16))
		require.NoError(t, err)
		defer b.Free()

		capa, err := b.SetCapacity(0)
		require.NoError(t, err)
		assert.Equal(t, 1, capa, "capacity never drops below one slot")
	})

	t.Run("Compacts offset", func(t *testing.T) {
		b, err := New(elem8, WithCapacity(8))
		require.NoError(t, err)
		defer b.Free()

		mustPush(t, b, 1, 2, 3, 4)
		b.Dequeue()
		require.Equal(t, 1, b.Offset())

		capa, err := b.SetCapacity(8)
		require.NoError(t, err)
		assert.Equal(t, 8, capa)
		assert.Equal(t, 0, b.Offset())
		assert.Equal(t, []uint64{2, 3, 4}, contents(b))
	})

	t.Run("Shrink to content", func(t *testing.T) {
		b, err := New(elem8, WithCapacity(32))
		require.NoError(t, err)
		defer b.Free()

		mustPush(t, b, 1, 2, 3)
		capa, err := b.SetCapacity(3)
		require.NoError(t, err)

		assert.Equal(t, 3, capa)
		assert.Equal(t, []uint64{1, 2, 3}, contents(b))
	})

	t.Run("Allocation failure leaves capacity untouched", func(t *testing.T) {
		flaky := alloc.NewFlaky(alloc.Heap(), 1)
		b, err := New(elem8, WithAllocator(flaky))
		require.NoError(t, err)
		defer b.Free()

		mustPush(t, b, 9)
		sum := b.Sum64()

		capa, err := b.SetCapacity(128)
		require.ErrorIs(t, err, errs.ErrAllocExhausted)
		assert.Equal(t, 1, capa)
		assert.Equal(t, 1, b.Capacity())
		assert.Equal(t, sum, b.Sum64())
	})
}

func TestBuffer_Sum64(t *testing.T) {
	a, err := New(elem8)
	require.NoError(t, err)
	defer a.Free()

	b, err := New(elem8, WithCapacity(32))
	require.NoError(t, err)
	defer b.Free()

	mustPush(t, a, 1, 2, 3)

	// Same contents at a different offset and capacity hash identically.
	mustPush(t, b, 99, 1, 2, 3)
	b.Dequeue()

	assert.Equal(t, a.Sum64(), b.Sum64())
	assert.NotEqual(t, a.Sum64(), uint64(0))

	// Any content change shows up.
	mustPush(t, b, 4)
	assert.NotEqual(t, a.Sum64(), b.Sum64())
}

func TestBuffer_Bytes(t *testing.T) {
	b, err := New(elem8)
	require.NoError(t, err)
	defer b.Free()

	mustPush(t, b, 5, 6)

	raw := b.Bytes()
	require.Len(t, raw, 2*elem8)
	assert.Equal(t, uint64(5), decode64(raw[:elem8]))
	assert.Equal(t, uint64(6), decode64(raw[elem8:]))

	// The view is live: writes through it mutate elements.
	binary.LittleEndian.PutUint64(raw[:elem8], 50)
	assert.Equal(t, []uint64{50, 6}, contents(b))
}
