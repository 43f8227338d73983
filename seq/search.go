package seq

import (
	"bytes"
	"sort"
)

// CompareFunc is a caller-supplied three-way ordering over raw element bytes:
// positive when a orders after b, zero when they are equal, negative when a
// orders before b. Both arguments are exactly ElemSize bytes.
type CompareFunc func(a, b []byte) int

// FindLinear scans the active region in index order and returns the first
// index whose element is byte-for-byte equal to key, or -1 if absent. O(n).
//
// Equality is raw byte equality, not a semantic comparison; key must be
// exactly ElemSize bytes.
func (b *Buffer) FindLinear(key []byte) int {
	b.mustElemSized(key)

	for i := 0; i < b.size; i++ {
		if bytes.Equal(key, b.elemAt(i)) {
			return i
		}
	}

	return -1
}

// FindBinary binary-searches the active region for an element comparing equal
// to key and returns its index, or -1 if absent. O(log n).
//
// The region must already be sorted ascending under the ordering cmp implies,
// otherwise the result is undefined. When several elements compare equal to
// key, the lowest matching index is returned.
func (b *Buffer) FindBinary(cmp CompareFunc, key []byte) int {
	b.mustElemSized(key)

	i := sort.Search(b.size, func(i int) bool {
		return cmp(b.elemAt(i), key) >= 0
	})
	if i < b.size && cmp(b.elemAt(i), key) == 0 {
		return i
	}

	return -1
}
