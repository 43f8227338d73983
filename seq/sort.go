package seq

import (
	"sort"

	"github.com/BareRose/dynarr/internal/pool"
)

// SortInsert insertion-sorts the active region ascending per cmp. O(n²).
//
// The sort is stable: elements comparing equal keep their relative order.
// Element exchange goes through a pooled scratch buffer rather than any
// in-place trick, so arbitrary element widths cost no extra allocation per
// pass. Prefer SortStandard for large containers where stability does not
// matter.
func (b *Buffer) SortInsert(cmp CompareFunc) {
	if b.size < 2 {
		return
	}

	tmp, release := pool.GetScratch(b.elem)
	defer release()

	for j := 1; j < b.size; j++ {
		i := j
		for i > 0 && cmp(b.elemAt(i-1), b.elemAt(i)) > 0 {
			cur, prev := b.elemAt(i), b.elemAt(i-1)
			copy(tmp, cur)
			copy(cur, prev)
			copy(prev, tmp)
			i--
		}
	}
}

// SortStandard sorts the active region ascending per cmp by delegating to the
// general-purpose comparison sort in the standard library. O(n log n), not
// stable.
func (b *Buffer) SortStandard(cmp CompareFunc) {
	if b.size < 2 {
		return
	}

	tmp, release := pool.GetScratch(b.elem)
	defer release()

	sort.Sort(&sortView{buf: b, cmp: cmp, tmp: tmp})
}

// sortView adapts the active region to sort.Interface.
type sortView struct {
	buf *Buffer
	cmp CompareFunc
	tmp []byte
}

func (v *sortView) Len() int {
	return v.buf.size
}

func (v *sortView) Less(i, j int) bool {
	return v.cmp(v.buf.elemAt(i), v.buf.elemAt(j)) < 0
}

func (v *sortView) Swap(i, j int) {
	a, b := v.buf.elemAt(i), v.buf.elemAt(j)
	copy(v.tmp, a)
	copy(a, b)
	copy(b, v.tmp)
}
