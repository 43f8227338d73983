package pool

import "sync"

// Scratch buffer pool for element-sized temporaries.
// The sort and swap paths need a bounce buffer of exactly one element width per
// call; pooling it keeps those hot paths allocation-free for repeated sorts.
var scratchPool = sync.Pool{
	New: func() any { return &[]byte{} },
}

// GetScratch retrieves a byte buffer of exactly size bytes from the pool.
//
// The buffer's contents are unspecified; callers must fully overwrite it
// before reading. The caller must call the returned cleanup function
// (typically with defer) to return the buffer to the pool.
func GetScratch(size int) ([]byte, func()) {
	ptr, _ := scratchPool.Get().(*[]byte)
	buf := (*ptr)[:0]

	if cap(buf) < size {
		buf = make([]byte, size)
		*ptr = buf
	} else {
		buf = buf[:size]
		*ptr = buf
	}

	return buf, func() { scratchPool.Put(ptr) }
}
