// Package seq implements the type-erased sequence container core: a single
// contiguous allocation of fixed-width element slots that serves as a stack,
// a queue, and a sortable list at the same time.
//
// The container tracks four header fields: total slot capacity, the fixed
// element width in bytes, the offset of the first logical element, and the
// logical size. The active region occupies slots [offset, offset+size); the
// slots outside it hold unspecified bytes. Dequeue advances the offset
// instead of shifting data, and the growth engine reclaims that head-room by
// compaction before it ever reallocates, so queue-heavy workloads stay cheap.
//
// All storage comes from a pluggable alloc.Allocator; allocation failure is
// reported as an error wrapping errs.ErrAllocExhausted and always leaves the
// container in its exact prior state. Contract violations (out-of-range
// index, popping an empty container) panic.
//
// Most callers want the typed generic façade in the parent dynarr package;
// this package is for code that works with raw element bytes directly, such
// as callers with runtime-determined element widths.
//
// # Basic Usage
//
//	buf, err := seq.New(8) // 8-byte elements
//	if err != nil { ... }
//	defer buf.Free()
//
//	idx, err := buf.Push(elemBytes)  // stack/queue tail
//	head := buf.Dequeue()            // queue head, O(1)
//	tail := buf.Pop()                // stack top, O(1)
//
// The container is not safe for concurrent use; callers that share one across
// goroutines must synchronize externally.
package seq
