// Package uidalloc implements the profiling subsystem's monotonic uid
// allocator: a single process-wide, thread-safe counter serving both
// single-uid and contiguous-range allocations.
package uidalloc

import (
	"sync/atomic"

	"github.com/ghaddam/armnn/internal/domain"
)

// Allocator hands out strictly increasing, never-zero uids. The zero
// value is ready to use and is what New returns.
type Allocator struct {
	next atomic.Uint32
}

// New returns an allocator whose first NextUid() call returns 1.
func New() *Allocator {
	return &Allocator{}
}

// NextUid returns the next single uid in the global sequence.
func (a *Allocator) NextUid() domain.Uid {
	v := a.next.Add(1)
	return domain.Uid(v)
}

// NextCounterUids returns n contiguous uids, first == base, last ==
// base+n-1. n == 0 is treated as n == 1: the allocator always hands
// out at least one uid per call so callers never have to special-case
// a zero-length range.
func (a *Allocator) NextCounterUids(n uint16) []domain.Uid {
	count := int(n)
	if count == 0 {
		count = 1
	}
	base := a.next.Add(uint32(count)) - uint32(count) + 1
	ids := make([]domain.Uid, count)
	for i := 0; i < count; i++ {
		ids[i] = domain.Uid(base + uint32(i))
	}
	return ids
}
