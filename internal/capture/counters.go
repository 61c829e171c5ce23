package capture

import (
	"runtime"
	"sync/atomic"
	"time"
)

// heapSampleInterval bounds how often the counters read runtime.MemStats;
// ReadMemStats briefly stops the world, so sampling per frame is too much.
const heapSampleInterval = 250 * time.Millisecond

// Counters is the shared state between the frame callback context (sole
// writer) and the scheduler's stats ticker (reader). Reads may be stale
// but are monotonic, which is all the periodic stats line needs.
type Counters struct {
	total       atomic.Uint64
	probes      atomic.Uint64
	dropped     atomic.Uint64
	rateLimited atomic.Uint64

	heapBudget  uint64
	freeHeap    atomic.Uint64
	minFreeHeap atomic.Uint64
	lastSample  atomic.Int64
}

// NewCounters creates counters with the given nominal heap budget, from
// which headroom is computed.
func NewCounters(heapBudget uint64) *Counters {
	c := &Counters{heapBudget: heapBudget}
	c.freeHeap.Store(heapBudget)
	c.minFreeHeap.Store(heapBudget)
	return c
}

func (c *Counters) CountFrame()       { c.total.Add(1) }
func (c *Counters) CountProbe()       { c.probes.Add(1) }
func (c *Counters) CountDropped()     { c.dropped.Add(1) }
func (c *Counters) CountRateLimited() { c.rateLimited.Add(1) }

func (c *Counters) Total() uint64       { return c.total.Load() }
func (c *Counters) Probes() uint64      { return c.probes.Load() }
func (c *Counters) Dropped() uint64     { return c.dropped.Load() }
func (c *Counters) RateLimited() uint64 { return c.rateLimited.Load() }

// FreeHeap returns headroom against the budget, resampling the runtime
// heap at most once per heapSampleInterval and returning the cached value
// in between.
func (c *Counters) FreeHeap() uint64 {
	now := time.Now().UnixNano()
	last := c.lastSample.Load()
	if last != 0 && now-last < int64(heapSampleInterval) {
		return c.freeHeap.Load()
	}
	c.lastSample.Store(now)

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	var free uint64
	if ms.HeapAlloc < c.heapBudget {
		free = c.heapBudget - ms.HeapAlloc
	}
	c.freeHeap.Store(free)

	for {
		min := c.minFreeHeap.Load()
		if free >= min || c.minFreeHeap.CompareAndSwap(min, free) {
			break
		}
	}
	return free
}

// MinFreeHeap returns the lowest headroom observed this session.
func (c *Counters) MinFreeHeap() uint64 {
	return c.minFreeHeap.Load()
}
