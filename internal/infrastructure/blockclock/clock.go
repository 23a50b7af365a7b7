package blockclock

import (
	"sync/atomic"
	"time"
)

// Clock derives the current block height from wall time: height grows by one
// every interval elapsed since genesis. It implements ports.BlockClock.
type Clock struct {
	genesis  time.Time
	interval time.Duration
}

// New returns a wall-clock backed block counter.
func New(genesis time.Time, interval time.Duration) *Clock {
	return &Clock{genesis: genesis, interval: interval}
}

// Now implements ports.BlockClock.
func (c *Clock) Now() uint64 {
	elapsed := time.Since(c.genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / c.interval)
}

// Manual is a manually driven block counter for tests and simulations.
type Manual struct {
	height uint64
}

// NewManual returns a manual clock starting at the given height.
func NewManual(height uint64) *Manual {
	return &Manual{height: height}
}

// Now implements ports.BlockClock.
func (m *Manual) Now() uint64 {
	return atomic.LoadUint64(&m.height)
}

// Advance moves the clock forward by the given number of blocks.
func (m *Manual) Advance(blocks uint64) {
	atomic.AddUint64(&m.height, blocks)
}

// SetHeight moves the clock to the given height.
func (m *Manual) SetHeight(height uint64) {
	atomic.StoreUint64(&m.height, height)
}
