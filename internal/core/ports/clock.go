package ports

// BlockClock exposes the ever-increasing time counter the marketplace reads.
// Time advances externally and is never driven by this system.
type BlockClock interface {
	// Now returns the current block height.
	Now() uint64
}
