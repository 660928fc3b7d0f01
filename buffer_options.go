package orio

import "github.com/NightEule5/orio-sub000/internal/block"

// AllocationMode governs how a Buffer behaves when its pool cannot
// immediately satisfy a claim.
type AllocationMode int

const (
	// AllocationOnError claims from the pool, falling back to an ad-hoc
	// allocation if the pool is busy or empty. This is the default.
	AllocationOnError AllocationMode = iota
	// AllocationAlways bypasses the pool entirely, always allocating
	// fresh blocks.
	AllocationAlways
	// AllocationNever never allocates ad-hoc; a pool miss is surfaced as
	// an error instead.
	AllocationNever
)

// Unbounded disables a threshold that would otherwise cap behavior (e.g.
// ShareThreshold = Unbounded never shares; CompactThreshold = Unbounded
// never auto-compacts).
const Unbounded = int(^uint(0) >> 1)

// BufferOptions configures the thresholds a Buffer uses to decide between
// sharing, copying, and borrowing, and how aggressively it reclaims
// fragmentation.
type BufferOptions struct {
	// ShareThreshold is the minimum source-slice size for CopyTo to share
	// a segment rather than copy its bytes. Default block.Size/8.
	ShareThreshold int
	// CompactThreshold is the maximum tolerated fragmentation (spare
	// capacity inside readable-but-not-full segments) before Compact runs
	// automatically after a write. Default block.Size/2.
	CompactThreshold int
	// BorrowThreshold is the minimum size of a caller-provided slice
	// passed to WriteBorrowed for it to be borrowed (appended as a Slice
	// segment) instead of copied. Default block.Size/8.
	BorrowThreshold int
	// AllocationMode governs pool-claim fallback behavior.
	AllocationMode AllocationMode
	// PoolMax bounds how many blocks the Buffer's own pool caches, if it
	// is constructing a default pool (see New). <= 0 means unbounded.
	PoolMax int
}

// DefaultBufferOptions returns the options every Buffer uses unless
// overridden.
func DefaultBufferOptions() BufferOptions {
	return BufferOptions{
		ShareThreshold:   block.Size / 8,
		CompactThreshold: block.Size / 2,
		BorrowThreshold:  block.Size / 8,
		AllocationMode:   AllocationOnError,
	}
}
