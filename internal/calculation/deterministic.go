package calculation

import "time"

// seedFunc returns a pseudo-random seed when the caller does not pin one
// (override for deterministic Monte Carlo tests).
var seedFunc = func() uint64 { return uint64(time.Now().UnixNano()) }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() uint64) { seedFunc = f }

// NewSeed returns a fresh seed from the current seed provider.
func NewSeed() uint64 { return seedFunc() }
