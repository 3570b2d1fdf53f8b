// Package clock holds the master cycle counter shared across every chip.
package clock

// Clock is a monotonically increasing 64-bit cycle counter, reset only on
// hard reset. Chips resync their own local cycle counters lazily.
type Clock struct {
	cycles uint64
}

// New returns a Clock starting at zero.
func New() *Clock {
	return &Clock{}
}

// Tick advances the clock by one cycle.
func (c *Clock) Tick() {
	c.cycles++
}

// Cycles returns the current cycle count.
func (c *Clock) Cycles() uint64 {
	return c.cycles
}

// Reset zeroes the cycle count.
func (c *Clock) Reset() {
	c.cycles = 0
}
