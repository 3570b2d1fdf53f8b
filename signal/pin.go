// Package signal implements the shared hardware signals (pins, IRQ lines,
// I/O ports) that chips in the chipset observe and mutate in place.
package signal

// Pin is a two-state signal with edge detection. Chips share a Pin by
// pointer; one writer drives it, any number of chips read it.
type Pin struct {
	active bool
	prev   bool
}

// NewPin returns a Pin in the low state.
func NewPin() *Pin {
	return &Pin{}
}

// SetActive records the current state as previous, then updates to active.
func (p *Pin) SetActive(active bool) {
	p.prev = p.active
	p.active = active
}

// IsLow reports whether the pin is currently low.
func (p *Pin) IsLow() bool {
	return !p.active
}

// IsHigh reports whether the pin is currently high.
func (p *Pin) IsHigh() bool {
	return p.active
}

// IsRising reports whether the pin transitioned low->high on the last SetActive.
func (p *Pin) IsRising() bool {
	return p.active && !p.prev
}

// IsFalling reports whether the pin transitioned high->low on the last SetActive.
func (p *Pin) IsFalling() bool {
	return !p.active && p.prev
}

// Reset forces the pin low and clears the previous state.
func (p *Pin) Reset() {
	p.active = false
	p.prev = false
}
