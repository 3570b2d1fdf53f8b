package cia

import "github.com/kjhogan/c64emu/shiftdelay"

// timerMode identifies which of a CIA's two timers this is; timer B alone
// decodes the 2-bit input-source field and can cascade off timer A.
type timerMode int

const (
	timerModeA timerMode = iota
	timerModeB
)

type inputMode int

const (
	inputSystemClock inputMode = iota
	inputExternal
	inputTimerA
	inputTimerAWithCNT
)

type outputMode int

const (
	outputPulse outputMode = iota
	outputToggle
)

type runMode int

const (
	runContinuous runMode = iota
	runOneShot
)

// Timer is one of the CIA's two pipelined 16-bit down-counters. The
// pipeline (count_delay, load_delay) is not an optimization; it is the
// documented multi-cycle latency of the real 6526 and is required for
// correct interrupt timing.
type Timer struct {
	mode timerMode

	enabled       bool
	inputMode     inputMode
	outputMode    outputMode
	outputEnabled bool
	runMode       runMode

	countDelay *shiftdelay.ShiftDelay
	counter    uint16
	latch      uint16
	loadDelay  *shiftdelay.ShiftDelay

	pbOutput bool
}

// NewTimer returns a reset Timer for the given role (A or B).
func NewTimer(mode timerMode) *Timer {
	return &Timer{
		mode:       mode,
		outputMode: outputPulse,
		runMode:    runOneShot,
		countDelay: shiftdelay.New(3),
		loadDelay:  shiftdelay.New(1),
	}
}

// GetConfig packs the timer's control-register bits (start, PB output
// enable/mode, run mode, input source).
func (t *Timer) GetConfig() uint8 {
	var c uint8
	if t.enabled {
		c |= 1 << 0
	}
	if t.outputEnabled {
		c |= 1 << 1
	}
	if t.outputMode == outputToggle {
		c |= 1 << 2
	}
	if t.runMode == runOneShot {
		c |= 1 << 3
	}
	switch t.inputMode {
	case inputSystemClock:
	case inputExternal:
		c |= 1 << 5
	case inputTimerA:
		c |= 1 << 6
	case inputTimerAWithCNT:
		c |= 1<<5 | 1<<6
	}
	return c
}

// SetConfig unpacks and applies the control-register bits.
func (t *Timer) SetConfig(value uint8) {
	if value&(1<<3) != 0 {
		t.runMode = runOneShot
	} else {
		t.runMode = runContinuous
	}
	t.outputEnabled = value&(1<<1) != 0
	if value&(1<<2) != 0 {
		t.outputMode = outputToggle
	} else {
		t.outputMode = outputPulse
	}
	if value&(1<<4) != 0 {
		t.loadDelay.Start()
	}
	var bits uint8
	if t.mode == timerModeA {
		if value&(1<<5) != 0 {
			bits = 1
		}
	} else {
		bits = (value & 0x60) >> 5
	}
	switch bits {
	case 0:
		t.inputMode = inputSystemClock
	case 1:
		t.inputMode = inputExternal
	case 2:
		t.inputMode = inputTimerA
	case 3:
		t.inputMode = inputTimerAWithCNT
	}
	t.enable(value&1 != 0)
}

// GetCounterLo/Hi report the live counter, not the latch.
func (t *Timer) GetCounterLo() uint8 { return uint8(t.counter & 0xff) }
func (t *Timer) GetCounterHi() uint8 { return uint8(t.counter >> 8) }

// SetLatchLo/Hi write the reload latch. Writing the high byte while the
// timer is disabled additionally schedules an immediate reload, matching
// real hardware's "latch write loads counter when stopped" behavior.
func (t *Timer) SetLatchLo(value uint8) {
	t.latch = (t.latch & 0xff00) | uint16(value)
}

func (t *Timer) SetLatchHi(value uint8) {
	t.latch = (uint16(value) << 8) | (t.latch & 0x00ff)
	if !t.enabled {
		t.loadDelay.Start()
	}
}

// Clock advances the timer by one cycle and returns whether it underflowed
// this cycle. Order matters: decrement, detect underflow, reload, shift.
func (t *Timer) Clock() bool {
	if t.countDelay.IsDone() {
		t.counter--
	}
	underflow := t.counter == 0 && t.countDelay.HasCycle(2)
	if underflow {
		t.loadDelay.Feed(1)
		if t.runMode == runOneShot {
			t.enable(false)
		}
		t.pulseOutput()
	}
	if t.loadDelay.IsDone() {
		t.counter = t.latch
		t.countDelay.Remove(2)
	}
	t.countDelay.Clock()
	t.loadDelay.Clock()
	return underflow
}

func (t *Timer) pulseOutput() {
	if t.outputMode == outputToggle {
		t.pbOutput = !t.pbOutput
	} else {
		t.pbOutput = true
	}
}

// FeedSource applies the external-feed rules for the current input mode.
// cntRising is the CNT pin's rising-edge state this cycle; timerAOutput is
// timer A's underflow result this cycle (used by timer B's cascade modes).
func (t *Timer) FeedSource(cntRising bool, timerAOutput bool) {
	switch t.inputMode {
	case inputSystemClock:
		// fed through autofeed set up by enable()
	case inputExternal:
		if cntRising {
			t.countDelay.Feed(0)
		}
	case inputTimerA:
		if timerAOutput {
			t.countDelay.Feed(1)
		}
	case inputTimerAWithCNT:
		if timerAOutput && cntRising {
			t.countDelay.Feed(0)
		}
	}
}

// IsPbOn reports whether this timer currently overrides its port-B bit.
func (t *Timer) IsPbOn() bool {
	return t.outputEnabled
}

// GetPbOutput returns the current override bit value, clearing the
// one-cycle pulse after it has been observed once.
func (t *Timer) GetPbOutput() bool {
	v := t.pbOutput
	if t.outputMode == outputPulse {
		t.pbOutput = false
	}
	return v
}

// Reset restores power-on state: latch=0xffff, counter=0, disabled.
func (t *Timer) Reset() {
	t.enabled = false
	t.inputMode = inputSystemClock
	t.outputMode = outputPulse
	t.outputEnabled = false
	t.runMode = runOneShot
	t.countDelay.Reset()
	t.counter = 0
	t.latch = 0xffff
	t.loadDelay.Reset()
	t.pbOutput = false
}

func (t *Timer) enable(enabled bool) {
	if enabled && !t.enabled && t.outputMode == outputToggle {
		// Starting the timer sets the toggle output high.
		t.pbOutput = true
	}
	t.enabled = enabled
	if enabled && t.inputMode == inputSystemClock {
		t.countDelay.Feed(0)
		t.countDelay.Feed(1)
		t.countDelay.SetFeed(0, true)
	} else {
		t.countDelay.Remove(0)
		t.countDelay.Remove(1)
		t.countDelay.SetFeed(0, false)
	}
}
