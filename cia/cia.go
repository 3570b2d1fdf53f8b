// Package cia implements the 6526 Complex Interface Adapter: pipelined
// timers, BCD time-of-day clock, interrupt control, and the parallel I/O
// ports shared with the keyboard matrix and joysticks.
//
// Grounded on original_source (binaryfields/zinc64)'s
// zinc64-core/src/io/cia.rs and src/io/timer.rs; the non-pipelined timer
// in c64/cia/cia.go is not adapted here — a non-pipelined implementation
// loses the count/load delay most commercial software relies on.
package cia

import (
	"log/slog"

	"github.com/kjhogan/c64emu/shiftdelay"
	"github.com/kjhogan/c64emu/signal"
)

// Register offsets within the 16-register CIA file.
const (
	RegPRA = 0x00
	RegPRB = 0x01
	RegDDRA = 0x02
	RegDDRB = 0x03
	RegTALO = 0x04
	RegTAHI = 0x05
	RegTBLO = 0x06
	RegTBHI = 0x07
	RegTODTS = 0x08
	RegTODSEC = 0x09
	RegTODMIN = 0x0a
	RegTODHR = 0x0b
	RegSDR = 0x0c
	RegICR = 0x0d
	RegCRA = 0x0e
	RegCRB = 0x0f
)

// Mode selects which chip instance this is: it picks the port-B override
// bit semantics (none differ, in practice) and the IRQ-line source slot.
type Mode int

const (
	Cia1 Mode = iota
	Cia2
)

func (m Mode) irqSource() uint8 {
	return uint8(m)
}

const (
	intDelay0 = 1 << 0
	intDelay1 = 1 << 1
)

// Cia aggregates the two timers, TOD clock/alarm, interrupt control, and
// the shared ports/pins/line that the system builder wires to it.
type Cia struct {
	mode Mode

	Joystick1      func() uint8 // nil => no joystick attached
	Joystick2      func() uint8
	KeyboardMatrix func() [16]uint8 // columns 0-7, rows 8-15 (active-low)

	irqControl Icr
	irqDelay   *shiftdelay.ShiftDelay
	TimerA     *Timer
	TimerB     *Timer
	TodAlarm   *Rtc
	TodClock   *Rtc
	todSetAlarm bool

	CntPin  *signal.Pin
	FlagPin *signal.Pin
	IrqLine *signal.IrqLine
	PortA   *signal.IoPort
	PortB   *signal.IoPort

	log *slog.Logger
}

// New builds a Cia sharing the given signal primitives. log may be nil.
func New(mode Mode, portA, portB *signal.IoPort, flagPin *signal.Pin, irqLine *signal.IrqLine, log *slog.Logger) *Cia {
	if log == nil {
		log = slog.Default()
	}
	c := &Cia{
		mode:     mode,
		irqDelay: shiftdelay.New(15),
		TimerA:   NewTimer(timerModeA),
		TimerB:   NewTimer(timerModeB),
		TodAlarm: NewRtc(),
		TodClock: NewRtc(),
		CntPin:   signal.NewPin(),
		FlagPin:  flagPin,
		IrqLine:  irqLine,
		PortA:    portA,
		PortB:    portB,
		log:      log,
	}
	c.CntPin.SetActive(true)
	return c
}

// Clock advances the CIA by one cycle: feed timer A, feed timer B from CNT
// or timer A's underflow per its input mode, latch ICR events, and delay
// the IRQ line assertion by the documented one cycle.
func (c *Cia) Clock() {
	c.TimerA.FeedSource(c.CntPin.IsRising(), false)
	timerAOutput := c.TimerA.Clock()
	c.TimerB.FeedSource(c.CntPin.IsRising(), timerAOutput)
	timerBOutput := c.TimerB.Clock()

	irqEvent := false
	if timerAOutput {
		c.irqControl.SetEvent(0)
		irqEvent = true
	}
	if timerBOutput {
		c.irqControl.SetEvent(1)
		irqEvent = true
	}
	if c.FlagPin.IsFalling() {
		c.irqControl.SetEvent(4)
		irqEvent = true
	}
	if irqEvent && c.irqControl.IsTriggered() {
		c.irqDelay.Feed(0)
	}
	if c.irqDelay.HasCycle(1) {
		c.IrqLine.SetLow(c.mode.irqSource(), true)
	}
	c.irqDelay.Clock()
}

// ClockDelta clocks delta times in a row.
func (c *Cia) ClockDelta(delta uint32) {
	for i := uint32(0); i < delta; i++ {
		c.Clock()
	}
}

// ProcessVsync advances the TOD clock by one tenth of a second.
func (c *Cia) ProcessVsync() {
	c.TodClock.Tick()
	if c.TodClock.Equal(c.TodAlarm) {
		c.irqControl.SetEvent(2)
		if c.irqControl.IsTriggered() {
			c.irqDelay.Feed(0)
		}
	}
}

// Reset restores power-on state.
func (c *Cia) Reset() {
	c.irqControl.Reset()
	c.irqDelay.Reset()
	c.TimerA.Reset()
	c.TimerB.Reset()
	c.todSetAlarm = false
	c.CntPin.SetActive(true)
	c.FlagPin.SetActive(false)
	c.PortA.Reset()
	c.PortB.Reset()
}

// Read dispatches a register read.
func (c *Cia) Read(reg uint8) uint8 {
	var value uint8
	switch reg {
	case RegPRA:
		if c.mode == Cia1 {
			value = c.readCia1PortA()
		} else {
			value = c.PortA.GetValue()
		}
	case RegPRB:
		if c.mode == Cia1 {
			value = c.readCia1PortB()
		} else {
			value = c.readCia2PortB()
		}
	case RegDDRA:
		value = c.PortA.Direction()
	case RegDDRB:
		value = c.PortB.Direction()
	case RegTALO:
		value = c.TimerA.GetCounterLo()
	case RegTAHI:
		value = c.TimerA.GetCounterHi()
	case RegTBLO:
		value = c.TimerB.GetCounterLo()
	case RegTBHI:
		value = c.TimerB.GetCounterHi()
	case RegTODTS:
		c.TodClock.SetEnabled(true)
		value = toBcd(c.TodClock.GetTenth())
	case RegTODSEC:
		value = toBcd(c.TodClock.GetSeconds())
	case RegTODMIN:
		value = toBcd(c.TodClock.GetMinutes())
	case RegTODHR:
		value = toBcd(c.TodClock.GetHours())
		if c.TodClock.GetPm() {
			value |= 0x80
		}
	case RegSDR:
		value = 0
	case RegICR:
		value = c.irqControl.GetData()
		c.irqControl.Clear()
		c.irqDelay.Reset()
		c.IrqLine.SetLow(c.mode.irqSource(), false)
	case RegCRA:
		value = c.TimerA.GetConfig()
	case RegCRB:
		value = c.TimerB.GetConfig()
		if c.todSetAlarm {
			value |= 0x80
		}
	default:
		panic("cia: invalid register")
	}
	c.log.Debug("cia read", "reg", reg, "value", value)
	return value
}

// Write dispatches a register write.
func (c *Cia) Write(reg uint8, value uint8) {
	c.log.Debug("cia write", "reg", reg, "value", value)
	switch reg {
	case RegPRA:
		c.PortA.SetValue(value)
	case RegPRB:
		c.PortB.SetValue(value)
	case RegDDRA:
		c.PortA.SetDirection(value)
	case RegDDRB:
		c.PortB.SetDirection(value)
	case RegTALO:
		c.TimerA.SetLatchLo(value)
	case RegTAHI:
		c.TimerA.SetLatchHi(value)
	case RegTBLO:
		c.TimerB.SetLatchLo(value)
	case RegTBHI:
		c.TimerB.SetLatchHi(value)
	case RegTODTS:
		c.todTarget().SetTenth(fromBcd(value & 0x0f))
	case RegTODSEC:
		c.todTarget().SetSeconds(fromBcd(value & 0x7f))
	case RegTODMIN:
		c.todTarget().SetMinutes(fromBcd(value & 0x7f))
	case RegTODHR:
		tod := c.todTarget()
		tod.SetEnabled(false)
		tod.SetHours(fromBcd(value & 0x7f))
		tod.SetPm(value&0x80 != 0)
	case RegSDR:
		// Serial data register is not modeled; writes are accepted and ignored.
	case RegICR:
		c.irqControl.UpdateMask(value)
		if c.irqControl.IsTriggered() {
			c.irqDelay.Feed(0)
		}
	case RegCRA:
		c.TimerA.SetConfig(value)
	case RegCRB:
		c.TimerB.SetConfig(value)
		c.todSetAlarm = value&0x80 != 0
	default:
		panic("cia: invalid register")
	}
}

func (c *Cia) todTarget() *Rtc {
	if c.todSetAlarm {
		return c.TodAlarm
	}
	return c.TodClock
}

func (c *Cia) readCia1PortA() uint8 {
	activeColumns := c.PortB.GetValue()
	keyboardState := c.scanKeyboardActiveCols(activeColumns)
	joystickState := c.scanJoystick(c.Joystick2)
	result := c.PortA.GetValueWithInput(keyboardState)
	return result & joystickState
}

func (c *Cia) readCia1PortB() uint8 {
	activeRows := c.PortA.GetValue()
	keyboardState := c.scanKeyboardActiveRows(activeRows)
	joystickState := c.scanJoystick(c.Joystick1)
	result := c.PortB.GetValueWithInput(keyboardState)
	result = c.applyTimerPbOverrides(result)
	return result & joystickState
}

func (c *Cia) readCia2PortB() uint8 {
	result := c.PortB.GetValue()
	return c.applyTimerPbOverrides(result)
}

func (c *Cia) applyTimerPbOverrides(result uint8) uint8 {
	if c.TimerA.IsPbOn() {
		if c.TimerA.GetPbOutput() {
			result |= 1 << 6
		} else {
			result &^= 1 << 6
		}
	}
	if c.TimerB.IsPbOn() {
		if c.TimerB.GetPbOutput() {
			result |= 1 << 7
		} else {
			result &^= 1 << 7
		}
	}
	return result
}

func (c *Cia) scanJoystick(get func() uint8) uint8 {
	if get == nil {
		return 0xff
	}
	return ^get()
}

func (c *Cia) scanKeyboardActiveCols(activeColumns uint8) uint8 {
	if c.KeyboardMatrix == nil {
		return 0xff
	}
	matrix := c.KeyboardMatrix()
	result := uint8(0xff)
	for col := uint(0); col < 8; col++ {
		if activeColumns&(1<<col) == 0 {
			result &= matrix[8+col]
		}
	}
	return result
}

func (c *Cia) scanKeyboardActiveRows(activeRows uint8) uint8 {
	if c.KeyboardMatrix == nil {
		return 0xff
	}
	matrix := c.KeyboardMatrix()
	result := uint8(0xff)
	for row := uint(0); row < 8; row++ {
		if activeRows&(1<<row) == 0 {
			result &= matrix[row]
		}
	}
	return result
}
