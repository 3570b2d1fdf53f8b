package device

import "github.com/kjhogan/c64emu/signal"

// Datassette models the cassette motor/write/sense bits of the CPU
// internal port (bit 3 cassette write, bit 4 cassette switch (read), bit
// 5 cassette motor) and the FLAG pin it drives on CIA1 to
// signal a read pulse.
//
// No dedicated cassette device source survived the retrieval filter
// (original_source/src/io/deviceio.rs only routes VIC/CIA/color-RAM MMIO,
// not the cassette itself); built directly from first principles and
// wired the way the CIA's other shared pins are (signal.Pin).

// cyclesPerPulse is a simplified fixed-period tape cadence. Real tape
// pulses are variable-length (encoding data), but no bitstream source
// survived the retrieval filter (see package doc) — Clock models a
// constant-rate square wave, enough to exercise the FLAG-pin wiring end
// to end without a .t64/.tap bitstream decoder.
const cyclesPerPulse = 8000

type Datassette struct {
	Flag *signal.Pin

	motorOn      bool
	playing      bool // motorOn && switchClosed, cached on every state change
	switchClosed bool // true when a cassette is inserted and the PLAY button held
	counter      uint32
}

func NewDatassette(flag *signal.Pin) *Datassette {
	return &Datassette{Flag: flag}
}

// SetMotor is driven by the CPU internal port's bit 5 on every write.
func (d *Datassette) SetMotor(on bool) {
	d.motorOn = on
	d.playing = d.motorOn && d.switchClosed
}

// SetSwitchClosed models whether a cassette is loaded and play is pressed;
// the state gates Clock's FLAG pulses and is reported by SwitchClosed.
func (d *Datassette) SetSwitchClosed(closed bool) {
	d.switchClosed = closed
	d.playing = d.motorOn && d.switchClosed
}

// Clock advances the tape cadence by one bus cycle, emitting a FLAG pulse
// every cyclesPerPulse cycles while a cassette is loaded and the motor is
// running. A no-op otherwise.
func (d *Datassette) Clock() {
	if !d.playing {
		d.counter = 0
		return
	}
	d.counter++
	if d.counter >= cyclesPerPulse {
		d.counter = 0
		d.PulseFlag()
	}
}

// SwitchClosed reports the state last set by SetSwitchClosed. The CPU
// internal port's bit 4 is not driven from it.
func (d *Datassette) SwitchClosed() bool {
	return d.switchClosed
}

// PulseFlag drives a falling edge on the FLAG pin, modeling one data pulse
// read off tape; a no-op when the motor is off.
func (d *Datassette) PulseFlag() {
	if !d.motorOn {
		return
	}
	d.Flag.SetActive(true)
	d.Flag.SetActive(false)
}
