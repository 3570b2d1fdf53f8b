package device_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjhogan/c64emu/device"
	"github.com/kjhogan/c64emu/signal"
)

func TestKeyboardStartsWithNoKeysPressed(t *testing.T) {
	k := device.NewKeyboard()
	for i, row := range k.Matrix() {
		assert.Equal(t, uint8(0xff), row, "row %d should start unpressed", i)
	}
}

func TestKeyboardPressClearsBothDirections(t *testing.T) {
	k := device.NewKeyboard()
	k.Press(2, 5)
	m := k.Matrix()
	assert.Equal(t, uint8(0xff&^(1<<5)), m[2])
	assert.Equal(t, uint8(0xff&^(1<<2)), m[8+5])
}

func TestKeyboardReleaseRestoresBit(t *testing.T) {
	k := device.NewKeyboard()
	k.Press(0, 0)
	k.Release(0, 0)
	m := k.Matrix()
	assert.Equal(t, uint8(0xff), m[0])
	assert.Equal(t, uint8(0xff), m[8])
}

func TestJoystickSetAndState(t *testing.T) {
	j := &device.Joystick{}
	j.Set(device.JoyUp, true)
	j.Set(device.JoyFire, true)
	assert.Equal(t, uint8(device.JoyUp|device.JoyFire), j.State())

	j.Set(device.JoyUp, false)
	assert.Equal(t, uint8(device.JoyFire), j.State())
}

func TestDatassettePulseFlagNoopWhenMotorOff(t *testing.T) {
	flag := signal.NewPin()
	d := device.NewDatassette(flag)
	d.PulseFlag()
	assert.False(t, flag.IsFalling())
}

func TestDatassettePulseFlagDrivesEdgeWhenMotorOn(t *testing.T) {
	flag := signal.NewPin()
	d := device.NewDatassette(flag)
	d.SetMotor(true)
	d.PulseFlag()
	assert.True(t, flag.IsFalling())
}

func TestDatassetteSwitchClosed(t *testing.T) {
	d := device.NewDatassette(signal.NewPin())
	assert.False(t, d.SwitchClosed())
	d.SetSwitchClosed(true)
	assert.True(t, d.SwitchClosed())
}

func TestDatassetteClockIsSilentUntilTapeIsPlaying(t *testing.T) {
	flag := signal.NewPin()
	d := device.NewDatassette(flag)
	d.SetMotor(true) // motor alone, no cassette loaded: not "playing"
	for i := 0; i < 20000; i++ {
		d.Clock()
	}
	assert.False(t, flag.IsFalling())
}

func TestDatassetteClockEmitsPeriodicPulsesWhilePlaying(t *testing.T) {
	flag := signal.NewPin()
	d := device.NewDatassette(flag)
	d.SetSwitchClosed(true)
	d.SetMotor(true)

	for i := 0; i < 7999; i++ {
		d.Clock()
	}
	assert.False(t, flag.IsFalling())
	d.Clock() // 8000th cycle: cyclesPerPulse reached
	assert.True(t, flag.IsFalling())

	flag.Reset()
	for i := 0; i < 7999; i++ {
		d.Clock()
	}
	assert.False(t, flag.IsFalling())
	d.Clock() // second pulse, one full period later
	assert.True(t, flag.IsFalling())
}
