package sid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjhogan/c64emu/sid"
)

func TestPaddleRegistersReadAsUnconnected(t *testing.T) {
	s := sid.New()
	assert.Equal(t, uint8(0xff), s.Read(sid.RegPotX))
	assert.Equal(t, uint8(0xff), s.Read(sid.RegPotY))
}

func TestOscillatorAndEnvelopeReadbackIsZero(t *testing.T) {
	s := sid.New()
	assert.Equal(t, uint8(0), s.Read(sid.RegOsc3))
	assert.Equal(t, uint8(0), s.Read(sid.RegEnv3))
}

func TestWriteOnlyRegistersReadAsZeroRegardlessOfWrite(t *testing.T) {
	s := sid.New()
	s.Write(0x00, 0xff) // voice 1 frequency lo
	assert.Equal(t, uint8(0), s.Read(0x00))
}

func TestResetClearsRegisters(t *testing.T) {
	s := sid.New()
	s.Write(0x18, 0x0f) // volume
	s.Reset()
	assert.Equal(t, uint8(0), s.Read(0x18))
}
