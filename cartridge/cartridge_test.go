package cartridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjhogan/c64emu/cartridge"
)

func TestHwTypeFromCrt(t *testing.T) {
	tests := []struct {
		value uint16
		want  cartridge.HwType
	}{
		{0, cartridge.HwNormal},
		{3, cartridge.HwFinal3},
		{4, cartridge.HwSimonsBasic},
		{5, cartridge.HwOceanType1},
		{15, cartridge.HwGameSystem},
		{19, cartridge.HwMagicDesk},
		{32, cartridge.HwEasyFlash},
	}
	for _, tt := range tests {
		got, err := cartridge.HwTypeFromCrt(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := cartridge.HwTypeFromCrt(999)
	assert.Error(t, err)
}

func romBank(bankNumber uint8, offset uint16, fill byte) *cartridge.Chip {
	data := make([]byte, 0x2000)
	for i := range data {
		data[i] = fill
	}
	return &cartridge.Chip{Type: cartridge.ChipRom, BankNumber: bankNumber, Offset: offset, Data: data}
}

func TestNormalCartridgeReadsThroughCurrentBank(t *testing.T) {
	c := cartridge.New(cartridge.HwNormal, true, true)
	c.Add(romBank(0, 0x8000, 0xaa))
	c.Add(romBank(1, 0x8000, 0xbb))
	c.Reset()

	v, ok := c.ReadFaded(0x8000)
	require.True(t, ok)
	assert.Equal(t, uint8(0xaa), v)

	// HwNormal is mirrored: bank 0 at ROML also reads at ROMH.
	v, ok = c.ReadFaded(0xa000)
	require.True(t, ok)
	assert.Equal(t, uint8(0xaa), v)

	c.Write(0xde00, 1)
	v, ok = c.ReadFaded(0x8000)
	require.True(t, ok)
	assert.Equal(t, uint8(0xbb), v)
}

func TestReadFadedReportsNotOkWhenNoBankMapped(t *testing.T) {
	c := cartridge.New(cartridge.HwEasyFlash, false, false)
	c.Add(romBank(0, 0x8000, 0x11))
	// No Reset/Add(bankHi): ROMH window should come back not-ok.
	_, ok := c.ReadFaded(0xa000)
	assert.False(t, ok)
}

func TestEasyFlashBankSwitch(t *testing.T) {
	c := cartridge.New(cartridge.HwEasyFlash, false, false)
	c.Add(romBank(0, 0x8000, 0x01))
	c.Add(romBank(2, 0x8000, 0x02))
	c.Reset()

	c.Write(0xde00, 2)
	v, ok := c.ReadFaded(0x8000)
	require.True(t, ok)
	assert.Equal(t, uint8(0x02), v)
}

func TestMagicDeskExromOverride(t *testing.T) {
	var observed cartridge.IoConfig
	c := cartridge.New(cartridge.HwMagicDesk, false, false)
	c.SetIoObserver(func(cfg cartridge.IoConfig) { observed = cfg })
	c.Add(romBank(0, 0x8000, 0x00))
	c.Reset()
	require.False(t, observed.Exrom)

	c.Write(0xde00, 0x80) // bit 7 set: disable cartridge ROM
	assert.True(t, observed.Exrom)
	assert.True(t, observed.Game)
}

func TestSimonsBasicGameLine(t *testing.T) {
	var observed cartridge.IoConfig
	c := cartridge.New(cartridge.HwSimonsBasic, false, true)
	c.SetIoObserver(func(cfg cartridge.IoConfig) { observed = cfg })
	c.Add(romBank(0, 0x8000, 0x00))
	c.Reset()

	c.Write(0xde00, 0x01)
	assert.True(t, observed.Game)

	c.Write(0xde00, 0x00)
	assert.False(t, observed.Game)
}

func TestInvalidBankNumberPanics(t *testing.T) {
	c := cartridge.New(cartridge.HwNormal, false, false)
	assert.Panics(t, func() {
		c.Write(0xde00, 63) // no bank 63 installed
	})
}
