package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjhogan/c64emu/config"
)

func TestNewDefaultsToPal(t *testing.T) {
	c := config.New()
	assert.Equal(t, config.TimingPal, c.Timing)
	assert.Empty(t, c.RomPaths)
	assert.Empty(t, c.CartridgePath)
	assert.Empty(t, c.TapePath)
}

func TestOptionsApplyInOrder(t *testing.T) {
	c := config.New(
		config.WithTiming(config.TimingNtsc),
		config.WithRom(config.RomBasic, "basic.bin"),
		config.WithRom(config.RomKernal, "kernal.bin"),
		config.WithRom(config.RomCharset, "chargen.bin"),
		config.WithCartridge("game.crt"),
		config.WithTape("tape.t64"),
	)

	assert.Equal(t, config.TimingNtsc, c.Timing)
	assert.Equal(t, "basic.bin", c.RomPaths[config.RomBasic])
	assert.Equal(t, "kernal.bin", c.RomPaths[config.RomKernal])
	assert.Equal(t, "chargen.bin", c.RomPaths[config.RomCharset])
	assert.Equal(t, "game.crt", c.CartridgePath)
	assert.Equal(t, "tape.t64", c.TapePath)
}
