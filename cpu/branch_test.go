package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjhogan/c64emu/cpu"
)

func TestBranchInstructions(t *testing.T) {
	tests := []struct {
		name       string
		opcode     uint8
		presetP    uint8
		wantTarget uint16
	}{
		{"BEQ taken when Z set", cpu.BEQ, cpu.FlagZ, 0x0210},
		{"BNE taken when Z clear", cpu.BNE, 0, 0x0210},
		{"BCS taken when C set", cpu.BCS, cpu.FlagC, 0x0210},
		{"BCC taken when C clear", cpu.BCC, 0, 0x0210},
		{"BMI taken when N set", cpu.BMI, cpu.FlagN, 0x0210},
		{"BPL taken when N clear", cpu.BPL, 0, 0x0210},
		{"BVS taken when V set", cpu.BVS, cpu.FlagV, 0x0210},
		{"BVC taken when V clear", cpu.BVC, 0, 0x0210},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus, ticks := newTestCpu(t)
			c.P = tt.presetP | cpu.FlagR
			bus.mem[0x0200] = tt.opcode
			bus.mem[0x0201] = 0x0e // PC(0x0202) + 0x0e = 0x0210
			c.Step(countingTick(ticks))
			assert.Equal(t, tt.wantTarget, c.PC)
		})
	}
}

func TestBranchNotTakenFallsThrough(t *testing.T) {
	c, bus, ticks := newTestCpu(t)
	c.P = cpu.FlagR // Z clear
	bus.mem[0x0200] = cpu.BEQ
	bus.mem[0x0201] = 0x0e
	c.Step(countingTick(ticks))
	assert.Equal(t, uint16(0x0202), c.PC)
}

func TestBranchBackwardsNegativeOffset(t *testing.T) {
	c, bus, ticks := newTestCpu(t)
	c.P = cpu.FlagR
	bus.mem[0x0200] = cpu.BPL
	bus.mem[0x0201] = 0xfc // -4: target = 0x0202 - 4 = 0x01fe
	c.Step(countingTick(ticks))
	assert.Equal(t, uint16(0x01fe), c.PC)
}

func TestJmpAbsoluteAndIndirect(t *testing.T) {
	t.Run("JMP absolute", func(t *testing.T) {
		c, bus, ticks := newTestCpu(t)
		bus.mem[0x0200] = cpu.JMP_ABS
		bus.mem[0x0201] = 0x34
		bus.mem[0x0202] = 0x12
		c.Step(countingTick(ticks))
		assert.Equal(t, uint16(0x1234), c.PC)
	})

	t.Run("JMP indirect reproduces the page-wrap bug", func(t *testing.T) {
		c, bus, ticks := newTestCpu(t)
		bus.mem[0x0200] = cpu.JMP_IND
		bus.mem[0x0201] = 0xff
		bus.mem[0x0202] = 0x30
		bus.mem[0x30ff] = 0x00
		bus.mem[0x3000] = 0x40 // high byte wrongly read from 0x3000, not 0x3100
		bus.mem[0x3100] = 0x99
		c.Step(countingTick(ticks))
		assert.Equal(t, uint16(0x4000), c.PC)
	})
}
