package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjhogan/c64emu/cpu"
)

func TestUndocumentedOpcodes(t *testing.T) {
	t.Run("LAX loads A and X from the same fetch", func(t *testing.T) {
		c, bus, ticks := newTestCpu(t)
		bus.mem[0x0200] = cpu.LAX_ZP
		bus.mem[0x0201] = 0x10
		bus.mem[0x0010] = 0x7f
		c.Step(countingTick(ticks))
		assert.Equal(t, uint8(0x7f), c.A)
		assert.Equal(t, uint8(0x7f), c.X)
	})

	t.Run("AXS (SBX) computes (A & X) - operand and sets carry like a compare", func(t *testing.T) {
		c, bus, ticks := newTestCpu(t)
		c.A = 0xff
		c.X = 0x0f
		bus.mem[0x0200] = cpu.AXS_IMM
		bus.mem[0x0201] = 0x05
		c.Step(countingTick(ticks))
		assert.Equal(t, uint8(0x0a), c.X)
		assert.True(t, c.P&cpu.FlagC != 0)
	})

	t.Run("ANE approximates A & X & operand", func(t *testing.T) {
		c, bus, ticks := newTestCpu(t)
		c.A = 0xff
		c.X = 0x0f
		bus.mem[0x0200] = cpu.ANE_IMM
		bus.mem[0x0201] = 0x3c
		c.Step(countingTick(ticks))
		assert.Equal(t, uint8(0x0c), c.A)
	})

	t.Run("LSE (SRE) shifts memory right then EORs into A", func(t *testing.T) {
		c, bus, ticks := newTestCpu(t)
		c.A = 0xff
		bus.mem[0x0200] = cpu.LSE_ZP
		bus.mem[0x0201] = 0x10
		bus.mem[0x0010] = 0x03
		c.Step(countingTick(ticks))
		assert.Equal(t, uint8(0x01), bus.mem[0x0010])
		assert.Equal(t, uint8(0xfe), c.A)
		assert.True(t, c.P&cpu.FlagC != 0)
	})

	t.Run("single-byte NOP variants consume one byte and leave state untouched", func(t *testing.T) {
		for _, opcode := range []uint8{cpu.NOP_IMP_1A, cpu.NOP_IMP_3A, cpu.NOP_IMP_5A, cpu.NOP_IMP_7A, cpu.NOP_IMP_DA, cpu.NOP_IMP_FA} {
			c, bus, ticks := newTestCpu(t)
			bus.mem[0x0200] = opcode
			c.Step(countingTick(ticks))
			assert.Equal(t, uint16(0x0201), c.PC)
		}
	})

	t.Run("SKB reads and discards an immediate byte", func(t *testing.T) {
		c, bus, ticks := newTestCpu(t)
		bus.mem[0x0200] = cpu.SKB_80
		bus.mem[0x0201] = 0xaa
		c.Step(countingTick(ticks))
		assert.Equal(t, uint16(0x0202), c.PC)
	})

	t.Run("SKW reads and discards an absolute address", func(t *testing.T) {
		c, bus, ticks := newTestCpu(t)
		bus.mem[0x0200] = cpu.SKW_0C
		bus.mem[0x0201] = 0x00
		bus.mem[0x0202] = 0x30
		c.Step(countingTick(ticks))
		assert.Equal(t, uint16(0x0203), c.PC)
	})
}
