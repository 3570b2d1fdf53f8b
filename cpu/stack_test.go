package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjhogan/c64emu/cpu"
)

func TestPushPullInstructions(t *testing.T) {
	t.Run("PHA then PLA round-trips A", func(t *testing.T) {
		c, bus, ticks := newTestCpu(t)
		c.A = 0x5a
		bus.mem[0x0200] = cpu.PHA
		bus.mem[0x0201] = cpu.LDA_IMM
		bus.mem[0x0202] = 0x00
		bus.mem[0x0203] = cpu.PLA
		tick := countingTick(ticks)
		c.Step(tick)
		assert.Equal(t, uint8(0xfc), c.SP)
		c.Step(tick) // LDA #$00 clobbers A
		c.Step(tick) // PLA restores it
		assert.Equal(t, uint8(0x5a), c.A)
		assert.Equal(t, uint8(0xfd), c.SP)
	})

	t.Run("PHP pushes B and Reserved set", func(t *testing.T) {
		c, bus, ticks := newTestCpu(t)
		c.P = cpu.FlagN | cpu.FlagC
		bus.mem[0x0200] = cpu.PHP
		c.Step(countingTick(ticks))
		pushed := bus.mem[0x0100+uint16(c.SP)+1]
		assert.Equal(t, cpu.FlagN|cpu.FlagC|cpu.FlagB|cpu.FlagR, pushed)
	})
}

func TestJsrRts(t *testing.T) {
	c, bus, ticks := newTestCpu(t)
	bus.mem[0x0200] = cpu.JSR_ABS
	bus.mem[0x0201] = 0x00
	bus.mem[0x0202] = 0x30
	bus.mem[0x3000] = cpu.RTS

	tick := countingTick(ticks)
	c.Step(tick)
	assert.Equal(t, uint16(0x3000), c.PC)
	c.Step(tick)
	assert.Equal(t, uint16(0x0203), c.PC)
}

func TestBrkPushesPcPlusOneAndSetsI(t *testing.T) {
	c, bus, ticks := newTestCpu(t)
	bus.mem[0xfffe] = 0x00
	bus.mem[0xffff] = 0x40 // IRQ/BRK vector -> 0x4000
	bus.mem[0x0200] = cpu.BRK

	c.Step(countingTick(ticks))
	assert.Equal(t, uint16(0x4000), c.PC)
	assert.True(t, c.P&cpu.FlagI != 0)

	pushedP := bus.mem[0x0100+uint16(c.SP)+1]
	assert.Equal(t, cpu.FlagR|cpu.FlagB, pushedP&(cpu.FlagR|cpu.FlagB))

	pcLo := bus.mem[0x0100+uint16(c.SP)+2]
	pcHi := bus.mem[0x0100+uint16(c.SP)+3]
	assert.Equal(t, uint16(0x0202), uint16(pcHi)<<8|uint16(pcLo))
}

func TestRti(t *testing.T) {
	c, bus, ticks := newTestCpu(t)

	c.SP = 0xfa
	bus.mem[0x01fb] = cpu.FlagN | cpu.FlagC
	bus.mem[0x01fc] = 0x12 // PC lo
	bus.mem[0x01fd] = 0x34 // PC hi

	bus.mem[0x0200] = cpu.RTI
	c.Step(countingTick(ticks))
	assert.Equal(t, uint16(0x3412), c.PC)
	assert.True(t, c.P&cpu.FlagN != 0)
	assert.True(t, c.P&cpu.FlagC != 0)
}
