// Package cpu implements the 6510: the 6502 core plus its internal 8-bit
// I/O port at addresses 0x0000/0x0001 used to drive the PLA's memory map.
//
// Execution is tick-driven rather than fixed-cycle-count: every bus access
// invokes a TickFn exactly once, and addressing modes pay their documented
// extra cycle only when the real hardware would (page crossing on indexed
// reads, unconditionally on read-modify-write).
//
// Grounded on original_source (binaryfields/zinc64)'s
// zinc64-emu/src/cpu/operand.rs and zinc64-system/src/c64.rs's step_internal
// wiring, NOT the project's own older src/cpu/cpu.rs (marked by its authors
// "TODO cpu: switch to clock accurate emulation"). Opcode constant names and
// arithmetic helpers are kept from cpu/cpu.go; its fixed-cycle dispatch
// table is replaced.
package cpu

import (
	"log/slog"

	"github.com/kjhogan/c64emu/signal"
)

// TickFn is invoked once per bus cycle (fetch, read, write, or dummy).
type TickFn func()

// Bus is the address space the CPU reads and writes through for every
// address except its own internal port at 0x0000/0x0001.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// MemoryBus is kept as an alias of Bus for the disassembler tooling, which
// predates the tick-driven rewrite and only ever needed the same two
// methods.
type MemoryBus = Bus

// Status flag bits (NV-BDIZC).
const (
	FlagC uint8 = 0x01
	FlagZ uint8 = 0x02
	FlagI uint8 = 0x04
	FlagD uint8 = 0x08
	FlagB uint8 = 0x10
	FlagR uint8 = 0x20 // Reserved, always read as 1
	FlagV uint8 = 0x40
	FlagN uint8 = 0x80
)

// Interrupt vectors.
const (
	VectorNMI   = 0xfffa
	VectorReset = 0xfffc
	VectorIRQ   = 0xfffe
)

// Jam opcodes: undefined/halting opcodes that lock the 6510 until reset.
var jamOpcodes = map[uint8]bool{
	0x02: true, 0x12: true, 0x22: true, 0x32: true, 0x42: true, 0x52: true,
	0x62: true, 0x72: true, 0x92: true, 0xb2: true, 0xd2: true, 0xf2: true,
}

// Cpu is the 6510 core: registers, internal I/O port, and interrupt lines.
type Cpu struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8

	Port *signal.IoPort // internal port at 0x0000 (direction) / 0x0001 (output)
	BA   *signal.Pin    // bus-available: low stalls CPU reads
	Irq  *signal.IrqLine
	Nmi  *signal.IrqLine

	bus Bus
	log *slog.Logger

	nmiEdgeSeen bool
	lastPC      uint16
	jammed      bool
}

// New builds a Cpu wired to bus and sharing the given signal primitives.
// log may be nil.
func New(bus Bus, port *signal.IoPort, ba *signal.Pin, irq, nmi *signal.IrqLine, log *slog.Logger) *Cpu {
	if log == nil {
		log = slog.Default()
	}
	return &Cpu{bus: bus, Port: port, BA: ba, Irq: irq, Nmi: nmi, log: log}
}

// Reset services the reset vector and selects the canonical power-on PLA
// mode (port direction 0x2f, output 0x1f — i.e. all ROMs + I/O visible).
func (c *Cpu) Reset() {
	c.SP = 0xfd
	c.P = FlagI | FlagR
	c.Port.SetDirection(0x2f)
	c.Port.SetValue(0x1f)
	lo := c.read(VectorReset)
	hi := c.read(VectorReset + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.nmiEdgeSeen = false
	c.jammed = false
}

// readInternal/writeInternal intercept 0x0000/0x0001 before the bus: the
// 6510's internal port lives at those two addresses and must never reach
// the memory map beneath it. readInternal also holds a bus read while BA is
// low, ticking once per stalled cycle.
func (c *Cpu) readInternal(address uint16, tick TickFn) uint8 {
	tick()
	for address > 0x0001 && c.BA.IsLow() {
		tick()
	}
	return c.read(address)
}

func (c *Cpu) writeInternal(address uint16, value uint8, tick TickFn) {
	tick()
	c.write(address, value)
}

func (c *Cpu) read(address uint16) uint8 {
	switch address {
	case 0x0000:
		return c.Port.Direction()
	case 0x0001:
		return c.Port.GetValue()
	default:
		if c.BA.IsLow() {
			// Only Reset's untimed vector reads get here with BA low
			// (readInternal waits for BA first); the bus is not sampled.
			return 0
		}
		return c.bus.Read(address)
	}
}

func (c *Cpu) write(address uint16, value uint8) {
	switch address {
	case 0x0000:
		c.Port.SetDirection(value)
	case 0x0001:
		c.Port.SetValue(value)
	default:
		c.bus.Write(address, value)
	}
}

func (c *Cpu) readZpPointer(addr uint8, tick TickFn) uint16 {
	lo := c.readInternal(uint16(addr), tick)
	hi := c.readInternal(uint16(addr+1), tick)
	return uint16(hi)<<8 | uint16(lo)
}

// readIndirectBug implements the documented 6502 JMP ($nnnn) page-wrap bug:
// the high byte is fetched from the same page as the low byte rather than
// a true 16-bit increment.
func (c *Cpu) readIndirectBug(addr uint16, tick TickFn) uint16 {
	lo := c.readInternal(addr, tick)
	hiAddr := (addr & 0xff00) | uint16(uint8(addr)+1)
	hi := c.readInternal(hiAddr, tick)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Cpu) fetch(tick TickFn) uint8 {
	v := c.readInternal(c.PC, tick)
	c.PC++
	return v
}

func (c *Cpu) fetchWord(tick TickFn) uint16 {
	lo := c.fetch(tick)
	hi := c.fetch(tick)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Cpu) push(value uint8, tick TickFn) {
	c.writeInternal(0x0100+uint16(c.SP), value, tick)
	c.SP--
}

func (c *Cpu) pull(tick TickFn) uint8 {
	c.SP++
	return c.readInternal(0x0100+uint16(c.SP), tick)
}

func (c *Cpu) pushWord(value uint16, tick TickFn) {
	c.push(uint8(value>>8), tick)
	c.push(uint8(value), tick)
}

func (c *Cpu) pullWord(tick TickFn) uint16 {
	lo := c.pull(tick)
	hi := c.pull(tick)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Cpu) setFlag(flag uint8, value bool) {
	if value {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

func (c *Cpu) flag(flag uint8) bool {
	return c.P&flag != 0
}

func (c *Cpu) updateZN(value uint8) {
	c.setFlag(FlagZ, value == 0)
	c.setFlag(FlagN, value&0x80 != 0)
}

// IsCpuJam reports whether the CPU halted on an undefined jam opcode.
func (c *Cpu) IsCpuJam() bool {
	return c.jammed
}

// Step decodes and executes one instruction, ticking tick once per bus
// cycle the real hardware would perform, including interrupt dispatch.
func (c *Cpu) Step(tick TickFn) {
	c.lastPC = c.PC
	if c.serviceInterrupts(tick) {
		return
	}
	opcode := c.fetch(tick)
	c.execute(opcode, tick)
}

// serviceInterrupts samples NMI (edge-triggered) and IRQ (level, masked by
// the I flag) before each fetch.
func (c *Cpu) serviceInterrupts(tick TickFn) bool {
	nmiLow := c.Nmi.IsLow()
	if nmiLow && !c.nmiEdgeSeen {
		c.nmiEdgeSeen = true
		c.dispatchInterrupt(VectorNMI, tick)
		return true
	}
	if !nmiLow {
		c.nmiEdgeSeen = false
	}
	if c.Irq.IsLow() && !c.flag(FlagI) {
		c.dispatchInterrupt(VectorIRQ, tick)
		return true
	}
	return false
}

func (c *Cpu) dispatchInterrupt(vector uint16, tick TickFn) {
	tick()
	tick()
	c.pushWord(c.PC, tick)
	c.push((c.P|FlagR)&^FlagB, tick)
	c.setFlag(FlagI, true)
	lo := c.readInternal(vector, tick)
	hi := c.readInternal(vector+1, tick)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *Cpu) decodeOperand(mode addrMode, tick TickFn) operand {
	switch mode {
	case modeImplied, modeAccumulator:
		return operand{mode: mode}
	case modeImmediate, modeZeroPage, modeZeroPageX, modeZeroPageY, modeIndirectX, modeIndirectY:
		return operand{mode: mode, value: uint16(c.fetch(tick))}
	case modeRelative:
		offset := int8(c.fetch(tick))
		return operand{mode: mode, value: uint16(int16(offset))}
	case modeAbsolute, modeAbsoluteX, modeAbsoluteY, modeIndirect:
		return operand{mode: mode, value: c.fetchWord(tick)}
	default:
		panic("cpu: unknown addressing mode")
	}
}

func (c *Cpu) execute(opcode uint8, tick TickFn) {
	if jamOpcodes[opcode] {
		c.PC = c.lastPC
		c.jammed = true
		c.log.Debug("cpu jam", "opcode", opcode, "pc", c.lastPC)
		return
	}
	ins, ok := instructionTable[opcode]
	if !ok {
		panic("cpu: decode failure, undefined opcode")
	}
	op := c.decodeOperand(ins.mode, tick)
	ins.exec(c, op, tick)
}
