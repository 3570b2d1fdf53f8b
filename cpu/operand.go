package cpu

// addrMode names a 6510 addressing mode, used by the instruction table to
// decode the right number of operand bytes and to compute effective
// addresses with the documented extra-tick rules.
type addrMode int

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirectX
	modeIndirectY
	modeIndirect // JMP ($nnnn) only
	modeRelative
)

// operand is a decoded addressing-mode operand: the raw operand bytes plus
// the mode that interprets them. ea/get/set mirror the tick-driven
// addressing rules exactly (page-crossing extra tick on reads,
// always-extra-tick for read-modify-write).
type operand struct {
	mode  addrMode
	value uint16 // immediate value, zero-page/absolute address, or relative offset (sign-extended)
}

// ea computes the effective address, ticking tickFn for every dummy bus
// cycle the real hardware performs while forming the address. rmw must be
// true for read-modify-write instructions (ASL/LSR/ROL/ROR/INC/DEC and
// their illegal-opcode combinations), which always pay the page-cross
// penalty regardless of whether a page was actually crossed.
func (o operand) ea(c *Cpu, rmw bool, tick TickFn) uint16 {
	switch o.mode {
	case modeZeroPage:
		return o.value
	case modeZeroPageX:
		tick()
		return uint16(uint8(o.value) + c.X)
	case modeZeroPageY:
		tick()
		return uint16(uint8(o.value) + c.Y)
	case modeAbsolute:
		return o.value
	case modeAbsoluteX:
		base := o.value
		result := base + uint16(c.X)
		if rmw || pageCrossed(base, result) {
			tick()
		}
		return result
	case modeAbsoluteY:
		base := o.value
		result := base + uint16(c.Y)
		if rmw || pageCrossed(base, result) {
			tick()
		}
		return result
	case modeIndirectX:
		zp := uint8(o.value) + c.X
		tick()
		return c.readZpPointer(zp, tick)
	case modeIndirectY:
		base := c.readZpPointer(uint8(o.value), tick)
		result := base + uint16(c.Y)
		if rmw || pageCrossed(base, result) {
			tick()
		}
		return result
	case modeIndirect:
		return c.readIndirectBug(o.value, tick)
	case modeRelative:
		pc := c.PC
		ea := pc + o.value // value is sign-extended into uint16 two's complement
		if pageCrossed(pc, ea) {
			tick()
		}
		return ea
	default:
		panic("cpu: illegal addressing mode for ea()")
	}
}

// get reads the operand's value, dispatching through ea() for every mode
// except Accumulator/Immediate which need no bus access.
func (o operand) get(c *Cpu, tick TickFn) uint8 {
	return o.getValue(c, false, tick)
}

// getRMW reads the operand's value as the read phase of a read-modify-write
// instruction. Indexed addressing (ZeroPageX, AbsoluteX/Y) pays its extra
// bus tick on this read regardless of whether a page was actually crossed,
// same as set() already does on the write phase — real RMW hardware always
// performs the dummy indexed access, crossing or not.
func (o operand) getRMW(c *Cpu, tick TickFn) uint8 {
	return o.getValue(c, true, tick)
}

func (o operand) getValue(c *Cpu, rmw bool, tick TickFn) uint8 {
	switch o.mode {
	case modeAccumulator:
		return c.A
	case modeImmediate:
		return uint8(o.value)
	default:
		addr := o.ea(c, rmw, tick)
		return c.readInternal(addr, tick)
	}
}

// set writes the operand's value, used by stores and read-modify-write
// instructions (rmw selects the always-extra-tick indexed-addressing rule).
// For read-modify-write accesses, it also pays the dummy write-back of the
// unmodified value the real bus performs before the final write.
func (o operand) set(c *Cpu, value uint8, rmw bool, tick TickFn) {
	switch o.mode {
	case modeAccumulator:
		c.A = value
	default:
		addr := o.ea(c, rmw, tick)
		if rmw {
			o.tickDummyWriteback(tick)
		}
		c.writeInternal(addr, value, tick)
	}
}

// tickDummyWriteback covers the modes whose effective address costs
// nothing to compute (ZeroPage, Absolute): their read-modify-write dummy
// cycle has nowhere else to be charged. Indexed modes already pay it
// through ea()'s own tick on both the getRMW and set calls.
func (o operand) tickDummyWriteback(tick TickFn) {
	switch o.mode {
	case modeZeroPage, modeAbsolute:
		tick()
	}
}

func pageCrossed(a, b uint16) bool {
	return a&0xff00 != b&0xff00
}
