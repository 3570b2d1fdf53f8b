// Package c64 builds the full chipset — CPU, dual CIAs, VIC/SID stubs,
// banked memory, cartridge, and peripherals — by wiring them to a single
// arena of shared signal primitives, and drives the cycle-by-cycle tick
// loop.
//
// Grounded on original_source (binaryfields/zinc64)'s
// zinc64-system/src/c64.rs: C64::build's signal/chip wiring and
// run_frame/step/step_internal, replacing c64/c64/c64.go's version
// (whose CIA update calls and interrupt wiring are commented-out no-ops).
package c64

import (
	"log/slog"

	"github.com/kjhogan/c64emu/breakpoint"
	"github.com/kjhogan/c64emu/cartridge"
	"github.com/kjhogan/c64emu/cia"
	"github.com/kjhogan/c64emu/clock"
	"github.com/kjhogan/c64emu/config"
	"github.com/kjhogan/c64emu/cpu"
	"github.com/kjhogan/c64emu/device"
	"github.com/kjhogan/c64emu/memory"
	"github.com/kjhogan/c64emu/sid"
	"github.com/kjhogan/c64emu/signal"
	"github.com/kjhogan/c64emu/vic"
)

// System is the fully wired chipset: every chip shares one signal arena
// constructed once in Build.
type System struct {
	Config *config.Config
	Clock  *clock.Clock

	Cpu *cpu.Cpu
	Cia1 *cia.Cia
	Cia2 *cia.Cia
	Vic  *vic.Vic
	Sid  *sid.Sid
	Bus  *memory.Bus

	Keyboard   *device.Keyboard
	Joystick1  *device.Joystick
	Joystick2  *device.Joystick
	Datassette *device.Datassette
	Cartridge  *cartridge.Cartridge

	Breakpoints *breakpoint.Manager

	setExpansionIo func(cartridge.IoConfig)

	frameCount uint32
	log        *slog.Logger
}

// Build constructs the full signal arena and every chip, wiring them
// exactly as original_source's C64::build does, over ROM images supplied
// by the caller (already loaded from cfg's paths).
func Build(cfg *config.Config, basicRom, charsetRom, kernalRom []byte, log *slog.Logger) (*System, error) {
	if log == nil {
		log = slog.Default()
	}

	basic, err := memory.NewRom(0xa000, 0x2000, basicRom)
	if err != nil {
		return nil, err
	}
	charset, err := memory.NewRom(0x0000, 0x1000, charsetRom)
	if err != nil {
		return nil, err
	}
	kernal, err := memory.NewRom(0xe000, 0x2000, kernalRom)
	if err != nil {
		return nil, err
	}

	ram := memory.NewRam(0x10000)
	colorRam := memory.NewColorRam()
	pla := memory.NewPla()

	ba := signal.NewPin()
	cpuIrq := signal.NewIrqLine("cpu-irq")
	cpuNmi := signal.NewIrqLine("cpu-nmi")
	cia1Flag := signal.NewPin()
	cia2Flag := signal.NewPin()
	cia1PortA := signal.NewIoPort()
	cia1PortB := signal.NewIoPort()
	cia2PortA := signal.NewIoPort()
	cia2PortB := signal.NewIoPort()
	cpuPort := signal.NewIoPort()

	noCart := noopCartridge{}
	bus := memory.NewBus(ram, basic, charset, kernal, &memory.Mmio{}, noCart, pla, log)

	vicChip := vic.New(bus, ba, cpuIrq, log)
	sidChip := sid.New()
	cia1 := cia.New(cia.Cia1, cia1PortA, cia1PortB, cia1Flag, cpuIrq, log)
	cia2 := cia.New(cia.Cia2, cia2PortA, cia2PortB, cia2Flag, cpuNmi, log)

	bus.Mmio.Vic = vicChip
	bus.Mmio.Sid = sidChip
	bus.Mmio.ColorRam = colorRam
	bus.Mmio.Cia1 = cia1
	bus.Mmio.Cia2 = cia2
	bus.Mmio.ExpansionPort = noCart
	bus.Cartridge = noCart

	keyboard := device.NewKeyboard()
	joy1 := &device.Joystick{}
	joy2 := &device.Joystick{}
	cia1.KeyboardMatrix = keyboard.Matrix
	cia1.Joystick1 = joy1.State
	cia1.Joystick2 = joy2.State

	datassette := device.NewDatassette(cia1Flag)

	// expansionIo mirrors original_source's exp_io_line: bit 3 is GAME, bit
	// 4 is EXROM, both high (pulled up) with no cartridge attached. Every
	// LORAM/HIRAM/CHAREN change from the CPU port, and every GAME/EXROM
	// change from an attached cartridge, recomputes the PLA's active mode
	// as their bitwise union (zinc64-system/src/c64.rs's "cpu_port & 0x07 |
	// expansion_port_io & 0x18").
	expansionIo := uint8(0x18)
	recomputeMode := func(cpuPortValue uint8) {
		pla.SwitchBanks((cpuPortValue & 0x07) | (expansionIo & 0x18))
	}
	setExpansionIo := func(cfg cartridge.IoConfig) {
		expansionIo = 0
		if cfg.Game {
			expansionIo |= 0x08
		}
		if cfg.Exrom {
			expansionIo |= 0x10
		}
		recomputeMode(cpuPort.GetValue())
	}

	cpuPort.SetObserver(func(value uint8) {
		datassette.SetMotor(value&(1<<5) != 0)
		recomputeMode(value)
	})
	cpuPort.SetInputBit(4, false)

	// CIA2 port A bits 0-1 select the VIC bank; bit 2 drives the serial
	// ATN line (not modeled). The observer ignores the value: VIC bank
	// selection is not modeled either.
	cia2PortA.SetObserver(func(value uint8) {
		_ = value // VIC bank switching is modeled via the Bus's fixed memory map in this stub tier
	})

	c := cpu.New(bus, cpuPort, ba, cpuIrq, cpuNmi, log)

	sys := &System{
		Config:      cfg,
		Clock:       clock.New(),
		Cpu:         c,
		Cia1:        cia1,
		Cia2:        cia2,
		Vic:         vicChip,
		Sid:         sidChip,
		Bus:         bus,
		Keyboard:    keyboard,
		Joystick1:   joy1,
		Joystick2:   joy2,
		Datassette:  datassette,
		Breakpoints: breakpoint.NewManager(),

		setExpansionIo: setExpansionIo,

		log: log,
	}
	sys.Reset()
	return sys, nil
}

// AttachCartridge installs a loaded CRT image into the expansion port,
// wiring its ReadFaded/Write into the bus and MMIO windows.
func (s *System) AttachCartridge(cart *cartridge.Cartridge) {
	s.Cartridge = cart
	s.Bus.Cartridge = cart
	s.Bus.Mmio.ExpansionPort = cart
	cart.SetIoObserver(s.setExpansionIo)
	cart.Reset()
}

// tick is the callback invoked once per bus cycle by Cpu.Step, in the
// invariant chip order: VIC, CIA1, CIA2, cassette, then the master clock
// increments.
func (s *System) tick() {
	s.Vic.Clock()
	s.Cia1.Clock()
	s.Cia2.Clock()
	s.Datassette.Clock()
	s.Clock.Tick()
}

// Reset restores every chip to its power-on state.
func (s *System) Reset() {
	s.Cpu.Reset()
	s.Cia1.Reset()
	s.Cia2.Reset()
	s.Vic.Reset()
	s.Sid.Reset()
	s.frameCount = 0
}

// Step executes exactly one CPU instruction (or interrupt dispatch),
// syncing vsync-dependent peripherals if a frame completed mid-instruction.
// A panic escaping the chips (an undecodable opcode, an out-of-range MMIO
// access) is recovered here and reported as a *CoreFault rather than
// propagating to the caller.
func (s *System) Step() (fault *CoreFault) {
	defer func() {
		if r := recover(); r != nil {
			fault = s.recoverFault(r)
			s.log.Error("core fault", "error", fault)
		}
	}()
	s.Cpu.Step(s.tick)
	s.syncVsync()
	return nil
}

// RunFrame steps until the VIC completes a frame, an enabled breakpoint
// fires, or a chip panics. ok reports whether a frame completed (matching
// original_source's run_frame return value); fault is non-nil only when a
// panic was recovered, in which case ok is always false.
func (s *System) RunFrame() (ok bool, fault *CoreFault) {
	defer func() {
		if r := recover(); r != nil {
			fault = s.recoverFault(r)
			s.log.Error("core fault", "error", fault)
			ok = false
		}
	}()
	bpPresent := s.Breakpoints.IsBpPresent()
	for !s.Vic.Vsync() {
		s.Cpu.Step(s.tick)
		if bpPresent && s.checkBreakpoints() {
			return false, nil
		}
	}
	s.syncVsync()
	return true, nil
}

func (s *System) checkBreakpoints() bool {
	bp := s.Breakpoints.Check(breakpoint.State{
		PC:   s.Cpu.PC,
		A:    s.Cpu.A,
		X:    s.Cpu.X,
		Y:    s.Cpu.Y,
		SP:   s.Cpu.SP,
		P:    s.Cpu.P,
		Read: s.Bus.Read,
	})
	return bp != nil
}

func (s *System) syncVsync() {
	if !s.Vic.Vsync() {
		return
	}
	s.Vic.ResetVsync()
	s.Sid.ProcessVsync()
	s.Cia1.ProcessVsync()
	s.Cia2.ProcessVsync()
	s.frameCount++
}

// FrameCount returns the number of completed frames since the last Reset.
func (s *System) FrameCount() uint32 {
	return s.frameCount
}

// noopCartridge is the expansion-port default when no cartridge is
// attached: every read is open bus, every write is ignored.
type noopCartridge struct{}

func (noopCartridge) ReadFaded(address uint16) (uint8, bool) { return 0, false }
func (noopCartridge) Write(address uint16, value uint8)      {}
