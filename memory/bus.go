package memory

import "log/slog"

// Bus is the banked c64 address space: a pure function of address to bank
// via the Pla, dispatching each bank kind to its backing store. The 6510
// internal port at 0x0000/0x0001 is NOT handled here — the cpu package
// intercepts those two addresses before ever calling Bus.
type Bus struct {
	Ram      *Ram
	Basic    *Rom
	Charset  *Rom
	Kernal   *Rom
	Mmio     *Mmio
	Cartridge AddressableFaded

	Pla *Pla

	log *slog.Logger
}

// NewBus wires a Bus over the given backing stores. log may be nil.
func NewBus(ram *Ram, basic, charset, kernal *Rom, mmio *Mmio, cartridge AddressableFaded, pla *Pla, log *slog.Logger) *Bus {
	if log == nil {
		log = slog.Default()
	}
	return &Bus{
		Ram: ram, Basic: basic, Charset: charset, Kernal: kernal,
		Mmio: mmio, Cartridge: cartridge, Pla: pla, log: log,
	}
}

// Read implements Addressable.
func (b *Bus) Read(address uint16) uint8 {
	switch b.Pla.Map(address) {
	case BankRam:
		return b.Ram.Read(address)
	case BankBasic:
		return b.Basic.Read(address)
	case BankCharset:
		return b.Charset.Read(address)
	case BankKernal:
		return b.Kernal.Read(address)
	case BankRomL, BankRomH:
		if v, ok := b.Cartridge.ReadFaded(address); ok {
			return v
		}
		return b.Ram.Read(address)
	case BankIo:
		return b.Mmio.Read(address)
	case BankDisabled:
		return 0
	default:
		return 0
	}
}

// Write implements Addressable. ROM regions and RomL/RomH write through to
// RAM underneath ("RAM under ROM"); the I/O and cartridge windows forward
// to their target device.
func (b *Bus) Write(address uint16, value uint8) {
	switch b.Pla.Map(address) {
	case BankIo:
		b.Mmio.Write(address, value)
	case BankRomL, BankRomH:
		b.Cartridge.Write(address, value)
		b.Ram.Write(address, value)
	default:
		b.Ram.Write(address, value)
	}
}
