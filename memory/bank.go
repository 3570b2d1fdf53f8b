// Package memory implements the banked address space: flat RAM/ROM arrays,
// the PLA memory map, and the MMIO bus router over the chipset.
package memory

// Bank names the memory bank visible at a given 4KB zone of the address
// space, as selected by the current Pla mode.
type Bank int

const (
	BankBasic Bank = iota
	BankCharset
	BankKernal
	BankIo
	BankRam
	BankRomH
	BankRomL
	BankDisabled
)

func (b Bank) String() string {
	switch b {
	case BankBasic:
		return "Basic"
	case BankCharset:
		return "Charset"
	case BankKernal:
		return "Kernal"
	case BankIo:
		return "Io"
	case BankRam:
		return "Ram"
	case BankRomH:
		return "RomH"
	case BankRomL:
		return "RomL"
	case BankDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}

// Addressable is a plain byte-addressable bank of memory.
type Addressable interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// AddressableFaded is a bank of memory that may be "faded" by RAM: a read
// can report no device responded (open bus), in which case the caller
// falls through to RAM at the same address.
type AddressableFaded interface {
	ReadFaded(address uint16) (value uint8, ok bool)
	Write(address uint16, value uint8)
}

// Chip is a system component driven by the master clock.
type Chip interface {
	Clock()
	ClockDelta(delta uint32)
	ProcessVsync()
	Reset()
	Read(reg uint8) uint8
	Write(reg uint8, value uint8)
}
