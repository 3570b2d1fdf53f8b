// Package cartridge implements CRT-format expansion cartridges: ROML/ROMH
// bank switching plus the per-hardware-type 0xDE00-0xDFFF I/O register.
//
// Grounded on original_source (binaryfields/zinc64)'s
// zinc64-emu/src/device/cartridge.rs: the per-hardware-type bank-switching
// behavior is modeled as a tagged HwType with a write handler per variant,
// following that source's own structure.
package cartridge

import "fmt"

// ChipType names the storage kind of a cartridge bank's ROM image.
type ChipType int

const (
	ChipRom ChipType = iota
	ChipRam
	ChipFlashRom
)

// HwType selects the bank-switching protocol implemented in the
// cartridge's 0xDE00-0xDFFF I/O window.
type HwType int

const (
	HwNormal HwType = iota
	HwEasyFlash
	HwFinal3
	HwGameSystem
	HwMagicDesk
	HwSimonsBasic
	HwOceanType1
)

// HwTypeFromCrt maps the numeric HwType field of a CRT header to HwType.
func HwTypeFromCrt(value uint16) (HwType, error) {
	switch value {
	case 0:
		return HwNormal, nil
	case 3:
		return HwFinal3, nil
	case 4:
		return HwSimonsBasic, nil
	case 5:
		return HwOceanType1, nil
	case 15:
		return HwGameSystem, nil
	case 19:
		return HwMagicDesk, nil
	case 32:
		return HwEasyFlash, nil
	default:
		return 0, fmt.Errorf("cartridge: unsupported hardware type %d", value)
	}
}

// isMirrored reports whether loading a bank at 0x8000 also maps it at
// 0xa000 (and vice versa) — true for the single-bank-visible-at-a-time
// hardware types.
func (h HwType) isMirrored() bool {
	switch h {
	case HwOceanType1, HwMagicDesk, HwNormal:
		return true
	default:
		return false
	}
}

// Chip is one CHIP packet from a CRT image: a ROM/RAM/flash bank loaded at
// either 0x8000 (ROML) or 0xa000 (ROMH).
type Chip struct {
	Type       ChipType
	BankNumber uint8
	Offset     uint16 // 0x8000 or 0xa000
	Data       []byte
}

// IoConfig is the cartridge's live EXROM/GAME line state, pushed to an
// observer (normally the PLA) whenever bank switching changes it.
type IoConfig struct {
	Exrom bool
	Game  bool
}

// Cartridge is a loaded CRT image: its bank set, hardware type, and the
// runtime bank-select/IO-config state that the hardware type's write
// handler mutates.
type Cartridge struct {
	hwType    HwType
	exrom     bool
	game      bool
	mirrored  bool
	banks     [64]*Chip
	bankLo    int // -1 = none mapped
	bankHi    int
	ioConfig  IoConfig
	regValue  uint8
	ioObserver func(IoConfig)
}

// New builds a Cartridge from its CRT header EXROM/GAME lines and
// hardware type; banks are added afterward with Add.
func New(hwType HwType, exrom, game bool) *Cartridge {
	return &Cartridge{
		hwType:   hwType,
		exrom:    exrom,
		game:     game,
		mirrored: hwType.isMirrored(),
		bankLo:   -1,
		bankHi:   -1,
	}
}

// SetIoObserver registers the callback invoked whenever bank switching
// changes the EXROM/GAME lines (normally wired to the PLA).
func (c *Cartridge) SetIoObserver(observer func(IoConfig)) {
	c.ioObserver = observer
}

// Add installs a bank packet at its declared bank number.
func (c *Cartridge) Add(chip *Chip) {
	c.banks[chip.BankNumber] = chip
}

// Reset restores the power-on bank (bank 0, if present) and EXROM/GAME
// lines.
func (c *Cartridge) Reset() {
	c.bankLo = -1
	c.bankHi = -1
	c.ioConfig = IoConfig{Exrom: c.exrom, Game: c.game}
	if c.banks[0] != nil {
		c.switchBank(0)
	}
	c.notifyIoChanged()
}

func (c *Cartridge) notifyIoChanged() {
	if c.ioObserver != nil {
		c.ioObserver(c.ioConfig)
	}
}

func (c *Cartridge) switchBank(bankNumber uint8) {
	bank := c.banks[bankNumber]
	if bank == nil {
		panic(fmt.Sprintf("cartridge: invalid bank number %d", bankNumber))
	}
	switch bank.Offset {
	case 0x8000:
		c.bankLo = int(bank.BankNumber)
		if c.mirrored {
			c.bankHi = c.bankLo
		} else {
			c.bankHi = -1
		}
	case 0xa000:
		c.bankHi = int(bank.BankNumber)
		if c.mirrored {
			c.bankLo = c.bankHi
		} else {
			c.bankLo = -1
		}
	default:
		panic(fmt.Sprintf("cartridge: invalid load address %04x", bank.Offset))
	}
}

// ReadFaded implements memory.AddressableFaded over 0x8000-0x9fff (ROML),
// 0xa000-0xbfff (ROMH) and the 0xde00-0xdfff I/O window.
func (c *Cartridge) ReadFaded(address uint16) (uint8, bool) {
	switch {
	case address >= 0x8000 && address <= 0x9fff:
		if c.bankLo < 0 {
			return 0, false
		}
		bank := c.banks[c.bankLo]
		return bank.Data[address-0x8000], true
	case address >= 0xa000 && address <= 0xbfff:
		if c.bankHi < 0 {
			return 0, false
		}
		bank := c.banks[c.bankHi]
		if bank.Offset == 0x8000 && int(address-0x8000) < len(bank.Data) {
			return bank.Data[address-0x8000], true
		}
		return bank.Data[address-0xa000], true
	case address >= 0xde00 && address <= 0xdfff:
		return c.readIo(address), true
	default:
		panic(fmt.Sprintf("cartridge: invalid address %04x", address))
	}
}

// Write implements the 0xde00-0xdfff I/O window. Writes into ROML/ROMH
// (0x8000-0xbfff) are ignored, leaving the bus to store them in the RAM
// underneath; writes elsewhere are not supported by any hardware type in
// this taxonomy.
func (c *Cartridge) Write(address uint16, value uint8) {
	if address >= 0xde00 && address <= 0xdfff {
		c.writeIo(address, value)
		return
	}
	if address >= 0x8000 && address <= 0xbfff {
		return
	}
	panic(fmt.Sprintf("cartridge: writes to %04x are not supported", address))
}

func (c *Cartridge) readIo(address uint16) uint8 {
	if c.hwType == HwGameSystem && address >= 0xde00 && address <= 0xdeff {
		c.switchBank(uint8(address & 0x3f))
	}
	return c.regValue
}

// writeIo dispatches the per-hardware-type bank-switch protocol. Each
// variant's register semantics are ported from the source exactly.
func (c *Cartridge) writeIo(address uint16, value uint8) {
	c.regValue = value
	switch c.hwType {
	case HwEasyFlash:
		if address == 0xde00 {
			c.switchBank(value & 0x3f)
		}
	case HwFinal3:
		if address == 0xde00 {
			c.switchBank(value - 0x40)
		}
	case HwMagicDesk:
		if address == 0xde00 {
			if value&0x80 == 0 {
				c.switchBank(value & 0x3f)
				c.ioConfig.Exrom = c.exrom
				c.ioConfig.Game = c.game
			} else {
				c.ioConfig.Exrom = true
				c.ioConfig.Game = true
			}
			c.notifyIoChanged()
		}
	case HwNormal:
		if address == 0xde00 {
			c.switchBank(value & 0x3f)
		}
	case HwOceanType1:
		if address == 0xde00 && value&0x80 != 0 {
			c.switchBank(value & 0x3f)
		}
	case HwSimonsBasic:
		if address == 0xde00 {
			c.ioConfig.Game = value == 0x01
			c.notifyIoChanged()
		}
	}
}
