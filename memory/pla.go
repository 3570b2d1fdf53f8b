package memory

// mode expands a 7-zone abstract bank configuration into the 16 4KB zones
// of the address space, per the c64 PLA truth table
// (https://www.c64-wiki.com/index.php/Bank_Switching).
type mode struct {
	banks [16]Bank
}

func newMode(config [7]Bank) mode {
	var m mode
	for i := 0; i < 16; i++ {
		switch {
		case i == 0x00:
			m.banks[i] = config[0]
		case i >= 0x01 && i <= 0x07:
			m.banks[i] = config[1]
		case i >= 0x08 && i <= 0x09:
			m.banks[i] = config[2]
		case i >= 0x0a && i <= 0x0b:
			m.banks[i] = config[3]
		case i == 0x0c:
			m.banks[i] = config[4]
		case i == 0x0d:
			m.banks[i] = config[5]
		default: // 0x0e, 0x0f
			m.banks[i] = config[6]
		}
	}
	return m
}

func (m mode) get(zone uint8) Bank {
	return m.banks[zone]
}

// Pla is the programmable logic array that maps a CPU address to the
// currently selected memory bank, per a static 32-mode x 16-zone table.
type Pla struct {
	modes   [32]mode
	current mode
}

// NewPla returns a Pla initialized to mode 0 (all RAM).
func NewPla() *Pla {
	p := &Pla{modes: buildModeTable()}
	p.current = p.modes[0]
	return p
}

// Map returns the Bank visible at address under the current mode.
func (p *Pla) Map(address uint16) Bank {
	zone := uint8(address >> 12)
	return p.current.get(zone)
}

// SwitchBanks recomputes the active mode; mode must be in [0,31].
func (p *Pla) SwitchBanks(m uint8) {
	p.current = p.modes[m&0x1f]
}

func buildModeTable() [32]mode {
	m31 := [7]Bank{BankRam, BankRam, BankRam, BankBasic, BankRam, BankIo, BankKernal}
	m30_14 := [7]Bank{BankRam, BankRam, BankRam, BankRam, BankRam, BankIo, BankKernal}
	m29_13 := [7]Bank{BankRam, BankRam, BankRam, BankRam, BankRam, BankIo, BankRam}
	m28_24 := [7]Bank{BankRam, BankRam, BankRam, BankRam, BankRam, BankRam, BankRam}
	m27 := [7]Bank{BankRam, BankRam, BankRam, BankBasic, BankRam, BankCharset, BankKernal}
	m26_10 := [7]Bank{BankRam, BankRam, BankRam, BankRam, BankRam, BankCharset, BankKernal}
	m25_9 := [7]Bank{BankRam, BankRam, BankRam, BankRam, BankRam, BankCharset, BankRam}
	m23_16 := [7]Bank{BankRam, BankDisabled, BankRomL, BankDisabled, BankDisabled, BankIo, BankRomH}
	m15 := [7]Bank{BankRam, BankRam, BankRomL, BankBasic, BankRam, BankIo, BankKernal}
	m12_8_4_0 := [7]Bank{BankRam, BankRam, BankRam, BankRam, BankRam, BankRam, BankRam}
	m11 := [7]Bank{BankRam, BankRam, BankRomL, BankBasic, BankRam, BankCharset, BankKernal}
	m7 := [7]Bank{BankRam, BankRam, BankRomL, BankRomH, BankRam, BankIo, BankKernal}
	m6 := [7]Bank{BankRam, BankRam, BankRam, BankRomH, BankRam, BankIo, BankKernal}
	m5 := [7]Bank{BankRam, BankRam, BankRam, BankRam, BankRam, BankIo, BankRam}
	m3 := [7]Bank{BankRam, BankRam, BankRomL, BankRomH, BankRam, BankCharset, BankKernal}
	m2 := [7]Bank{BankRam, BankRam, BankRam, BankRomH, BankRam, BankCharset, BankKernal}
	m1 := [7]Bank{BankRam, BankRam, BankRam, BankRam, BankRam, BankRam, BankRam}

	return [32]mode{
		newMode(m12_8_4_0),
		newMode(m1),
		newMode(m2),
		newMode(m3),
		newMode(m12_8_4_0),
		newMode(m5),
		newMode(m6),
		newMode(m7),
		newMode(m12_8_4_0),
		newMode(m25_9),
		newMode(m26_10),
		newMode(m11),
		newMode(m12_8_4_0),
		newMode(m29_13),
		newMode(m30_14),
		newMode(m15),
		newMode(m23_16),
		newMode(m23_16),
		newMode(m23_16),
		newMode(m23_16),
		newMode(m23_16),
		newMode(m23_16),
		newMode(m23_16),
		newMode(m23_16),
		newMode(m28_24),
		newMode(m25_9),
		newMode(m26_10),
		newMode(m27),
		newMode(m28_24),
		newMode(m29_13),
		newMode(m30_14),
		newMode(m31),
	}
}
