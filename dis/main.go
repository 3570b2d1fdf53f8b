// Command dis disassembles a raw binary (a cartridge ROM dump, a PRG body
// with its two-byte load address stripped, or any other flat memory image)
// loaded at a chosen start address, using the same instruction table the
// interactive debugger does.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kjhogan/c64emu/dis/disassembler"
)

// flatMemory is a minimal cpu.MemoryBus backing a standalone binary dump:
// writes are accepted (the disassembler never issues any, but the Bus
// contract requires the method) and out-of-range reads return 0, matching
// an unmapped bus line floating high-impedance-to-zero rather than panicking.
type flatMemory [0x10000]uint8

func (m *flatMemory) Read(address uint16) uint8        { return m[address] }
func (m *flatMemory) Write(address uint16, value uint8) { m[address] = value }

func main() {
	inputFile := flag.String("i", "", "input binary file")
	startAddr := flag.String("a", "$0000", "load address, e.g. $0801 or 0x0801")
	flag.Parse()

	addr, err := parseAddress(*startAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dis: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dis: reading %s: %v\n", *inputFile, err)
		os.Exit(1)
	}
	if int(addr)+len(data) > 0x10000 {
		fmt.Fprintf(os.Stderr, "dis: %s does not fit in the 64KB address space at %#04x\n", *inputFile, addr)
		os.Exit(1)
	}

	var mem flatMemory
	for i, b := range data {
		mem[int(addr)+i] = b
	}

	fmt.Print(disassembler.DisassembleMemory(&mem, int(addr), len(data)))
}

func parseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("parsing start address %q: %w", s, err)
	}
	return uint16(v), nil
}
