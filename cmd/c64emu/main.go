// Command c64emu loads the three mask ROM images and runs the chipset,
// adapted from c64emu/main.go's ROM-loading/run-loop shape but wired to
// the c64.System builder instead of a flat-memory C64.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kjhogan/c64emu/c64"
	"github.com/kjhogan/c64emu/config"
	"github.com/kjhogan/c64emu/debugger"
)

func main() {
	debug := flag.Bool("debug", false, "launch the interactive debugger instead of free-running")
	flag.Parse()
	if err := run(*debug); err != nil {
		log.Fatal("error", err)
	}
}

func run(debug bool) error {
	basicRom, err := os.ReadFile("basic-901226-01.bin")
	if err != nil {
		return err
	}
	kernalRom, err := os.ReadFile("kernal-901227-03.bin")
	if err != nil {
		return err
	}
	charRom, err := os.ReadFile("chargen-901225-01.bin")
	if err != nil {
		return err
	}

	cfg := config.New(
		config.WithTiming(config.TimingPal),
		config.WithRom(config.RomBasic, "basic-901226-01.bin"),
		config.WithRom(config.RomKernal, "kernal-901227-03.bin"),
		config.WithRom(config.RomCharset, "chargen-901225-01.bin"),
	)

	sys, err := c64.Build(cfg, basicRom, charRom, kernalRom, slog.Default())
	if err != nil {
		return err
	}

	if debug {
		_, err := tea.NewProgram(debugger.New(sys)).Run()
		return err
	}

	for {
		if _, fault := sys.RunFrame(); fault != nil {
			return fault
		}
	}
}
