// Package debugger implements an interactive bubbletea TUI over the
// breakpoint manager and a running c64.System: register/flag panel,
// disassembly panel with current-PC and breakpoint highlighting, and a
// goto-address text input.
//
// Grounded on monitor/main.go (kept and adapted: the panel layout,
// lipgloss styles, and step-tick command keep its structure, rewired from
// a flat-memory cpu.CPU to breakpoint.Manager and c64.System).
package debugger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kjhogan/c64emu/breakpoint"
	"github.com/kjhogan/c64emu/c64"
	"github.com/kjhogan/c64emu/dis/disassembler"
)

type stepTick struct{}

func doStep() tea.Cmd {
	return tea.Tick(20*time.Millisecond, func(t time.Time) tea.Msg {
		return stepTick{}
	})
}

type cpuState struct {
	A, X, Y, SP, P uint8
	PC             uint16
}

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	changed   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	titleStyle = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)

	regStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(30)

	changedStyle = lipgloss.NewStyle().Foreground(changed).Bold(true)

	disasmStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1)

	currentLineStyle = lipgloss.NewStyle().
				Background(highlight).
				Foreground(lipgloss.Color("#ffffff"))

	breakpointStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)

// Model is the bubbletea model driving one debugging session over sys.
type Model struct {
	sys *c64.System
	bpm *breakpoint.Manager

	paused    bool
	locations []disassembler.Location
	locIndex  int

	lastState cpuState
	gotoInput textinput.Model
	showGoto  bool

	fault *c64.CoreFault
}

// New builds a Model over a built c64.System, disassembling its current
// bus image once up front.
func New(sys *c64.System) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter hex address (e.g. FF00)"
	ti.CharLimit = 4
	ti.Width = 6

	m := &Model{
		sys:       sys,
		bpm:       sys.Breakpoints,
		paused:    true,
		locations: disassembler.DisassembleInstructions(sys.Bus),
		gotoInput: ti,
	}
	m.relocate()
	return m
}

func (m *Model) relocate() {
	for i, l := range m.locations {
		if l.PC == m.sys.Cpu.PC {
			m.locIndex = i
			return
		}
	}
}

func (m Model) Init() tea.Cmd {
	return doStep()
}

func (m Model) snapshot() cpuState {
	c := m.sys.Cpu
	return cpuState{A: c.A, X: c.X, Y: c.Y, SP: c.SP, P: c.P, PC: c.PC}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepTick:
		if m.showGoto {
			return m, doStep()
		}
		if !m.paused {
			m.lastState = m.snapshot()
			if fault := m.sys.Step(); fault != nil {
				m.fault = fault
				m.paused = true
			}
			m.relocate()
			if bp := m.bpm.Check(breakpoint.State{
				PC: m.sys.Cpu.PC, A: m.sys.Cpu.A, X: m.sys.Cpu.X, Y: m.sys.Cpu.Y,
				SP: m.sys.Cpu.SP, P: m.sys.Cpu.P, Read: m.sys.Bus.Read,
			}); bp != nil {
				m.paused = true
			}
		}
		return m, doStep()
	case tea.KeyMsg:
		if m.showGoto {
			switch msg.String() {
			case "enter":
				if addr, err := strconv.ParseUint(m.gotoInput.Value(), 16, 16); err == nil {
					for i, l := range m.locations {
						if l.PC == uint16(addr) {
							m.locIndex = i
							break
						}
					}
				}
				m.showGoto = false
				m.gotoInput.Blur()
				return m, nil
			case "esc":
				m.showGoto = false
				m.gotoInput.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.gotoInput, cmd = m.gotoInput.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "s":
			if m.paused {
				m.lastState = m.snapshot()
				if fault := m.sys.Step(); fault != nil {
					m.fault = fault
				}
				m.relocate()
			}
		case "b":
			if m.locIndex < len(m.locations) {
				m.bpm.Add(m.locations[m.locIndex].PC, "")
			}
		case "g":
			m.showGoto = true
			m.gotoInput.Focus()
		}
	}
	return m, nil
}

func (m Model) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.registerPanel(), m.disasmPanel())
}

func (m Model) registerPanel() string {
	flags := []struct {
		name string
		bit  uint8
	}{{"N", 0x80}, {"V", 0x40}, {"B", 0x10}, {"D", 0x08}, {"I", 0x04}, {"Z", 0x02}, {"C", 0x01}}
	var flagStr strings.Builder
	for _, f := range flags {
		if m.sys.Cpu.P&f.bit != 0 {
			flagStr.WriteString(f.name + " ")
		} else {
			flagStr.WriteString(". ")
		}
	}
	body := fmt.Sprintf(
		"A:  %s\nX:  %s\nY:  %s\nPC: %s\nSP: %s\nFlags: %s\n\n[space] run/pause  [s] step  [b] breakpoint  [g] goto  [q] quit",
		m.formatReg8(m.sys.Cpu.A, m.lastState.A),
		m.formatReg8(m.sys.Cpu.X, m.lastState.X),
		m.formatReg8(m.sys.Cpu.Y, m.lastState.Y),
		m.formatReg16(m.sys.Cpu.PC, m.lastState.PC),
		m.formatReg8(m.sys.Cpu.SP, m.lastState.SP),
		flagStr.String(),
	)
	if m.showGoto {
		body += "\n\n" + m.gotoInput.View()
	}
	if m.fault != nil {
		body += "\n\n" + changedStyle.Render(m.fault.Error())
	}
	return regStyle.Render(titleStyle.Render("Registers") + "\n" + body)
}

func (m Model) formatReg8(current, last uint8) string {
	s := fmt.Sprintf("$%02X", current)
	if current != last {
		return changedStyle.Render(s)
	}
	return s
}

func (m Model) formatReg16(current, last uint16) string {
	s := fmt.Sprintf("$%04X", current)
	if current != last {
		return changedStyle.Render(s)
	}
	return s
}

func (m Model) disasmPanel() string {
	var out strings.Builder
	start := m.locIndex - 8
	if start < 0 {
		start = 0
	}
	end := start + 24
	if end > len(m.locations) {
		end = len(m.locations)
	}
	for i := start; i < end; i++ {
		line := m.locations[i].String()
		for _, bp := range m.bpm.List() {
			if bp.Address == m.locations[i].PC {
				line = breakpointStyle.Render("* ") + line
				break
			}
		}
		if i == m.locIndex {
			out.WriteString(currentLineStyle.Render(line))
		} else {
			out.WriteString(line)
		}
		out.WriteString("\n")
	}
	return disasmStyle.Render(titleStyle.Render("Disassembly") + "\n" + out.String())
}
