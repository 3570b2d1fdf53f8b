package breakpoint

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a parsed breakpoint condition: an AST of comparisons between a
// register or memory reference and a literal value, evaluated against the
// current CPU state.
type Expr interface {
	Eval(s State) bool
}

// Operand is either a register name (a, x, y, sp, p, pc) or a memory
// reference (mem[addr]).
type Operand struct {
	register string
	memAddr  uint16
	isMem    bool
}

func (o Operand) value(s State) uint16 {
	if o.isMem {
		return uint16(s.Read(o.memAddr))
	}
	switch o.register {
	case "a":
		return uint16(s.A)
	case "x":
		return uint16(s.X)
	case "y":
		return uint16(s.Y)
	case "sp":
		return uint16(s.SP)
	case "p":
		return uint16(s.P)
	case "pc":
		return s.PC
	default:
		return 0
	}
}

// Comparison is a single "<operand> <op> <literal>" condition.
type Comparison struct {
	lhs     Operand
	op      string
	literal uint16
}

func (c Comparison) Eval(s State) bool {
	v := c.lhs.value(s)
	switch c.op {
	case "==":
		return v == c.literal
	case "!=":
		return v != c.literal
	case ">":
		return v > c.literal
	case ">=":
		return v >= c.literal
	case "<":
		return v < c.literal
	case "<=":
		return v <= c.literal
	default:
		return false
	}
}

// And is a conjunction of conditions, written "a && b" in the surface syntax.
type And struct {
	terms []Expr
}

func (a And) Eval(s State) bool {
	for _, t := range a.terms {
		if !t.Eval(s) {
			return false
		}
	}
	return true
}

// Parse reads a condition of the grammar:
//
//	cond   := comparison ("&&" comparison)*
//	comparison := operand op literal
//	operand := register | "mem[" number "]"
//	op     := "==" | "!=" | ">=" | "<=" | ">" | "<"
//
// e.g. "a == 0x10 && mem[0xd012] >= 100".
func Parse(condition string) (Expr, error) {
	clauses := strings.Split(condition, "&&")
	terms := make([]Expr, 0, len(clauses))
	for _, clause := range clauses {
		c, err := parseComparison(strings.TrimSpace(clause))
		if err != nil {
			return nil, err
		}
		terms = append(terms, c)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return And{terms: terms}, nil
}

var comparisonOps = []string{"==", "!=", ">=", "<=", ">", "<"}

func parseComparison(clause string) (Comparison, error) {
	for _, op := range comparisonOps {
		if idx := strings.Index(clause, op); idx >= 0 {
			lhsText := strings.TrimSpace(clause[:idx])
			rhsText := strings.TrimSpace(clause[idx+len(op):])
			lhs, err := parseOperand(lhsText)
			if err != nil {
				return Comparison{}, err
			}
			literal, err := parseNumber(rhsText)
			if err != nil {
				return Comparison{}, fmt.Errorf("invalid literal %q: %w", rhsText, err)
			}
			return Comparison{lhs: lhs, op: op, literal: literal}, nil
		}
	}
	return Comparison{}, fmt.Errorf("no comparison operator found in %q", clause)
}

func parseOperand(text string) (Operand, error) {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "mem[") && strings.HasSuffix(lower, "]") {
		inner := lower[len("mem[") : len(lower)-1]
		addr, err := parseNumber(inner)
		if err != nil {
			return Operand{}, fmt.Errorf("invalid memory address %q: %w", inner, err)
		}
		return Operand{isMem: true, memAddr: addr}, nil
	}
	switch lower {
	case "a", "x", "y", "sp", "p", "pc":
		return Operand{register: lower}, nil
	default:
		return Operand{}, fmt.Errorf("unknown operand %q", text)
	}
}

func parseNumber(text string) (uint16, error) {
	text = strings.TrimSpace(text)
	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		text = text[2:]
		base = 16
	} else if strings.HasPrefix(text, "$") {
		text = text[1:]
		base = 16
	}
	v, err := strconv.ParseUint(text, base, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
