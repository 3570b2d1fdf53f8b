package breakpoint_test

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjhogan/c64emu/breakpoint"
)

func TestParseSingleComparison(t *testing.T) {
	expr, err := breakpoint.Parse("a == 0x10")
	require.NoError(t, err)
	require.NotNil(t, expr)

	assert.True(t, expr.Eval(breakpoint.State{A: 0x10}))
	assert.False(t, expr.Eval(breakpoint.State{A: 0x11}))
}

func TestParseConjunction(t *testing.T) {
	expr, err := breakpoint.Parse("x >= 5 && y < 3")
	require.NoError(t, err)

	assert.True(t, expr.Eval(breakpoint.State{X: 5, Y: 2}))
	assert.False(t, expr.Eval(breakpoint.State{X: 4, Y: 2}))
	assert.False(t, expr.Eval(breakpoint.State{X: 5, Y: 3}))
}

func TestParseMemoryReference(t *testing.T) {
	expr, err := breakpoint.Parse("mem[0xd012] == 100")
	require.NoError(t, err)

	read := func(addr uint16) uint8 {
		if addr == 0xd012 {
			return 100
		}
		return 0
	}
	assert.True(t, expr.Eval(breakpoint.State{Read: read}))
}

func TestParseRejectsUnknownOperand(t *testing.T) {
	_, err := breakpoint.Parse("bogus == 1")
	assert.Error(t, err)
}

// TestParseASTIsStable re-parses the same condition twice and diffs the
// resulting ASTs with go-test/deep to confirm Parse is deterministic, and
// that two different conditions produce distinguishable trees.
func TestParseASTIsStable(t *testing.T) {
	// The AST node types keep all their state in unexported fields, which
	// deep skips unless asked to compare them.
	deep.CompareUnexportedFields = true
	defer func() { deep.CompareUnexportedFields = false }()

	first, err := breakpoint.Parse("a == 0x10 && mem[0xd020] != 5")
	require.NoError(t, err)
	second, err := breakpoint.Parse("a == 0x10 && mem[0xd020] != 5")
	require.NoError(t, err)

	if diff := deep.Equal(first, second); diff != nil {
		t.Errorf("identical conditions parsed to different ASTs: %v", diff)
	}

	third, err := breakpoint.Parse("a == 0x11 && mem[0xd020] != 5")
	require.NoError(t, err)
	if diff := deep.Equal(first, third); diff == nil {
		t.Errorf("expected differing conditions to produce differing ASTs")
	}
}
