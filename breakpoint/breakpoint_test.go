package breakpoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjhogan/c64emu/breakpoint"
)

func TestAddAndCheckUnconditional(t *testing.T) {
	m := breakpoint.NewManager()
	idx, err := m.Add(0x1000, "")
	require.NoError(t, err)
	assert.True(t, m.IsBpPresent())

	bp := m.Check(breakpoint.State{PC: 0x1000})
	require.NotNil(t, bp)
	assert.Equal(t, idx, bp.Index)

	assert.Nil(t, m.Check(breakpoint.State{PC: 0x2000}))
}

func TestCheckHonorsCondition(t *testing.T) {
	m := breakpoint.NewManager()
	_, err := m.Add(0x1000, "a == 0x42")
	require.NoError(t, err)

	assert.Nil(t, m.Check(breakpoint.State{PC: 0x1000, A: 0x01}))
	assert.NotNil(t, m.Check(breakpoint.State{PC: 0x1000, A: 0x42}))
}

func TestCheckHonorsDisabled(t *testing.T) {
	m := breakpoint.NewManager()
	idx, err := m.Add(0x1000, "")
	require.NoError(t, err)
	m.SetEnabled(idx, false)

	assert.Nil(t, m.Check(breakpoint.State{PC: 0x1000}))
}

func TestIgnoreCountDecrementsBeforeFiring(t *testing.T) {
	m := breakpoint.NewManager()
	idx, err := m.Add(0x1000, "")
	require.NoError(t, err)
	m.SetIgnoreCount(idx, 2)

	assert.Nil(t, m.Check(breakpoint.State{PC: 0x1000}))
	assert.Nil(t, m.Check(breakpoint.State{PC: 0x1000}))
	assert.NotNil(t, m.Check(breakpoint.State{PC: 0x1000}))
}

func TestAutodeleteRemovesAfterFiring(t *testing.T) {
	m := breakpoint.NewManager()
	idx, err := m.Add(0x1000, "")
	require.NoError(t, err)
	m.SetAutodelete(idx, true)

	assert.NotNil(t, m.Check(breakpoint.State{PC: 0x1000}))
	assert.False(t, m.IsBpPresent())
	assert.Nil(t, m.Check(breakpoint.State{PC: 0x1000}))
}

func TestRemove(t *testing.T) {
	m := breakpoint.NewManager()
	idx, err := m.Add(0x1000, "")
	require.NoError(t, err)
	m.Remove(idx)
	assert.False(t, m.IsBpPresent())
	assert.Len(t, m.List(), 0)
}
