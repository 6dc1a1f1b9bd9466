package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/terminal/bounds"
	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/game/gametest"
	"github.com/brensch/terminal/rules"
)

func key(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func newModel(t *testing.T, f *game.Frame) Model {
	t.Helper()
	return NewModel(rules.New(gametest.Config(), f))
}

func TestCursorTracksPath(t *testing.T) {
	m := newModel(t, gametest.Frame(0, 10, 5))
	assert.Equal(t, game.Coords{X: 13, Y: 0}, m.Cursor())
	assert.Equal(t, bounds.TopRight, m.TargetEdge())
	require.Len(t, m.Path(), 29)

	m = press(t, m, "right")
	assert.Equal(t, game.Coords{X: 14, Y: 0}, m.Cursor())
	assert.Equal(t, bounds.TopLeft, m.TargetEdge())
	require.NotEmpty(t, m.Path())
	assert.Equal(t, game.Coords{X: 0, Y: 14}, m.Path()[len(m.Path())-1])

	// Cycling the edge pins the target: TopRight is the first choice after auto.
	m = press(t, m, "e")
	assert.Equal(t, bounds.TopRight, m.TargetEdge())
	m = press(t, m, "e", "e", "e", "e")
	assert.Equal(t, bounds.TopLeft, m.TargetEdge(), "back to auto")

	// Off the arena there is nothing to show.
	m = press(t, m, "right", "right")
	assert.Equal(t, game.Coords{X: 16, Y: 0}, m.Cursor())
	assert.Empty(t, m.Path())
	assert.Contains(t, m.View(), "outside the arena")

	// The cursor is clamped to the grid.
	m = press(t, m, "down", "down")
	assert.Equal(t, 0, m.Cursor().Y)
}

func TestPlanningKeys(t *testing.T) {
	m := newModel(t, gametest.Frame(0, 10, 5))
	m = press(t, m, "right", " ")
	assert.Equal(t, "spawn at <14, 0> ok", m.Status())
	assert.Empty(t, m.Path(), "no path from inside a structure")

	m = press(t, m, "u")
	assert.Equal(t, "upgrade at <14, 0> ok", m.Status())
	m = press(t, m, "x")
	assert.Equal(t, "remove at <14, 0> ok", m.Status())

	u := m.State().StructureAt(game.Coords{X: 14, Y: 0})
	require.NotNil(t, u)
	assert.True(t, u.Upgraded)
	assert.True(t, u.Removing)
	sp, _ := m.State().Resources(game.Player1)
	assert.Equal(t, 8.0, sp)

	m = press(t, m, "4", "left", "up", " ")
	assert.Equal(t, game.Scout, m.Selected())
	assert.Equal(t, "spawn refused: not on edge", m.Status())

	m = press(t, m, "down", " ")
	assert.Equal(t, "spawn at <13, 0> ok", m.Status())
	cmds := m.State().SpawnCommands()
	assert.Len(t, cmds[0], 3)
	assert.Len(t, cmds[1], 1)
}

func TestAttackersHighlighted(t *testing.T) {
	f := gametest.Frame(0, 10, 5)
	gametest.Place(f, game.Player2, game.Turret, 13, 14)
	m := newModel(t, f)

	for range 12 {
		m = press(t, m, "up")
	}
	assert.Equal(t, game.Coords{X: 13, Y: 12}, m.Cursor())
	require.Len(t, m.Attackers(), 1)
	assert.Equal(t, game.Coords{X: 13, Y: 14}, m.Attackers()[0].Coords)

	view := m.View()
	t.Logf("\n%s", view)
	assert.Contains(t, view, "Attackers: 1")
	assert.Contains(t, view, "Turret")
	assert.Equal(t, 28, strings.Count(m.renderBoard(), "\n")+1)
}

func TestQuit(t *testing.T) {
	m := newModel(t, gametest.Frame(0, 0, 0))
	next, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}
