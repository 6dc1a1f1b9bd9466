// Package tui is an interactive board inspector: move a cursor over a frame,
// plan placements and see the route a mobile unit would take from the cursor
// along with every enemy structure that can hit it.
package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/terminal/bounds"
	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/pathfind"
	"github.com/brensch/terminal/rules"
)

// autoEdge targets the edge facing the cursor's quadrant.
const autoEdge bounds.Edge = -1

var placeable = []game.UnitType{
	game.Wall, game.Support, game.Turret,
	game.Scout, game.Demolisher, game.Interceptor,
}

type Model struct {
	state    *rules.State
	cursor   game.Coords
	edge     bounds.Edge
	selected game.UnitType

	path      []game.Coords
	target    bounds.Edge
	attackers []*rules.Unit
	status    string
	quitting  bool
}

// NewModel starts with the cursor on the left corner of our bottom edge.
func NewModel(s *rules.State) Model {
	m := Model{
		state:    s,
		cursor:   s.Bounds().Edge(bounds.BottomLeft)[0],
		edge:     autoEdge,
		selected: game.Wall,
	}
	m.recompute()
	return m
}

func (m Model) Cursor() game.Coords { return m.cursor }
func (m Model) Path() []game.Coords { return m.path }
func (m Model) Attackers() []*rules.Unit { return m.attackers }
func (m Model) Status() string { return m.status }
func (m Model) Selected() game.UnitType { return m.selected }
func (m Model) State() *rules.State { return m.state }
func (m Model) TargetEdge() bounds.Edge { return m.target }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	n := m.state.Bounds().Size()
	switch k := key.String(); k {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.cursor.Y = min(m.cursor.Y+1, n-1)
	case "down", "j":
		m.cursor.Y = max(m.cursor.Y-1, 0)
	case "left", "h":
		m.cursor.X = max(m.cursor.X-1, 0)
	case "right", "l":
		m.cursor.X = min(m.cursor.X+1, n-1)
	case "e":
		m.edge++
		if m.edge > bounds.BottomRight {
			m.edge = autoEdge
		}
	case "1", "2", "3", "4", "5", "6":
		m.selected = placeable[k[0]-'1']
		m.status = fmt.Sprintf("selected %s", m.selected)
	case " ", "enter":
		m.status = m.act("spawn", m.state.Spawn(m.cursor, m.selected))
	case "x":
		m.status = m.act("remove", m.state.Remove(m.cursor))
	case "u":
		m.status = m.act("upgrade", m.state.Upgrade(m.cursor))
	default:
		return m, nil
	}
	m.recompute()
	return m, nil
}

func (m Model) act(verb string, err error) string {
	var se *rules.SpawnError
	var re *rules.RemoveError
	switch {
	case err == nil:
		return fmt.Sprintf("%s at %s ok", verb, m.cursor)
	case errors.As(err, &se):
		return fmt.Sprintf("%s refused: %s", verb, se.Check)
	case errors.As(err, &re):
		return fmt.Sprintf("%s refused: %s", verb, re.Check)
	default:
		return fmt.Sprintf("%s failed: %v", verb, err)
	}
}

// recompute refreshes the path and attackers for the cursor tile.
func (m *Model) recompute() {
	m.path = nil
	m.attackers = nil

	b := m.state.Bounds()
	if !b.InArena(m.cursor) {
		return
	}
	m.attackers = m.state.Attackers(m.cursor)

	m.target = m.edge
	if m.target == autoEdge {
		m.target = b.EdgeFromStart(m.cursor)
	}
	p, err := pathfind.New(m.state, m.cursor, m.target)
	if err != nil {
		return
	}
	m.path = p.Path()
}
