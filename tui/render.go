package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/rules"
)

var (
	voidStyle = lipgloss.NewStyle()

	floorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444466"))

	edgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6666aa"))

	ourStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true)

	theirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffcc00"))

	attackerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#661111")).
			Foreground(lipgloss.Color("#ff8888")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#4488ff")).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true)

	// HUD
	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

var glyphs = map[game.UnitType]string{
	game.Wall:        "W",
	game.Support:     "S",
	game.Turret:      "T",
	game.Scout:       "s",
	game.Demolisher:  "d",
	game.Interceptor: "i",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderBoard(), "  ", m.renderHUD()) + "\n"
}

// renderBoard draws the top row first. Each cell is two characters wide.
func (m Model) renderBoard() string {
	b := m.state.Bounds()
	onPath := make(map[game.Coords]bool, len(m.path))
	for _, c := range m.path {
		onPath[c] = true
	}
	hits := make(map[game.Coords]bool, len(m.attackers))
	for _, u := range m.attackers {
		hits[u.Coords] = true
	}

	rows := make([]string, 0, b.Size())
	for y := b.Size() - 1; y >= 0; y-- {
		var row strings.Builder
		for x := 0; x < b.Size(); x++ {
			c := game.Coords{X: x, Y: y}
			row.WriteString(m.renderCell(c, onPath[c], hits[c]))
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCell(c game.Coords, onPath, hit bool) string {
	b := m.state.Bounds()
	if !b.InArena(c) {
		return voidStyle.Render("  ")
	}

	label, style := ". ", floorStyle
	if _, ok := b.OnAnyEdge(c); ok {
		style = edgeStyle
	}
	if onPath {
		label, style = "o ", pathStyle
	}
	if units := m.state.UnitsAt(c); len(units) > 0 {
		u := units[len(units)-1]
		label, style = unitLabel(u), ourStyle
		if u.Owner == game.Player2 {
			style = theirStyle
		}
	}
	if hit {
		style = attackerStyle
	}
	if c == m.cursor {
		style = cursorStyle
	}
	return style.Render(label)
}

func unitLabel(u *rules.Unit) string {
	g := glyphs[u.Type]
	switch {
	case u.Removing:
		return g + "-"
	case u.Upgraded:
		return g + "+"
	default:
		return g + " "
	}
}

func (m Model) renderHUD() string {
	s := m.state
	sp, mp := s.Resources(game.Player1)
	esp, emp := s.Resources(game.Player2)
	f := s.Frame()

	edge := "auto"
	if m.edge != autoEdge {
		edge = m.edge.String()
	}

	parts := []string{
		titleStyle.Render("TERMINAL PATH INSPECTOR"),
		"",
		fmt.Sprintf("Turn:     %d", s.Turn()),
		fmt.Sprintf("Us:       HP %.0f  SP %.1f  MP %.1f", f.Stats(game.Player1).Integrity, sp, mp),
		fmt.Sprintf("Them:     HP %.0f  SP %.1f  MP %.1f", f.Stats(game.Player2).Integrity, esp, emp),
		"",
		fmt.Sprintf("Cursor:   %s", m.cursor),
		fmt.Sprintf("Edge:     %s", edge),
		fmt.Sprintf("Placing:  %s", m.selected),
	}

	switch {
	case !s.Bounds().InArena(m.cursor):
		parts = append(parts, dimStyle.Render("outside the arena"))
	case len(m.path) == 0:
		parts = append(parts, dimStyle.Render("no path from here"))
	default:
		last := m.path[len(m.path)-1]
		reach := "stuck at"
		if s.Bounds().OnEdge(m.target, last) {
			reach = "exits at"
		}
		parts = append(parts,
			fmt.Sprintf("Path:     %d tiles toward %s", len(m.path), m.target),
			fmt.Sprintf("          %s %s", reach, last))
	}

	parts = append(parts, fmt.Sprintf("Attackers: %d", len(m.attackers)))
	for _, u := range m.attackers {
		parts = append(parts, fmt.Sprintf("  %s", u))
	}

	if m.status != "" {
		parts = append(parts, "", m.status)
	}
	parts = append(parts, "",
		dimStyle.Render("arrows/hjkl move  e edge  1-6 type"),
		dimStyle.Render("space place  x remove  u upgrade  q quit"))

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}
