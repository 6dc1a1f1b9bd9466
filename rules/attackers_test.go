package rules

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/game/gametest"
)

func TestAttackers(t *testing.T) {
	f := gametest.Frame(0, 0, 0)
	gametest.Place(f, game.Player2, game.Turret, 14, 16)  // dist 3, range 2.5+0.51
	gametest.Place(f, game.Player2, game.Turret, 10, 16)  // dist 5
	gametest.Place(f, game.Player2, game.Turret, 14, 17)  // dist 4, upgraded below
	gametest.Place(f, game.Player2, game.Upgrade, 14, 17) // range 3.5
	gametest.Place(f, game.Player2, game.Wall, 14, 15)    // no range
	gametest.Place(f, game.Player1, game.Turret, 14, 12)  // ours
	s := New(gametest.Config(), f)
	t.Logf("board:\n%s", dumpBoard(s))

	got := s.Attackers(game.Coords{X: 14, Y: 13})
	var at []game.Coords
	for _, u := range got {
		at = append(at, u.Coords)
	}
	assert.Equal(t, []game.Coords{{X: 14, Y: 16}, {X: 14, Y: 17}}, at)
}

func TestAttackersOutOfArenaLogs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	s := New(gametest.Config(), gametest.Frame(0, 0, 0), WithLogger(l))

	assert.Empty(t, s.Attackers(game.Coords{X: 0, Y: 0}))
	assert.Contains(t, buf.String(), "checking attackers out of bounds")
}
