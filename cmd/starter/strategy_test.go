package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/terminal/bounds"
	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/game/gametest"
	"github.com/brensch/terminal/rules"
	"github.com/brensch/terminal/store"
	"github.com/brensch/terminal/watch"
)

func newTestStarter(t *testing.T) *starter {
	t.Helper()
	a := newStarter(slog.New(slog.NewTextHandler(io.Discard, nil)), 42)
	require.NoError(t, a.Initialize(context.Background(), gametest.Config()))
	return a
}

func commandTypes(cmds []rules.SpawnCommand) map[game.UnitType]int {
	out := map[game.UnitType]int{}
	for _, c := range cmds {
		out[c.Type]++
	}
	return out
}

func TestOpeningTurn(t *testing.T) {
	a := newTestStarter(t)
	s := rules.New(a.cfg, gametest.Frame(0, 40, 5))
	require.NoError(t, a.OnTurn(context.Background(), s))

	cmds := s.SpawnCommands()
	assert.Equal(t, map[game.UnitType]int{game.Turret: 6, game.Wall: 2, game.Upgrade: 2}, commandTypes(cmds[0]))
	assert.Equal(t, map[game.UnitType]int{game.Interceptor: 5}, commandTypes(cmds[1]))
	for _, c := range cmds[1] {
		onBottom := s.Bounds().OnEdge(bounds.BottomLeft, c.Coords) || s.Bounds().OnEdge(bounds.BottomRight, c.Coords)
		assert.True(t, onBottom, "interceptor at %s", c.Coords)
	}

	sp, mp := s.Resources(game.Player1)
	assert.Equal(t, 24.0, sp)
	assert.Equal(t, 0.0, mp)
}

func TestReactiveTurretAfterBreach(t *testing.T) {
	a := newTestStarter(t)

	action := gametest.Frame(2, 0, 0)
	action.TurnInfo.Phase = game.PhaseAction
	action.Events.Breach = []game.BreachEvent{
		{Coords: game.Coords{X: 3, Y: 10}, Damage: 1, BreacherType: game.Scout, Owner: game.Player2},
		{Coords: game.Coords{X: 20, Y: 20}, Damage: 1, BreacherType: game.Scout, Owner: game.Player1},
	}
	require.NoError(t, a.OnActionFrame(context.Background(), rules.New(a.cfg, action)))
	assert.Equal(t, []game.Coords{{X: 3, Y: 10}}, a.scoredOn)

	s := rules.New(a.cfg, gametest.Frame(3, 40, 0))
	require.NoError(t, a.OnTurn(context.Background(), s))
	u := s.StructureAt(game.Coords{X: 3, Y: 11})
	require.NotNil(t, u)
	assert.Equal(t, game.Turret, u.Type)
}

func TestDemolisherLineAgainstFrontWall(t *testing.T) {
	a := newTestStarter(t)
	f := gametest.Frame(6, 40, 10)
	for x := 3; x <= 13; x++ {
		gametest.Place(f, game.Player2, game.Wall, x, 14)
	}
	s := rules.New(a.cfg, f)
	require.Equal(t, 11, a.countEnemyStructures(s, 14, 15))

	require.NoError(t, a.OnTurn(context.Background(), s))

	// Row 11 is sealed from x=6 to x=25 around the four turrets.
	for x := 6; x <= 25; x++ {
		assert.NotNil(t, s.StructureAt(game.Coords{X: x, Y: 11}), "x=%d", x)
	}
	cmds := s.SpawnCommands()
	assert.Equal(t, map[game.UnitType]int{game.Demolisher: 3}, commandTypes(cmds[1]))
	assert.Equal(t, demolisherStart, cmds[1][0].Coords)
}

func TestLeastDamageStart(t *testing.T) {
	a := newTestStarter(t)
	f := gametest.Frame(5, 0, 0)
	gametest.Place(f, game.Player2, game.Turret, 26, 15)
	s := rules.New(a.cfg, f)

	// From (13,0) the route ends beside the turret; from (14,0) it runs up
	// the far side.
	start, ok := a.leastDamageStart(s, scoutStarts)
	require.True(t, ok)
	assert.Equal(t, game.Coords{X: 14, Y: 0}, start)

	_, ok = a.leastDamageStart(s, []game.Coords{{X: 0, Y: 0}})
	assert.False(t, ok)
}

func TestScoutTurnArchivesAndPublishes(t *testing.T) {
	dir := t.TempDir()
	a := newTestStarter(t)
	bw, err := store.NewBatchWriter(dir)
	require.NoError(t, err)
	a.archive = bw
	m, err := store.OpenManifest(filepath.Join(dir, "manifest.log"))
	require.NoError(t, err)
	defer m.Close()
	a.manifest = m
	a.hub = watch.NewHub(nil)
	defer a.hub.Close()

	s := rules.New(a.cfg, gametest.Frame(5, 40, 4))
	require.NoError(t, a.OnTurn(context.Background(), s))

	cmds := s.SpawnCommands()
	assert.Equal(t, map[game.UnitType]int{game.Scout: 4}, commandTypes(cmds[1]))
	assert.Equal(t, 4, commandTypes(cmds[0])[game.Support])
	require.NotEmpty(t, predictedPath(s))

	require.NoError(t, a.Close())
	out, ok := m.Lookup(bw.SessionID())
	require.True(t, ok)
	_, err = os.Stat(out)
	require.NoError(t, err)

	rows, err := store.ReadTurnsParquet(out)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(5), rows[0].Turn)
	assert.Zero(t, rows[0].MP, "archived after spending")
	assert.NotEmpty(t, rows[0].PathX)
	assert.NotEmpty(t, rows[0].FrameJSON)
}
