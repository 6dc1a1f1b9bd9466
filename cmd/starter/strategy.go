package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/brensch/terminal/bounds"
	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/pathfind"
	"github.com/brensch/terminal/rules"
	"github.com/brensch/terminal/store"
	"github.com/brensch/terminal/watch"
)

var (
	turretLocations = []game.Coords{
		{X: 0, Y: 13}, {X: 27, Y: 13}, {X: 8, Y: 11}, {X: 19, Y: 11}, {X: 13, Y: 11}, {X: 14, Y: 11},
	}
	wallLocations = []game.Coords{{X: 8, Y: 12}, {X: 19, Y: 12}}

	supportLocations = []game.Coords{{X: 13, Y: 2}, {X: 14, Y: 2}, {X: 13, Y: 3}, {X: 14, Y: 3}}
	scoutStarts      = []game.Coords{{X: 13, Y: 0}, {X: 14, Y: 0}}
	demolisherStart  = game.Coords{X: 24, Y: 10}
)

const (
	// Turns before this stall with interceptors instead of attacking.
	stallTurns = 5
	// Enemy structures on their front two rows above which we switch to a
	// demolisher line.
	frontLineThreshold = 10
)

// starter is the sample strategy: a fixed turret and wall shell, reactive
// turrets where we were breached, interceptors early, then alternating scout
// rushes from whichever start takes the least turret fire.
type starter struct {
	log *slog.Logger
	rng *rand.Rand
	cfg *game.Config

	scoredOn []game.Coords

	archive  *store.BatchWriter
	manifest *store.Manifest
	hub      *watch.Hub
}

func newStarter(log *slog.Logger, seed uint64) *starter {
	return &starter{
		log: log,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (a *starter) Initialize(_ context.Context, cfg *game.Config) error {
	a.cfg = cfg
	a.log.Info("configured starter strategy", "unit_types", len(cfg.UnitInformation))
	return nil
}

func (a *starter) OnTurn(ctx context.Context, s *rules.State) error {
	received := s.Frame().Clone()
	a.log.Debug("planning turn", "turn", s.Turn())

	a.buildDefences(s)
	a.buildReactiveDefence(s)
	if s.Turn() < stallTurns {
		a.stallWithInterceptors(s)
	} else if a.countEnemyStructures(s, 14, 15) > frontLineThreshold {
		a.demolisherLine(s)
	} else {
		if s.Turn()%2 == 1 {
			if start, ok := a.leastDamageStart(s, scoutStarts); ok {
				spawnAll(s, start, game.Scout)
			}
		}
		s.AttemptSpawnMultiple(supportLocations, game.Support)
	}

	return a.record(ctx, received, s)
}

// OnActionFrame remembers where enemy units broke through.
func (a *starter) OnActionFrame(_ context.Context, s *rules.State) error {
	for _, b := range s.Frame().Events.Breach {
		if b.Owner != game.Player1 {
			a.scoredOn = append(a.scoredOn, b.Coords)
			a.log.Debug("scored on", "coords", b.Coords, "turn", s.Turn())
		}
	}
	return nil
}

func (a *starter) buildDefences(s *rules.State) {
	s.AttemptSpawnMultiple(turretLocations, game.Turret)
	s.AttemptSpawnMultiple(wallLocations, game.Wall)
	s.AttemptUpgradeMultiple(wallLocations)
}

// buildReactiveDefence puts a turret one row above every tile we were
// breached at.
func (a *starter) buildReactiveDefence(s *rules.State) {
	for _, c := range a.scoredOn {
		s.AttemptSpawn(game.Coords{X: c.X, Y: c.Y + 1}, game.Turret)
	}
}

func (a *starter) stallWithInterceptors(s *rules.State) {
	b := s.Bounds()
	var open []game.Coords
	for _, e := range []bounds.Edge{bounds.BottomLeft, bounds.BottomRight} {
		for _, c := range b.Edge(e) {
			if s.StructureAt(c) == nil {
				open = append(open, c)
			}
		}
	}

	cost, err := s.TypeCost(game.Interceptor, false)
	if err != nil {
		return
	}
	for len(open) > 0 {
		if _, mp := s.Resources(game.Player1); mp < cost[1] {
			return
		}
		i := a.rng.IntN(len(open))
		if !s.AttemptSpawn(open[i], game.Interceptor) {
			open = append(open[:i], open[i+1:]...)
		}
	}
}

// demolisherLine walls off row 11 with the cheapest structure and sends every
// demolisher we can afford from the right.
func (a *starter) demolisherLine(s *rules.State) {
	cheapest := game.Wall
	best := math.Inf(1)
	for _, t := range []game.UnitType{game.Wall, game.Turret, game.Support} {
		if cost, err := s.TypeCost(t, false); err == nil && cost[0] < best {
			cheapest, best = t, cost[0]
		}
	}
	for x := 27; x > 5; x-- {
		s.AttemptSpawn(game.Coords{X: x, Y: 11}, cheapest)
	}
	spawnAll(s, demolisherStart, game.Demolisher)
}

// leastDamageStart estimates the turret damage a mobile would take walking
// from each option and returns the safest one.
func (a *starter) leastDamageStart(s *rules.State, options []game.Coords) (game.Coords, bool) {
	perHit := 0.0
	if info := a.cfg.Info(game.Turret); info != nil && info.AttackDamageWalker != nil {
		perHit = *info.AttackDamageWalker
	}

	var best game.Coords
	bestDamage := math.Inf(1)
	for _, start := range options {
		path, err := pathfind.FindToFacingEdge(s, start)
		if err != nil {
			continue
		}
		damage := 0.0
		for _, c := range path {
			damage += float64(len(s.Attackers(c))) * perHit
		}
		if damage < bestDamage {
			best, bestDamage = start, damage
		}
	}
	return best, !math.IsInf(bestDamage, 1)
}

// countEnemyStructures counts opponent structures on the given rows.
func (a *starter) countEnemyStructures(s *rules.State, rows ...int) int {
	n := 0
	for _, u := range s.Structures() {
		if u.Owner != game.Player2 {
			continue
		}
		for _, y := range rows {
			if u.Coords.Y == y {
				n++
			}
		}
	}
	return n
}

// spawnAll stacks as many units of t on c as we can afford.
func spawnAll(s *rules.State, c game.Coords, t game.UnitType) int {
	n := 0
	for s.AttemptSpawn(c, t) {
		n++
	}
	return n
}

// predictedPath is the route of the first mobile deployed this turn.
func predictedPath(s *rules.State) []game.Coords {
	deploy := s.SpawnCommands()[1]
	if len(deploy) == 0 {
		return nil
	}
	path, err := pathfind.FindToFacingEdge(s, deploy[0].Coords)
	if err != nil {
		return nil
	}
	return path
}

// record archives and broadcasts the planned turn.
func (a *starter) record(ctx context.Context, received *game.Frame, s *rules.State) error {
	if a.archive == nil && a.hub == nil {
		return nil
	}
	path := predictedPath(s)

	if a.archive != nil {
		row, err := store.NewTurnRow(a.archive.SessionID(), received, s, path)
		if err != nil {
			return fmt.Errorf("archive turn %d: %w", s.Turn(), err)
		}
		if err := a.archive.WriteTurn(row); err != nil {
			return fmt.Errorf("archive turn %d: %w", s.Turn(), err)
		}
	}

	if a.hub != nil {
		sum := watch.Summarize(s, path)
		if a.archive != nil {
			sum.SessionID = a.archive.SessionID()
		}
		if err := a.hub.Publish(sum); err != nil {
			a.log.WarnContext(ctx, "publish turn failed", "turn", s.Turn(), "error", err)
		}
	}
	return nil
}

// Close finalizes the archive and records it in the manifest.
func (a *starter) Close() error {
	if a.archive == nil {
		return nil
	}
	res, err := a.archive.Finalize()
	if err != nil {
		return err
	}
	if res.Empty() {
		a.log.Info("no turns archived", "session", res.SessionID)
		return nil
	}
	a.log.Info("archive written", "path", res.Path, "turns", res.Turns, "session", res.SessionID)
	if a.manifest != nil {
		return a.manifest.Add(res.SessionID, res.Path)
	}
	return nil
}
