// Package rules simulates the board during the deploy phase: it answers
// placement, removal and upgrade legality, keeps the planning player's
// resources in step with every accepted action, and records the commands to
// submit to the engine.
//
// Player1 is always the planning player.
package rules

import (
	"log/slog"

	"github.com/brensch/terminal/bounds"
	"github.com/brensch/terminal/game"
)

// SpawnCommand is one placement, removal or upgrade request for the engine.
type SpawnCommand struct {
	Type   game.UnitType
	Coords game.Coords
}

// State is the simulated board for one turn. It is not safe for concurrent
// use.
type State struct {
	cfg    *game.Config
	frame  *game.Frame
	bounds *bounds.Bounds
	log    *slog.Logger

	// units[x][y] holds every unit in that cell: mobiles first, then at most
	// one structure.
	units [][][]*Unit

	build  []SpawnCommand
	deploy []SpawnCommand
}

type Option func(*State)

// WithLogger routes diagnostics to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBounds overrides the board geometry. Mostly useful in tests.
func WithBounds(b *bounds.Bounds) Option {
	return func(s *State) {
		if b != nil {
			s.bounds = b
		}
	}
}

// New builds the board from a configuration and a frame. The frame is cloned;
// resource changes made by the State never reach the caller's copy.
func New(cfg *game.Config, frame *game.Frame, opts ...Option) *State {
	s := &State{
		cfg:    cfg,
		frame:  frame.Clone(),
		bounds: bounds.Default,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.frame == nil {
		s.frame = &game.Frame{}
	}

	n := s.bounds.Size()
	s.units = make([][][]*Unit, n)
	for x := range s.units {
		s.units[x] = make([][]*Unit, n)
	}

	for _, p := range []game.PlayerID{game.Player1, game.Player2} {
		lists := s.frame.Units(p)

		for _, t := range game.MobileTypes {
			s.placeAll(p, t, lists.ByType(t))
		}
		for _, t := range game.StructureTypes {
			s.placeAll(p, t, lists.ByType(t))
		}

		for _, pu := range lists.ByType(game.Remove) {
			if u := s.StructureAt(pu.Coords); u != nil {
				u.Removing = true
			}
		}
		for _, pu := range lists.ByType(game.Upgrade) {
			if u := s.StructureAt(pu.Coords); u != nil {
				u.Upgrade()
			}
		}
	}
	return s
}

func (s *State) placeAll(p game.PlayerID, t game.UnitType, list []game.PlayerUnit) {
	for _, pu := range list {
		if !s.bounds.InGrid(pu.Coords) {
			s.log.Warn("unit outside grid", "player", p, "type", t, "coords", pu.Coords)
			continue
		}
		u := newUnit(s.cfg, t, pu.Coords, pu.Stability, pu.ID, p)
		s.units[pu.Coords.X][pu.Coords.Y] = append(s.units[pu.Coords.X][pu.Coords.Y], u)
	}
}

func (s *State) Config() *game.Config { return s.cfg }
func (s *State) Bounds() *bounds.Bounds { return s.bounds }
func (s *State) Turn() int { return s.frame.TurnInfo.TurnNumber }
func (s *State) Logger() *slog.Logger { return s.log }

// Frame returns the State's private frame, including resource deductions
// made so far. Callers must not modify it.
func (s *State) Frame() *game.Frame { return s.frame }

// UnitsAt returns every unit in c. Out-of-grid cells hold nothing.
func (s *State) UnitsAt(c game.Coords) []*Unit {
	if !s.bounds.InGrid(c) {
		return nil
	}
	return s.units[c.X][c.Y]
}

// StructureAt returns the structure in c, or nil.
func (s *State) StructureAt(c game.Coords) *Unit {
	for _, u := range s.UnitsAt(c) {
		if u.IsStructure() {
			return u
		}
	}
	return nil
}

// MobileAt returns the mobile units in c.
func (s *State) MobileAt(c game.Coords) []*Unit {
	var out []*Unit
	for _, u := range s.UnitsAt(c) {
		if !u.IsStructure() {
			out = append(out, u)
		}
	}
	return out
}

// RemovingAt reports whether c holds a structure flagged for removal.
func (s *State) RemovingAt(c game.Coords) bool {
	u := s.StructureAt(c)
	return u != nil && u.Removing
}

// Structures returns every structure on the board, scanning x then y.
func (s *State) Structures() []*Unit {
	var out []*Unit
	for x := range s.units {
		for y := range s.units[x] {
			if u := s.StructureAt(game.Coords{X: x, Y: y}); u != nil {
				out = append(out, u)
			}
		}
	}
	return out
}
