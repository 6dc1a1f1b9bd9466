package rules

import (
	"fmt"

	"github.com/brensch/terminal/bounds"
	"github.com/brensch/terminal/game"
)

// CanSpawn reports whether qty units of type t could be placed at c by the
// planning player. For t == game.Upgrade it reports whether the structure at
// c could be upgraded qty times.
//
// Checks run in a fixed order and the first failure wins, so an unaffordable
// request off the board reports SpawnInsufficientResources.
func (s *State) CanSpawn(c game.Coords, t game.UnitType, qty int) (SpawnCheck, error) {
	if t == game.Remove {
		return 0, fmt.Errorf("can spawn %s: %w", t, ErrPseudoUnit)
	}
	if !t.Valid() {
		return 0, fmt.Errorf("can spawn: unknown unit type %d", int(t))
	}

	// 1. Affordability of the unit itself
	if t != game.Upgrade {
		n, err := s.NumberAffordable(t, false)
		if err != nil {
			return 0, err
		}
		if n < qty {
			return SpawnInsufficientResources, nil
		}
	}

	structure := s.StructureAt(c)

	// 2. Cell already holds a structure
	if !t.IsPseudo() && structure != nil {
		return SpawnOccupied, nil
	}

	// 3-5. Upgrade target
	if t == game.Upgrade {
		if structure == nil {
			return SpawnNoUpgradeTarget, nil
		}
		if structure.Upgraded {
			return SpawnOccupied, nil
		}
		n, err := s.NumberAffordable(structure.Type, true)
		if err != nil {
			return 0, err
		}
		if n < qty {
			return SpawnInsufficientResources, nil
		}
	}

	// 6. Structures cannot land on mobile units
	if s.cfg.IsStructure(t) && len(s.MobileAt(c)) > 0 {
		return SpawnOccupied, nil
	}

	// 7. Own half only
	if c.Y >= s.bounds.Half() {
		return SpawnWrongHalf, nil
	}

	// 8. Arena
	if !s.bounds.InArena(c) {
		return SpawnOutOfBounds, nil
	}

	// 9. Mobiles deploy from our two edges
	if s.cfg.IsMobile(t) && !s.bounds.OnEdge(bounds.BottomLeft, c) && !s.bounds.OnEdge(bounds.BottomRight, c) {
		return SpawnNotOnEdge, nil
	}

	return SpawnAllowed, nil
}

// Spawn places one unit of type t at c, pays for it and queues the command.
func (s *State) Spawn(c game.Coords, t game.UnitType) error {
	if t.IsPseudo() {
		return fmt.Errorf("spawn %s at %s: %w", t, c, ErrPseudoUnit)
	}

	check, err := s.CanSpawn(c, t, 1)
	if err != nil {
		return err
	}
	if !check.Allowed() {
		return &SpawnError{Coords: c, Type: t, Check: check}
	}

	cost := s.cfg.Info(t).Cost()
	s.frame.P1Stats.Cores -= cost[0]
	s.frame.P1Stats.Bits -= cost[1]

	u := newUnit(s.cfg, t, c, startHealth(s.cfg, t), "spawned", game.Player1)
	s.units[c.X][c.Y] = append(s.units[c.X][c.Y], u)

	cmd := SpawnCommand{Type: t, Coords: c}
	if s.cfg.IsStructure(t) {
		s.build = append(s.build, cmd)
	} else {
		s.deploy = append(s.deploy, cmd)
	}
	return nil
}

// AttemptSpawn spawns if the placement is legal and reports whether it did.
func (s *State) AttemptSpawn(c game.Coords, t game.UnitType) bool {
	if t.IsPseudo() {
		s.log.Warn("attempt spawn with pseudo unit", "type", t, "coords", c)
		return false
	}
	check, err := s.CanSpawn(c, t, 1)
	if err != nil || !check.Allowed() {
		return false
	}
	return s.Spawn(c, t) == nil
}

// AttemptSpawnMultiple tries every location in order and returns how many
// units were placed.
func (s *State) AttemptSpawnMultiple(cs []game.Coords, t game.UnitType) int {
	n := 0
	for _, c := range cs {
		if s.AttemptSpawn(c, t) {
			n++
		}
	}
	return n
}

// startHealth is the catalog starting health of t, or 1 when the sheet has
// none.
func startHealth(cfg *game.Config, t game.UnitType) float64 {
	if info := cfg.Info(t); info != nil && info.StartHealth != nil {
		return *info.StartHealth
	}
	return 1
}
