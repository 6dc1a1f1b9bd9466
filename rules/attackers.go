package rules

import (
	"math"

	"github.com/brensch/terminal/game"
)

// Attackers returns the opponent structures able to hit a unit standing at c.
//
// A structure reaches c when the distance is within its own range plus the
// largest hit radius in the catalog. Results are ordered by x then y.
func (s *State) Attackers(c game.Coords) []*Unit {
	if !s.bounds.InArena(c) {
		s.log.Warn("checking attackers out of bounds", "coords", c)
	}

	var maxRange, maxHit float64
	for i := range s.cfg.UnitInformation {
		info := &s.cfg.UnitInformation[i]
		if i < game.NumUnitTypes && s.cfg.IsStructure(game.UnitType(i)) && info.AttackRange != nil {
			maxRange = max(maxRange, *info.AttackRange)
		}
		if info.GetHitRadius != nil {
			maxHit = max(maxHit, *info.GetHitRadius)
		}
	}
	// Upgraded structures may out-range the catalog.
	for _, u := range s.Structures() {
		if r, ok := u.AttackRange(); ok && u.Owner == game.Player2 {
			maxRange = max(maxRange, r)
		}
	}

	reach := int(math.Ceil(maxRange + maxHit))
	var out []*Unit
	for x := c.X - reach; x <= c.X+reach; x++ {
		for y := c.Y - reach; y <= c.Y+reach; y++ {
			cell := game.Coords{X: x, Y: y}
			if !s.bounds.InArena(cell) {
				continue
			}
			u := s.StructureAt(cell)
			if u == nil || u.Owner != game.Player2 {
				continue
			}
			r, ok := u.AttackRange()
			if ok && cell.Distance(c) <= r+maxHit {
				out = append(out, u)
			}
		}
	}
	return out
}
