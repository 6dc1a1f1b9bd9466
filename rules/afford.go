package rules

import (
	"fmt"
	"math"

	"github.com/brensch/terminal/game"
)

// AffordUnlimited is reported for a resource the unit does not cost.
const AffordUnlimited = 99

// TypeCost returns the catalog price of t as [SP, MP]. With upgrade set it
// returns the upgrade price instead, falling back per resource to the base
// price where the overlay has none.
func (s *State) TypeCost(t game.UnitType, upgrade bool) ([2]float64, error) {
	if t.IsPseudo() {
		return [2]float64{}, fmt.Errorf("cost of %s: %w", t, ErrPseudoUnit)
	}
	info := s.cfg.Info(t)
	if info == nil {
		return [2]float64{}, fmt.Errorf("cost of %s: no catalog entry", t)
	}
	if !upgrade {
		return info.Cost(), nil
	}
	cost, ok := info.UpgradeCost()
	if !ok {
		return [2]float64{}, fmt.Errorf("cost of %s upgrade: %w", t, ErrNotUpgradeable)
	}
	return cost, nil
}

// NumberAffordable returns how many units of type t (or upgrades of t) the
// planning player can currently pay for.
func (s *State) NumberAffordable(t game.UnitType, upgrade bool) (int, error) {
	cost, err := s.TypeCost(t, upgrade)
	if err != nil {
		return 0, err
	}
	sp, mp := s.Resources(game.Player1)
	return min(affordable(sp, cost[0]), affordable(mp, cost[1])), nil
}

func affordable(wealth, cost float64) int {
	if cost <= 0 {
		return AffordUnlimited
	}
	return int(wealth / cost)
}

// Resources returns the structure points and mobile points player p holds,
// including deductions for everything spawned so far.
func (s *State) Resources(p game.PlayerID) (sp, mp float64) {
	st := s.frame.Stats(p)
	return st.Cores, st.Bits
}

// ProjectFutureMP predicts player p's mobile points after the given number
// of turns, assuming none are spent. Points decay each round before the new
// income lands, and income grows every turnIntervalForBitSchedule turns.
func (s *State) ProjectFutureMP(turns int, p game.PlayerID) float64 {
	if turns < 1 || turns > 99 {
		s.log.Warn("projecting mobile points outside 1..99 turns", "turns", turns)
	}
	_, mp := s.Resources(p)
	r := s.cfg.Resources
	for i := 1; i <= turns; i++ {
		turn := s.Turn() + i
		mp *= 1 - r.BitDecayPerRound
		growth := 0.0
		if r.TurnIntervalForBitSchedule > 0 {
			growth = r.BitGrowthRate * math.Floor(float64(turn)/r.TurnIntervalForBitSchedule)
		}
		mp += r.BitsPerRound + growth
		mp = math.Round(mp*10) / 10
	}
	return mp
}
