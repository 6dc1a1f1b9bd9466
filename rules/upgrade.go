package rules

import (
	"fmt"

	"github.com/brensch/terminal/game"
)

// Upgrade upgrades the structure at c, pays the upgrade price and queues the
// command. The price comes from the structure's own sheet.
func (s *State) Upgrade(c game.Coords) error {
	check, err := s.CanSpawn(c, game.Upgrade, 1)
	if err != nil {
		return fmt.Errorf("upgrade at %s: %w", c, err)
	}
	if !check.Allowed() {
		return &SpawnError{Coords: c, Type: game.Upgrade, Check: check}
	}

	u := s.StructureAt(c)
	cost, ok := u.Info.UpgradeCost()
	if !ok {
		return fmt.Errorf("upgrade %s at %s: %w", u.Type, c, ErrNotUpgradeable)
	}
	s.frame.P1Stats.Cores -= cost[0]
	s.frame.P1Stats.Bits -= cost[1]

	u.Upgrade()
	s.build = append(s.build, SpawnCommand{Type: game.Upgrade, Coords: c})
	return nil
}

// AttemptUpgrade returns 1 if the upgrade was applied, 0 otherwise.
func (s *State) AttemptUpgrade(c game.Coords) int {
	if err := s.Upgrade(c); err != nil {
		return 0
	}
	return 1
}

func (s *State) AttemptUpgradeMultiple(cs []game.Coords) int {
	n := 0
	for _, c := range cs {
		n += s.AttemptUpgrade(c)
	}
	return n
}
