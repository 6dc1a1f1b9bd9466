package rules

import "github.com/brensch/terminal/game"

// CanRemove reports whether the planning player may request removal of the
// structure at c.
func (s *State) CanRemove(c game.Coords) RemoveCheck {
	if !s.bounds.InArena(c) {
		return RemoveOutOfBounds
	}
	if c.Y >= s.bounds.Half() {
		return RemoveWrongHalf
	}
	if s.StructureAt(c) == nil {
		return RemoveNoStructure
	}
	return RemoveAllowed
}

// Remove flags the structure at c for removal and queues the command. The
// structure stays on the board; it still blocks paths this turn.
func (s *State) Remove(c game.Coords) error {
	check := s.CanRemove(c)
	if !check.Allowed() {
		return &RemoveError{Coords: c, Check: check}
	}
	s.StructureAt(c).Removing = true
	s.build = append(s.build, SpawnCommand{Type: game.Remove, Coords: c})
	return nil
}

// AttemptRemove returns 1 if the removal was queued, 0 otherwise.
func (s *State) AttemptRemove(c game.Coords) int {
	if s.Remove(c) != nil {
		return 0
	}
	return 1
}

func (s *State) AttemptRemoveMultiple(cs []game.Coords) int {
	n := 0
	for _, c := range cs {
		n += s.AttemptRemove(c)
	}
	return n
}
