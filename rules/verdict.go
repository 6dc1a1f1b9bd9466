package rules

import (
	"errors"
	"fmt"

	"github.com/brensch/terminal/game"
)

// SpawnCheck is the verdict of CanSpawn.
type SpawnCheck int

const (
	SpawnAllowed SpawnCheck = iota
	SpawnOutOfBounds
	SpawnWrongHalf
	SpawnNotOnEdge
	SpawnInsufficientResources
	SpawnOccupied
	SpawnNoUpgradeTarget
)

func (s SpawnCheck) String() string {
	switch s {
	case SpawnAllowed:
		return "allowed"
	case SpawnOutOfBounds:
		return "out of bounds"
	case SpawnWrongHalf:
		return "wrong side of map"
	case SpawnNotOnEdge:
		return "not on edge"
	case SpawnInsufficientResources:
		return "not enough resources"
	case SpawnOccupied:
		return "unit already present"
	case SpawnNoUpgradeTarget:
		return "no unit to upgrade"
	default:
		return fmt.Sprintf("SpawnCheck(%d)", int(s))
	}
}

func (s SpawnCheck) Allowed() bool { return s == SpawnAllowed }

// RemoveCheck is the verdict of CanRemove.
type RemoveCheck int

const (
	RemoveAllowed RemoveCheck = iota
	RemoveOutOfBounds
	RemoveWrongHalf
	RemoveNoStructure
)

func (r RemoveCheck) String() string {
	switch r {
	case RemoveAllowed:
		return "allowed"
	case RemoveOutOfBounds:
		return "out of bounds"
	case RemoveWrongHalf:
		return "wrong side of map"
	case RemoveNoStructure:
		return "no structure present"
	default:
		return fmt.Sprintf("RemoveCheck(%d)", int(r))
	}
}

func (r RemoveCheck) Allowed() bool { return r == RemoveAllowed }

var (
	// ErrPseudoUnit is returned when a marker type is used where a real unit
	// is required, e.g. spawning Remove.
	ErrPseudoUnit = errors.New("pseudo unit type not allowed here")
	// ErrNotUpgradeable is returned when a type has no upgrade overlay.
	ErrNotUpgradeable = errors.New("unit type is not upgradeable")
)

// SpawnError reports a spawn or upgrade that failed its legality check.
type SpawnError struct {
	Coords game.Coords
	Type   game.UnitType
	Check  SpawnCheck
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("cannot spawn %s at %s: %s", e.Type, e.Coords, e.Check)
}

// RemoveError reports a removal that failed its legality check.
type RemoveError struct {
	Coords game.Coords
	Check  RemoveCheck
}

func (e *RemoveError) Error() string {
	return fmt.Sprintf("cannot remove at %s: %s", e.Coords, e.Check)
}
