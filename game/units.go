// Package game defines the data model shared by the board simulation and the
// pathfinder: coordinates, unit types, the unit catalog carried in the game
// configuration, and the per-frame snapshot sent by the engine.
//
// These types are plain data. They are decoded once per message and then
// treated as read-only; the board simulation clones what it needs to mutate.
package game

import "fmt"

// UnitType enumerates the unit types in configuration index order.
// Remove and Upgrade are never placed; they name board actions.
type UnitType int

const (
	Wall UnitType = iota
	Support
	Turret
	Scout
	Demolisher
	Interceptor
	Remove
	Upgrade
)

// NumUnitTypes is the number of entries in the configuration unit catalog.
const NumUnitTypes = 8

var unitTypeNames = [NumUnitTypes]string{
	"Wall", "Support", "Turret", "Scout", "Demolisher", "Interceptor", "Remove", "Upgrade",
}

func (t UnitType) String() string {
	if t < 0 || int(t) >= NumUnitTypes {
		return fmt.Sprintf("UnitType(%d)", int(t))
	}
	return unitTypeNames[t]
}

// Valid reports whether t is one of the declared unit types.
func (t UnitType) Valid() bool {
	return t >= 0 && int(t) < NumUnitTypes
}

// Kind is the category a unit type belongs to.
type Kind int

const (
	KindMarker Kind = iota
	KindStructure
	KindMobile
)

func (k Kind) String() string {
	switch k {
	case KindStructure:
		return "structure"
	case KindMobile:
		return "mobile"
	default:
		return "marker"
	}
}

// Kind returns the fixed category of the type.
func (t UnitType) Kind() Kind {
	switch t {
	case Wall, Support, Turret:
		return KindStructure
	case Scout, Demolisher, Interceptor:
		return KindMobile
	default:
		return KindMarker
	}
}

// IsPseudo reports whether t is an action marker rather than a unit.
func (t UnitType) IsPseudo() bool {
	return t.Kind() == KindMarker
}

// StructureTypes and MobileTypes list the real unit types of each kind.
var (
	StructureTypes = []UnitType{Wall, Support, Turret}
	MobileTypes    = []UnitType{Scout, Demolisher, Interceptor}
)

// Unit categories as they appear in the configuration's unitCategory field.
const (
	CategoryStructure = 0
	CategoryMobile    = 1
)

// PlayerID identifies a side. Player1 is always the planning player.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "p1"
	case Player2:
		return "p2"
	default:
		return fmt.Sprintf("PlayerID(%d)", int(p))
	}
}
