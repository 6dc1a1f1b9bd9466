package rules

import (
	"fmt"

	"github.com/brensch/terminal/game"
)

// Unit is a unit standing on the board.
//
// Each unit owns a private copy of its type's stat sheet so an upgrade changes
// only that unit.
type Unit struct {
	Type   game.UnitType
	Health float64
	ID     game.UnitID
	Owner  game.PlayerID
	Coords game.Coords
	Info   *game.UnitInformation

	// Removing is set once removal has been requested; the unit stays on the
	// board until the engine processes the request.
	Removing bool
	Upgraded bool
}

func newUnit(cfg *game.Config, t game.UnitType, c game.Coords, health float64, id game.UnitID, owner game.PlayerID) *Unit {
	info := cfg.Info(t).Clone()
	if info == nil {
		info = &game.UnitInformation{}
	}
	return &Unit{
		Type:   t,
		Health: health,
		ID:     id,
		Owner:  owner,
		Coords: c,
		Info:   info,
	}
}

// Upgrade marks the unit upgraded and folds the upgrade overlay into its
// private stat sheet.
func (u *Unit) Upgrade() {
	u.Upgraded = true
	u.Info.ApplyUpgrade()
}

// IsStructure reports whether the unit is a stationary structure, judged by
// its own sheet's category when present.
func (u *Unit) IsStructure() bool {
	if u.Info != nil && u.Info.UnitCategory != nil {
		return *u.Info.UnitCategory == game.CategoryStructure
	}
	return u.Type.Kind() == game.KindStructure
}

// AttackRange returns the unit's current range and whether it attacks at all.
func (u *Unit) AttackRange() (float64, bool) {
	if u.Info == nil || u.Info.AttackRange == nil {
		return 0, false
	}
	return *u.Info.AttackRange, true
}

func (u *Unit) String() string {
	flags := ""
	if u.Upgraded {
		flags += " upgraded"
	}
	if u.Removing {
		flags += " removing"
	}
	return fmt.Sprintf("%s %s %s hp=%.1f id=%s%s", u.Owner, u.Type, u.Coords, u.Health, u.ID, flags)
}
