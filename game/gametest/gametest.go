// Package gametest provides a realistic game configuration and frame builders
// for tests in other packages.
package gametest

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/brensch/terminal/game"
)

//go:embed config.json
var configJSON []byte

// ConfigJSON returns the raw configuration message.
func ConfigJSON() []byte {
	out := make([]byte, len(configJSON))
	copy(out, configJSON)
	return out
}

// Config returns a freshly decoded configuration. Callers may modify it.
func Config() *game.Config {
	var cfg game.Config
	if err := json.Unmarshal(configJSON, &cfg); err != nil {
		panic(fmt.Sprintf("gametest: bad embedded config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("gametest: %v", err))
	}
	return &cfg
}

// Frame returns an empty deploy-phase frame for the given turn where both
// players hold sp structure points and mp mobile points.
func Frame(turn int, sp, mp float64) *game.Frame {
	return &game.Frame{
		TurnInfo: game.TurnInfo{Phase: game.PhaseDeploy, TurnNumber: turn},
		P1Stats:  game.PlayerStats{Integrity: 30, Cores: sp, Bits: mp},
		P2Stats:  game.PlayerStats{Integrity: 30, Cores: sp, Bits: mp},
	}
}

// Place appends a unit of type t owned by p at (x, y) to the frame.
func Place(f *game.Frame, p game.PlayerID, t game.UnitType, x, y int) {
	units := f.Units(p)
	id := game.UnitID(fmt.Sprintf("%s-%d", p, len(units[t])+1))
	units[t] = append(units[t], game.PlayerUnit{
		Coords:    game.Coords{X: x, Y: y},
		Stability: 1,
		ID:        id,
	})
}
