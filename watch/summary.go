// Package watch streams each planned turn to browsers over a websocket so a
// running algo can be followed live.
package watch

import (
	"encoding/json"

	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/rules"
)

// Event is the envelope of every message on /ws.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	EventHello = "hello"
	EventTurn  = "turn"
)

type Command struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type Structure struct {
	Owner    game.PlayerID `json:"owner"`
	Type     string        `json:"type"`
	X        int           `json:"x"`
	Y        int           `json:"y"`
	Health   float64       `json:"health"`
	Upgraded bool          `json:"upgraded,omitempty"`
	Removing bool          `json:"removing,omitempty"`
}

// TurnSummary is what the planning player decided on one deploy turn.
type TurnSummary struct {
	SessionID string  `json:"session_id,omitempty"`
	Turn      int     `json:"turn"`
	Integrity float64 `json:"integrity"`
	SP        float64 `json:"sp"`
	MP        float64 `json:"mp"`
	Enemy     struct {
		Integrity float64 `json:"integrity"`
		SP        float64 `json:"sp"`
		MP        float64 `json:"mp"`
	} `json:"enemy"`

	Structures []Structure   `json:"structures"`
	Build      []Command     `json:"build"`
	Deploy     []Command     `json:"deploy"`
	Path       []game.Coords `json:"path"`
	// Attackers are the enemy structures that can hit the last path tile.
	Attackers []game.Coords `json:"attackers"`
}

// Summarize captures the board after planning. path may be nil.
func Summarize(s *rules.State, path []game.Coords) TurnSummary {
	cfg := s.Config()
	f := s.Frame()

	var out TurnSummary
	out.Turn = s.Turn()
	out.Integrity = f.Stats(game.Player1).Integrity
	out.SP, out.MP = s.Resources(game.Player1)
	out.Enemy.Integrity = f.Stats(game.Player2).Integrity
	out.Enemy.SP, out.Enemy.MP = s.Resources(game.Player2)

	out.Structures = []Structure{}
	for _, u := range s.Structures() {
		out.Structures = append(out.Structures, Structure{
			Owner:    u.Owner,
			Type:     cfg.Shorthand(u.Type),
			X:        u.Coords.X,
			Y:        u.Coords.Y,
			Health:   u.Health,
			Upgraded: u.Upgraded,
			Removing: u.Removing,
		})
	}

	cmds := s.SpawnCommands()
	out.Build = commands(cfg, cmds[0])
	out.Deploy = commands(cfg, cmds[1])

	out.Path = append([]game.Coords{}, path...)
	out.Attackers = []game.Coords{}
	if len(path) > 0 {
		for _, u := range s.Attackers(path[len(path)-1]) {
			out.Attackers = append(out.Attackers, u.Coords)
		}
	}
	return out
}

func commands(cfg *game.Config, in []rules.SpawnCommand) []Command {
	out := make([]Command, 0, len(in))
	for _, c := range in {
		out = append(out, Command{Type: cfg.Shorthand(c.Type), X: c.Coords.X, Y: c.Coords.Y})
	}
	return out
}
