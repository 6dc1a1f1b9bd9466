package game

import (
	"encoding/json"
	"fmt"
)

// Phase of a turn as reported in turnInfo.
type Phase int

const (
	PhaseDeploy Phase = iota
	PhaseAction
	PhaseEndGame
)

func (p Phase) String() string {
	switch p {
	case PhaseDeploy:
		return "deploy"
	case PhaseAction:
		return "action"
	case PhaseEndGame:
		return "end"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type TurnInfo struct {
	Phase             Phase
	TurnNumber        int
	ActionFrameNumber int
	TotalFrames       int
}

func (t *TurnInfo) fields() []any {
	return []any{&t.Phase, &t.TurnNumber, &t.ActionFrameNumber, &t.TotalFrames}
}

func (t *TurnInfo) UnmarshalJSON(data []byte) error {
	var f [4]float64
	if err := decodeTuple(data, &f[0], &f[1], &f[2], &f[3]); err != nil {
		return fmt.Errorf("turnInfo: %w", err)
	}
	t.Phase = Phase(f[0])
	t.TurnNumber = int(f[1])
	t.ActionFrameNumber = int(f[2])
	t.TotalFrames = int(f[3])
	return nil
}

func (t TurnInfo) MarshalJSON() ([]byte, error) { return json.Marshal(t.fields()) }

// PlayerStats is one player's [integrity, cores, bits, timeMs] tuple.
// Cores are structure points (SP); bits are mobile points (MP).
type PlayerStats struct {
	Integrity   float64
	Cores       float64
	Bits        float64
	TimeTakenMs float64
}

func (s *PlayerStats) fields() []any {
	return []any{&s.Integrity, &s.Cores, &s.Bits, &s.TimeTakenMs}
}

func (s *PlayerStats) UnmarshalJSON(data []byte) error {
	if err := decodeTuple(data, s.fields()...); err != nil {
		return fmt.Errorf("player stats: %w", err)
	}
	return nil
}

func (s PlayerStats) MarshalJSON() ([]byte, error) { return json.Marshal(s.fields()) }

// PlayerUnit is one [x, y, stability, unitId] record.
type PlayerUnit struct {
	Coords    Coords
	Stability float64
	ID        UnitID
}

func (u *PlayerUnit) UnmarshalJSON(data []byte) error {
	var x, y float64
	if err := decodeTuple(data, &x, &y, &u.Stability, &u.ID); err != nil {
		return fmt.Errorf("player unit: %w", err)
	}
	u.Coords = Coords{X: int(x), Y: int(y)}
	return nil
}

func (u PlayerUnit) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{u.Coords.X, u.Coords.Y, u.Stability, u.ID})
}

// PlayerUnits holds one list per unit type, indexed by UnitType. The Remove
// and Upgrade lists name walls flagged for removal or already upgraded.
type PlayerUnits [NumUnitTypes][]PlayerUnit

func (p *PlayerUnits) UnmarshalJSON(data []byte) error {
	var lists [][]PlayerUnit
	if err := json.Unmarshal(data, &lists); err != nil {
		return fmt.Errorf("player units: %w", err)
	}
	*p = PlayerUnits{}
	for i := 0; i < len(lists) && i < NumUnitTypes; i++ {
		p[i] = lists[i]
	}
	return nil
}

func (p PlayerUnits) MarshalJSON() ([]byte, error) {
	lists := make([][]PlayerUnit, NumUnitTypes)
	for i := range p {
		lists[i] = p[i]
		if lists[i] == nil {
			lists[i] = []PlayerUnit{}
		}
	}
	return json.Marshal(lists)
}

// ByType returns the units listed under t.
func (p *PlayerUnits) ByType(t UnitType) []PlayerUnit {
	if !t.Valid() {
		return nil
	}
	return p[t]
}

// Frame is one per-turn or per-action-frame snapshot from the engine.
type Frame struct {
	TurnInfo TurnInfo    `json:"turnInfo"`
	P1Stats  PlayerStats `json:"p1Stats"`
	P2Stats  PlayerStats `json:"p2Stats"`
	P1Units  PlayerUnits `json:"p1Units"`
	P2Units  PlayerUnits `json:"p2Units"`
	Events   Events      `json:"events"`
	EndStats *EndStats   `json:"endStats,omitempty"`
}

// Stats returns the stats of player p.
func (f *Frame) Stats(p PlayerID) PlayerStats {
	if p == Player2 {
		return f.P2Stats
	}
	return f.P1Stats
}

// Units returns the unit lists of player p.
func (f *Frame) Units(p PlayerID) *PlayerUnits {
	if p == Player2 {
		return &f.P2Units
	}
	return &f.P1Units
}

// IsEndGame reports whether the frame is the final one of the match.
func (f *Frame) IsEndGame() bool {
	return f.TurnInfo.Phase == PhaseEndGame || f.EndStats != nil
}

type Winner int

const (
	WinnerTie Winner = iota
	WinnerPlayer1
	WinnerPlayer2
)

type PlayerEndStats struct {
	DynamicResourceSpent          float64 `json:"dynamic_resource_spent"`
	DynamicResourceDestroyed      float64 `json:"dynamic_resource_destroyed"`
	DynamicResourceSpoiled        float64 `json:"dynamic_resource_spoiled"`
	StationaryResourceSpent       float64 `json:"stationary_resource_spent"`
	StationaryResourceLeftOnBoard float64 `json:"stationary_resource_left_on_board"`
	PointsScored                  float64 `json:"points_scored"`
	Crashed                       bool    `json:"crashed"`
	TotalComputationTime          float64 `json:"total_computation_time"`
}

type EndStats struct {
	Player1  PlayerEndStats `json:"player1"`
	Player2  PlayerEndStats `json:"player2"`
	Duration float64        `json:"duration"`
	Turns    int            `json:"turns"`
	Frames   int            `json:"frames"`
	Winner   Winner         `json:"winner"`
}

// Clone performs a deep copy of the unit lists and stats. Events and end
// stats are shared since nothing mutates them after decoding.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	c := *f
	for i := range f.P1Units {
		c.P1Units[i] = append([]PlayerUnit(nil), f.P1Units[i]...)
	}
	for i := range f.P2Units {
		c.P2Units[i] = append([]PlayerUnit(nil), f.P2Units[i]...)
	}
	return &c
}
