// Package store archives planned turns to Parquet for offline analysis.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/rules"
)

const schemaName = "terminal_turn_v1"

// TurnRow is one deploy turn as the planning player submitted it.
//
// Structures holds both players' structures after planning, so units that
// were queued this turn appear with ID "spawned". Commands are in submission
// order: every structure-phase command, then every mobile-phase command.
// PathX/PathY is the predicted route of the first mobile the turn deployed,
// empty when none was deployed.
type TurnRow struct {
	SessionID string `parquet:"session_id,dict"`
	Turn      int32  `parquet:"turn"`
	CreatedNs int64  `parquet:"created_ns"`

	Integrity      float32 `parquet:"integrity"`
	SP             float32 `parquet:"sp"`
	MP             float32 `parquet:"mp"`
	EnemyIntegrity float32 `parquet:"enemy_integrity"`
	EnemySP        float32 `parquet:"enemy_sp"`
	EnemyMP        float32 `parquet:"enemy_mp"`

	Structures []ArchiveUnit    `parquet:"structures"`
	Commands   []ArchiveCommand `parquet:"commands"`

	PathX []int32 `parquet:"path_x"`
	PathY []int32 `parquet:"path_y"`

	// FrameJSON is the frame as received, before planning.
	FrameJSON []byte `parquet:"frame_json,optional,zstd"`
}

type ArchiveUnit struct {
	Owner    int32   `parquet:"owner"`
	Type     string  `parquet:"type,dict"`
	X        int32   `parquet:"x"`
	Y        int32   `parquet:"y"`
	Health   float32 `parquet:"health"`
	Upgraded bool    `parquet:"upgraded"`
	Removing bool    `parquet:"removing"`
}

type ArchiveCommand struct {
	// Phase is 0 for the structure line and 1 for the mobile line.
	Phase int32  `parquet:"phase"`
	Type  string `parquet:"type,dict"`
	X     int32  `parquet:"x"`
	Y     int32  `parquet:"y"`
}

// NewTurnRow snapshots a planned turn. received is the frame the engine sent;
// nil skips FrameJSON.
func NewTurnRow(sessionID string, received *game.Frame, s *rules.State, path []game.Coords) (TurnRow, error) {
	cfg := s.Config()
	sp, mp := s.Resources(game.Player1)
	esp, emp := s.Resources(game.Player2)

	row := TurnRow{
		SessionID:      sessionID,
		Turn:           int32(s.Turn()),
		CreatedNs:      time.Now().UnixNano(),
		Integrity:      float32(s.Frame().Stats(game.Player1).Integrity),
		SP:             float32(sp),
		MP:             float32(mp),
		EnemyIntegrity: float32(s.Frame().Stats(game.Player2).Integrity),
		EnemySP:        float32(esp),
		EnemyMP:        float32(emp),
	}

	for _, u := range s.Structures() {
		row.Structures = append(row.Structures, ArchiveUnit{
			Owner:    int32(u.Owner),
			Type:     cfg.Shorthand(u.Type),
			X:        int32(u.Coords.X),
			Y:        int32(u.Coords.Y),
			Health:   float32(u.Health),
			Upgraded: u.Upgraded,
			Removing: u.Removing,
		})
	}

	for phase, cmds := range s.SpawnCommands() {
		for _, c := range cmds {
			row.Commands = append(row.Commands, ArchiveCommand{
				Phase: int32(phase),
				Type:  cfg.Shorthand(c.Type),
				X:     int32(c.Coords.X),
				Y:     int32(c.Coords.Y),
			})
		}
	}

	for _, c := range path {
		row.PathX = append(row.PathX, int32(c.X))
		row.PathY = append(row.PathY, int32(c.Y))
	}

	if received != nil {
		b, err := json.Marshal(received)
		if err != nil {
			return TurnRow{}, fmt.Errorf("encode frame: %w", err)
		}
		row.FrameJSON = b
	}
	return row, nil
}

// Path rebuilds the predicted route stored in the row.
func (r *TurnRow) Path() []game.Coords {
	n := min(len(r.PathX), len(r.PathY))
	out := make([]game.Coords, n)
	for i := range n {
		out[i] = game.Coords{X: int(r.PathX[i]), Y: int(r.PathY[i])}
	}
	return out
}

func WriteTurnsParquet(outPath string, rows []TurnRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.SkipPageBounds("frame_json"),
		parquet.KeyValueMetadata("schema", schemaName),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

func ReadTurnsParquet(path string) ([]TurnRow, error) {
	rows, err := parquet.ReadFile[TurnRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
