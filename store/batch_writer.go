package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

var errSessionClosed = errors.New("store: session already finalized")

// Archived describes a finalized session. Path is empty when the session
// recorded no turns and nothing was kept.
type Archived struct {
	SessionID string
	Path      string
	Turns     int
}

func (a Archived) Empty() bool { return a.Path == "" }

// BatchWriter records one game session. Turns stream into a file under
// outDir/tmp that only appears in outDir once Finalize succeeds.
type BatchWriter struct {
	sessionID string
	tmpPath   string
	outPath   string

	file   *os.File
	writer *parquet.GenericWriter[TurnRow]
	turns  int
}

// NewBatchWriter opens a session under a fresh random id.
func NewBatchWriter(outDir string) (*BatchWriter, error) {
	return OpenSession(outDir, uuid.NewString())
}

// OpenSession opens a session with a caller-chosen id, which also names the
// archive file.
func OpenSession(outDir, sessionID string) (*BatchWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("archive directory is required")
	}
	if sessionID == "" || filepath.Base(sessionID) != sessionID {
		return nil, fmt.Errorf("invalid session id %q", sessionID)
	}
	tmpPath, outPath, err := sessionPaths(outDir, sessionID)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", sessionID, err)
	}
	w := parquet.NewGenericWriter[TurnRow](f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.SkipPageBounds("frame_json"),
	)
	w.SetKeyValueMetadata("schema", schemaName)
	w.SetKeyValueMetadata("session_id", sessionID)

	return &BatchWriter{
		sessionID: sessionID,
		tmpPath:   tmpPath,
		outPath:   outPath,
		file:      f,
		writer:    w,
	}, nil
}

// sessionPaths creates outDir/tmp and returns where the session is written
// and where it ends up.
func sessionPaths(outDir, sessionID string) (tmpPath, outPath string, err error) {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		abs = outDir
	}
	tmpDir := filepath.Join(abs, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create tmp dir: %w", err)
	}
	name := "session_" + sessionID + ".parquet"
	return filepath.Join(tmpDir, name), filepath.Join(abs, name), nil
}

func (b *BatchWriter) SessionID() string { return b.sessionID }
func (b *BatchWriter) TmpPath() string   { return b.tmpPath }
func (b *BatchWriter) OutPath() string   { return b.outPath }
func (b *BatchWriter) BufferedRows() int { return b.turns }

// WriteTurn stamps row with the session id and appends it.
func (b *BatchWriter) WriteTurn(row TurnRow) error {
	return b.WriteRows([]TurnRow{row})
}

// WriteRows stamps each row with the session id before writing it.
func (b *BatchWriter) WriteRows(rows []TurnRow) error {
	if b.writer == nil {
		return errSessionClosed
	}
	for i := range rows {
		rows[i].SessionID = b.sessionID
	}
	if _, err := b.writer.Write(rows); err != nil {
		return fmt.Errorf("write session %s: %w", b.sessionID, err)
	}
	b.turns += len(rows)
	return nil
}

// Finalize ends the session. A session with turns is moved into the archive
// directory; an empty one is discarded. Later calls return an empty result.
func (b *BatchWriter) Finalize() (Archived, error) {
	res := Archived{SessionID: b.sessionID}
	if b.writer == nil {
		return res, nil
	}

	err := errors.Join(b.writer.Close(), b.file.Sync(), b.file.Close())
	b.writer, b.file = nil, nil
	if err != nil {
		return res, fmt.Errorf("close session %s: %w", b.sessionID, err)
	}

	if b.turns == 0 {
		if err := os.Remove(b.tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return res, fmt.Errorf("discard empty session %s: %w", b.sessionID, err)
		}
		return res, nil
	}
	if err := os.Rename(b.tmpPath, b.outPath); err != nil {
		return res, fmt.Errorf("publish session %s: %w", b.sessionID, err)
	}
	res.Path, res.Turns = b.outPath, b.turns
	return res, nil
}
