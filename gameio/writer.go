package gameio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/rules"
)

// Writer sends turn submissions to the engine.
type Writer struct {
	mu  sync.Mutex
	w   *bufio.Writer
	cfg *game.Config
}

func NewWriter(w io.Writer, cfg *game.Config) *Writer {
	return &Writer{w: bufio.NewWriter(w), cfg: cfg}
}

// EncodeCommands renders one command line: [["SH", x, y], ...].
func EncodeCommands(cfg *game.Config, cmds []rules.SpawnCommand) ([]byte, error) {
	out := make([][3]any, 0, len(cmds))
	for _, c := range cmds {
		sh := cfg.Shorthand(c.Type)
		if sh == "" {
			return nil, fmt.Errorf("no shorthand for %s", c.Type)
		}
		out = append(out, [3]any{sh, c.Coords.X, c.Coords.Y})
	}
	return json.Marshal(out)
}

// SubmitTurn writes the structure line, then the mobile line, and flushes.
func (w *Writer) SubmitTurn(s *rules.State) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, cmds := range s.SpawnCommands() {
		line, err := EncodeCommands(w.cfg, cmds)
		if err != nil {
			return fmt.Errorf("submit turn %d: %w", s.Turn(), err)
		}
		if err := w.writeLine(line); err != nil {
			return fmt.Errorf("submit turn %d: %w", s.Turn(), err)
		}
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("submit turn %d: %w", s.Turn(), err)
	}
	return nil
}

// WritePath writes a path as one [[x, y], ...] line.
func (w *Writer) WritePath(path []game.Coords) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if path == nil {
		path = []game.Coords{}
	}
	line, err := json.Marshal(path)
	if err != nil {
		return err
	}
	if err := w.writeLine(line); err != nil {
		return fmt.Errorf("write path: %w", err)
	}
	return w.w.Flush()
}

func (w *Writer) writeLine(line []byte) error {
	if _, err := w.w.Write(line); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}
