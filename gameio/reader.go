// Package gameio speaks the engine's line protocol: one JSON message per
// line on stdin (the configuration, then a frame per turn and per action
// frame) and two command lines per turn on stdout.
package gameio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/brensch/terminal/game"
)

const maxLineSize = 64 << 20

// Reader decodes engine messages. It is not safe for concurrent use.
type Reader struct {
	sc  *bufio.Scanner
	cfg *game.Config
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<20), maxLineSize)
	return &Reader{sc: sc}
}

// nextLine returns the next non-blank line, or io.EOF.
func (r *Reader) nextLine() ([]byte, error) {
	for r.sc.Scan() {
		line := bytes.TrimSpace(r.sc.Bytes())
		if len(line) > 0 {
			return line, nil
		}
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("read engine message: %w", err)
	}
	return nil, io.EOF
}

// Config returns the game configuration, reading it on first use.
func (r *Reader) Config() (*game.Config, error) {
	if r.cfg != nil {
		return r.cfg, nil
	}
	line, err := r.nextLine()
	if err != nil {
		return nil, err
	}
	var cfg game.Config
	if err := json.Unmarshal(line, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r.cfg = &cfg
	return r.cfg, nil
}

// NextFrame returns the next frame of any phase. It returns io.EOF once the
// engine closes the stream.
func (r *Reader) NextFrame() (*game.Frame, error) {
	if _, err := r.Config(); err != nil {
		return nil, err
	}
	line, err := r.nextLine()
	if err != nil {
		return nil, err
	}
	var f game.Frame
	if err := json.Unmarshal(line, &f); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return &f, nil
}

// NextTurnFrame skips action frames and returns the next deploy or end-game
// frame.
func (r *Reader) NextTurnFrame() (*game.Frame, error) {
	for {
		f, err := r.NextFrame()
		if err != nil {
			return nil, err
		}
		if f.TurnInfo.Phase != game.PhaseAction {
			return f, nil
		}
	}
}

// ReadCoords decodes a single [x, y] line. The path-parity harness feeds
// start tiles this way.
func (r *Reader) ReadCoords() (game.Coords, error) {
	line, err := r.nextLine()
	if err != nil {
		return game.Coords{}, err
	}
	var c game.Coords
	if err := json.Unmarshal(line, &c); err != nil {
		return game.Coords{}, fmt.Errorf("decode coords: %w", err)
	}
	return c, nil
}

// ReadInt decodes a single integer line.
func (r *Reader) ReadInt() (int, error) {
	line, err := r.nextLine()
	if err != nil {
		return 0, err
	}
	var n int
	if err := json.Unmarshal(line, &n); err != nil {
		return 0, fmt.Errorf("decode int: %w", err)
	}
	return n, nil
}

// IsEOF reports whether err marks a cleanly closed stream.
func IsEOF(err error) bool { return errors.Is(err, io.EOF) }
