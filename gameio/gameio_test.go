package gameio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/game/gametest"
	"github.com/brensch/terminal/rules"
)

func frameLine(t *testing.T, f *game.Frame) string {
	t.Helper()
	b, err := json.Marshal(f)
	require.NoError(t, err)
	return string(b)
}

func compactConfig(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.Compact(&buf, gametest.ConfigJSON()))
	return buf.String()
}

type recordingLoop struct {
	cfg     *game.Config
	turns   []int
	actions int
	failOn  int
}

func (l *recordingLoop) Initialize(_ context.Context, cfg *game.Config) error {
	l.cfg = cfg
	return nil
}

func (l *recordingLoop) OnTurn(_ context.Context, s *rules.State) error {
	l.turns = append(l.turns, s.Turn())
	s.AttemptSpawn(game.Coords{X: 5 + s.Turn(), Y: 10}, game.Wall)
	if s.Turn() == l.failOn {
		return errors.New("strategy blew up")
	}
	s.AttemptSpawn(game.Coords{X: 13, Y: 0}, game.Scout)
	return nil
}

func (l *recordingLoop) OnActionFrame(_ context.Context, s *rules.State) error {
	l.actions++
	return nil
}

func TestDriverRun(t *testing.T) {
	action := gametest.Frame(0, 9, 4)
	action.TurnInfo.Phase = game.PhaseAction
	action.TurnInfo.ActionFrameNumber = 3
	end := gametest.Frame(2, 0, 0)
	end.TurnInfo.Phase = game.PhaseEndGame

	input := strings.Join([]string{
		compactConfig(t),
		frameLine(t, gametest.Frame(0, 10, 5)),
		frameLine(t, action),
		"",
		frameLine(t, gametest.Frame(1, 10, 5)),
		frameLine(t, end),
		frameLine(t, gametest.Frame(3, 10, 5)),
	}, "\n")

	var out bytes.Buffer
	loop := &recordingLoop{failOn: 1}
	d := &Driver{
		Reader: NewReader(strings.NewReader(input)),
		Writer: NewWriter(&out, nil),
		Loop:   loop,
	}
	require.NoError(t, d.Run(context.Background()))

	assert.NotNil(t, loop.cfg)
	assert.Equal(t, []int{0, 1}, loop.turns)
	assert.Equal(t, 1, loop.actions)

	// A failing turn still submits what it queued.
	want := strings.Join([]string{
		`[["FF",5,10]]`,
		`[["PI",13,0]]`,
		`[["FF",6,10]]`,
		`[]`,
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

func TestDriverStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	d := &Driver{
		Reader: NewReader(strings.NewReader(compactConfig(t) + "\n")),
		Writer: NewWriter(&out, nil),
		Loop:   &recordingLoop{failOn: -1},
	}
	require.NoError(t, d.Run(context.Background()))
	assert.Empty(t, out.String())
}

func TestDriverHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &Driver{
		Reader: NewReader(strings.NewReader(compactConfig(t) + "\n" + frameLine(t, gametest.Frame(0, 1, 1)))),
		Writer: NewWriter(&bytes.Buffer{}, nil),
		Loop:   &recordingLoop{failOn: -1},
	}
	assert.ErrorIs(t, d.Run(ctx), context.Canceled)
}

func TestReaderBadConfig(t *testing.T) {
	r := NewReader(strings.NewReader(`{"unitInformation":[{}]}` + "\n"))
	_, err := r.Config()
	assert.ErrorIs(t, err, game.ErrShortCatalog)

	r = NewReader(strings.NewReader("not json\n"))
	_, err = r.Config()
	assert.Error(t, err)

	r = NewReader(strings.NewReader(""))
	_, err = r.Config()
	assert.True(t, IsEOF(err))
}

func TestNextTurnFrameSkipsActions(t *testing.T) {
	action := gametest.Frame(4, 0, 0)
	action.TurnInfo.Phase = game.PhaseAction
	input := strings.Join([]string{
		compactConfig(t),
		frameLine(t, action),
		frameLine(t, action),
		frameLine(t, gametest.Frame(5, 0, 0)),
	}, "\n")

	r := NewReader(strings.NewReader(input))
	f, err := r.NextTurnFrame()
	require.NoError(t, err)
	assert.Equal(t, 5, f.TurnInfo.TurnNumber)
	assert.Equal(t, game.PhaseDeploy, f.TurnInfo.Phase)

	_, err = r.NextTurnFrame()
	assert.True(t, IsEOF(err))
}

func TestEncodeCommands(t *testing.T) {
	cfg := gametest.Config()
	line, err := EncodeCommands(cfg, []rules.SpawnCommand{
		{Type: game.Remove, Coords: game.Coords{X: 3, Y: 12}},
		{Type: game.Upgrade, Coords: game.Coords{X: 4, Y: 12}},
	})
	require.NoError(t, err)
	assert.Equal(t, `[["RM",3,12],["UP",4,12]]`, string(line))

	cfg.UnitInformation[game.Wall].Shorthand = nil
	_, err = EncodeCommands(cfg, []rules.SpawnCommand{{Type: game.Wall}})
	assert.Error(t, err)
}

func TestWritePathAndReadBack(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, nil)
	require.NoError(t, w.WritePath([]game.Coords{{X: 13, Y: 0}, {X: 14, Y: 0}}))
	require.NoError(t, w.WritePath(nil))
	assert.Equal(t, "[[13,0],[14,0]]\n[]\n", out.String())

	r := NewReader(strings.NewReader("[13, 0]\n2\n"))
	c, err := r.ReadCoords()
	require.NoError(t, err)
	assert.Equal(t, game.Coords{X: 13, Y: 0}, c)
	n, err := r.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

var errSink = errors.New("sink closed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errSink }

func TestWriterSurfacesWriteErrors(t *testing.T) {
	// Longer than the buffer, so Write itself hits the sink.
	long := make([]game.Coords, 1000)
	for i := range long {
		long[i] = game.Coords{X: 13, Y: i % 28}
	}
	w := NewWriter(failingWriter{}, nil)
	err := w.WritePath(long)
	require.ErrorIs(t, err, errSink)
	assert.Contains(t, err.Error(), "write path")

	cfg := gametest.Config()
	s := rules.New(cfg, gametest.Frame(0, 10, 5))
	require.True(t, s.AttemptSpawn(game.Coords{X: 13, Y: 0}, game.Scout))
	err = NewWriter(failingWriter{}, cfg).SubmitTurn(s)
	assert.ErrorIs(t, err, errSink)
}
