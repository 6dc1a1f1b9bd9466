package gameio

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/rules"
)

// Loop is a strategy driven by the engine.
//
// OnTurn plans on a fresh board; whatever it queued is submitted when it
// returns, error or not. OnActionFrame observes the action phase.
type Loop interface {
	Initialize(ctx context.Context, cfg *game.Config) error
	OnTurn(ctx context.Context, s *rules.State) error
	OnActionFrame(ctx context.Context, s *rules.State) error
}

var errNoWriter = errors.New("gameio: driver has no writer")

// Driver runs a Loop against the engine until the game ends.
type Driver struct {
	Reader *Reader
	Writer *Writer
	Loop   Loop
	Logger *slog.Logger
	// StateOptions are passed to every rules.New call.
	StateOptions []rules.Option
}

// Run returns nil when the end-game frame arrives or the engine closes the
// stream.
func (d *Driver) Run(ctx context.Context) error {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	opts := append([]rules.Option{rules.WithLogger(log)}, d.StateOptions...)

	cfg, err := d.Reader.Config()
	if err != nil {
		return err
	}
	if d.Writer == nil {
		return errNoWriter
	}
	if d.Writer.cfg == nil {
		d.Writer.cfg = cfg
	}
	if err := d.Loop.Initialize(ctx, cfg); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := d.Reader.NextFrame()
		if err != nil {
			if IsEOF(err) {
				log.Info("engine closed stream")
				return nil
			}
			return err
		}

		switch frame.TurnInfo.Phase {
		case game.PhaseDeploy:
			start := time.Now()
			s := rules.New(cfg, frame, opts...)
			if err := d.Loop.OnTurn(ctx, s); err != nil {
				log.Error("turn handler failed", "turn", s.Turn(), "error", err)
			}
			if err := d.Writer.SubmitTurn(s); err != nil {
				return err
			}
			cmds := s.SpawnCommands()
			log.Debug("turn submitted", "turn", s.Turn(),
				"structures", len(cmds[0]), "mobiles", len(cmds[1]),
				"elapsed", time.Since(start))

		case game.PhaseAction:
			s := rules.New(cfg, frame, opts...)
			if err := d.Loop.OnActionFrame(ctx, s); err != nil {
				log.Error("action frame handler failed", "turn", s.Turn(),
					"frame", frame.TurnInfo.ActionFrameNumber, "error", err)
			}

		default:
			log.Info("game over", "turn", frame.TurnInfo.TurnNumber)
			return nil
		}
	}
}
