// Command pathtest answers path queries so the pathfinder can be checked
// against the engine. It reads the configuration, then repeatedly a frame, a
// start tile [x, y] and a target edge number, and answers each query with the
// path as one [[x, y], ...] line. Illegal queries get an empty path.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/brensch/terminal/bounds"
	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/gameio"
	"github.com/brensch/terminal/logging"
	"github.com/brensch/terminal/pathfind"
	"github.com/brensch/terminal/rules"
)

func main() {
	logLevel := flag.String("log-level", getEnvOrDefault("LOG_LEVEL", "warn"), "debug, info, warn or error")
	flag.Parse()

	log.SetOutput(os.Stderr)
	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	logger := logging.New(os.Stderr, level)

	r := gameio.NewReader(os.Stdin)
	cfg, err := r.Config()
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	w := gameio.NewWriter(os.Stdout, cfg)

	queries := 0
	for {
		path, err := answer(r, cfg, logger)
		if gameio.IsEOF(err) {
			break
		}
		if err != nil {
			log.Fatalf("Query %d: %v", queries+1, err)
		}
		if err := w.WritePath(path); err != nil {
			log.Fatalf("Write path: %v", err)
		}
		queries++
	}
	logger.Info("done", "queries", queries)
}

// answer reads one query. Read errors are returned; a start the pathfinder
// rejects yields an empty path.
func answer(r *gameio.Reader, cfg *game.Config, logger *slog.Logger) ([]game.Coords, error) {
	frame, err := r.NextFrame()
	if err != nil {
		return nil, err
	}
	start, err := r.ReadCoords()
	if err != nil {
		return nil, err
	}
	edge, err := r.ReadInt()
	if err != nil {
		return nil, err
	}

	s := rules.New(cfg, frame, rules.WithLogger(logger))
	path, err := pathfind.Find(s, start, bounds.Edge(edge))
	if err != nil {
		logger.Warn("no path", "start", start, "edge", edge, "error", err)
		return nil, nil
	}
	return path, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
