package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/brensch/terminal/gameio"
	"github.com/brensch/terminal/logging"
	"github.com/brensch/terminal/store"
	"github.com/brensch/terminal/watch"
)

func main() {
	archiveDir := flag.String("archive-dir", getEnvOrDefault("ARCHIVE_DIR", ""), "Directory for per-game turn parquet files (empty disables archiving)")
	manifestPath := flag.String("manifest", getEnvOrDefault("ARCHIVE_MANIFEST", ""), "Append-only manifest of archived sessions (default <archive-dir>/manifest.log)")
	watchAddr := flag.String("watch-addr", getEnvOrDefault("WATCH_ADDR", ""), "Serve the live turn feed on this address, e.g. :8090 (empty disables)")
	logLevel := flag.String("log-level", getEnvOrDefault("LOG_LEVEL", "info"), "debug, info, warn or error")
	seed := flag.Int("seed", getEnvIntOrDefault("SEED", 0), "Random seed (0 picks one from the clock)")
	prettyLogs := flag.Bool("pretty-logs", getEnvBoolOrDefault("PRETTY_LOGS", false), "Indent log records")
	shutdownWait := flag.Duration("shutdown-wait", getEnvDurationOrDefault("SHUTDOWN_WAIT", 2*time.Second), "Grace period for the watch server on exit")
	flag.Parse()

	// Stdout is the engine channel: everything else goes to stderr.
	log.SetOutput(os.Stderr)

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	logger := slog.New(logging.NewJSONHandler(os.Stderr, &logging.Options{Level: level, Indent: *prettyLogs}))
	slog.SetDefault(logger)

	s := uint64(*seed)
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	algo := newStarter(logger, s)

	log.Printf("Starting starter algo")
	log.Printf("  Seed: %d", s)

	if *archiveDir != "" {
		bw, err := store.NewBatchWriter(*archiveDir)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		algo.archive = bw
		if *manifestPath == "" {
			*manifestPath = filepath.Join(*archiveDir, "manifest.log")
		}
		m, err := store.OpenManifest(*manifestPath)
		if err != nil {
			log.Fatalf("Failed to open manifest: %v", err)
		}
		defer m.Close()
		algo.manifest = m
		log.Printf("  Archive: %s (session %s, %d archived)", *archiveDir, bw.SessionID(), m.Count())
	}

	var srv *http.Server
	if *watchAddr != "" {
		hub := watch.NewHub(logger)
		mux := http.NewServeMux()
		hub.RegisterRoutes(mux)
		srv = &http.Server{Addr: *watchAddr, Handler: mux}
		algo.hub = hub
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("watch server stopped", "error", err)
			}
		}()
		log.Printf("  Watch: ws://%s/ws", *watchAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := &gameio.Driver{
		Reader: gameio.NewReader(os.Stdin),
		Writer: gameio.NewWriter(os.Stdout, nil),
		Loop:   algo,
		Logger: logger,
	}
	runErr := d.Run(ctx)

	if err := algo.Close(); err != nil {
		logger.Error("finalize archive failed", "error", err)
	}
	if srv != nil {
		algo.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownWait)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatalf("Game loop failed: %v", runErr)
	}
	fmt.Fprintln(os.Stderr, "game over")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		var i int
		if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
