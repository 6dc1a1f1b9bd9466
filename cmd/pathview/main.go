package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/terminal/game"
	"github.com/brensch/terminal/gameio"
	"github.com/brensch/terminal/logging"
	"github.com/brensch/terminal/rules"
	"github.com/brensch/terminal/tui"
)

func main() {
	configPath := flag.String("config", getEnvOrDefault("GAME_CONFIG", "game-configs.json"), "Game configuration JSON")
	framePath := flag.String("frame", getEnvOrDefault("GAME_FRAME", ""), "Frame JSON, or a replay with one frame per line (empty starts from a blank board)")
	turn := flag.Int("turn", -1, "Turn to load from a replay (-1 takes the last deploy frame)")
	logPath := flag.String("log-file", getEnvOrDefault("LOG_FILE", "pathview.log"), "Diagnostics go here while the TUI owns the terminal")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	frame := &game.Frame{
		P1Stats: game.PlayerStats{Cores: cfg.Resources.StartingCores, Bits: cfg.Resources.StartingBits},
		P2Stats: game.PlayerStats{Cores: cfg.Resources.StartingCores, Bits: cfg.Resources.StartingBits},
	}
	if *framePath != "" {
		frame, err = loadFrame(*framePath, *turn)
		if err != nil {
			log.Fatalf("Failed to load frame: %v", err)
		}
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	logger := logging.New(logFile, nil)

	s := rules.New(cfg, frame, rules.WithLogger(logger))
	p := tea.NewProgram(tui.NewModel(s), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		log.Fatalf("TUI failed: %v", err)
	}

	// Leave the planned commands on stdout so they can be pasted into a
	// replay or test.
	if m, ok := final.(tui.Model); ok {
		for _, cmds := range m.State().SpawnCommands() {
			line, err := gameio.EncodeCommands(cfg, cmds)
			if err != nil {
				log.Fatalf("Encode commands: %v", err)
			}
			fmt.Println(string(line))
		}
	}
}

func loadConfig(path string) (*game.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gameio.NewReader(f).Config()
}

// loadFrame reads a single frame, or picks one deploy frame out of a replay.
func loadFrame(path string, turn int) (*game.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var single game.Frame
	if err := json.Unmarshal(data, &single); err == nil {
		return &single, nil
	}

	// Replays carry the configuration first; frames follow.
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := gameio.NewReader(f)
	if _, err := r.Config(); err != nil {
		return nil, fmt.Errorf("replay header: %w", err)
	}
	var picked *game.Frame
	for {
		fr, err := r.NextTurnFrame()
		if gameio.IsEOF(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		if fr.TurnInfo.Phase != game.PhaseDeploy {
			continue
		}
		picked = fr
		if fr.TurnInfo.TurnNumber == turn {
			break
		}
	}
	if picked == nil {
		return nil, fmt.Errorf("no deploy frame in %s", path)
	}
	if turn >= 0 && picked.TurnInfo.TurnNumber != turn {
		return nil, fmt.Errorf("turn %d not found in %s", turn, path)
	}
	return picked, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
