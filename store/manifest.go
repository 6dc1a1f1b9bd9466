package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Manifest tracks which sessions have a finalized archive file.
// It is backed by an append-only file with one tab-separated
// "<session_id>\t<path>" entry per line.
//
// Malformed lines are skipped on load, so a crash mid-append costs at most
// the last entry.
type Manifest struct {
	mu    sync.RWMutex
	file  *os.File
	files map[string]string
}

func OpenManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest path is required")
	}

	files := make(map[string]string)
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			id, file, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "\t")
			if !ok || id == "" || file == "" {
				continue
			}
			files[id] = file
		}
		_ = f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create manifest dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	return &Manifest{file: file, files: files}, nil
}

func (m *Manifest) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	return err
}

// Lookup returns the archive file recorded for a session.
func (m *Manifest) Lookup(sessionID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.files[sessionID]
	return p, ok
}

func (m *Manifest) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// Add records a finalized session and syncs. Re-adding a session is a no-op.
func (m *Manifest) Add(sessionID, path string) error {
	if sessionID == "" || path == "" {
		return fmt.Errorf("session id and path are required")
	}
	if strings.ContainsAny(sessionID+path, "\t\n") {
		return fmt.Errorf("manifest entry contains a tab or newline")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[sessionID]; ok {
		return nil
	}
	if m.file == nil {
		return fmt.Errorf("manifest is closed")
	}
	if _, err := m.file.WriteString(sessionID + "\t" + path + "\n"); err != nil {
		return fmt.Errorf("append manifest: %w", err)
	}
	if err := m.file.Sync(); err != nil {
		return fmt.Errorf("sync manifest: %w", err)
	}
	m.files[sessionID] = path
	return nil
}
