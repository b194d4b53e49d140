package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store persists a Document as a single JSON file. Reads and writes are
// whole-document: Load reads everything, Save replaces everything.
type Store struct {
	path string
}

// New creates a Store backed by the JSON file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document from disk. A missing file yields a fresh empty
// document. A file that fails to parse, or parses but lacks the "users" or
// "leaderboard" keys, is copied to a timestamped backup (best effort), a
// warning is printed, and a fresh empty document is returned. Availability
// wins over the corrupted data.
func (s *Store) Load() *Document {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewDocument()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: read %s: %v; starting with empty data\n", s.path, err)
		return NewDocument()
	}

	if err := checkShape(raw); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: %v; backing up and starting with empty data\n", s.path, err)
		s.backup(raw)
		return NewDocument()
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: %v; backing up and starting with empty data\n", s.path, err)
		s.backup(raw)
		return NewDocument()
	}

	if doc.Users == nil {
		doc.Users = make(map[string]*UserRecord)
	}
	if doc.Leaderboard == nil {
		doc.Leaderboard = []LeaderboardEntry{}
	}
	return &doc
}

// checkShape verifies the raw bytes are a JSON object carrying both
// top-level keys the document layout requires.
func checkShape(raw []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return fmt.Errorf("corrupted document: %w", err)
	}
	if _, ok := top["users"]; !ok {
		return fmt.Errorf("invalid document structure: missing \"users\"")
	}
	if _, ok := top["leaderboard"]; !ok {
		return fmt.Errorf("invalid document structure: missing \"leaderboard\"")
	}
	return nil
}

// backup copies the original bytes to a timestamped sibling path.
// Best effort: failure is logged and ignored.
func (s *Store) backup(raw []byte) {
	name := fmt.Sprintf("%s.backup_%s", s.path, time.Now().Format("20060102_150405"))
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not back up corrupted file: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "backup created: %s\n", name)
}

// Save writes the document to a temporary sibling file and atomically
// renames it over the target. The live file is never partially written:
// on any failure the previous on-disk document is left untouched and the
// orphaned temp file is removed.
func (s *Store) Save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// DefaultPath resolves the progress file path in priority order:
// 1. PROMPTGYM_DATA environment variable
// 2. $XDG_DATA_HOME/promptgym/user_progress.json
// 3. ~/.local/share/promptgym/user_progress.json
func DefaultPath() (string, error) {
	if p := os.Getenv("PROMPTGYM_DATA"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "promptgym", "user_progress.json")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
