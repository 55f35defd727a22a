package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	projectsFileName = "projects.json"
	commentsFileName = "comments.json"
)

// Store is the durable home of the two tracker documents (projects.json,
// comments.json) plus the derived audit log (events.sqlite).
type Store struct {
	Dir string
}

// mu serializes read-modify-write cycles within this process. Cross-process
// writers still race last-write-wins on the document files.
var mu sync.Mutex

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".tracker")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TRACKER_DIR")); v != "" {
		return v, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".tracker"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) projectsPath() string {
	return filepath.Join(s.Dir, projectsFileName)
}

func (s Store) commentsPath() string {
	return filepath.Join(s.Dir, commentsFileName)
}

// ParseError means a backing document exists but is not well-formed JSON.
// A missing document is not a ParseError (stores load as empty instead):
// only a present-but-broken file must be surfaced, never treated as empty,
// so that a full-document rewrite cannot silently discard user data.
type ParseError struct {
	Path string
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e ParseError) Unwrap() error { return e.Err }
