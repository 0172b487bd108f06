package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/miu-game/internal/logging"
)

// DefaultSaveDir is used when no directory is configured.
const DefaultSaveDir = ".saves"

const (
	sessionFile = "session.yaml"
	stepsFile   = "steps.yaml"
)

// Store keeps saved sessions under Dir, one directory per session name.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultSaveDir
	}
	return &Store{Dir: dir}
}

// Save writes the session. A session without an id gets a fresh one.
func (st *Store) Save(s *GameSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	dir := filepath.Join(st.Dir, s.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Save session.yaml
	sessionData, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, sessionFile), sessionData, 0644); err != nil {
		return err
	}

	// Save steps.yaml
	stepsData, err := yaml.Marshal(Steps{Forward: s.Forward, Reverse: s.Reverse})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, stepsFile), stepsData, 0644); err != nil {
		return err
	}

	logging.New("store").Info("session saved", "name", s.Name, "id", s.ID, "level", s.LevelID)
	return nil
}

// Load reads and validates a saved session.
func (st *Store) Load(name string) (*GameSession, error) {
	dir := filepath.Join(st.Dir, name)

	// Load session
	sessionData, err := os.ReadFile(filepath.Join(dir, sessionFile))
	if err != nil {
		return nil, err
	}
	var s GameSession
	if err := yaml.Unmarshal(sessionData, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", sessionFile, err)
	}

	// Load steps; a missing file means both chains are empty
	stepsData, err := os.ReadFile(filepath.Join(dir, stepsFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	var steps Steps
	if err := yaml.Unmarshal(stepsData, &steps); err != nil {
		return nil, fmt.Errorf("parse %s: %w", stepsFile, err)
	}
	s.Forward, s.Reverse = steps.Forward, steps.Reverse

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session %q: %w", name, err)
	}
	logging.New("store").Info("session loaded", "name", name, "id", s.ID)
	return &s, nil
}

// List returns the names of saved sessions.
func (st *Store) List() ([]string, error) {
	if _, err := os.Stat(st.Dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(st.Dir)
	if err != nil {
		return nil, err
	}

	var sessions []string
	for _, entry := range entries {
		if entry.IsDir() {
			// session.yaml marks a valid save
			sessionPath := filepath.Join(st.Dir, entry.Name(), sessionFile)
			if _, err := os.Stat(sessionPath); err == nil {
				sessions = append(sessions, entry.Name())
			}
		}
	}
	return sessions, nil
}
