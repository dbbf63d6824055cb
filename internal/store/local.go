package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"voicenotes/internal/domain"
)

// LocalStore persists session records on device as a JSON array per user,
// keyed "sessions_<userID>". Used when the remote store is unreachable.
type LocalStore struct {
	dir string
	mu  sync.Mutex
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("local store directory is not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local store directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(user domain.User) string {
	return filepath.Join(s.dir, "sessions_"+user.ID+".json")
}

func (s *LocalStore) Save(user domain.User, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.read(user)
	if err != nil {
		return err
	}
	sessions = append([]domain.Session{session}, sessions...)
	return s.write(user, sessions)
}

func (s *LocalStore) List(user domain.User) ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.read(user)
	if err != nil {
		return nil, err
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.After(sessions[j].Timestamp)
	})
	if len(sessions) > domain.MaxListedSessions {
		sessions = sessions[:domain.MaxListedSessions]
	}
	return sessions, nil
}

func (s *LocalStore) Delete(user domain.User, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.read(user)
	if err != nil {
		return err
	}

	kept := sessions[:0]
	found := false
	for _, session := range sessions {
		if session.ID == id {
			found = true
			continue
		}
		kept = append(kept, session)
	}
	if !found {
		return ErrNotFound
	}
	return s.write(user, kept)
}

func (s *LocalStore) read(user domain.User) ([]domain.Session, error) {
	data, err := os.ReadFile(s.path(user))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read local sessions: %w", err)
	}

	var sessions []domain.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("failed to parse local sessions: %w", err)
	}
	return sessions, nil
}

func (s *LocalStore) write(user domain.User, sessions []domain.Session) error {
	if sessions == nil {
		sessions = []domain.Session{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode local sessions: %w", err)
	}
	if err := os.WriteFile(s.path(user), data, 0o644); err != nil {
		return fmt.Errorf("failed to write local sessions: %w", err)
	}
	return nil
}
