// Package store persists transcription sessions behind a single
// save/list/delete contract. The remote sessions API is the primary backend;
// any remote failure falls back to on-device JSON storage so a finished
// transcription is never lost to a network error. The two backends are not
// reconciled afterwards.
package store

import (
	"context"
	"log/slog"

	"voicenotes/internal/domain"
)

// Store is the dual-path session store handed to callers. Callers never
// branch on backend identity; Save reports where the record landed.
type Store struct {
	remote *RemoteStore
	local  *LocalStore
	logger *slog.Logger
}

func New(remote *RemoteStore, local *LocalStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{remote: remote, local: local, logger: logger}
}

// Save writes the record remotely, falling back to local storage on any
// failure. The returned location distinguishes "saved" from "saved locally".
func (s *Store) Save(ctx context.Context, user domain.User, session domain.Session) (domain.SaveLocation, error) {
	if err := s.remote.Save(ctx, user, session); err != nil {
		// Locally saved records are never synced back to the remote store;
		// the warn keeps the divergence visible.
		s.logger.Warn("remote save failed, falling back to local storage",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
		if localErr := s.local.Save(user, session); localErr != nil {
			return "", localErr
		}
		return domain.SaveLocationLocal, nil
	}
	return domain.SaveLocationRemote, nil
}

// List returns up to the retention cap of records, most recent first.
func (s *Store) List(ctx context.Context, user domain.User) ([]domain.Session, error) {
	sessions, err := s.remote.List(ctx, user)
	if err != nil {
		s.logger.Warn("remote list failed, falling back to local storage",
			slog.String("error", err.Error()),
		)
		return s.local.List(user)
	}
	return sessions, nil
}

// Delete removes the record from whichever backing store holds it.
func (s *Store) Delete(ctx context.Context, user domain.User, id string) error {
	if err := s.remote.Delete(ctx, user, id); err != nil {
		s.logger.Warn("remote delete failed, trying local storage",
			slog.String("session_id", id),
			slog.String("error", err.Error()),
		)
		return s.local.Delete(user, id)
	}
	return nil
}
