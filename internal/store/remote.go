package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"voicenotes/internal/domain"
)

// ErrNotFound indicates the remote store does not hold the record.
var ErrNotFound = errors.New("session not found")

// TokenSource supplies the bearer token for remote requests.
type TokenSource interface {
	Token() (string, bool)
}

// RemoteStore talks to the backend sessions API, scoped by user id.
type RemoteStore struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

type remoteSession struct {
	domain.Session
	UserID string `json:"userId"`
}

func NewRemoteStore(baseURL string, timeout time.Duration, tokens TokenSource) (*RemoteStore, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("sessions API base URL is not configured")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RemoteStore{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}, nil
}

func (s *RemoteStore) Save(ctx context.Context, user domain.User, session domain.Session) error {
	body, err := json.Marshal(remoteSession{Session: session, UserID: user.ID})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sessions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("session save request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return remoteError("save", resp)
	}
	return nil
}

func (s *RemoteStore) List(ctx context.Context, user domain.User) ([]domain.Session, error) {
	listURL := s.baseURL + "/sessions?" + url.Values{
		"user_id": {user.ID},
		"limit":   {strconv.Itoa(domain.MaxListedSessions)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build list request: %w", err)
	}
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError("list", resp)
	}

	var sessions []domain.Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, fmt.Errorf("failed to decode session list: %w", err)
	}
	if len(sessions) > domain.MaxListedSessions {
		sessions = sessions[:domain.MaxListedSessions]
	}
	return sessions, nil
}

func (s *RemoteStore) Delete(ctx context.Context, user domain.User, id string) error {
	deleteURL := s.baseURL + "/sessions/" + url.PathEscape(id) + "?" + url.Values{"user_id": {user.ID}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("session delete request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return remoteError("delete", resp)
	}
}

func (s *RemoteStore) authorize(req *http.Request) {
	if s.tokens == nil {
		return
	}
	if token, ok := s.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func remoteError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	detail := strings.TrimSpace(string(raw))
	if detail == "" {
		return fmt.Errorf("session %s returned %d", op, resp.StatusCode)
	}
	return fmt.Errorf("session %s returned %d: %s", op, resp.StatusCode, detail)
}
