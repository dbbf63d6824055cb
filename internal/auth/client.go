package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"voicenotes/internal/domain"
)

// ErrNotAuthenticated indicates no user is currently logged in.
var ErrNotAuthenticated = errors.New("not authenticated")

// Client authenticates against the backend auth API and caches the current
// user identity in memory. The token it holds scopes all session requests.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	user  domain.User
	token string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
	Error string      `json:"error,omitempty"`
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("auth API base URL is not configured")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Login(ctx context.Context, email string, password string) (domain.User, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.User{}, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return domain.User{}, fmt.Errorf("login returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.User{}, fmt.Errorf("failed to decode login response: %w", err)
	}
	if parsed.Error != "" {
		return domain.User{}, errors.New(parsed.Error)
	}
	if parsed.User.ID == "" || parsed.Token == "" {
		return domain.User{}, errors.New("login response is missing user or token")
	}

	c.mu.Lock()
	c.user = parsed.User
	c.token = parsed.Token
	c.mu.Unlock()

	return parsed.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.user = domain.User{}
	c.token = ""
	c.mu.Unlock()

	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("failed to build logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Local identity is already cleared; server-side invalidation failing
		// is not fatal.
		return nil
	}
	resp.Body.Close()
	return nil
}

// CurrentUser returns the cached identity, if any.
func (c *Client) CurrentUser() (domain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user, c.user.ID != ""
}

// Token implements store.TokenSource.
func (c *Client) Token() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.token != ""
}
