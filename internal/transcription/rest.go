package transcription

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Config contains transcription client configuration.
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// RESTClient posts finalized audio to a transcription endpoint as a JSON
// body carrying the base64-encoded WAV payload and the language code.
type RESTClient struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

type transcribeRequest struct {
	Audio    string `json:"audio"`
	Language string `json:"language"`
	Model    string `json:"model,omitempty"`
}

type transcribeResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func NewRESTClient(cfg Config, logger *slog.Logger) (*RESTClient, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("transcription endpoint is not configured")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RESTClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

func (c *RESTClient) Transcribe(ctx context.Context, wavData []byte, language string) (string, error) {
	if len(wavData) == 0 {
		return "", errors.New("empty audio payload")
	}

	body, err := json.Marshal(transcribeRequest{
		Audio:    base64.StdEncoding.EncodeToString(wavData),
		Language: language,
		Model:    c.cfg.Model,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode transcription request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("transcription service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}
	if parsed.Error != "" {
		return "", errors.New(parsed.Error)
	}

	c.logger.Debug("transcription completed",
		slog.String("language", language),
		slog.Int("payload_bytes", len(wavData)),
		slog.Duration("elapsed", time.Since(started)),
	)
	return strings.TrimSpace(parsed.Text), nil
}
