package transcription

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient transcribes audio through the OpenAI audio transcription API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey string, model string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("OPENAI_API_KEY is not configured")
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}, nil
}

func (c *OpenAIClient) Transcribe(ctx context.Context, wavData []byte, language string) (string, error) {
	if len(wavData) == 0 {
		return "", errors.New("empty audio payload")
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: "take.wav",
		Reader:   bytes.NewReader(wavData),
		Language: language,
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription failed: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
