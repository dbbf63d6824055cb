package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"voicenotes/internal/domain"
)

// Config stores runtime configuration for the recorder backend.
type Config struct {
	Transcription TranscriptionConfig
	OpenAI        OpenAIConfig
	Deepgram      DeepgramConfig
	API           APIConfig
	Audio         AudioConfig
	Storage       StorageConfig
	Logging       LoggingConfig
}

// TranscriptionConfig selects and tunes the transcription backend.
type TranscriptionConfig struct {
	Backend  string // "rest", "openai" or "deepgram"
	Endpoint string
	APIKey   string
	Model    string
	Language string
	Timeout  time.Duration
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type DeepgramConfig struct {
	APIKey      string
	APIBaseURL  string
	Model       string
	SmartFormat bool
}

// APIConfig points at the backend that serves auth and session persistence.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AudioConfig struct {
	RecorderCommand string
	InputFormat     string
	InputDevice     string
	SampleRate      int
	Channels        int
	ChunkSize       int
}

type StorageConfig struct {
	DataDir string
}

type LoggingConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// Load resolves configuration from a .env file (if present), environment
// variables, and sensible defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, errors.New("could not determine home directory")
	}
	dataDir := envOrDefault("VOICENOTES_DATA_DIR", filepath.Join(home, ".local", "share", "voicenotes"))

	cfg := Config{
		Transcription: TranscriptionConfig{
			Backend:  strings.ToLower(envOrDefault("VOICENOTES_TRANSCRIBER", "rest")),
			Endpoint: strings.TrimSpace(os.Getenv("VOICENOTES_TRANSCRIBE_ENDPOINT")),
			APIKey:   strings.TrimSpace(os.Getenv("VOICENOTES_TRANSCRIBE_API_KEY")),
			Model:    strings.TrimSpace(os.Getenv("VOICENOTES_TRANSCRIBE_MODEL")),
			Language: envOrDefault("VOICENOTES_LANGUAGE", "en"),
			Timeout:  time.Duration(envOrDefaultInt("VOICENOTES_TRANSCRIBE_TIMEOUT_SEC", 30)) * time.Second,
		},
		OpenAI: OpenAIConfig{
			APIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:  strings.TrimSpace(os.Getenv("VOICENOTES_OPENAI_MODEL")),
		},
		Deepgram: DeepgramConfig{
			APIKey:      strings.TrimSpace(os.Getenv("DEEPGRAM_API_KEY")),
			APIBaseURL:  envOrDefault("DEEPGRAM_API_BASE", "https://api.deepgram.com/v1"),
			Model:       envOrDefault("DEEPGRAM_MODEL", "nova-2"),
			SmartFormat: envOrDefaultBool("DEEPGRAM_SMART_FORMAT", true),
		},
		API: APIConfig{
			BaseURL: strings.TrimSpace(os.Getenv("VOICENOTES_API_BASE")),
			Timeout: time.Duration(envOrDefaultInt("VOICENOTES_API_TIMEOUT_SEC", 15)) * time.Second,
		},
		Audio: AudioConfig{
			RecorderCommand: envOrDefault("VOICENOTES_FFMPEG_COMMAND", "ffmpeg"),
			InputFormat:     envOrDefault("VOICENOTES_AUDIO_INPUT_FORMAT", "pulse"),
			InputDevice:     envOrDefault("VOICENOTES_AUDIO_INPUT_DEVICE", "default"),
			SampleRate:      envOrDefaultInt("VOICENOTES_SAMPLE_RATE", 16000),
			Channels:        envOrDefaultInt("VOICENOTES_CHANNELS", 1),
			ChunkSize:       envOrDefaultInt("VOICENOTES_AUDIO_CHUNK_SIZE", 4096),
		},
		Storage: StorageConfig{
			DataDir: dataDir,
		},
		Logging: LoggingConfig{
			Level:      envOrDefault("VOICENOTES_LOG_LEVEL", "info"),
			Format:     envOrDefault("VOICENOTES_LOG_FORMAT", "json"),
			File:       envOrDefault("VOICENOTES_LOG_FILE", filepath.Join(dataDir, "voicenotes.log")),
			MaxSizeMB:  envOrDefaultInt("VOICENOTES_LOG_MAX_SIZE_MB", 10),
			MaxBackups: envOrDefaultInt("VOICENOTES_LOG_MAX_BACKUPS", 3),
		},
	}

	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Audio.ChunkSize < 256 {
		cfg.Audio.ChunkSize = 4096
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Transcription.Backend {
	case "rest", "openai", "deepgram":
	default:
		return fmt.Errorf("unknown transcription backend %q", c.Transcription.Backend)
	}
	if !domain.ValidLanguage(c.Transcription.Language) {
		return fmt.Errorf("unsupported language %q", c.Transcription.Language)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of [debug, info, warn, error], got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format must be 'json' or 'text', got %q", c.Logging.Format)
	}
	return nil
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
