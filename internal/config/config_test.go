package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Transcription.Backend != "rest" {
		t.Fatalf("unexpected backend: %q", cfg.Transcription.Backend)
	}
	if cfg.Transcription.Language != "en" {
		t.Fatalf("unexpected language: %q", cfg.Transcription.Language)
	}
	if cfg.Transcription.Timeout != 30*time.Second {
		t.Fatalf("unexpected transcription timeout: %v", cfg.Transcription.Timeout)
	}
	if cfg.Audio.RecorderCommand != "ffmpeg" || cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 {
		t.Fatalf("unexpected audio defaults: %+v", cfg.Audio)
	}
	if !strings.HasSuffix(cfg.Storage.DataDir, filepath.Join(".local", "share", "voicenotes")) {
		t.Fatalf("unexpected data dir: %q", cfg.Storage.DataDir)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Deepgram.APIBaseURL != "https://api.deepgram.com/v1" || !cfg.Deepgram.SmartFormat {
		t.Fatalf("unexpected deepgram defaults: %+v", cfg.Deepgram)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("VOICENOTES_TRANSCRIBER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("VOICENOTES_LANGUAGE", "ja")
	t.Setenv("VOICENOTES_API_BASE", "https://api.example.com/")
	t.Setenv("VOICENOTES_SAMPLE_RATE", "48000")
	t.Setenv("VOICENOTES_DATA_DIR", "/tmp/voicenotes-test")
	t.Setenv("VOICENOTES_LOG_LEVEL", "debug")
	t.Setenv("VOICENOTES_LOG_FORMAT", "text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Transcription.Backend != "openai" {
		t.Fatalf("backend not lowercased: %q", cfg.Transcription.Backend)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("unexpected openai key: %q", cfg.OpenAI.APIKey)
	}
	if cfg.Transcription.Language != "ja" {
		t.Fatalf("unexpected language: %q", cfg.Transcription.Language)
	}
	if cfg.API.BaseURL != "https://api.example.com/" {
		t.Fatalf("unexpected api base: %q", cfg.API.BaseURL)
	}
	if cfg.Audio.SampleRate != 48000 {
		t.Fatalf("unexpected sample rate: %d", cfg.Audio.SampleRate)
	}
	if cfg.Storage.DataDir != "/tmp/voicenotes-test" {
		t.Fatalf("unexpected data dir: %q", cfg.Storage.DataDir)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("VOICENOTES_TRANSCRIBER", "whisper-cpp")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestLoadRejectsUnsupportedLanguage(t *testing.T) {
	t.Setenv("VOICENOTES_LANGUAGE", "tlh")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported language")
	}
}

func TestLoadRejectsBadLogConfig(t *testing.T) {
	t.Setenv("VOICENOTES_LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad log level")
	}
}

func TestLoadClampsAudioValues(t *testing.T) {
	t.Setenv("VOICENOTES_SAMPLE_RATE", "-1")
	t.Setenv("VOICENOTES_CHANNELS", "0")
	t.Setenv("VOICENOTES_AUDIO_CHUNK_SIZE", "32")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 || cfg.Audio.ChunkSize != 4096 {
		t.Fatalf("clamps not applied: %+v", cfg.Audio)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("VOICENOTES_TEST_STR", "  value  ")
	t.Setenv("VOICENOTES_TEST_INT", "nope")
	t.Setenv("VOICENOTES_TEST_BOOL", "off")

	if got := envOrDefault("VOICENOTES_TEST_STR", "fallback"); got != "value" {
		t.Fatalf("envOrDefault: %q", got)
	}
	if got := envOrDefault("VOICENOTES_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("envOrDefault missing: %q", got)
	}
	if got := envOrDefaultInt("VOICENOTES_TEST_INT", 7); got != 7 {
		t.Fatalf("envOrDefaultInt: %d", got)
	}
	if got := envOrDefaultBool("VOICENOTES_TEST_BOOL", true); got {
		t.Fatalf("envOrDefaultBool should honor 'off'")
	}
	if got := envOrDefaultBool("VOICENOTES_TEST_MISSING", true); !got {
		t.Fatalf("envOrDefaultBool should fall back")
	}
}
