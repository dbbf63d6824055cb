package bootstrap

import (
	"fmt"
	"log/slog"

	"voicenotes/internal/audio"
	"voicenotes/internal/auth"
	"voicenotes/internal/config"
	"voicenotes/internal/logging"
	"voicenotes/internal/notify"
	"voicenotes/internal/ports"
	"voicenotes/internal/providers/deepgram"
	"voicenotes/internal/store"
	"voicenotes/internal/transcription"
	"voicenotes/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Controller *usecase.RecordingController
	Store      *store.Store
	Auth       *auth.Client
	Config     config.Config
	Logger     *slog.Logger
}

// Build wires all backend dependencies for the current runtime.
func Build(eventSink ports.EventSink) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}

	logger := logging.New(cfg.Logging)

	authClient, err := auth.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		return Services{}, err
	}

	remote, err := store.NewRemoteStore(cfg.API.BaseURL, cfg.API.Timeout, authClient)
	if err != nil {
		return Services{}, err
	}
	local, err := store.NewLocalStore(cfg.Storage.DataDir)
	if err != nil {
		return Services{}, err
	}
	sessions := store.New(remote, local, logger)

	transcriber, err := buildTranscriber(cfg, logger)
	if err != nil {
		return Services{}, err
	}

	controller := usecase.NewRecordingController(
		audio.NewFFmpegCapture(cfg.Audio.RecorderCommand),
		transcriber,
		sessions,
		authClient,
		notify.NewSystemNotifier("Voicenotes"),
		eventSink,
		usecase.Config{
			Audio: ports.AudioConfig{
				SampleRate:  cfg.Audio.SampleRate,
				Channels:    cfg.Audio.Channels,
				InputFormat: cfg.Audio.InputFormat,
				InputDevice: cfg.Audio.InputDevice,
			},
			ChunkSize: cfg.Audio.ChunkSize,
			Language:  cfg.Transcription.Language,
		},
	)

	logger.Info("services assembled",
		slog.String("transcriber", cfg.Transcription.Backend),
		slog.String("language", cfg.Transcription.Language),
		slog.String("data_dir", cfg.Storage.DataDir),
	)

	return Services{
		Controller: controller,
		Store:      sessions,
		Auth:       authClient,
		Config:     cfg,
		Logger:     logger,
	}, nil
}

func buildTranscriber(cfg config.Config, logger *slog.Logger) (ports.Transcriber, error) {
	switch cfg.Transcription.Backend {
	case "openai":
		return transcription.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "deepgram":
		return deepgram.NewClient(deepgram.Config{
			APIKey:      cfg.Deepgram.APIKey,
			APIBaseURL:  cfg.Deepgram.APIBaseURL,
			Model:       cfg.Deepgram.Model,
			SmartFormat: cfg.Deepgram.SmartFormat,
			Timeout:     cfg.Transcription.Timeout,
		})
	case "rest":
		return transcription.NewRESTClient(transcription.Config{
			Endpoint: cfg.Transcription.Endpoint,
			APIKey:   cfg.Transcription.APIKey,
			Model:    cfg.Transcription.Model,
			Timeout:  cfg.Transcription.Timeout,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", cfg.Transcription.Backend)
	}
}
