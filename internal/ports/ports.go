package ports

import (
	"context"
	"io"

	"voicenotes/internal/domain"
)

// AudioConfig describes how the microphone should be captured.
type AudioConfig struct {
	SampleRate  int
	Channels    int
	InputFormat string
	InputDevice string
}

// AudioSession is a live capture session delivering s16le PCM.
type AudioSession interface {
	io.ReadCloser
	Stop() error
}

// AudioCapture creates microphone capture sessions.
type AudioCapture interface {
	Start(ctx context.Context, cfg AudioConfig) (AudioSession, error)
}

// Transcriber converts a finalized WAV payload into text.
type Transcriber interface {
	Transcribe(ctx context.Context, wavData []byte, language string) (string, error)
}

// SessionStore persists session records, remote first with a local fallback.
type SessionStore interface {
	Save(ctx context.Context, user domain.User, session domain.Session) (domain.SaveLocation, error)
	List(ctx context.Context, user domain.User) ([]domain.Session, error)
	Delete(ctx context.Context, user domain.User, id string) error
}

// AuthClient resolves and manages the current user identity.
type AuthClient interface {
	Login(ctx context.Context, email string, password string) (domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (domain.User, bool)
}

// Clipboard writes text into the system clipboard.
type Clipboard interface {
	SetText(ctx context.Context, text string) error
}

// Notifier shows a transient system notification.
type Notifier interface {
	Notify(title string, message string)
}

// EventSink emits backend state/events to the UI.
type EventSink interface {
	RecorderStateChanged(state domain.RecorderState, reason domain.StateReason)
	LevelSample(percent float64)
	DurationTick(seconds int, formatted string)
	TranscriptReady(session domain.Session, location domain.SaveLocation)
	RecorderError(code domain.ErrorCode, detail string)
}
