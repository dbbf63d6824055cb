package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"voicenotes/internal/audio"
	"voicenotes/internal/auth"
	"voicenotes/internal/bootstrap"
	"voicenotes/internal/config"
	"voicenotes/internal/domain"
	"voicenotes/internal/ports"
	"voicenotes/internal/store"
	"voicenotes/internal/usecase"
)

const (
	eventState      = "voicenotes:state"
	eventLevel      = "voicenotes:level"
	eventDuration   = "voicenotes:duration"
	eventTranscript = "voicenotes:transcript"
	eventError      = "voicenotes:error"
)

// App is the Wails application root.
type App struct {
	ctx context.Context

	controller *usecase.RecordingController
	sessions   *store.Store
	authn      *auth.Client
	clipboard  ports.Clipboard
	cfg        config.Config
	logger     *slog.Logger
	bootErr    error
}

func NewApp() *App {
	return &App{clipboard: &wailsClipboard{}}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(a)
	if err != nil {
		a.bootErr = err
		a.RecorderError(domain.ErrorCodeStartup, err.Error())
		return
	}

	a.controller = services.Controller
	a.sessions = services.Store
	a.authn = services.Auth
	a.cfg = services.Config
	a.logger = services.Logger
	a.RecorderStateChanged(domain.RecorderStateIdle, domain.ReasonReady)
}

// StartRecording begins a new recording take.
func (a *App) StartRecording() (domain.Status, error) {
	if err := a.requireReady(); err != nil {
		return domain.Status{}, err
	}
	if _, ok := a.authn.CurrentUser(); !ok {
		a.RecorderError(domain.ErrorCodeAuth, "sign in to record")
		return domain.Status{}, auth.ErrNotAuthenticated
	}
	if err := a.controller.Start(a.ctx); err != nil {
		code := domain.ErrorCodeCapture
		if errors.Is(err, audio.ErrMicPermission) {
			code = domain.ErrorCodeMicPermission
		}
		if !errors.Is(err, usecase.ErrRecordingInProgress) {
			a.RecorderError(code, err.Error())
		}
		return domain.Status{}, err
	}
	return a.controller.Status(), nil
}

// TogglePause suspends or resumes the active recording.
func (a *App) TogglePause() (domain.Status, error) {
	if err := a.requireReady(); err != nil {
		return domain.Status{}, err
	}
	if _, err := a.controller.TogglePause(); err != nil {
		return domain.Status{}, err
	}
	return a.controller.Status(), nil
}

// StopRecording finalizes the take, transcribes it and saves the session.
func (a *App) StopRecording() (domain.StopResult, error) {
	if err := a.requireReady(); err != nil {
		return domain.StopResult{}, err
	}
	session, location, err := a.controller.Stop(a.ctx)
	if err != nil {
		return domain.StopResult{}, err
	}
	return domain.StopResult{Session: session, Location: location}, nil
}

// AbortRecording discards an in-progress take.
func (a *App) AbortRecording() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.controller.Abort(); err != nil {
		if errors.Is(err, usecase.ErrNoActiveRecording) {
			return nil
		}
		return err
	}
	return nil
}

// GetStatus returns the current recorder status.
func (a *App) GetStatus() domain.Status {
	if a.controller == nil {
		if a.bootErr != nil {
			return domain.Status{State: domain.RecorderStateError, Message: a.bootErr.Error()}
		}
		return domain.Status{State: domain.RecorderStateIdle}
	}
	return a.controller.Status()
}

// Languages returns the supported transcription language codes.
func (a *App) Languages() []string {
	return domain.SupportedLanguages()
}

// SetLanguage selects the transcription language for new recordings.
func (a *App) SetLanguage(code string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.controller.SetLanguage(code)
}

// GetLanguage returns the selected transcription language.
func (a *App) GetLanguage() string {
	if a.controller == nil {
		return ""
	}
	return a.controller.Language()
}

// ListSessions returns the current user's recent sessions, newest first.
func (a *App) ListSessions() ([]domain.Session, error) {
	if err := a.requireReady(); err != nil {
		return nil, err
	}
	user, ok := a.authn.CurrentUser()
	if !ok {
		return nil, auth.ErrNotAuthenticated
	}
	sessions, err := a.sessions.List(a.ctx, user)
	if err != nil {
		a.RecorderError(domain.ErrorCodeStorage, err.Error())
		return nil, err
	}
	return sessions, nil
}

// DeleteSession removes a session record.
func (a *App) DeleteSession(id string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	user, ok := a.authn.CurrentUser()
	if !ok {
		return auth.ErrNotAuthenticated
	}
	if err := a.sessions.Delete(a.ctx, user, id); err != nil {
		a.RecorderError(domain.ErrorCodeStorage, err.Error())
		return err
	}
	return nil
}

// CopyTranscript writes transcript text into the system clipboard.
func (a *App) CopyTranscript(text string) error {
	if err := a.clipboard.SetText(a.ctx, text); err != nil {
		a.RecorderError(domain.ErrorCodeClipboard, "clipboard write failed")
		return err
	}
	return nil
}

// ExportTranscript saves a session's text to a file chosen by the user.
// Returns the chosen path, or "" when the dialog was cancelled.
func (a *App) ExportTranscript(id string) (string, error) {
	if err := a.requireReady(); err != nil {
		return "", err
	}
	sessions, err := a.ListSessions()
	if err != nil {
		return "", err
	}

	var target *domain.Session
	for i := range sessions {
		if sessions[i].ID == id {
			target = &sessions[i]
			break
		}
	}
	if target == nil {
		return "", fmt.Errorf("session %s not found", id)
	}

	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Export transcript",
		DefaultFilename: "voicenote-" + target.Timestamp.Format("2006-01-02-150405") + ".txt",
	})
	if err != nil {
		a.RecorderError(domain.ErrorCodeExport, err.Error())
		return "", err
	}
	if path == "" {
		return "", nil
	}

	if err := os.WriteFile(path, []byte(target.Text), 0o644); err != nil {
		a.RecorderError(domain.ErrorCodeExport, err.Error())
		return "", err
	}
	return path, nil
}

// Login authenticates against the backend and returns the user.
func (a *App) Login(email string, password string) (domain.User, error) {
	if err := a.requireReady(); err != nil {
		return domain.User{}, err
	}
	user, err := a.authn.Login(a.ctx, email, password)
	if err != nil {
		a.RecorderError(domain.ErrorCodeAuth, err.Error())
		return domain.User{}, err
	}
	return user, nil
}

// Logout clears the current user identity.
func (a *App) Logout() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.authn.Logout(a.ctx)
}

// GetCurrentUser returns the logged-in user, or nil.
func (a *App) GetCurrentUser() *domain.User {
	if a.authn == nil {
		return nil
	}
	user, ok := a.authn.CurrentUser()
	if !ok {
		return nil
	}
	return &user
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}

	return map[string]string{
		"transcriber":      a.cfg.Transcription.Backend,
		"language":         a.controller.Language(),
		"audioInput":       a.cfg.Audio.InputDevice,
		"audioInputFormat": a.cfg.Audio.InputFormat,
		"dataDir":          a.cfg.Storage.DataDir,
	}
}

type wailsClipboard struct{}

func (c *wailsClipboard) SetText(ctx context.Context, text string) error {
	return runtime.ClipboardSetText(ctx, text)
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.controller == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// RecorderStateChanged emits recorder lifecycle updates to the frontend.
func (a *App) RecorderStateChanged(state domain.RecorderState, reason domain.StateReason) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventState, map[string]string{
		"state":   string(state),
		"reason":  string(reason),
		"message": stateReasonMessage(reason),
	})
}

// LevelSample emits an audio level meter sample.
func (a *App) LevelSample(percent float64) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventLevel, map[string]float64{"percent": percent})
}

// DurationTick emits the running recording duration.
func (a *App) DurationTick(seconds int, formatted string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventDuration, map[string]any{
		"seconds":   seconds,
		"formatted": formatted,
	})
}

// TranscriptReady emits a freshly saved session.
func (a *App) TranscriptReady(session domain.Session, location domain.SaveLocation) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventTranscript, map[string]any{
		"session":  session,
		"location": string(location),
	})
}

// RecorderError emits backend errors to the UI.
func (a *App) RecorderError(code domain.ErrorCode, detail string) {
	if a.logger != nil {
		a.logger.Error("recorder error", slog.String("code", string(code)), slog.String("detail", detail))
	}
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func stateReasonMessage(reason domain.StateReason) string {
	switch reason {
	case domain.ReasonReady:
		return "Ready to record"
	case domain.ReasonRecordingStarted:
		return "Recording started"
	case domain.ReasonRecordingPaused:
		return "Recording paused"
	case domain.ReasonRecordingResumed:
		return "Recording resumed"
	case domain.ReasonTranscribing:
		return "Recording stopped. Transcribing..."
	case domain.ReasonSessionSaved:
		return "Transcription saved"
	case domain.ReasonSessionSavedLocally:
		return "Transcription saved locally"
	case domain.ReasonRecordingDiscarded:
		return "Recording discarded"
	case domain.ReasonNoAudioCaptured:
		return "No audio captured"
	case domain.ReasonTranscriptionFailed:
		return "Transcription failed"
	case domain.ReasonEncodingFailed:
		return "Audio encoding failed"
	case domain.ReasonSaveFailed:
		return "Saving the session failed"
	case domain.ReasonNotAuthenticated:
		return "Sign in to save sessions"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeMicPermission:
		return "Microphone access denied"
	case domain.ErrorCodeCapture:
		return "Audio capture issue"
	case domain.ErrorCodeEncoding:
		return "Audio encoding failed"
	case domain.ErrorCodeTranscription:
		return "Transcription error"
	case domain.ErrorCodeStorage:
		return "Session storage error"
	case domain.ErrorCodeAuth:
		return "Authentication required"
	case domain.ErrorCodeClipboard:
		return "Clipboard write failed"
	case domain.ErrorCodeExport:
		return "Export failed"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}
