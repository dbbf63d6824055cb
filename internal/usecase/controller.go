package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"voicenotes/internal/audio"
	"voicenotes/internal/domain"
	"voicenotes/internal/ports"
)

var (
	ErrNoActiveRecording   = errors.New("no active recording")
	ErrRecordingInProgress = errors.New("a recording is already in progress")
)

// Config controls recording behavior.
type Config struct {
	Audio        ports.AudioConfig
	ChunkSize    int
	TickInterval time.Duration
	Language     string
}

// RecordingController orchestrates the recording lifecycle: capture,
// level metering, duration bookkeeping, finalize, transcribe, save.
// It exclusively owns the capture session and all timers of a take.
type RecordingController struct {
	capture   ports.AudioCapture
	events    ports.EventSink
	finalizer sessionFinalizer
	cfg       Config

	mu       sync.Mutex
	language string
	starting bool
	current  *activeTake
}

func NewRecordingController(
	capture ports.AudioCapture,
	transcriber ports.Transcriber,
	store ports.SessionStore,
	authn ports.AuthClient,
	notifier ports.Notifier,
	events ports.EventSink,
	cfg Config,
) *RecordingController {
	if cfg.ChunkSize < 256 {
		cfg.ChunkSize = 4096
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if !domain.ValidLanguage(cfg.Language) {
		cfg.Language = "en"
	}
	return &RecordingController{
		capture:   capture,
		events:    events,
		finalizer: newSessionFinalizer(transcriber, store, authn, notifier, events),
		cfg:       cfg,
		language:  cfg.Language,
	}
}

// SetLanguage selects the transcription language for subsequent recordings.
func (c *RecordingController) SetLanguage(code string) error {
	if !domain.ValidLanguage(code) {
		return fmt.Errorf("unsupported language %q", code)
	}
	c.mu.Lock()
	c.language = code
	c.mu.Unlock()
	return nil
}

// Language returns the currently selected transcription language.
func (c *RecordingController) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// Start begins a new recording take. A second Start while a take is active
// (recording, paused, stopping or transcribing) is rejected.
func (c *RecordingController) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.current != nil || c.starting {
		c.mu.Unlock()
		return ErrRecordingInProgress
	}
	c.starting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.starting = false
		c.mu.Unlock()
	}()

	takeCtx, cancel := context.WithCancel(ctx)
	audioSession, err := c.capture.Start(takeCtx, c.cfg.Audio)
	if err != nil {
		cancel()
		return err
	}

	take := &activeTake{
		cancel:   cancel,
		audio:    audioSession,
		buffer:   audio.NewTakeBuffer(c.cfg.Audio.SampleRate, c.cfg.Audio.Channels),
		state:    domain.RecorderStateRecording,
		pumpDone: make(chan struct{}),
		tickStop: make(chan struct{}),
		tickDone: make(chan struct{}),
	}

	c.mu.Lock()
	c.current = take
	c.mu.Unlock()

	go pumpChunks(take, c.events, c.cfg.ChunkSize)
	go runDurationTicker(take, c.events, c.cfg.TickInterval)

	c.events.RecorderStateChanged(domain.RecorderStateRecording, domain.ReasonRecordingStarted)
	return nil
}

// TogglePause suspends or resumes chunk buffering and the duration tick.
// Level metering is unaffected. Returns the state after the toggle.
func (c *RecordingController) TogglePause() (domain.RecorderState, error) {
	take, err := c.getCurrent()
	if err != nil {
		return domain.RecorderStateIdle, err
	}

	paused, ok := take.togglePause()
	if !ok {
		return take.getState(), ErrNoActiveRecording
	}
	if paused {
		c.events.RecorderStateChanged(domain.RecorderStatePaused, domain.ReasonRecordingPaused)
		return domain.RecorderStatePaused, nil
	}
	c.events.RecorderStateChanged(domain.RecorderStateRecording, domain.ReasonRecordingResumed)
	return domain.RecorderStateRecording, nil
}

// Stop finalizes the take: drains capture, encodes the buffered audio,
// transcribes it and saves the resulting session. Returns the saved session
// and where it landed. There is no cancelling the in-flight transcription.
func (c *RecordingController) Stop(ctx context.Context) (domain.Session, domain.SaveLocation, error) {
	take, err := c.getCurrent()
	if err != nil {
		return domain.Session{}, "", err
	}

	if !take.beginStop() {
		return domain.Session{}, "", ErrNoActiveRecording
	}
	c.events.RecorderStateChanged(domain.RecorderStateStopping, domain.ReasonTranscribing)

	take.stopTicker()
	if err := take.audio.Stop(); err != nil {
		c.events.RecorderError(domain.ErrorCodeCapture, "failed to stop audio capture cleanly")
	}

	// Finalize only after the capture pump has drained, so chunk order and
	// completeness are settled before encoding.
	<-take.pumpDone
	<-take.tickDone

	take.setState(domain.RecorderStateTranscribing)
	c.events.RecorderStateChanged(domain.RecorderStateTranscribing, domain.ReasonTranscribing)

	wavData, err := audio.EncodeWAV(take.buffer)
	if err != nil {
		if errors.Is(err, audio.ErrEmptyTake) {
			c.finishTake(take, domain.ReasonNoAudioCaptured)
			return domain.Session{}, "", err
		}
		c.events.RecorderError(domain.ErrorCodeEncoding, err.Error())
		c.finishTake(take, domain.ReasonEncodingFailed)
		return domain.Session{}, "", err
	}

	session, location, reason, err := c.finalizer.Finalize(ctx, wavData, c.Language(), take.durationSeconds())
	c.finishTake(take, reason)
	if err != nil {
		return domain.Session{}, "", err
	}
	return session, location, nil
}

// Abort discards an in-progress take without transcription.
func (c *RecordingController) Abort() error {
	take, err := c.getCurrent()
	if err != nil {
		return err
	}

	if !take.beginStop() {
		return ErrNoActiveRecording
	}

	take.stopTicker()
	take.cancel()
	_ = take.audio.Stop()
	<-take.pumpDone
	<-take.tickDone

	c.finishTake(take, domain.ReasonRecordingDiscarded)
	return nil
}

// Status returns the current recorder status.
func (c *RecordingController) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return domain.Status{State: domain.RecorderStateIdle}
	}
	state, paused, seconds, level := c.current.snapshot()
	return domain.Status{
		State:           state,
		Paused:          paused,
		DurationSeconds: seconds,
		LevelPercent:    level,
		Active:          state != domain.RecorderStateIdle,
	}
}

func (c *RecordingController) getCurrent() (*activeTake, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, ErrNoActiveRecording
	}
	return c.current, nil
}

// finishTake releases take resources, resets to idle and emits the closing
// state transition.
func (c *RecordingController) finishTake(take *activeTake, reason domain.StateReason) {
	take.cancel()
	take.setState(domain.RecorderStateIdle)

	c.mu.Lock()
	if c.current == take {
		c.current = nil
	}
	c.mu.Unlock()

	c.events.RecorderStateChanged(domain.RecorderStateIdle, reason)
}
