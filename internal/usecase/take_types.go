package usecase

import (
	"sync"

	"voicenotes/internal/audio"
	"voicenotes/internal/domain"
	"voicenotes/internal/ports"
)

// activeTake is the transient state of one recording. It exists only between
// Start and the end of Stop/Abort and is never persisted.
type activeTake struct {
	cancel func()
	audio  ports.AudioSession
	buffer *audio.TakeBuffer

	mu      sync.Mutex
	state   domain.RecorderState
	paused  bool
	seconds int
	level   float64

	pumpDone chan struct{}
	tickStop chan struct{}
	tickDone chan struct{}
	tickOnce sync.Once
}

// stopTicker halts the duration tick exactly once.
func (t *activeTake) stopTicker() {
	t.tickOnce.Do(func() { close(t.tickStop) })
}

func (t *activeTake) setState(state domain.RecorderState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = state
}

func (t *activeTake) getState() domain.RecorderState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// togglePause flips the paused flag while the take is live. Returns the new
// value and whether the toggle applied. Check and transition share one
// critical section so concurrent callers cannot both pass the state guard.
func (t *activeTake) togglePause() (bool, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case domain.RecorderStateRecording, domain.RecorderStatePaused:
	default:
		return false, false
	}
	t.paused = !t.paused
	if t.paused {
		t.state = domain.RecorderStatePaused
	} else {
		t.state = domain.RecorderStateRecording
	}
	return t.paused, true
}

// beginStop moves a live take into stopping. Only one caller wins; a take
// already stopping, transcribing or idle reports false.
func (t *activeTake) beginStop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case domain.RecorderStateRecording, domain.RecorderStatePaused:
		t.state = domain.RecorderStateStopping
		return true
	default:
		return false
	}
}

func (t *activeTake) isPaused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

func (t *activeTake) incrementSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seconds++
	return t.seconds
}

func (t *activeTake) durationSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}

func (t *activeTake) setLevel(level float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.level = level
}

func (t *activeTake) snapshot() (domain.RecorderState, bool, int, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.paused, t.seconds, t.level
}
