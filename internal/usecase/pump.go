package usecase

import (
	"errors"
	"fmt"
	"io"
	"time"

	"voicenotes/internal/audio"
	"voicenotes/internal/domain"
	"voicenotes/internal/ports"
)

// pumpChunks drains the capture session until it ends. Every chunk feeds the
// level meter; only unpaused chunks reach the take buffer, in arrival order.
func pumpChunks(take *activeTake, events ports.EventSink, chunkSize int) {
	defer close(take.pumpDone)

	if chunkSize < 256 {
		chunkSize = 4096
	}

	buf := make([]byte, chunkSize)
	for {
		n, err := take.audio.Read(buf)
		if n > 0 {
			level := audio.LevelPercent(buf[:n])
			take.setLevel(level)
			events.LevelSample(level)
			if !take.isPaused() {
				take.buffer.Append(buf[:n])
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				events.RecorderError(domain.ErrorCodeCapture, fmt.Sprintf("audio capture error: %v", err))
				// The clock stops with the capture; Stop/Abort still drain
				// normally.
				take.stopTicker()
			}
			return
		}
	}
}

// runDurationTicker advances the recording clock. Ticks while paused are
// dropped, so the counter only moves during live recording.
func runDurationTicker(take *activeTake, events ports.EventSink, interval time.Duration) {
	defer close(take.tickDone)

	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if take.isPaused() {
				continue
			}
			seconds := take.incrementSeconds()
			events.DurationTick(seconds, domain.FormatDuration(seconds))
		case <-take.tickStop:
			return
		}
	}
}
