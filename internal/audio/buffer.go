package audio

import "sync"

// TakeBuffer accumulates the PCM chunks of one recording take in arrival
// order. Appends are sequential from the capture pump; reads may come from
// other goroutines, so access is guarded.
type TakeBuffer struct {
	mu         sync.Mutex
	pcm        []byte
	sampleRate int
	channels   int
}

func NewTakeBuffer(sampleRate int, channels int) *TakeBuffer {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	if channels <= 0 {
		channels = 1
	}
	return &TakeBuffer{
		pcm:        make([]byte, 0, sampleRate*2),
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// Append adds a chunk to the take. Chunk order is preserved.
func (b *TakeBuffer) Append(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	b.mu.Lock()
	b.pcm = append(b.pcm, chunk...)
	b.mu.Unlock()
}

// Bytes returns a copy of the buffered PCM data.
func (b *TakeBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, len(b.pcm))
	copy(out, b.pcm)
	return out
}

// Samples returns the number of buffered samples per channel.
func (b *TakeBuffer) Samples() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pcm) / 2 / b.channels
}

// DurationSeconds returns the buffered audio length in whole seconds.
func (b *TakeBuffer) DurationSeconds() int {
	return b.Samples() / b.sampleRate
}

func (b *TakeBuffer) SampleRate() int { return b.sampleRate }

func (b *TakeBuffer) Channels() int { return b.channels }
