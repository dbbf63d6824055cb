package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
)

// ErrEmptyTake indicates there was no buffered audio to encode.
var ErrEmptyTake = errors.New("no audio captured")

// EncodeWAV finalizes a take buffer into a single WAV payload. The encoder
// needs a seekable writer, so the take goes through a uuid-named temp file
// that is removed once read back.
func EncodeWAV(take *TakeBuffer) ([]byte, error) {
	pcm := take.Bytes()
	if len(pcm) == 0 {
		return nil, ErrEmptyTake
	}

	path := filepath.Join(os.TempDir(), "take_"+uuid.New().String()+".wav")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create take file: %w", err)
	}
	defer os.Remove(path)

	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8))
	}

	enc := wav.NewEncoder(f, take.SampleRate(), 16, take.Channels(), 1)
	buf := &goaudio.IntBuffer{
		Data:           samples,
		Format:         &goaudio.Format{NumChannels: take.Channels(), SampleRate: take.SampleRate()},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return nil, fmt.Errorf("failed to write take audio: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to finalize take file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close take file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read take file: %w", err)
	}
	return data, nil
}
