package audio

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeWAVEmptyTake(t *testing.T) {
	t.Parallel()

	buffer := NewTakeBuffer(16000, 1)
	if _, err := EncodeWAV(buffer); !errors.Is(err, ErrEmptyTake) {
		t.Fatalf("expected ErrEmptyTake, got %v", err)
	}
}

func TestEncodeWAVProducesRIFFPayload(t *testing.T) {
	t.Parallel()

	buffer := NewTakeBuffer(16000, 1)
	buffer.Append(pcmChunk(0, 1000, -1000, 2000, -2000, 0, 500, -500))

	data, err := EncodeWAV(buffer)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(data) <= 44 {
		t.Fatalf("payload too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[0:4], []byte("RIFF")) {
		t.Fatalf("missing RIFF marker: %v", data[0:4])
	}
	if !bytes.Equal(data[8:12], []byte("WAVE")) {
		t.Fatalf("missing WAVE marker: %v", data[8:12])
	}
}
