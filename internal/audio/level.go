package audio

import "math"

// referenceAmplitude is the PCM16 RMS that maps to a 100% meter reading.
// Chosen empirically for 16 kHz microphone input.
const referenceAmplitude = 12000.0

// LevelPercent computes a 0-100 meter value from a chunk of s16le PCM bytes.
// The value is RMS amplitude normalized against referenceAmplitude and
// clamped, so output is always within [0, 100].
func LevelPercent(chunk []byte) float64 {
	samples := len(chunk) / 2
	if samples == 0 {
		return 0
	}

	var energy float64
	for i := 0; i < samples*2; i += 2 {
		sample := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
		energy += float64(sample) * float64(sample)
	}
	rms := math.Sqrt(energy / float64(samples))

	percent := rms / referenceAmplitude * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
