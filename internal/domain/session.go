package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxListedSessions caps how many session records the history surfaces.
const MaxListedSessions = 10

// Session is one completed recording-plus-transcription record.
// Immutable after creation except for deletion.
type Session struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	Timestamp       time.Time `json:"timestamp"`
	Language        string    `json:"language"`
	DurationSeconds int       `json:"durationSeconds"`
}

// supportedLanguages is the fixed set the language picker offers.
var supportedLanguages = []string{"en", "es", "fr", "de", "it", "pt", "nl", "ja", "zh"}

// SupportedLanguages returns the allowed language codes.
func SupportedLanguages() []string {
	out := make([]string, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ValidLanguage reports whether code is in the supported set.
func ValidLanguage(code string) bool {
	for _, lang := range supportedLanguages {
		if lang == code {
			return true
		}
	}
	return false
}

// NewSession builds an immutable session record for a finished transcription.
func NewSession(text string, language string, durationSeconds int) Session {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	return Session{
		ID:              uuid.New().String(),
		Text:            strings.TrimSpace(text),
		Timestamp:       time.Now().UTC(),
		Language:        language,
		DurationSeconds: durationSeconds,
	}
}

// FormatDuration renders a second count as "M:SS" with zero-padded seconds.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
