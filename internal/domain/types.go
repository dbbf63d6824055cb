package domain

// RecorderState models the recording lifecycle.
type RecorderState string

const (
	RecorderStateIdle         RecorderState = "idle"
	RecorderStateRecording    RecorderState = "recording"
	RecorderStatePaused       RecorderState = "paused"
	RecorderStateStopping     RecorderState = "stopping"
	RecorderStateTranscribing RecorderState = "transcribing"
	RecorderStateError        RecorderState = "error"
)

// StateReason provides a structured reason for state transitions.
type StateReason string

const (
	ReasonReady               StateReason = "ready"
	ReasonRecordingStarted    StateReason = "recording_started"
	ReasonRecordingPaused     StateReason = "recording_paused"
	ReasonRecordingResumed    StateReason = "recording_resumed"
	ReasonTranscribing        StateReason = "transcribing"
	ReasonSessionSaved        StateReason = "session_saved"
	ReasonSessionSavedLocally StateReason = "session_saved_locally"
	ReasonRecordingDiscarded  StateReason = "recording_discarded"
	ReasonNoAudioCaptured     StateReason = "no_audio_captured"
	ReasonTranscriptionFailed StateReason = "transcription_failed"
	ReasonEncodingFailed      StateReason = "encoding_failed"
	ReasonSaveFailed          StateReason = "save_failed"
	ReasonNotAuthenticated    StateReason = "not_authenticated"
)

// ErrorCode identifies non-fatal backend errors surfaced to the UI.
type ErrorCode string

const (
	ErrorCodeStartup       ErrorCode = "startup"
	ErrorCodeMicPermission ErrorCode = "mic_permission"
	ErrorCodeCapture       ErrorCode = "capture"
	ErrorCodeEncoding      ErrorCode = "encoding"
	ErrorCodeTranscription ErrorCode = "transcription"
	ErrorCodeStorage       ErrorCode = "storage"
	ErrorCodeAuth          ErrorCode = "auth"
	ErrorCodeClipboard     ErrorCode = "clipboard"
	ErrorCodeExport        ErrorCode = "export"
)

// SaveLocation reports which backing store accepted a session record.
type SaveLocation string

const (
	SaveLocationRemote SaveLocation = "remote"
	SaveLocationLocal  SaveLocation = "local"
)

// Status summarizes the current recorder status.
type Status struct {
	State           RecorderState `json:"state"`
	Paused          bool          `json:"paused"`
	DurationSeconds int           `json:"durationSeconds"`
	LevelPercent    float64       `json:"levelPercent"`
	Active          bool          `json:"active"`
	Message         string        `json:"message,omitempty"`
}

// StopResult is returned once recording is stopped and the transcription has
// been saved.
type StopResult struct {
	Session  Session      `json:"session"`
	Location SaveLocation `json:"location"`
}

// User identifies the authenticated account that owns session records.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
