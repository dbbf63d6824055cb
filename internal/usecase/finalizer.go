package usecase

import (
	"context"

	"voicenotes/internal/auth"
	"voicenotes/internal/domain"
	"voicenotes/internal/ports"
)

// sessionFinalizer turns a finalized WAV payload into a saved session record:
// transcribe, build the immutable record, persist it, notify.
type sessionFinalizer struct {
	transcriber ports.Transcriber
	store       ports.SessionStore
	authn       ports.AuthClient
	notifier    ports.Notifier
	events      ports.EventSink
}

func newSessionFinalizer(
	transcriber ports.Transcriber,
	store ports.SessionStore,
	authn ports.AuthClient,
	notifier ports.Notifier,
	events ports.EventSink,
) sessionFinalizer {
	return sessionFinalizer{
		transcriber: transcriber,
		store:       store,
		authn:       authn,
		notifier:    notifier,
		events:      events,
	}
}

func (f sessionFinalizer) Finalize(
	ctx context.Context,
	wavData []byte,
	language string,
	durationSeconds int,
) (domain.Session, domain.SaveLocation, domain.StateReason, error) {
	text, err := f.transcriber.Transcribe(ctx, wavData, language)
	if err != nil {
		f.events.RecorderError(domain.ErrorCodeTranscription, err.Error())
		return domain.Session{}, "", domain.ReasonTranscriptionFailed, err
	}

	user, ok := f.authn.CurrentUser()
	if !ok {
		f.events.RecorderError(domain.ErrorCodeAuth, "no authenticated user to own the session")
		return domain.Session{}, "", domain.ReasonNotAuthenticated, auth.ErrNotAuthenticated
	}

	session := domain.NewSession(text, language, durationSeconds)

	location, err := f.store.Save(ctx, user, session)
	if err != nil {
		// Both stores failed; the transcript is surfaced but not retained.
		f.events.RecorderError(domain.ErrorCodeStorage, err.Error())
		return domain.Session{}, "", domain.ReasonSaveFailed, err
	}

	reason := domain.ReasonSessionSaved
	if location == domain.SaveLocationLocal {
		reason = domain.ReasonSessionSavedLocally
		f.notifier.Notify("Voicenotes", "Transcription saved locally")
	} else {
		f.notifier.Notify("Voicenotes", "Transcription saved")
	}

	f.events.TranscriptReady(session, location)
	return session, location, reason, nil
}
