package events

const (
	// KindSpeechRequested identifies a synthesis request for response text.
	KindSpeechRequested Kind = "assistant_speech.requested"
	// KindSpeechReady identifies arrival of the synthesized asset.
	KindSpeechReady Kind = "assistant_speech.ready"
	// KindPlaybackStarted identifies the start of local playback.
	KindPlaybackStarted Kind = "assistant_speech.playback_started"
	// KindPlaybackEnded identifies the end of local playback.
	KindPlaybackEnded Kind = "assistant_speech.playback_ended"
	// KindSpeechFailed identifies synthesis or playback failure.
	KindSpeechFailed Kind = "assistant_speech.failed"
)

// SpeechRequested marks a synthesis request for response text.
type SpeechRequested struct {
	Base
	TurnID string
	Text   string
}

// NewSpeechRequested creates a speech requested event.
func NewSpeechRequested(turnID, text string) SpeechRequested {
	return SpeechRequested{Base: NewBase(KindSpeechRequested), TurnID: turnID, Text: text}
}

// SpeechReady marks arrival of the synthesized asset.
type SpeechReady struct {
	Base
	TurnID     string
	AudioBytes int
}

// NewSpeechReady creates a speech ready event.
func NewSpeechReady(turnID string, audioBytes int) SpeechReady {
	return SpeechReady{Base: NewBase(KindSpeechReady), TurnID: turnID, AudioBytes: audioBytes}
}

// PlaybackStarted marks the start of local playback for the asset.
type PlaybackStarted struct {
	Base
	TurnID string
}

// NewPlaybackStarted creates a playback started event.
func NewPlaybackStarted(turnID string) PlaybackStarted {
	return PlaybackStarted{Base: NewBase(KindPlaybackStarted), TurnID: turnID}
}

// PlaybackEnded marks the end of local playback, whether the asset ran to
// completion or was stopped.
type PlaybackEnded struct {
	Base
	TurnID  string
	Stopped bool
}

// NewPlaybackEnded creates a playback ended event.
func NewPlaybackEnded(turnID string, stopped bool) PlaybackEnded {
	return PlaybackEnded{Base: NewBase(KindPlaybackEnded), TurnID: turnID, Stopped: stopped}
}

// SpeechFailed marks synthesis or playback failure for a turn.
type SpeechFailed struct {
	Base
	TurnID string
	Error  string
}

// NewSpeechFailed creates a speech failed event.
func NewSpeechFailed(turnID, err string) SpeechFailed {
	return SpeechFailed{Base: NewBase(KindSpeechFailed), TurnID: turnID, Error: err}
}
