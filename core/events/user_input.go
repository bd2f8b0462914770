package events

const (
	// KindRecordingStarted identifies microphone capture start.
	KindRecordingStarted Kind = "user_input.recording_started"
	// KindRecordingStopped identifies microphone capture stop.
	KindRecordingStopped Kind = "user_input.recording_stopped"
	// KindTranscriptFinal identifies the terminal transcript for an utterance.
	KindTranscriptFinal Kind = "user_input.transcript_final"
)

// RecordingStarted marks the beginning of microphone capture.
type RecordingStarted struct {
	Base
}

// NewRecordingStarted creates a recording started event.
func NewRecordingStarted() RecordingStarted {
	return RecordingStarted{Base: NewBase(KindRecordingStarted)}
}

// RecordingStopped marks the end of microphone capture.
type RecordingStopped struct {
	Base
	CapturedBytes int
}

// NewRecordingStopped creates a recording stopped event.
func NewRecordingStopped(capturedBytes int) RecordingStopped {
	return RecordingStopped{Base: NewBase(KindRecordingStopped), CapturedBytes: capturedBytes}
}

// TranscriptFinal carries the terminal transcript for a captured utterance.
type TranscriptFinal struct {
	Base
	Transcript string
}

func (e TranscriptFinal) String() string { return e.Transcript }

// NewTranscriptFinal creates a transcript final event.
func NewTranscriptFinal(transcript string) TranscriptFinal {
	return TranscriptFinal{Base: NewBase(KindTranscriptFinal), Transcript: transcript}
}
