package orchestration

import events "github.com/chatwithcat/companion-core/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newCallbackEventEmitter(opts OrchestrateOptions) eventEmitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.RecordingStarted:
			if opts.onRecordingStateChanged != nil {
				opts.onRecordingStateChanged(true)
			}
		case events.RecordingStopped:
			if opts.onRecordingStateChanged != nil {
				opts.onRecordingStateChanged(false)
			}
		case events.TranscriptFinal:
			if opts.onTranscription != nil {
				opts.onTranscription(typedEvent.Transcript)
			}
		case events.ResponseSegment:
			if opts.onResponse != nil {
				opts.onResponse(typedEvent.Segment)
			}
		case events.ResponseFinal:
			if opts.onResponseEnd != nil {
				opts.onResponseEnd(typedEvent.Response)
			}
		case events.MoodChanged:
			if opts.onMoodChanged != nil {
				opts.onMoodChanged(typedEvent.Previous, typedEvent.Current)
			}
		case events.PlaybackStarted:
			if opts.onSpeakingStateChanged != nil {
				opts.onSpeakingStateChanged(true)
			}
		case events.PlaybackEnded:
			if opts.onSpeakingStateChanged != nil {
				opts.onSpeakingStateChanged(false)
			}
		case events.TurnFailed:
			if opts.onFailure != nil {
				opts.onFailure(typedEvent.Fallback)
			}
		case events.TurnCancelled:
			if opts.onCancellation != nil {
				opts.onCancellation()
			}
		}
	}
}
