package orchestration

import (
	"context"

	"github.com/chatwithcat/companion-core/core/audio"
	"github.com/chatwithcat/companion-core/core/dialogue"
	"github.com/chatwithcat/companion-core/core/speechtotext"
	"github.com/chatwithcat/companion-core/core/texttospeech"
)

type OrchestratorOption func(*Orchestrator)

// CaptureDevice is the microphone capability injected into the orchestrator.
// Implementations deliver captured audio through the onAudio callback in
// periodic chunks so a stop requested soon after start still yields data.
type CaptureDevice interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
	EncodingInfo() audio.EncodingInfo
}

func WithCaptureDevice(client CaptureDevice) OrchestratorOption {
	return func(o *Orchestrator) { o.capture.set(client) }
}

// Transcriber turns a completed recording into recognized text. A blank
// result with a nil error is a valid empty transcript, not a failure.
type Transcriber interface {
	Transcribe(ctx context.Context, recording []byte, opts ...speechtotext.TranscriptionOption) (string, error)
}

func WithTranscriber(client Transcriber) OrchestratorOption {
	return func(o *Orchestrator) { o.transcriber.set(client) }
}

// DialogueClient performs a single chat-completion round trip. The follow-up
// call after a tool invocation is the orchestrator's responsibility, not the
// client's.
type DialogueClient interface {
	Converse(ctx context.Context, request dialogue.Request) (*dialogue.Reply, error)
}

func WithDialogueClient(client DialogueClient) OrchestratorOption {
	return func(o *Orchestrator) { o.dialogue.set(client) }
}

// Synthesizer converts final reply text into one playable audio asset.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesisOption) ([]byte, error)
}

func WithSynthesizer(client Synthesizer) OrchestratorOption {
	return func(o *Orchestrator) { o.synthesizer.set(client) }
}

// AudioSink is the shared playback capability for synthesized speech and
// sound cues. Mark registers a callback fired once the audio queued before it
// has been played out.
type AudioSink interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(audio []byte) error
	Mark(mark string, callback func(mark string)) error
	ClearBuffer()
}

func WithAudioSink(client AudioSink) OrchestratorOption {
	return func(o *Orchestrator) { o.speechPlayer.setSink(client) }
}

func WithPromptConfig(config dialogue.PromptConfig) OrchestratorOption {
	return func(o *Orchestrator) { o.promptConfig = config }
}

// WithSpeechSpeedSource wires a live speech-rate preference into the reveal
// timing. The source is consulted at the start of every reveal.
func WithSpeechSpeedSource(source func() float64) OrchestratorOption {
	return func(o *Orchestrator) {
		if source != nil {
			o.speechSpeed = source
		}
	}
}

// WithSoundCues toggles the short mood cues played through the audio sink.
func WithSoundCues(enabled bool) OrchestratorOption {
	return func(o *Orchestrator) { o.soundCues = enabled }
}

type OrchestrateOptions struct {
	onTranscription         func(transcript string)
	onRecordingStateChanged func(isRecording bool)
	onResponse              func(segment string)
	onResponseEnd           func(response string)
	onMoodChanged           func(previous, current string)
	onSpeakingStateChanged  func(isSpeaking bool)
	onFailure               func(fallback string)
	onCancellation          func()
}

type OrchestrateOption func(*OrchestrateOptions)

// WithTranscriptionCallback registers a callback for final transcriptions of
// completed recordings. Prompts submitted directly through
// [Orchestrator.SendPrompt] do not trigger it.
func WithTranscriptionCallback(callback func(transcript string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onTranscription = callback
	}
}

func WithRecordingStateCallback(callback func(isRecording bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onRecordingStateChanged = callback
	}
}

// WithResponseCallback registers a callback for each newly revealed segment
// of the assistant's reply.
func WithResponseCallback(callback func(segment string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onResponse = callback
	}
}

// WithResponseEndCallback registers a callback fired once a turn's reply is
// fully revealed and its audio, if any, has ended.
func WithResponseEndCallback(callback func(response string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onResponseEnd = callback
	}
}

func WithMoodCallback(callback func(previous, current string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onMoodChanged = callback
	}
}

// WithSpeakingStateCallback registers a callback for the audible playback
// state, reported only once audio is actually producing sound.
func WithSpeakingStateCallback(callback func(isSpeaking bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onSpeakingStateChanged = callback
	}
}

// WithFailureCallback registers a callback fired with the fallback text
// appended after a provider failure.
func WithFailureCallback(callback func(fallback string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onFailure = callback
	}
}

func WithCancellationCallback(callback func()) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onCancellation = callback
	}
}
