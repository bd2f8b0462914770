// Package speechtotext defines the one-shot transcription contract: a
// captured recording goes in, the terminal transcript comes out.
package speechtotext

import "github.com/chatwithcat/companion-core/core/audio"

type TranscriptionOptions struct {
	// Language is the ISO 639-1 code of the expected speech language.
	Language string

	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

func WithLanguage(language string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.Language = language
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
