// Package texttospeech defines the speech-synthesis contract: reply text goes
// in, one complete audio asset comes out. Playback of the asset is the
// caller's concern.
package texttospeech

import "github.com/chatwithcat/companion-core/core/audio"

type SynthesisOptions struct {
	// Language is the language of the text being synthesized.
	Language string

	EncodingInfo audio.EncodingInfo
}

type SynthesisOption func(*SynthesisOptions)

func WithLanguage(language string) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.Language = language
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SynthesisOption {
	return func(o *SynthesisOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}
