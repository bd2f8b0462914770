// Package sounds generates the short PCM cues used for mood changes and
// interface feedback. Cues are synthesized as plain tones so the core ships
// no bundled audio assets; they play through the same sink as synthesized
// speech but as a lower-priority class.
package sounds

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/chatwithcat/companion-core/core/audio"
	"github.com/chatwithcat/companion-core/core/dialogue"
)

const (
	cueAmplitude   = 0.25
	cueToneLength  = 120 * time.Millisecond
	blipLength     = 80 * time.Millisecond
	sweepLength    = 350 * time.Millisecond
	envelopeLength = 8 * time.Millisecond
)

// MoodCue returns the two-tone cue associated with a mood. Each mood has a
// distinct interval so cues are tellable apart without looking.
func MoodCue(mood dialogue.Mood, encoding audio.EncodingInfo) []byte {
	var first, second float64
	switch mood {
	case dialogue.MoodHappy:
		first, second = 660, 880
	case dialogue.MoodConfused:
		first, second = 520, 440
	case dialogue.MoodSad:
		first, second = 392, 330
	case dialogue.MoodAngry:
		first, second = 233, 220
	case dialogue.MoodThinking:
		first, second = 494, 494
	default:
		return nil
	}

	return append(
		tone(first, cueToneLength, encoding),
		tone(second, cueToneLength, encoding)...,
	)
}

// Selection is the short blip played on interface selections.
func Selection(encoding audio.EncodingInfo) []byte {
	return tone(880, blipLength, encoding)
}

// Door is the descending sweep played when entering or leaving a scene.
func Door(encoding audio.EncodingInfo) []byte {
	return sweep(300, 150, sweepLength, encoding)
}

// tone renders a single sine tone as 16-bit little-endian PCM with a short
// attack/release envelope to avoid clicks.
func tone(freq float64, duration time.Duration, encoding audio.EncodingInfo) []byte {
	return sweep(freq, freq, duration, encoding)
}

func sweep(fromFreq, toFreq float64, duration time.Duration, encoding audio.EncodingInfo) []byte {
	if encoding.IsZero() {
		encoding = audio.GetDefaultEncodingInfo()
	}

	sampleRate := float64(encoding.SampleRate)
	samples := int(sampleRate * duration.Seconds())
	envelope := int(sampleRate * envelopeLength.Seconds())
	pcm := make([]byte, 0, samples*2)

	phase := 0.0
	for i := range samples {
		progress := float64(i) / float64(samples)
		freq := fromFreq + (toFreq-fromFreq)*progress
		phase += 2 * math.Pi * freq / sampleRate

		gain := cueAmplitude
		if envelope > 0 {
			if i < envelope {
				gain *= float64(i) / float64(envelope)
			}
			if remaining := samples - i; remaining < envelope {
				gain *= float64(remaining) / float64(envelope)
			}
		}

		sample := int16(gain * math.Sin(phase) * math.MaxInt16)
		pcm = binary.LittleEndian.AppendUint16(pcm, uint16(sample))
	}
	return pcm
}
