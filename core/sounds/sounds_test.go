package sounds

import (
	"bytes"
	"testing"

	"github.com/chatwithcat/companion-core/core/audio"
	"github.com/chatwithcat/companion-core/core/dialogue"
)

func TestMoodCueCoversClosedSet(t *testing.T) {
	encoding := audio.GetDefaultEncodingInfo()

	seen := map[string][]byte{}
	for _, mood := range dialogue.Moods() {
		cue := MoodCue(mood, encoding)
		if len(cue) == 0 {
			t.Fatalf("expected a cue for mood %q, got none", mood)
		}
		if len(cue)%2 != 0 {
			t.Errorf("expected 16-bit aligned cue for mood %q, got %d bytes", mood, len(cue))
		}
		seen[string(mood)] = cue
	}

	if bytes.Equal(seen["happy"], seen["sad"]) {
		t.Error("expected distinct cues for happy and sad")
	}
}

func TestMoodCueRejectsUnknownMood(t *testing.T) {
	if cue := MoodCue(dialogue.Mood("bored"), audio.GetDefaultEncodingInfo()); cue != nil {
		t.Errorf("expected no cue for an unknown mood, got %d bytes", len(cue))
	}
}

func TestCuesDefaultEncoding(t *testing.T) {
	withDefault := Selection(audio.GetDefaultEncodingInfo())
	withZero := Selection(audio.EncodingInfo{})
	if !bytes.Equal(withDefault, withZero) {
		t.Error("expected a zero encoding to fall back to the default")
	}

	if len(Door(audio.EncodingInfo{})) == 0 {
		t.Error("expected a non-empty door cue")
	}
}
