package dialogue

import (
	"fmt"
	"strings"
)

// Mood is the companion's emotional-display state. The set is closed, the
// dialogue model reports transitions through the set_mood tool.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodConfused Mood = "confused"
	MoodSad      Mood = "sad"
	MoodAngry    Mood = "angry"
	MoodThinking Mood = "thinking"
)

// Moods lists every valid mood in display order.
func Moods() []Mood {
	return []Mood{MoodHappy, MoodConfused, MoodSad, MoodAngry, MoodThinking}
}

// InvalidMoodError reports a mood candidate outside the closed set. It
// carries the valid set for diagnostic display.
type InvalidMoodError struct {
	Candidate string
}

func (e InvalidMoodError) Error() string {
	valid := make([]string, 0, len(Moods()))
	for _, mood := range Moods() {
		valid = append(valid, string(mood))
	}
	return fmt.Sprintf("invalid mood: %s, valid moods are: %s", e.Candidate, strings.Join(valid, ", "))
}

// ParseMood validates a candidate mood case-insensitively against the closed
// set and returns the normalized value.
func ParseMood(candidate string) (Mood, error) {
	normalized := Mood(strings.ToLower(strings.TrimSpace(candidate)))
	switch normalized {
	case MoodHappy, MoodConfused, MoodSad, MoodAngry, MoodThinking:
		return normalized, nil
	}
	return "", InvalidMoodError{Candidate: candidate}
}
