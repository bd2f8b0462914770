package events

const (
	// KindMoodChanged identifies a companion mood transition.
	KindMoodChanged Kind = "mood.changed"
)

// MoodChanged marks a mood transition reported by the dialogue model.
type MoodChanged struct {
	Base
	Previous string
	Current  string
}

// NewMoodChanged creates a mood changed event.
func NewMoodChanged(previous, current string) MoodChanged {
	return MoodChanged{Base: NewBase(KindMoodChanged), Previous: previous, Current: current}
}
