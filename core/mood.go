package orchestration

import (
	"sync"

	"github.com/chatwithcat/companion-core/core/dialogue"
)

// moodController owns the single current mood. Validation failures leave the
// mood untouched and are recoverable by the caller.
type moodController struct {
	mu      sync.RWMutex
	current dialogue.Mood
}

func newMoodController() *moodController {
	return &moodController{current: dialogue.MoodHappy}
}

func (m *moodController) Current() dialogue.Mood {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current
}

// Set validates the candidate and applies the transition, reporting whether
// the mood actually changed.
func (m *moodController) Set(candidate string) (dialogue.Mood, bool, error) {
	mood, err := dialogue.ParseMood(candidate)
	if err != nil {
		return m.Current(), false, err
	}
	return mood, m.Apply(mood), nil
}

// Apply transitions to an already validated mood.
func (m *moodController) Apply(mood dialogue.Mood) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	changed := m.current != mood
	m.current = mood
	return changed
}
