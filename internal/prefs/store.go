// Package prefs persists user preferences as a JSON file in the user's home
// directory. Reads of a missing file return defaults, and every mutation is
// written back immediately so preferences survive restarts.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	DefaultNativeLanguage = "en"
	DefaultPersonality    = "simple"
	DefaultFontSize       = "medium"
	DefaultVolume         = 50

	DefaultSpeechSpeed = 1.0
	MinSpeechSpeed     = 0.5
	MaxSpeechSpeed     = 2.0
)

type Preferences struct {
	NativeLanguage      string  `json:"native_language"`
	Personality         string  `json:"personality"`
	FontSize            string  `json:"font_size"`
	DyslexicMode        bool    `json:"dyslexic_mode"`
	Volume              int     `json:"volume"`
	MusicEnabled        bool    `json:"music_enabled"`
	SoundEffectsEnabled bool    `json:"sound_effects_enabled"`
	SpeechSpeed         float64 `json:"speech_speed"`
}

func defaultPreferences() Preferences {
	return Preferences{
		NativeLanguage:      DefaultNativeLanguage,
		Personality:         DefaultPersonality,
		FontSize:            DefaultFontSize,
		Volume:              DefaultVolume,
		MusicEnabled:        true,
		SoundEffectsEnabled: true,
		SpeechSpeed:         DefaultSpeechSpeed,
	}
}

type Store struct {
	path string

	mu    sync.Mutex
	prefs Preferences
}

// Load opens the preference store, creating the backing file with defaults
// when it does not exist yet.
func Load() (*Store, error) {
	path, err := storePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve preferences path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom opens a preference store backed by an explicit file path.
func LoadFrom(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}

	store := &Store{path: path, prefs: defaultPreferences()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := store.save(); err != nil {
			return nil, err
		}
		return store, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	if err := json.Unmarshal(data, &store.prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	store.prefs.SpeechSpeed = clampSpeed(store.prefs.SpeechSpeed)
	return store, nil
}

func storePath() (string, error) {
	if home := os.Getenv("CHATWITHCAT_HOME"); home != "" {
		return filepath.Join(home, "preferences.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".chatwithcat", "preferences.json"), nil
}

// Get returns a snapshot of the current preferences.
func (s *Store) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Update applies fn to the preferences and persists the result.
func (s *Store) Update(fn func(*Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.prefs)
	s.prefs.SpeechSpeed = clampSpeed(s.prefs.SpeechSpeed)
	return s.save()
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

func clampSpeed(speed float64) float64 {
	if speed == 0 {
		return DefaultSpeechSpeed
	}
	if speed < MinSpeechSpeed {
		return MinSpeechSpeed
	}
	if speed > MaxSpeechSpeed {
		return MaxSpeechSpeed
	}
	return speed
}
