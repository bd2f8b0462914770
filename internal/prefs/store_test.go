package prefs

import (
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	store, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Expected store to load, got error: %v", err)
	}

	prefs := store.Get()
	if prefs.NativeLanguage != DefaultNativeLanguage {
		t.Errorf("Expected default native language, got %q", prefs.NativeLanguage)
	}
	if prefs.SpeechSpeed != DefaultSpeechSpeed {
		t.Errorf("Expected default speech speed, got %v", prefs.SpeechSpeed)
	}
	if !prefs.SoundEffectsEnabled {
		t.Error("Expected sound effects to default to enabled")
	}
}

func TestUpdatePersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	store, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Expected store to load, got error: %v", err)
	}

	err = store.Update(func(p *Preferences) {
		p.NativeLanguage = "fr"
		p.Personality = "funny"
		p.DyslexicMode = true
	})
	if err != nil {
		t.Fatalf("Expected update to succeed, got error: %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Expected store to reload, got error: %v", err)
	}

	prefs := reloaded.Get()
	if prefs.NativeLanguage != "fr" {
		t.Errorf("Expected persisted native language 'fr', got %q", prefs.NativeLanguage)
	}
	if prefs.Personality != "funny" {
		t.Errorf("Expected persisted personality 'funny', got %q", prefs.Personality)
	}
	if !prefs.DyslexicMode {
		t.Error("Expected persisted dyslexic mode to be true")
	}
}

func TestUpdateClampsSpeechSpeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	store, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Expected store to load, got error: %v", err)
	}

	_ = store.Update(func(p *Preferences) { p.SpeechSpeed = 5.0 })
	if got := store.Get().SpeechSpeed; got != MaxSpeechSpeed {
		t.Errorf("Expected speed clamped to %v, got %v", MaxSpeechSpeed, got)
	}

	_ = store.Update(func(p *Preferences) { p.SpeechSpeed = 0.1 })
	if got := store.Get().SpeechSpeed; got != MinSpeechSpeed {
		t.Errorf("Expected speed clamped to %v, got %v", MinSpeechSpeed, got)
	}
}
