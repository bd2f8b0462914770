// Package config loads provider credentials and model settings from a JSON
// file in the user's home directory, with environment variables taking
// precedence for API keys.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultDialogueBaseURL = "https://api.studio.nebius.com/v1/"
	defaultDialogueModel   = "meta-llama/Meta-Llama-3.1-70B-Instruct-fast"

	defaultTranscriptionProvider = "whisper"
	defaultTranscriptionModel    = "whisper-1"

	defaultSpeechModel = "sonic-english"
)

type Transcription struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
}

type Dialogue struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model"`
}

type Speech struct {
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`
	VoiceID string `json:"voice_id,omitempty"`
}

type Config struct {
	Transcription Transcription `json:"transcription"`
	Dialogue      Dialogue      `json:"dialogue"`
	Speech        Speech        `json:"speech"`
}

// Load reads the config file, creating it with defaults when missing, then
// applies environment variable overrides.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads a config backed by an explicit file path.
func LoadFrom(path string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := defaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := save(config, path); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(config)
	applyDefaults(config)
	return config, nil
}

func defaultConfig() *Config {
	return &Config{
		Transcription: Transcription{
			Provider: defaultTranscriptionProvider,
			Model:    defaultTranscriptionModel,
		},
		Dialogue: Dialogue{
			BaseURL: defaultDialogueBaseURL,
			Model:   defaultDialogueModel,
		},
		Speech: Speech{
			Model: defaultSpeechModel,
		},
	}
}

func applyEnvOverrides(config *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.Transcription.APIKey = key
	}
	if key := os.Getenv("DEEPGRAM_API_KEY"); key != "" && config.Transcription.Provider == "deepgram" {
		config.Transcription.APIKey = key
	}
	if key := os.Getenv("NEBIUS_API_KEY"); key != "" {
		config.Dialogue.APIKey = key
	}
	if key := os.Getenv("CARTESIA_API_KEY"); key != "" {
		config.Speech.APIKey = key
	}
}

func applyDefaults(config *Config) {
	if config.Transcription.Provider == "" {
		config.Transcription.Provider = defaultTranscriptionProvider
	}
	if config.Transcription.Model == "" {
		config.Transcription.Model = defaultTranscriptionModel
	}
	if config.Dialogue.BaseURL == "" {
		config.Dialogue.BaseURL = defaultDialogueBaseURL
	}
	if config.Dialogue.Model == "" {
		config.Dialogue.Model = defaultDialogueModel
	}
	if config.Speech.Model == "" {
		config.Speech.Model = defaultSpeechModel
	}
}

func configPath() (string, error) {
	if home := os.Getenv("CHATWITHCAT_HOME"); home != "" {
		return filepath.Join(home, "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".chatwithcat", "config.json"), nil
}

func save(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
