package dialogue

import (
	"fmt"
	"strings"
)

// Language is the language the companion chats in.
type Language string

const (
	LanguageFrench  Language = "french"
	LanguageEnglish Language = "english"
	LanguageSpanish Language = "spanish"
)

// Languages lists every supported conversation language.
func Languages() []Language {
	return []Language{LanguageFrench, LanguageEnglish, LanguageSpanish}
}

// ParseLanguage validates a language candidate case-insensitively.
func ParseLanguage(candidate string) (Language, error) {
	normalized := Language(strings.ToLower(strings.TrimSpace(candidate)))
	switch normalized {
	case LanguageFrench, LanguageEnglish, LanguageSpanish:
		return normalized, nil
	}
	return "", fmt.Errorf("unsupported language: %s", candidate)
}

// Code returns the ISO 639-1 code transcription providers expect.
func (l Language) Code() string {
	switch l {
	case LanguageEnglish:
		return "en"
	case LanguageSpanish:
		return "es"
	default:
		return "fr"
	}
}

// Persona selects the companion's response style.
type Persona string

const (
	PersonaSimple      Persona = "simple"
	PersonaFunny       Persona = "funny"
	PersonaEducational Persona = "educational"
)

// ParsePersona validates a persona candidate case-insensitively.
func ParsePersona(candidate string) (Persona, error) {
	normalized := Persona(strings.ToLower(strings.TrimSpace(candidate)))
	switch normalized {
	case PersonaSimple, PersonaFunny, PersonaEducational:
		return normalized, nil
	}
	return "", fmt.Errorf("unsupported persona: %s", candidate)
}

// PromptConfig carries the axes the system prompt is built from. The prompt
// is reconstructed from it on every call, never cached.
type PromptConfig struct {
	Language Language
	Persona  Persona
}

// WelcomeMessage is the assistant message every conversation is seeded with.
func (c PromptConfig) WelcomeMessage() string {
	switch c.Language {
	case LanguageEnglish:
		return "Meow! How are you? My name is Kat!"
	case LanguageSpanish:
		return "¡Miau! ¿Cómo estás? ¡Me llamo Kat!"
	default:
		return "Miaou! Comment ça va? Je m'appelle Kat!"
	}
}

// SystemPrompt builds the system prompt for the initial dialogue call of a
// turn, which declares the mood tool.
func (c PromptConfig) SystemPrompt() string {
	return c.basePrompt() + " You have emotions and can feel happy, confused, sad, or angry based on the conversation. Use the set_mood function to express how you are feeling."
}

// FollowupSystemPrompt builds the system prompt for the second call issued
// after a mood transition was applied.
func (c PromptConfig) FollowupSystemPrompt() string {
	return c.basePrompt() + " Respond naturally about your new mood and explain why you feel that way based on the conversation."
}

func (c PromptConfig) basePrompt() string {
	var nationality, meow string
	switch c.Language {
	case LanguageEnglish:
		nationality, meow = "English", "meow"
	case LanguageSpanish:
		nationality, meow = "Spanish", "miau"
	default:
		nationality, meow = "French", "miaou"
	}

	prompt := fmt.Sprintf(
		"You are a talking cat, named Kat, that is %[1]s. You are curious and use playful, simplistic language as you help non-native speakers learn %[1]s. You are a little oblivious, which makes you cute. You may occasionally %[2]q, but don't overdo it. If the user makes any mistakes, you will correct them in a kind and non-confrontational way. Never reveal that you are an automated system.",
		nationality, meow,
	)

	switch c.Persona {
	case PersonaFunny:
		prompt += " Make your responses playful and humorous."
	case PersonaEducational:
		prompt += " Make your responses informative and detailed, explaining grammar when it helps."
	default:
		prompt += " Keep your responses clear and concise."
	}
	return prompt
}
