package dialogue

import (
	"strings"
	"testing"
)

func TestSystemPromptIsRebuiltIdentically(t *testing.T) {
	config := PromptConfig{Language: LanguageFrench, Persona: PersonaFunny}
	if config.SystemPrompt() != config.SystemPrompt() {
		t.Error("Expected identical prompt on every build")
	}
}

func TestSystemPromptVariesByLanguage(t *testing.T) {
	french := PromptConfig{Language: LanguageFrench}.SystemPrompt()
	spanish := PromptConfig{Language: LanguageSpanish}.SystemPrompt()

	if !strings.Contains(french, "French") {
		t.Errorf("Expected French prompt to name the language, got %q", french)
	}
	if !strings.Contains(spanish, "Spanish") {
		t.Errorf("Expected Spanish prompt to name the language, got %q", spanish)
	}
	if french == spanish {
		t.Error("Expected prompts to differ between languages")
	}
}

func TestSystemPromptVariesByPersona(t *testing.T) {
	simple := PromptConfig{Language: LanguageFrench, Persona: PersonaSimple}.SystemPrompt()
	educational := PromptConfig{Language: LanguageFrench, Persona: PersonaEducational}.SystemPrompt()
	if simple == educational {
		t.Error("Expected prompts to differ between personas")
	}
}

func TestSystemPromptDeclaresMoodToolOnlyInitially(t *testing.T) {
	config := PromptConfig{Language: LanguageFrench}

	if !strings.Contains(config.SystemPrompt(), SetMoodToolName) {
		t.Error("Expected initial prompt to mention the mood tool")
	}
	if strings.Contains(config.FollowupSystemPrompt(), SetMoodToolName) {
		t.Error("Expected follow-up prompt not to mention the mood tool")
	}
}

func TestSetMoodToolSchema(t *testing.T) {
	tool := SetMoodTool()

	if tool.Name != SetMoodToolName {
		t.Errorf("Expected tool name %q, got %q", SetMoodToolName, tool.Name)
	}
	if tool.Parameters == nil {
		t.Fatal("Expected tool parameters schema to be set")
	}

	moodSchema, ok := tool.Parameters.Properties.Get("mood")
	if !ok {
		t.Fatal("Expected schema to declare a mood property")
	}
	if len(moodSchema.Enum) != len(Moods()) {
		t.Errorf("Expected %d enum values, got %d", len(Moods()), len(moodSchema.Enum))
	}
}

func TestParseLanguage(t *testing.T) {
	language, err := ParseLanguage("French")
	if err != nil {
		t.Fatalf("Expected language to parse, got error: %v", err)
	}
	if language != LanguageFrench {
		t.Errorf("Expected %q, got %q", LanguageFrench, language)
	}

	if _, err := ParseLanguage("german"); err == nil {
		t.Error("Expected unsupported language to be rejected")
	}
}
