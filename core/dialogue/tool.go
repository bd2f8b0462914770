package dialogue

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SetMoodToolName is the only tool declared to the dialogue provider.
const SetMoodToolName = "set_mood"

// Tool is a function declaration passed to the provider. Parameters is a
// JSON schema the provider serializes into its own tool format.
type Tool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

// SetMoodArgs is the argument payload of a set_mood invocation.
type SetMoodArgs struct {
	Mood string `json:"mood" jsonschema:"enum=happy,enum=confused,enum=sad,enum=angry,enum=thinking" jsonschema_description:"The mood to set. Must be one of: happy, confused, sad, angry, thinking"`
}

// SetMoodTool declares the mood tool with its parameter schema derived from
// SetMoodArgs.
func SetMoodTool() Tool {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return Tool{
		Name:        SetMoodToolName,
		Description: "Express the cat's current emotional state by changing its appearance",
		Parameters:  reflector.Reflect(SetMoodArgs{}),
	}
}

// ParseSetMoodArgs decodes and validates set_mood arguments. Callers treat a
// failure as recoverable and fall back to a default mood.
func ParseSetMoodArgs(arguments string) (Mood, error) {
	var args SetMoodArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("failed to parse set_mood arguments: %w", err)
	}

	mood, err := ParseMood(args.Mood)
	if err != nil {
		return "", fmt.Errorf("failed to validate set_mood arguments: %w", err)
	}
	return mood, nil
}

// MoodChangeResult is the tool result embedded in the follow-up request after
// a mood transition was applied.
type MoodChangeResult struct {
	Status  string `json:"status"`
	Mood    Mood   `json:"mood,omitempty"`
	Message string `json:"message"`
}

// NewMoodChangeResult describes a successfully applied transition.
func NewMoodChangeResult(mood Mood) MoodChangeResult {
	return MoodChangeResult{
		Status:  "success",
		Mood:    mood,
		Message: fmt.Sprintf("Cat is now feeling %s", mood),
	}
}

// Encode serializes the result for the synthetic tool-result message.
func (r MoodChangeResult) Encode() string {
	data, err := json.Marshal(r)
	if err != nil {
		return `{"status":"error","message":"failed to encode mood change result"}`
	}
	return string(data)
}
