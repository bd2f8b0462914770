// Package dialogue defines the chat-completion contract used by the
// orchestration core: message history, the set_mood tool declaration, and the
// persona-driven system prompt policy. Provider clients translate these types
// into their own wire formats.
package dialogue

// Role describes who a message is from.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single entry in the conversation history sent to the provider.
// ToolCalls is set on assistant messages that requested a tool invocation,
// ToolCallID and Name on the synthetic tool-result message answering one.
type Message struct {
	Role    Role
	Content string

	ToolCalls  []ToolInvocation
	ToolCallID string
	Name       string
}

// ToolInvocation is a provider request to execute a declared tool. Arguments
// is the raw encoded payload as received, parsing is the caller's concern.
type ToolInvocation struct {
	ID        string
	Name      string
	Arguments string
}

// Reply is a single provider response: prose, a tool invocation, or both.
type Reply struct {
	Content   string
	ToolCalls []ToolInvocation
}

// IsToolInvocation reports whether the reply requests a tool call instead of
// (or before) prose.
func (r *Reply) IsToolInvocation() bool {
	return len(r.ToolCalls) > 0
}

// Request is a full chat-completion request assembled by the orchestration
// core.
type Request struct {
	Messages  []Message
	Tools     []Tool
	MaxTokens int
}
