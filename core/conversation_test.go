package orchestration

import (
	"testing"

	"github.com/chatwithcat/companion-core/core/dialogue"
)

func TestConversationPlaceholderStaysLast(t *testing.T) {
	conversation := newConversation("Miaou! Comment ça va? Je m'appelle Kat!")
	conversation.appendUser("Bonjour")
	conversation.setPlaceholder(placeholderText)

	conversation.record(dialogue.Message{Role: dialogue.RoleAssistant, ToolCalls: []dialogue.ToolInvocation{{Name: "set_mood"}}})
	conversation.record(dialogue.Message{Role: dialogue.RoleTool, Name: "set_mood", Content: `{"status":"success"}`})

	messages := conversation.Snapshot()
	if got := messages[len(messages)-1].Content; got != placeholderText {
		t.Fatalf("expected the placeholder to stay last, got %q", got)
	}
	if got := messages[len(messages)-2].Role; got != dialogue.RoleTool {
		t.Errorf("expected the tool record before the placeholder, got role %q", got)
	}

	conversation.setPlaceholder(moodChangePlaceholderText)
	messages = conversation.Snapshot()
	if got := messages[len(messages)-1].Content; got != moodChangePlaceholderText {
		t.Errorf("expected the placeholder text to be swapped in place, got %q", got)
	}
	if len(messages) != 5 {
		t.Errorf("expected swapping the placeholder not to append, got %d messages", len(messages))
	}
}

func TestConversationHistoryExcludesPlaceholder(t *testing.T) {
	conversation := newConversation("welcome")
	conversation.appendUser("Bonjour")
	conversation.setPlaceholder(placeholderText)

	for _, message := range conversation.history() {
		if message.Content == placeholderText {
			t.Error("expected the placeholder to be excluded from provider history")
		}
	}
	if got := len(conversation.history()); got != 2 {
		t.Errorf("expected 2 history messages, got %d", got)
	}
}

func TestConversationRevealLifecycle(t *testing.T) {
	conversation := newConversation("welcome")
	conversation.appendUser("Bonjour")
	conversation.setPlaceholder(placeholderText)

	conversation.startReveal()
	conversation.appendReveal("Mia")
	conversation.appendReveal("ou!")

	messages := conversation.Snapshot()
	if got := messages[len(messages)-1].Content; got != "Miaou!" {
		t.Fatalf("expected the revealing message to grow, got %q", got)
	}

	conversation.finishReveal("Miaou!")
	messages = conversation.Snapshot()
	if got := len(messages); got != 3 {
		t.Fatalf("expected welcome, user and reply, got %d messages", got)
	}
	if got := messages[2]; got.Role != dialogue.RoleAssistant || got.Content != "Miaou!" {
		t.Errorf("expected the final assistant reply, got %+v", got)
	}
}

func TestConversationDiscardRevealOnCancellation(t *testing.T) {
	conversation := newConversation("welcome")
	conversation.appendUser("Bonjour")
	conversation.setPlaceholder(placeholderText)

	conversation.startReveal()
	conversation.appendReveal("Mia")
	conversation.discardReveal()

	messages := conversation.Snapshot()
	if got := len(messages); got != 2 {
		t.Fatalf("expected the partial reveal to be discarded, got %d messages", got)
	}
	if got := messages[len(messages)-1]; got.Role != dialogue.RoleUser {
		t.Errorf("expected the user message to be last after discard, got %+v", got)
	}

	// Discarding twice must not eat settled messages.
	conversation.discardReveal()
	if got := len(conversation.Snapshot()); got != 2 {
		t.Errorf("expected a second discard to be a no-op, got %d messages", got)
	}
}
