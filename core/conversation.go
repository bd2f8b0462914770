package orchestration

import (
	"slices"
	"sync"

	"github.com/chatwithcat/companion-core/core/dialogue"
)

// conversation owns the append-only message log of one session. The transient
// placeholder message, when present, is always the last element and is
// replaced in place rather than appended after.
type conversation struct {
	mu             sync.RWMutex
	messages       []dialogue.Message
	placeholderSet bool
	revealIdx      int
}

func newConversation(welcome string) *conversation {
	return &conversation{
		messages: []dialogue.Message{
			{Role: dialogue.RoleAssistant, Content: welcome},
		},
		revealIdx: -1,
	}
}

// Snapshot returns a point-in-time copy of the message log, including the
// placeholder if one is showing.
func (c *conversation) Snapshot() []dialogue.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.messages)
}

// visible returns the messages shown to the user, skipping the tool-exchange
// records kept only for the provider.
func (c *conversation) visible() []dialogue.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	messages := make([]dialogue.Message, 0, len(c.messages))
	for _, message := range c.messages {
		if message.Role == dialogue.RoleTool || len(message.ToolCalls) > 0 {
			continue
		}
		messages = append(messages, message)
	}
	return messages
}

// history returns the messages replayed to the dialogue provider, excluding
// the placeholder.
func (c *conversation) history() []dialogue.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	messages := c.messages
	if c.placeholderSet {
		messages = messages[:len(messages)-1]
	}
	return slices.Clone(messages)
}

func (c *conversation) appendUser(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, dialogue.Message{Role: dialogue.RoleUser, Content: content})
}

// record appends a message to the permanent log, keeping the placeholder
// last.
func (c *conversation) record(message dialogue.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.placeholderSet {
		c.messages = slices.Insert(c.messages, len(c.messages)-1, message)
		return
	}
	c.messages = append(c.messages, message)
}

// setPlaceholder shows the transient assistant message, or swaps its text if
// one is already showing.
func (c *conversation) setPlaceholder(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.placeholderSet {
		c.messages[len(c.messages)-1].Content = text
		return
	}
	c.messages = append(c.messages, dialogue.Message{Role: dialogue.RoleAssistant, Content: text})
	c.placeholderSet = true
}

func (c *conversation) clearPlaceholder() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.placeholderSet {
		return
	}
	c.messages = c.messages[:len(c.messages)-1]
	c.placeholderSet = false
}

// startReveal replaces the placeholder with an empty assistant message that
// grows as the reply is revealed.
func (c *conversation) startReveal() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.placeholderSet {
		c.messages = c.messages[:len(c.messages)-1]
		c.placeholderSet = false
	}
	c.messages = append(c.messages, dialogue.Message{Role: dialogue.RoleAssistant})
	c.revealIdx = len(c.messages) - 1
}

func (c *conversation) appendReveal(chunk string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.revealIdx >= 0 {
		c.messages[c.revealIdx].Content += chunk
	}
}

// finishReveal pins the revealed message to the full reply text.
func (c *conversation) finishReveal(full string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.revealIdx < 0 {
		return
	}
	c.messages[c.revealIdx].Content = full
	c.revealIdx = -1
}

// discardReveal drops a partially revealed message after cancellation.
func (c *conversation) discardReveal() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.revealIdx < 0 {
		return
	}
	c.messages = slices.Delete(c.messages, c.revealIdx, c.revealIdx+1)
	c.revealIdx = -1
}
