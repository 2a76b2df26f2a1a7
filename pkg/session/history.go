package session

import "github.com/toolbridge/toolbridge/pkg/chat"

// DefaultMaxMessages is the history cap before eviction kicks in.
const DefaultMaxMessages = 10

// History is an ordered, capped sequence of role-tagged messages. The system
// prompt stays pinned at index 0 and is never evicted.
type History struct {
	messages []chat.Message
	max      int
}

func NewHistory(systemPrompt string, max int) *History {
	if max <= 0 {
		max = DefaultMaxMessages
	}
	h := &History{max: max}
	if systemPrompt != "" {
		h.messages = append(h.messages, chat.Message{Role: chat.RoleSystem, Content: systemPrompt})
	}
	return h
}

// Append adds a message. Once the total exceeds the cap, the two oldest
// non-system messages are evicted.
func (h *History) Append(role chat.Role, content string) {
	h.messages = append(h.messages, chat.Message{Role: role, Content: content})
	if len(h.messages) <= h.max {
		return
	}
	evicted := 0
	kept := h.messages[:0]
	for _, m := range h.messages {
		if evicted < 2 && m.Role != chat.RoleSystem {
			evicted++
			continue
		}
		kept = append(kept, m)
	}
	h.messages = kept
}

// Messages returns a copy of the current history.
func (h *History) Messages() []chat.Message {
	out := make([]chat.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *History) Len() int {
	return len(h.messages)
}
