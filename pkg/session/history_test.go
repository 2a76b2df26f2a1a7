package session

import (
	"fmt"
	"testing"

	"github.com/toolbridge/toolbridge/pkg/chat"
)

func TestHistoryEvictsTwoOldestNonSystem(t *testing.T) {
	h := NewHistory("system prompt", 10)
	for i := 0; i < 10; i++ {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		h.Append(role, fmt.Sprintf("msg-%d", i))
	}
	// 11 messages now: cap exceeded, two oldest non-system evicted.
	if h.Len() != 9 {
		t.Fatalf("expected 9 messages after eviction, got %d", h.Len())
	}
	msgs := h.Messages()
	if msgs[0].Role != chat.RoleSystem {
		t.Fatalf("expected system message pinned at index 0, got %s", msgs[0].Role)
	}
	if msgs[1].Content != "msg-2" {
		t.Fatalf("expected msg-0 and msg-1 evicted, first survivor %q", msgs[1].Content)
	}
}

func TestHistorySystemAlwaysPresent(t *testing.T) {
	h := NewHistory("system prompt", 10)
	for i := 0; i < 40; i++ {
		h.Append(chat.RoleUser, fmt.Sprintf("msg-%d", i))
	}
	msgs := h.Messages()
	if msgs[0].Role != chat.RoleSystem {
		t.Fatalf("expected system message at index 0 after heavy eviction")
	}
	if h.Len() > 10 {
		t.Fatalf("expected history bounded at 10, got %d", h.Len())
	}
}

func TestHistoryNoSystemPrompt(t *testing.T) {
	h := NewHistory("", 4)
	for i := 0; i < 5; i++ {
		h.Append(chat.RoleUser, fmt.Sprintf("msg-%d", i))
	}
	if h.Len() != 3 {
		t.Fatalf("expected 3 after evicting two, got %d", h.Len())
	}
	if h.Messages()[0].Content != "msg-2" {
		t.Fatalf("expected two oldest evicted, got %q", h.Messages()[0].Content)
	}
}

func TestHistoryMessagesReturnsCopy(t *testing.T) {
	h := NewHistory("sys", 10)
	h.Append(chat.RoleUser, "hello")
	msgs := h.Messages()
	msgs[0].Content = "mutated"
	if h.Messages()[0].Content != "sys" {
		t.Fatalf("expected internal state unaffected by caller mutation")
	}
}
