package chat

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Response struct {
	Text         string
	FinishReason string
	Usage        Usage
}

// Model produces a single reply for an ordered sequence of role-tagged
// messages. One outstanding request at a time; no streaming.
type Model interface {
	Complete(ctx context.Context, messages []Message) (Response, error)
	Name() string
}
