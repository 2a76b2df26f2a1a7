// Package openai is a chat-completions adapter over plain net/http.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/toolbridge/toolbridge/pkg/chat"
	"github.com/toolbridge/toolbridge/pkg/errorsx"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Adapter struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewAdapter(apiKey, model string) *Adapter {
	return &Adapter{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *Adapter) Name() string { return "openai" }

type requestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string           `json:"model"`
	Messages []requestMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete performs one chat completion. 429s carry the rate-limit reason so
// callers can tell throttling from hard failures; there is no retry here.
func (a *Adapter) Complete(ctx context.Context, messages []chat.Message) (chat.Response, error) {
	body, err := a.buildRequest(messages)
	if err != nil {
		return chat.Response{}, errorsx.Wrap(err, errorsx.ReasonChatGenerate)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/chat/completions", body)
	if err != nil {
		return chat.Response{}, errorsx.Wrap(err, errorsx.ReasonChatGenerate)
	}
	a.applyHeaders(req)

	resp, err := a.client().Do(req)
	if err != nil {
		return chat.Response{}, errorsx.Wrap(err, errorsx.ReasonChatGenerate)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		detail, _ := io.ReadAll(resp.Body)
		return chat.Response{}, errorsx.Wrap(errors.New(string(detail)), errorsx.ReasonChatRateLimit)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return chat.Response{}, errorsx.Wrap(errors.New(string(detail)), errorsx.ReasonChatGenerate)
	}

	var payload completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return chat.Response{}, errorsx.Wrap(err, errorsx.ReasonChatGenerate)
	}
	if len(payload.Choices) == 0 {
		return chat.Response{}, errorsx.Wrap(errors.New("no choices in response"), errorsx.ReasonChatGenerate)
	}
	first := payload.Choices[0]
	return chat.Response{
		Text:         first.Message.Content,
		FinishReason: first.FinishReason,
		Usage: chat.Usage{
			PromptTokens:     payload.Usage.PromptTokens,
			CompletionTokens: payload.Usage.CompletionTokens,
			TotalTokens:      payload.Usage.TotalTokens,
		},
	}, nil
}

func (a *Adapter) buildRequest(messages []chat.Message) (*bytes.Buffer, error) {
	req := completionRequest{Model: a.Model}
	for _, m := range messages {
		req.Messages = append(req.Messages, requestMessage{Role: string(m.Role), Content: m.Content})
	}
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(b), nil
}

func (a *Adapter) applyHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)
}

func (a *Adapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}

var _ chat.Model = (*Adapter)(nil)
