// Package session runs the interactive conversation loop: user input, one
// chat completion, tool-call extraction, dispatch, history upkeep.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toolbridge/toolbridge/pkg/chat"
	"github.com/toolbridge/toolbridge/pkg/metrics"
	"github.com/toolbridge/toolbridge/pkg/redact"
	"github.com/toolbridge/toolbridge/pkg/toolcall"
)

// Dispatcher executes one extracted call and returns the rendering that was
// shown to the user. Implementations must swallow invocation errors.
type Dispatcher interface {
	Dispatch(ctx context.Context, call toolcall.Call) string
}

type Options struct {
	SystemPrompt string
	MaxHistory   int
}

// Loop owns the conversation state. Single logical thread of control: one
// blocking read, one outstanding chat request, at most one in-flight tool
// call. Only the loop mutates the history.
type Loop struct {
	model      chat.Model
	dispatcher Dispatcher
	history    *History
	in         *bufio.Scanner
	out        io.Writer
	logger     *slog.Logger
	obs        metrics.Observer
	id         string
}

func NewLoop(model chat.Model, dispatcher Dispatcher, in io.Reader, out io.Writer, logger *slog.Logger, opts Options) *Loop {
	return &Loop{
		model:      model,
		dispatcher: dispatcher,
		history:    NewHistory(opts.SystemPrompt, opts.MaxHistory),
		in:         bufio.NewScanner(in),
		out:        out,
		logger:     logger,
		obs:        metrics.NoopObserver{},
		id:         uuid.NewString(),
	}
}

func (l *Loop) SetObserver(obs metrics.Observer) {
	if obs != nil {
		l.obs = obs
	}
}

// Run reads user lines until "exit" (case-insensitive) or EOF. A failed chat
// request or tool call is reported and the loop keeps going; only the input
// stream ending or context cancellation stops it.
func (l *Loop) Run(ctx context.Context) error {
	for {
		fmt.Fprint(l.out, "you> ")
		if !l.in.Scan() {
			return l.in.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(l.in.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			l.logger.Info("session_exit", "session_id", l.id)
			return nil
		}

		l.history.Append(chat.RoleUser, line)
		l.logger.Debug("user_input", "session_id", l.id, "text", redact.Text(line))

		start := time.Now()
		resp, err := l.model.Complete(ctx, l.history.Messages())
		if err != nil {
			l.logger.Error("chat_complete_failed", "session_id", l.id, "error", err)
			fmt.Fprintf(l.out, "chat error: %v\n", err)
			continue
		}
		l.obs.RecordEvent(metrics.Event{
			Name:  "chat_latency",
			Time:  time.Now(),
			Value: float64(time.Since(start).Milliseconds()),
			Tags:  map[string]string{"model": l.model.Name()},
			Fields: map[string]any{
				"prompt_tokens":     resp.Usage.PromptTokens,
				"completion_tokens": resp.Usage.CompletionTokens,
			},
		})

		l.history.Append(chat.RoleAssistant, resp.Text)
		fmt.Fprintln(l.out, resp.Text)
		l.logger.Debug("assistant_reply", "session_id", l.id, "text", redact.Text(resp.Text))

		if call, ok := toolcall.Extract(resp.Text); ok {
			rendered := l.dispatcher.Dispatch(ctx, call)
			l.history.Append(chat.RoleUser, "Tool result: "+rendered)
		}
	}
}
