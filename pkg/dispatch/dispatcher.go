// Package dispatch turns an extracted tool call into a registry invocation
// and a user-facing rendering of the outcome.
package dispatch

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toolbridge/toolbridge/pkg/metrics"
	"github.com/toolbridge/toolbridge/pkg/registry"
	"github.com/toolbridge/toolbridge/pkg/toolcall"
)

// Registry is the slice of the registry client the dispatcher needs. The
// registry validates tool names and argument shapes; no local schema checks
// happen here.
type Registry interface {
	Call(ctx context.Context, name string, args map[string]any) (registry.Result, error)
}

type Dispatcher struct {
	registry Registry
	out      io.Writer
	logger   *slog.Logger
	obs      metrics.Observer
}

func New(reg Registry, out io.Writer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		out:      out,
		logger:   logger,
		obs:      metrics.NoopObserver{},
	}
}

func (d *Dispatcher) SetObserver(obs metrics.Observer) {
	if obs != nil {
		d.obs = obs
	}
}

// Dispatch invokes the named tool once and writes a rendering of the outcome
// to the user-facing writer. Invocation failures are reported there and never
// propagated; a failed call must not end the session. No retries.
func (d *Dispatcher) Dispatch(ctx context.Context, call toolcall.Call) string {
	callID := uuid.NewString()
	start := time.Now()
	d.logger.Info("tool_call_dispatch", "call_id", callID, "tool", call.Name)

	res, err := d.registry.Call(ctx, call.Name, call.Arguments)
	elapsed := time.Since(start)
	if err != nil {
		d.logger.Warn("tool_call_failed", "call_id", callID, "tool", call.Name, "error", err)
		d.record("tool_call", elapsed, call.Name, "error")
		msg := fmt.Sprintf("tool %s failed: %v", call.Name, err)
		fmt.Fprintln(d.out, msg)
		return msg
	}

	rendered := Render(res)
	d.record("tool_call", elapsed, call.Name, "ok")
	fmt.Fprintln(d.out, rendered)
	return rendered
}

// Render flattens a tool result for display. Text items print verbatim;
// opaque items print as a kind tag plus a base64 payload.
func Render(res registry.Result) string {
	var b strings.Builder
	for i, item := range res.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		if item.Kind == "text" {
			b.WriteString(item.Text)
			continue
		}
		fmt.Fprintf(&b, "[%s] %s", item.Kind, base64.StdEncoding.EncodeToString(item.Data))
	}
	return b.String()
}

func (d *Dispatcher) record(name string, elapsed time.Duration, tool, status string) {
	d.obs.RecordEvent(metrics.Event{
		Name:  name,
		Time:  time.Now(),
		Value: float64(elapsed.Milliseconds()),
		Tags:  map[string]string{"tool": tool, "status": status},
	})
}
