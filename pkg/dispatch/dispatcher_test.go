package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/toolbridge/toolbridge/pkg/metrics"
	"github.com/toolbridge/toolbridge/pkg/registry"
	"github.com/toolbridge/toolbridge/pkg/toolcall"
)

type fakeRegistry struct {
	result   registry.Result
	err      error
	lastName string
	lastArgs map[string]any
}

func (f *fakeRegistry) Call(_ context.Context, name string, args map[string]any) (registry.Result, error) {
	f.lastName = name
	f.lastArgs = args
	return f.result, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatchRendersTextItems(t *testing.T) {
	reg := &fakeRegistry{result: registry.Result{Items: []registry.ContentItem{
		{Kind: "text", Text: "59"},
	}}}
	var out bytes.Buffer
	d := New(reg, &out, discardLogger())

	rendered := d.Dispatch(context.Background(), toolcall.Call{Name: "add", Arguments: map[string]any{"a": 42.0, "b": 17.0}})
	if rendered != "59" {
		t.Fatalf("expected rendered 59, got %q", rendered)
	}
	if reg.lastName != "add" {
		t.Fatalf("expected add invoked, got %s", reg.lastName)
	}
	if !strings.Contains(out.String(), "59") {
		t.Fatalf("expected result on the user-facing writer, got %q", out.String())
	}
}

func TestDispatchTransportErrorDoesNotPropagate(t *testing.T) {
	reg := &fakeRegistry{err: errors.New("transport dropped")}
	var out bytes.Buffer
	d := New(reg, &out, discardLogger())

	rendered := d.Dispatch(context.Background(), toolcall.Call{Name: "echo"})
	if !strings.Contains(rendered, "transport dropped") {
		t.Fatalf("expected failure message, got %q", rendered)
	}
	if !strings.Contains(out.String(), "tool echo failed") {
		t.Fatalf("expected user-visible failure, got %q", out.String())
	}
}

func TestDispatchRecordsMetrics(t *testing.T) {
	reg := &fakeRegistry{err: errors.New("nope")}
	d := New(reg, io.Discard, discardLogger())
	obs := metrics.NewMemoryObserver()
	d.SetObserver(obs)

	d.Dispatch(context.Background(), toolcall.Call{Name: "echo"})

	events := obs.Snapshot()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Tags["status"] != "error" {
		t.Fatalf("expected error status, got %v", events[0].Tags)
	}
}

func TestRenderOpaqueItem(t *testing.T) {
	rendered := Render(registry.Result{Items: []registry.ContentItem{
		{Kind: "text", Text: "hello"},
		{Kind: "image", Data: []byte{0x1, 0x2}},
	}})
	lines := strings.Split(rendered, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", rendered)
	}
	if lines[0] != "hello" {
		t.Fatalf("expected verbatim text, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[image] ") {
		t.Fatalf("expected kind tag, got %q", lines[1])
	}
}
