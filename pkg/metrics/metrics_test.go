package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMemoryObserverRecords(t *testing.T) {
	m := NewMemoryObserver()
	m.RecordEvent(Event{Name: "tool_call", Time: time.Now(), Value: 1, Tags: map[string]string{"tool": "add"}})
	events := m.Snapshot()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Tags["tool"] != "add" {
		t.Fatalf("unexpected tag: %v", events[0].Tags)
	}
}

func TestJSONLObserverWritesLine(t *testing.T) {
	var buf bytes.Buffer
	o := NewJSONLObserver(&buf)
	o.RecordEvent(Event{Name: "chat_latency", Time: time.Now(), Value: 12.5})
	line := buf.String()
	if !strings.Contains(line, "chat_latency") {
		t.Fatalf("expected event name in output, got %q", line)
	}
	if !strings.HasSuffix(strings.TrimRight(line, "\n"), "}") {
		t.Fatalf("expected JSON line, got %q", line)
	}
}
