package redact

import (
	"strings"
	"testing"
)

func TestTextDisabledPassesThrough(t *testing.T) {
	SetEnabled(false)
	in := "mail me at someone@example.com"
	if got := Text(in); got != in {
		t.Fatalf("expected passthrough when disabled, got %q", got)
	}
}

func TestTextRedactsWhenEnabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	got := Text("reach someone@example.com or +62 812-3456-7890")
	if strings.Contains(got, "example.com") {
		t.Fatalf("email not redacted: %q", got)
	}
	if strings.Contains(got, "3456") {
		t.Fatalf("phone not redacted: %q", got)
	}
}

func TestTextRedactsSecrets(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	got := Text("key is sk-abcdefghijklmnopqrstuvwx")
	if strings.Contains(got, "sk-abcdef") {
		t.Fatalf("secret not redacted: %q", got)
	}
	if !strings.Contains(got, "[REDACTED_SECRET]") {
		t.Fatalf("expected secret placeholder, got %q", got)
	}
}
