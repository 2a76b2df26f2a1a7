package toolcall

import "testing"

func TestExtractNoMarker(t *testing.T) {
	if _, ok := Extract("just a friendly reply with no call"); ok {
		t.Fatalf("expected no call")
	}
}

func TestExtractSimpleCall(t *testing.T) {
	call, ok := Extract("sure, let me check: [TOOL_CALL:Add(a=5,b=3)] one moment")
	if !ok {
		t.Fatalf("expected a call")
	}
	if call.Name != "Add" {
		t.Fatalf("expected Add, got %s", call.Name)
	}
	if call.Arguments["a"] != 5.0 || call.Arguments["b"] != 3.0 {
		t.Fatalf("unexpected arguments: %v", call.Arguments)
	}
}

func TestExtractFirstOfTwoMarkers(t *testing.T) {
	call, ok := Extract("[TOOL_CALL:echo(message=first)] and [TOOL_CALL:echo(message=second)]")
	if !ok {
		t.Fatalf("expected a call")
	}
	if call.Arguments["message"] != "first" {
		t.Fatalf("expected first marker to win, got %v", call.Arguments["message"])
	}
}

func TestExtractEmptyArgumentBody(t *testing.T) {
	call, ok := Extract("[TOOL_CALL:current_time()]")
	if !ok {
		t.Fatalf("expected a call")
	}
	if call.Name != "current_time" {
		t.Fatalf("expected current_time, got %s", call.Name)
	}
	if call.Arguments == nil || len(call.Arguments) != 0 {
		t.Fatalf("expected empty non-nil arguments, got %v", call.Arguments)
	}
}

func TestExtractIdentifierWithUnderscoreAndDigits(t *testing.T) {
	call, ok := Extract("[TOOL_CALL:tool_2(x=1)]")
	if !ok || call.Name != "tool_2" {
		t.Fatalf("expected tool_2, got %+v ok=%v", call, ok)
	}
}

func TestExtractMalformedMarkerIgnored(t *testing.T) {
	if _, ok := Extract("[TOOL_CALL:bad name(a=1)]"); ok {
		t.Fatalf("expected malformed marker to be treated as plain text")
	}
}
