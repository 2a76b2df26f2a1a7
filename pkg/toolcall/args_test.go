package toolcall

import "testing"

func TestParseArgsNumbersPreferred(t *testing.T) {
	args := ParseArgs("a=1,b=2")
	if args["a"] != 1.0 {
		t.Fatalf("expected float64 1, got %T %v", args["a"], args["a"])
	}
	if args["b"] != 2.0 {
		t.Fatalf("expected float64 2, got %T %v", args["b"], args["b"])
	}
}

func TestParseArgsQuotedStringStripped(t *testing.T) {
	args := ParseArgs(`message="hi there"`)
	if args["message"] != "hi there" {
		t.Fatalf("expected quotes stripped, got %q", args["message"])
	}
}

func TestParseArgsSingleQuotes(t *testing.T) {
	args := ParseArgs("message='hello'")
	if args["message"] != "hello" {
		t.Fatalf("expected quotes stripped, got %q", args["message"])
	}
}

func TestParseArgsBooleanTyped(t *testing.T) {
	args := ParseArgs("flag=true,off=FALSE")
	if args["flag"] != true {
		t.Fatalf("expected bool true, got %T %v", args["flag"], args["flag"])
	}
	if args["off"] != false {
		t.Fatalf("expected bool false, got %T %v", args["off"], args["off"])
	}
}

func TestParseArgsQuotedComma(t *testing.T) {
	args := ParseArgs(`message="a, b",n=3`)
	if args["message"] != "a, b" {
		t.Fatalf("expected comma kept inside quotes, got %q", args["message"])
	}
	if args["n"] != 3.0 {
		t.Fatalf("expected 3, got %v", args["n"])
	}
}

func TestParseArgsMalformedSegmentSkipped(t *testing.T) {
	args := ParseArgs("a=1,garbage,b=2")
	if len(args) != 2 {
		t.Fatalf("expected malformed segment skipped, got %v", args)
	}
}

func TestParseArgsDuplicateLastWins(t *testing.T) {
	args := ParseArgs("a=1,a=2")
	if args["a"] != 2.0 {
		t.Fatalf("expected last write to win, got %v", args["a"])
	}
}

func TestParseArgsWhitespaceTrimmed(t *testing.T) {
	args := ParseArgs(" a = 42 , b = 17 ")
	if args["a"] != 42.0 || args["b"] != 17.0 {
		t.Fatalf("expected trimmed numeric values, got %v", args)
	}
}

func TestParseArgsExponentLiteral(t *testing.T) {
	args := ParseArgs("x=1e3")
	if args["x"] != 1000.0 {
		t.Fatalf("expected exponent literal parsed, got %v", args["x"])
	}
}

func TestParseArgsEmptyBody(t *testing.T) {
	args := ParseArgs("")
	if args == nil || len(args) != 0 {
		t.Fatalf("expected empty non-nil map, got %v", args)
	}
}
