// Package toolcall locates embedded call markers in free-form model output
// and parses their argument lists into typed values.
//
// The marker grammar is:
//
//	"[TOOL_CALL:" identifier "(" argument-list ")" "]"
//	argument-list := (name "=" value ("," name "=" value)*)?
//
// The body match stops at the first closing parenthesis, so nested
// parentheses inside argument values are not supported.
package toolcall

import "regexp"

var markerRe = regexp.MustCompile(`\[TOOL_CALL:([A-Za-z0-9_]+)\(([^)]*)\)\]`)

// Call is a single extracted tool invocation. Arguments hold float64, bool,
// or string values keyed by argument name.
type Call struct {
	Name      string
	Arguments map[string]any
}

// Extract returns the first call marker found in reply, if any. Replies with
// no marker are plain conversational text; additional markers after the first
// are ignored.
func Extract(reply string) (Call, bool) {
	m := markerRe.FindStringSubmatch(reply)
	if m == nil {
		return Call{}, false
	}
	return Call{Name: m[1], Arguments: ParseArgs(m[2])}, true
}
