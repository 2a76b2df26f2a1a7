package toolcall

import (
	"strconv"
	"strings"
)

// ParseArgs parses a raw argument-list body ("a=1, b=true, msg='hi'") into a
// typed map. Segments are separated by commas outside quotes. Coercion order:
// number, boolean, string (with one layer of matching quotes stripped).
// Segments without "=" are skipped so garbled model output degrades instead
// of failing the whole call. Duplicate names: last write wins.
func ParseArgs(body string) map[string]any {
	args := make(map[string]any)
	for _, seg := range splitArgs(body) {
		name, value, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		args[name] = coerce(strings.TrimSpace(value))
	}
	return args
}

// splitArgs splits on commas that are not inside single or double quotes.
func splitArgs(body string) []string {
	var (
		out     []string
		current strings.Builder
		quote   rune
	)
	for _, r := range body {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			current.WriteRune(r)
		case r == ',':
			out = append(out, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

func coerce(value string) any {
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if strings.EqualFold(value, "true") {
		return true
	}
	if strings.EqualFold(value, "false") {
		return false
	}
	return unquote(value)
}

// unquote strips exactly one layer of matching single or double quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '\'' || first == '"') {
		return value[1 : len(value)-1]
	}
	return value
}
