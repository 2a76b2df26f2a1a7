package session

import (
	"fmt"
	"strings"

	"github.com/toolbridge/toolbridge/pkg/registry"
)

// BuildSystemPrompt describes the call-marker protocol and the available
// tools to the chat model. The model signals an invocation by embedding
// exactly one [TOOL_CALL:Name(args)] marker in its reply.
func BuildSystemPrompt(tools []registry.Descriptor) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant with access to external tools.\n")
	b.WriteString("To invoke a tool, include exactly one marker of the form ")
	b.WriteString("[TOOL_CALL:tool_name(arg1=value1, arg2=value2)] in your reply.\n")
	b.WriteString("Quote string values that contain commas or spaces. ")
	b.WriteString("Only one tool call per reply is honored.\n")
	if len(tools) > 0 {
		b.WriteString("Available tools:\n")
		for _, t := range tools {
			fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
		}
	}
	return b.String()
}
