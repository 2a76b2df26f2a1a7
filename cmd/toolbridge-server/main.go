// toolbridge-server is a stdio MCP server exposing three demo tools: echo,
// add, and current_time. Logs go to stderr; stdout carries the protocol.
package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/toolbridge/toolbridge/pkg/runner"
)

type echoArgs struct {
	Message string `json:"message" jsonschema:"the text to echo back"`
}

type addArgs struct {
	A float64 `json:"a" jsonschema:"first addend"`
	B float64 `json:"b" jsonschema:"second addend"`
}

type timeArgs struct {
	Format string `json:"format,omitempty" jsonschema:"optional Go time layout, defaults to RFC3339"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "toolbridge-server",
		Version: runner.Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "echo",
		Description: "echo the provided message back unchanged",
	}, func(ctx context.Context, req *mcp.CallToolRequest, a echoArgs) (*mcp.CallToolResult, any, error) {
		return textResult(a.Message), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add",
		Description: "add two numbers and return the sum",
	}, func(ctx context.Context, req *mcp.CallToolRequest, a addArgs) (*mcp.CallToolResult, any, error) {
		sum := a.A + a.B
		return textResult(strconv.FormatFloat(sum, 'f', -1, 64)), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "current_time",
		Description: "return the current time, optionally in a custom Go layout",
	}, func(ctx context.Context, req *mcp.CallToolRequest, a timeArgs) (*mcp.CallToolResult, any, error) {
		layout := a.Format
		if layout == "" {
			layout = time.RFC3339
		}
		return textResult(time.Now().Format(layout)), nil, nil
	})

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("server_exited", "error", err)
		os.Exit(1)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
