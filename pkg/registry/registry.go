// Package registry wraps an MCP client session behind the small surface the
// dispatcher needs: list the remote tools, call one by name, close once.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/toolbridge/toolbridge/pkg/errorsx"
	"github.com/toolbridge/toolbridge/pkg/runner"
)

// Descriptor is the client-side view of one registry-exposed tool. Schema is
// nil when the tool does not publish one.
type Descriptor struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
}

type ContentItem struct {
	Kind string
	Text string
	Data []byte
}

type Result struct {
	Items []ContentItem
}

// Client owns the registry session for the lifetime of one run. The backing
// server process is launched over stdio and reaped on Close.
type Client struct {
	session *mcp.ClientSession
	logger  *slog.Logger
}

// Connect launches the registry server command and performs the MCP
// handshake. A failure here is a setup error; the caller should exit.
func Connect(ctx context.Context, command string, args []string, logger *slog.Logger) (*Client, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "toolbridge", Version: runner.Version}, nil)
	transport := &mcp.CommandTransport{Command: exec.Command(command, args...)}
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, errorsx.Wrap(fmt.Errorf("connect to registry %q: %w", command, err), errorsx.ReasonRegistryConnect)
	}
	logger.Info("registry_connected", "command", command)
	return &Client{session: session, logger: logger}, nil
}

func (c *Client) ListTools(ctx context.Context) ([]Descriptor, error) {
	res, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return nil, errorsx.Wrap(fmt.Errorf("list tools: %w", err), errorsx.ReasonRegistryList)
	}
	out := make([]Descriptor, 0, len(res.Tools))
	for _, t := range res.Tools {
		out = append(out, Descriptor{
			Name:        t.Name,
			Description: t.Description,
			Schema:      t.InputSchema,
		})
	}
	return out, nil
}

func (c *Client) Call(ctx context.Context, name string, args map[string]any) (Result, error) {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return Result{}, errorsx.Wrap(fmt.Errorf("call %s: %w", name, err), errorsx.ReasonRegistryCall)
	}
	result := convertResult(res)
	if res.IsError {
		return Result{}, errorsx.New(errorsx.ReasonRegistryCall, "tool %s rejected the call: %s", name, firstText(result))
	}
	return result, nil
}

func (c *Client) Close() error {
	c.logger.Debug("registry_closing")
	return c.session.Close()
}

func convertResult(res *mcp.CallToolResult) Result {
	var out Result
	for _, item := range res.Content {
		switch v := item.(type) {
		case *mcp.TextContent:
			out.Items = append(out.Items, ContentItem{Kind: "text", Text: v.Text})
		case *mcp.ImageContent:
			out.Items = append(out.Items, ContentItem{Kind: "image", Data: v.Data})
		case *mcp.AudioContent:
			out.Items = append(out.Items, ContentItem{Kind: "audio", Data: v.Data})
		default:
			out.Items = append(out.Items, ContentItem{Kind: fmt.Sprintf("%T", item)})
		}
	}
	return out
}

func firstText(res Result) string {
	for _, item := range res.Items {
		if item.Kind == "text" && strings.TrimSpace(item.Text) != "" {
			return item.Text
		}
	}
	return "no detail provided"
}
