// toolbridge is the interactive client. It launches the tool-registry server
// over stdio, lists its tools, and offers direct invocation or an LLM chat
// mode that dispatches [TOOL_CALL:...] markers found in model replies.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/toolbridge/toolbridge/pkg/chat"
	"github.com/toolbridge/toolbridge/pkg/config"
	"github.com/toolbridge/toolbridge/pkg/configutil"
	"github.com/toolbridge/toolbridge/pkg/dispatch"
	"github.com/toolbridge/toolbridge/pkg/errorsx"
	"github.com/toolbridge/toolbridge/pkg/logging"
	"github.com/toolbridge/toolbridge/pkg/metrics"
	"github.com/toolbridge/toolbridge/pkg/providers/mock"
	"github.com/toolbridge/toolbridge/pkg/providers/openai"
	"github.com/toolbridge/toolbridge/pkg/redact"
	"github.com/toolbridge/toolbridge/pkg/registry"
	"github.com/toolbridge/toolbridge/pkg/runner"
	"github.com/toolbridge/toolbridge/pkg/session"
	"github.com/toolbridge/toolbridge/pkg/toolcall"
)

type openAISettings struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS *int   `mapstructure:"timeout_ms"`
}

type mockSettings struct {
	ResponseText string `mapstructure:"response_text"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "toolbridge: %s (reason=%s)\n", err, errorsx.Reason(err))
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	redact.SetEnabled(cfg.Privacy.RedactPII)
	runner.PrintBanner(os.Stdout)

	obs, closeObs, err := newObserver(cfg.Metrics)
	if err != nil {
		return err
	}
	defer closeObs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := registry.Connect(ctx, cfg.Registry.Command, cfg.Registry.Args, logging.NewComponentLogger(logger, "registry"))
	if err != nil {
		return err
	}
	defer reg.Close()

	tools, err := reg.ListTools(ctx)
	if err != nil {
		return err
	}
	printTools(tools)

	dispatcher := dispatch.New(reg, os.Stdout, logging.NewComponentLogger(logger, "dispatch"))
	dispatcher.SetObserver(obs)

	stdin := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println("\n1) list tools  2) call tool  3) chat  4) exit")
		fmt.Print("> ")
		if !stdin.Scan() {
			return stdin.Err()
		}
		choice := strings.TrimSpace(stdin.Text())
		switch choice {
		case "1":
			printTools(tools)
		case "2":
			callTool(ctx, stdin, dispatcher)
		case "3":
			model, err := newChatModel(cfg.Chat)
			if err != nil {
				return err
			}
			loop := session.NewLoop(model, dispatcher, os.Stdin, os.Stdout,
				logging.NewComponentLogger(logger, "session"), session.Options{
					SystemPrompt: systemPrompt(cfg.Session, tools),
					MaxHistory:   cfg.Session.MaxHistory,
				})
			loop.SetObserver(obs)
			if err := loop.Run(ctx); err != nil {
				return err
			}
		case "4":
			return nil
		default:
			if strings.EqualFold(choice, "exit") {
				return nil
			}
			fmt.Println("unknown choice")
		}
	}
}

func callTool(ctx context.Context, stdin *bufio.Scanner, dispatcher *dispatch.Dispatcher) {
	fmt.Print("tool name> ")
	if !stdin.Scan() {
		return
	}
	name := strings.TrimSpace(stdin.Text())
	if name == "" {
		return
	}
	fmt.Print("args (name=value, comma separated)> ")
	if !stdin.Scan() {
		return
	}
	dispatcher.Dispatch(ctx, toolcall.Call{
		Name:      name,
		Arguments: toolcall.ParseArgs(stdin.Text()),
	})
}

func newChatModel(cfg config.ChatConfig) (chat.Model, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		schema := configutil.Schema{
			Required: []string{"api_key"},
			Optional: []string{"model", "base_url", "timeout_ms"},
		}
		if err := configutil.ValidateSettings(cfg.Settings, schema); err != nil {
			return nil, errorsx.New(errorsx.ReasonSetup, "chat.settings: %s", err)
		}
		var settings openAISettings
		if err := configutil.DecodeSettings(cfg.Settings, &settings); err != nil {
			return nil, errorsx.Wrap(err, errorsx.ReasonSetup)
		}
		if settings.Model == "" {
			settings.Model = "gpt-4o-mini"
		}
		adapter := openai.NewAdapter(settings.APIKey, settings.Model)
		if settings.BaseURL != "" {
			adapter.BaseURL = settings.BaseURL
		}
		if timeout := configutil.IntValue(settings.TimeoutMS, 0); timeout > 0 {
			adapter.Client.Timeout = time.Duration(timeout) * time.Millisecond
		}
		return adapter, nil
	case "mock":
		if err := configutil.ValidateSettings(cfg.Settings, configutil.Schema{Optional: []string{"response_text"}}); err != nil {
			return nil, errorsx.New(errorsx.ReasonSetup, "chat.settings: %s", err)
		}
		var settings mockSettings
		if err := configutil.DecodeSettings(cfg.Settings, &settings); err != nil {
			return nil, errorsx.Wrap(err, errorsx.ReasonSetup)
		}
		if settings.ResponseText == "" {
			return mock.NewModel(), nil
		}
		return mock.NewModel(mock.Step{Response: chat.Response{Text: settings.ResponseText}}), nil
	default:
		return nil, errorsx.New(errorsx.ReasonSetup, "unknown chat provider %q", cfg.Provider)
	}
}

func newObserver(cfg config.MetricsConfig) (metrics.Observer, func(), error) {
	if cfg.JSONLPath == "" {
		return metrics.NoopObserver{}, func() {}, nil
	}
	f, err := os.OpenFile(cfg.JSONLPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errorsx.Wrap(fmt.Errorf("open metrics file: %w", err), errorsx.ReasonSetup)
	}
	async := metrics.NewAsyncObserver(metrics.NewJSONLObserver(f), 0)
	return async, func() {
		async.Close()
		f.Close()
	}, nil
}

func systemPrompt(cfg config.SessionConfig, tools []registry.Descriptor) string {
	if strings.TrimSpace(cfg.SystemPrompt) != "" {
		return cfg.SystemPrompt
	}
	return session.BuildSystemPrompt(tools)
}

func printTools(tools []registry.Descriptor) {
	fmt.Println("available tools:")
	for _, t := range tools {
		fmt.Printf("  %-14s %s\n", t.Name, t.Description)
		if t.Schema != nil {
			for name := range t.Schema.Properties {
				fmt.Printf("    arg: %s\n", name)
			}
		}
	}
}
