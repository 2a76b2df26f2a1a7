package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/toolbridge/toolbridge/pkg/configutil"
	"github.com/toolbridge/toolbridge/pkg/errorsx"
	"github.com/toolbridge/toolbridge/pkg/session"
)

type Config struct {
	Chat      ChatConfig     `mapstructure:"chat"`
	Registry  RegistryConfig `mapstructure:"registry"`
	Session   SessionConfig  `mapstructure:"session"`
	Metrics   MetricsConfig  `mapstructure:"metrics"`
	Privacy   PrivacyConfig  `mapstructure:"privacy"`
	LogLevel  string         `mapstructure:"log_level"`
	LogFormat string         `mapstructure:"log_format"`
}

// ChatConfig selects the chat provider; Settings is provider-specific and
// decoded by the provider factory.
type ChatConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

// RegistryConfig names the tool-registry server process to launch.
type RegistryConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

type SessionConfig struct {
	MaxHistory   int    `mapstructure:"max_history"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

type MetricsConfig struct {
	JSONLPath string `mapstructure:"jsonl_path"`
}

type PrivacyConfig struct {
	RedactPII bool `mapstructure:"redact_pii"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("chat.provider", "openai")
	v.SetDefault("registry.command", "toolbridge-server")
	v.SetDefault("session.max_history", session.DefaultMaxMessages)
	v.SetDefault("metrics.jsonl_path", "")
	v.SetDefault("privacy.redact_pii", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errorsx.Wrap(fmt.Errorf("read config: %w", err), errorsx.ReasonConfig)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errorsx.Wrap(fmt.Errorf("unmarshal config: %w", err), errorsx.ReasonConfig)
	}

	expandEnvStrings(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, errorsx.Wrap(fmt.Errorf("validate config: %w", err), errorsx.ReasonConfig)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := configutil.RequireString(c.Chat.Provider, "chat.provider"); err != nil {
		return err
	}
	return configutil.RequireString(c.Registry.Command, "registry.command")
}

func expandEnvStrings(cfg *Config) {
	cfg.Registry.Command = os.ExpandEnv(cfg.Registry.Command)
	for i := range cfg.Registry.Args {
		cfg.Registry.Args[i] = os.ExpandEnv(cfg.Registry.Args[i])
	}
	cfg.Session.SystemPrompt = os.ExpandEnv(cfg.Session.SystemPrompt)
	cfg.Metrics.JSONLPath = os.ExpandEnv(cfg.Metrics.JSONLPath)
	cfg.Chat.Settings = expandSettings(cfg.Chat.Settings)
}

func expandSettings(settings map[string]any) map[string]any {
	if settings == nil {
		return nil
	}
	for k, v := range settings {
		settings[k] = expandAny(v)
	}
	return settings
}

func expandAny(v any) any {
	switch val := v.(type) {
	case string:
		return os.ExpandEnv(val)
	case []any:
		for i := range val {
			val[i] = expandAny(val[i])
		}
		return val
	case map[string]any:
		for k, v := range val {
			val[k] = expandAny(v)
		}
		return val
	default:
		return v
	}
}
