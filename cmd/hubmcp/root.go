package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/germanamz/hubmcp/pkg/config"
	"github.com/germanamz/hubmcp/pkg/hub"
	"github.com/germanamz/hubmcp/pkg/hubtools"
	"github.com/germanamz/hubmcp/pkg/tools/toolbox"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// defaultConfigPath is used when --config is not given and the file exists.
const defaultConfigPath = "hubmcp.yaml"

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	envFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "hubmcp",
		Short: "Expose home-automation hub operations as MCP tools",
		Long: `hubmcp serves a fixed catalog of home-automation tools over the Model
Context Protocol. Every tool call becomes one request against the hub's
REST API.

The hub is configured with HOME_ASSISTANT_API_URL and HOME_ASSISTANT_API_TOKEN
(environment, .env file) or the hub section of the config file.

Examples:
  hubmcp serve                                   # MCP over stdio
  hubmcp serve --transport http --addr :8080     # MCP over streamable HTTP
  hubmcp tools                                   # List the tool catalog
  hubmcp call state_monitoring '{"entity_id":"sun.sun"}'
  hubmcp check                                   # Verify the hub token`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to configuration file (default: "+defaultConfigPath+" if present)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "path to .env file (ignored if missing)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		serveCmd(opts),
		toolsCmd(),
		callCmd(opts),
		checkCmd(opts),
	)

	return cmd
}

// loadConfig loads .env, then the config file, applies flag overrides, and
// validates the result.
func (o *options) loadConfig() (config.Config, error) {
	if err := loadDotEnv(o.envFile); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(resolveConfigPath(o.configPath))
	if err != nil {
		return config.Config{}, err
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}

// resolveConfigPath returns the explicit path, or the default path when it
// exists, or "" to run from the environment alone.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}

	return ""
}

// newLogger builds the process logger. It never writes to stdout, which may
// carry the MCP stream.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	hopts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}

	return slog.New(slog.NewTextHandler(w, hopts))
}

// newToolBox wires the hub client and the tool catalog.
func newToolBox(cfg config.Config, log *slog.Logger) (*toolbox.ToolBox, error) {
	timeout, err := cfg.HubTimeout()
	if err != nil {
		return nil, err
	}

	client := hub.New(cfg.Hub.BaseURL, cfg.Hub.Token, timeout)

	return hubtools.New(client).Tools(toolbox.Logger(log), toolbox.Recovery()), nil
}
