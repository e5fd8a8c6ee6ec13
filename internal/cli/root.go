// Package cli implements the herodex command tree.
package cli

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/herodex/internal/config"
	"github.com/rshade/herodex/internal/logging"
	"github.com/rshade/herodex/internal/marvel"
)

// annotationInteractive marks commands that take over the terminal.
const annotationInteractive = "herodex/interactive"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

type configKey struct{}

// rootFlags are the overrides accepted by every command.
type rootFlags struct {
	debug      bool
	configPath string
	apiKey     string
	apiBase    string
	timeout    time.Duration
}

// NewRootCmd creates the root Cobra command for the herodex CLI.
// Without a subcommand it opens the browser when stdout is a terminal.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithTerminal(ver, func() bool { return isTerminal(os.Stdout) })
}

// NewRootCmdWithTerminal creates the root command with an explicit terminal
// check for testability.
func NewRootCmdWithTerminal(ver string, interactive func() bool) *cobra.Command {
	var (
		flags     rootFlags
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:           "herodex",
		Short:         "Browse Marvel characters from the terminal",
		Long:          "herodex: browse, query and proxy the Marvel character catalog",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			takesTerminal := cmd.Annotations[annotationInteractive] == "true" ||
				(cmd == cmd.Root() && interactive())
			result := setupLogging(cmd, cfg.Logging, flags.debug, takesTerminal)
			logResult = &result

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !interactive() {
				return cmd.Help()
			}
			return runBrowse(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.herodex/config.yaml)")
	pf.StringVar(&flags.apiKey, "api-key", "", "Marvel API key (overrides config and HERODEX_API_KEY)")
	pf.StringVar(&flags.apiBase, "api-base", "", "Marvel API base URL")
	pf.DurationVar(&flags.timeout, "timeout", 0, "HTTP request timeout (0 = no timeout)")

	cmd.AddCommand(NewBrowseCmd(), newCharactersCmd(), newConfigCmd(), NewServeCmd())

	return cmd
}

const rootCmdExample = `  # Open the interactive browser
  herodex browse

  # List one page of characters starting at offset 300
  herodex characters list --offset 300

  # Fetch several characters at once as JSON
  herodex characters get 1011334 1009610 --output json

  # Run the JSON proxy
  herodex serve --addr 127.0.0.1:8080

  # Write a default configuration file
  herodex config init`

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("api-key") {
		cfg.API.Key = flags.apiKey
	}
	if cmd.Flags().Changed("api-base") {
		cfg.API.BaseURL = flags.apiBase
	}
	if cmd.Flags().Changed("timeout") {
		cfg.API.Timeout = flags.timeout
	}
	return cfg, nil
}

// configFromContext returns the configuration loaded by the root command.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.New()
}

// newClient validates the configuration and builds the shared data service.
func newClient(cmd *cobra.Command) (*marvel.Client, *config.Config, error) {
	cfg := configFromContext(cmd.Context())
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			logger.Debug().Msg("no API key in config file, environment or flags")
		}
		return nil, nil, err
	}

	client := marvel.NewClient(cfg.API.BaseURL, cfg.API.Key,
		marvel.WithTimeout(cfg.API.Timeout),
		marvel.WithLogger(logger),
	)
	return client, cfg, nil
}

// newCharactersCmd creates the characters command group.
func newCharactersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "characters", Aliases: []string{"chars"}, Short: "Query the character catalog"}
	cmd.AddCommand(NewCharactersListCmd(), NewCharactersGetCmd(), NewCharactersRandomCmd())
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
