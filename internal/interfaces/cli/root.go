// Package cli implements the lexrisk command line: direct searches, entity
// lookups, analytics snapshots and vendor risk assessments against the
// research API, plus an embedded HTTP server.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/LegalSpend-Research/internal/bootstrap"
	"github.com/turtacn/LegalSpend-Research/internal/config"
	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
	BaseURL      string
	APIKey       string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Engine       *bootstrap.Engine
	OutputFormat string
	Timeout      time.Duration
}

// EngineFactory wires the engine once configuration and logging are ready.
type EngineFactory func(cfg *config.Config, logger logging.Logger) (*bootstrap.Engine, error)

func defaultFactory(cfg *config.Config, logger logging.Logger) (*bootstrap.Engine, error) {
	return bootstrap.NewEngine(cfg, logger)
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands.  A nil factory wires the real research client.
func NewRootCommand(factory EngineFactory) *cobra.Command {
	if factory == nil {
		factory = defaultFactory
	}
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lexrisk",
		Short: "Legal research aggregation and vendor risk scoring",
		Long: "lexrisk queries a case-law research service for opinions, dockets and judges,\n" +
			"derives legal analytics snapshots and scores the litigation risk of vendors.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts, factory)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./lexrisk.yaml, ~/.lexrisk/config.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config")
	pf.StringVarP(&opts.OutputFormat, "output", "o", FormatJSON, "output format (json, yaml, table)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	pf.DurationVar(&opts.Timeout, "timeout", 60*time.Second, "overall operation timeout")
	pf.StringVar(&opts.BaseURL, "base-url", "", "research API base URL; overrides the config")
	pf.StringVar(&opts.APIKey, "api-key", "", "research API credential; overrides the config")

	cmd.AddCommand(
		NewSearchCmd(),
		NewLookupCmd(),
		NewAnalyticsCmd(),
		NewRiskCmd(),
		NewServeCmd(),
		newVersionCmd(),
	)
	return cmd
}

// persistentPreRun initializes config, logger and engine, then stores
// CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions, factory EngineFactory) error {
	if cmd.Name() == "version" {
		return nil
	}
	if !isValidOutputFormat(opts.OutputFormat) {
		return fmt.Errorf("invalid output format %q (must be json, yaml or table)", opts.OutputFormat)
	}

	cfg, err := initConfig(opts, cmd.Name() == "serve")
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	engine, err := factory(cfg, logger)
	if err != nil {
		return fmt.Errorf("engine initialization failed: %w", err)
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Engine:       engine,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		Timeout:      opts.Timeout,
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	cmd.SetContext(context.WithValue(parent, cliContextKey{}, cliCtx))
	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(opts *RootOptions, serving bool) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = findConfigFile()
	}
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return nil, err
	}

	if opts.BaseURL != "" {
		cfg.Research.BaseURL = opts.BaseURL
	}
	if opts.APIKey != "" {
		cfg.Research.APIKey = opts.APIKey
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(opts.LogLevel)
	}
	if opts.Verbose {
		cfg.Log.Level = logging.LevelDebug
	}
	// Only the serve command exposes metrics.
	if !serving {
		cfg.Metrics.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first existing default config path, or "".
func findConfigFile() string {
	searchPaths := []string{"./lexrisk.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".lexrisk", "config.yaml"))
	}
	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// initLogger creates a logger configured for CLI usage (output to stderr).
func initLogger(cfg *config.Config) (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.CodeInternal, "command context is nil")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.CodeInternal, "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// operationContext bounds one command run by the --timeout flag.
func (c *CLIContext) operationContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), c.Timeout)
}

// Execute is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand(nil)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "lexrisk %s (commit: %s, built: %s)\n", Version, GitCommit, BuildDate)
			return nil
		},
	}
}
