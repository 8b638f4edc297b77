// Package commands implements the CLI commands for projkit.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/projkit/cmd"
	"github.com/thoreinstein/projkit/internal/config"
	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/internal/logging"
	"github.com/thoreinstein/projkit/pkg/project"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// colorFlag holds the value of the --color flag.
var colorFlag string

// configRoot overrides the XDG config home. Hidden; used by tests and scripts.
var configRoot string

// Populated by PersistentPreRunE for the running command.
var (
	cliProject *project.Project
	cliConfig  *config.Config
	logCloser  io.Closer
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: text, json (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		"colorize log output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&configRoot, "config-root", "",
		"directory holding per-project config directories")
	_ = rootCmd.PersistentFlags().MarkHidden("config-root")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("projkit version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "projkit",
	Short: "Per-project config files and small filesystem utilities",
	Long: `projkit manages per-project TOML configuration files stored under the
XDG config home and ships a handful of filesystem helpers: a directory
walker, numbered backups, a rename that works across filesystems, and
file identity checks.

Its own settings live in <config home>/projkit/config.toml and are
created with defaults the first time any command runs.`,
	Example: `  # Show where the config lives
  projkit config path

  # List every file under a directory
  projkit walk ./src

  # Back up a file before editing it
  projkit backup notes.txt

  See Also: projkit config, projkit walk`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return prepare(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// prepare resolves the CLI project, loads its config and configures logging.
// A broken config is reported after logging is up so the failure is logged,
// except for commands that exist to inspect or repair it.
func prepare(cmd *cobra.Command) error {
	var opts []project.Option
	if configRoot != "" {
		opts = append(opts, project.WithConfigRoot(configRoot))
	}

	p, err := config.Project(opts...)
	if err != nil {
		return errors.NewSystemError(err, "Set XDG_CONFIG_HOME to an absolute directory")
	}
	cliProject = p

	cfg, cfgErr := config.Load(p)
	cliConfig = cfg

	if err := setupLogging(cmd, cfg); err != nil {
		return err
	}

	if cfgErr != nil {
		logging.FromContext(cmd.Context()).Warn("config unusable", "path", p.ConfigPath(), "error", cfgErr)
		if !toleratesBrokenConfig(cmd) {
			return errors.NewConfigError(cfgErr)
		}
	}
	return nil
}

// toleratesBrokenConfig reports whether cmd can run without a valid config.
func toleratesBrokenConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "doctor":
		return true
	case "path", "edit", "init":
		return cmd.HasParent() && cmd.Parent().Name() == "config"
	}
	return false
}

// setupLogging configures the default logger from flags, PROJKIT_DEBUG and
// the loaded config, in that order of precedence. cfg may be nil.
func setupLogging(cmd *cobra.Command, cfg *config.Config) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	level, err := resolveLevel(cfg)
	if err != nil {
		return errors.NewConfigError(err)
	}

	format := logging.FormatText
	switch {
	case logFormat != "":
		format = logging.Format(logFormat)
	case cfg != nil:
		format = logging.ParseFormat(cfg.LogFormat)
	}
	if format != logging.FormatText && format != logging.FormatJSON {
		return errors.NewUserError(errors.Newf("invalid log format %q", logFormat), "Use --log-format text or json")
	}

	mode, err := logging.ParseColorMode(colorFlag)
	if err != nil {
		return errors.NewUserError(err, "Use --color auto, always or never")
	}

	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{logging.NewHandlerFor(format, mode, cmd.ErrOrStderr(), opts)}

	closeLogFile()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		logCloser = f
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

func resolveLevel(cfg *config.Config) (slog.Level, error) {
	if quiet {
		return slog.LevelError, nil
	}

	v := verbosity

	// CLI flags take precedence, but if not set, check env var
	if v == 0 {
		if val, ok := os.LookupEnv("PROJKIT_DEBUG"); ok {
			switch val {
			case "1", "true":
				v = 2 // Debug
			case "2":
				v = 3 // Trace
			}
		}
	}
	if v > 0 || cfg == nil {
		return logging.LevelFromVerbosity(v), nil
	}
	return logging.ParseLevel(cfg.LogLevel)
}

func closeLogFile() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// Execute runs the root command.
func Execute() error {
	defer closeLogFile()
	return rootCmd.Execute()
}
