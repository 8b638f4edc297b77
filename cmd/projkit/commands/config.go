package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/projkit/internal/config"
	"github.com/thoreinstein/projkit/internal/editor"
	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/internal/logging"
	"github.com/thoreinstein/projkit/internal/translate"
	"github.com/thoreinstein/projkit/pkg/backup"
	"github.com/thoreinstein/projkit/pkg/fileutil"
	"github.com/thoreinstein/projkit/pkg/project"
)

// Output formats accepted by "config show".
const (
	outputTOML = "toml"
	outputYAML = "yaml"
	outputJSON = "json"
)

var (
	showOutput string
	initForce  bool
)

func init() {
	configShowCmd.Flags().StringVarP(&showOutput, "output", "o", outputTOML,
		"output format: toml, yaml, json")
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"back up the existing file and rewrite it with defaults")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage projkit configuration",
	Long: `Manage projkit configuration stored in <config home>/projkit/config.toml.

Without a subcommand, shows the configuration file.`,
	Example: `  # Show the configuration as YAML
  projkit config show -o yaml

  # Open it in $EDITOR
  projkit config edit

See Also: projkit config path`,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliProject.ConfigPath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration file",
	Long: `Print the configuration file as stored on disk, or converted to YAML
or JSON with --output.`,
	Example: `  projkit config show
  projkit config show -o json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file with defaults",
	Long: `Create the configuration file with default values if it does not exist.

With --force, an existing file is first copied to a numbered backup
(config.toml.bak, config.toml.bak.1, ...) and then replaced with defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your editor.

The editor setting in the file wins, then $EDITOR, then $VISUAL, then nano
or vi. The file is validated again once the editor exits.`,
	Example: `  # Open config in default editor
  projkit config edit

  # Open with specific editor
  EDITOR=nano projkit config edit`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	data, err := fileutil.ReadFileWithLimit(cliProject.ConfigPath())
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "reading config"), "")
	}

	switch showOutput {
	case outputTOML:
	case outputYAML:
		data, err = translate.TOMLToYAML(data)
	case outputJSON:
		data, err = translate.TOMLToJSON(data)
	default:
		return errors.NewUserError(errors.Newf("unknown output format %q", showOutput), "Use -o toml, yaml or json")
	}
	if err != nil {
		return errors.NewConfigError(err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	logger := logging.FromContext(cmd.Context())
	out := cmd.OutOrStdout()

	created, err := project.Bootstrap[config.Config](cliProject)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if created {
		fmt.Fprintf(out, "Created %s\n", cliProject.ConfigPath())
		return nil
	}
	if !initForce {
		fmt.Fprintf(out, "%s already exists (use --force to reset it)\n", cliProject.ConfigPath())
		return nil
	}

	saved, err := backup.Create(cliProject.ConfigPath())
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	logger.Info("backed up config", "backup", saved)

	if err := fileutil.AtomicWriteTOML(cliProject.ConfigPath(), project.Defaults[config.Config](), project.FilePerm); err != nil {
		return errors.NewSystemError(err, fmt.Sprintf("Your previous config is at %s", saved))
	}
	fmt.Fprintf(out, "Reset %s (previous version saved to %s)\n", cliProject.ConfigPath(), saved)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	if _, err := project.Bootstrap[config.Config](cliProject); err != nil {
		return errors.NewSystemError(err, "")
	}

	var override string
	if cliConfig != nil {
		override = cliConfig.Editor
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Location: %s\n", cliProject.ConfigPath())
	err := editor.Open(cmd.Context(), cliProject.ConfigPath(), editor.Options{
		Command: override,
		Stdin:   cmd.InOrStdin(),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.NewSystemError(err, "Set $EDITOR or the editor key in the config")
	}

	if _, err := config.Load(cliProject); err != nil {
		return errors.NewConfigError(err)
	}
	return nil
}
