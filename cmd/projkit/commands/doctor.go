package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/projkit/internal/config"
	"github.com/thoreinstein/projkit/internal/doctor"
	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/internal/logging"
	"github.com/thoreinstein/projkit/internal/paths"
	"github.com/thoreinstein/projkit/pkg/project"
)

var (
	doctorJSON    bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "all", false,
		"show every check including passed ones")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [project]",
	Short: "Diagnose a project's configuration files",
	Long: `Run diagnostic checks on a project's configuration directory and file.

Without an argument the projkit configuration itself is checked, including
its values. For any other project only permissions, TOML syntax, backups
and the lock file are checked, since its Go type is unknown here.

Exits 1 when warnings are found and 2 when errors are found.`,
	Example: `  projkit doctor
  projkit doctor myapp --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	p := cliProject
	var extra []doctor.Check

	if len(args) == 1 && args[0] != paths.AppName {
		var opts []project.Option
		if configRoot != "" {
			opts = append(opts, project.WithConfigRoot(configRoot))
		}
		other, err := project.New(args[0], opts...)
		if err != nil {
			return errors.NewUserError(err, "Project names are single path components")
		}
		p = other
	} else {
		extra = append(extra, doctor.NewDecodeCheck(p, validateCLIConfig))
	}

	logging.FromContext(cmd.Context()).Debug("running doctor", "project", p.Name(), "dir", p.Dir())
	report := doctor.ForProject(p, extra...).Run()

	var err error
	if doctorJSON {
		err = outputDoctorJSON(cmd.OutOrStdout(), report)
	} else {
		outputDoctorText(cmd.OutOrStdout(), report)
	}
	if err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func validateCLIConfig(data []byte) []error {
	cfg, err := project.Decode[config.Config](data)
	if err != nil {
		return []error{err}
	}
	return config.Validate(cfg)
}

func outputDoctorJSON(w io.Writer, report *doctor.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !doctorVerbose && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")
