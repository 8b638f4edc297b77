package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/internal/logging"
	"github.com/thoreinstein/projkit/pkg/walk"
)

var walkPick bool

// pickFile chooses one of paths interactively. Replaced in tests.
var pickFile = func(paths []string) (int, error) {
	return fuzzyfinder.Find(
		paths,
		func(i int) string { return paths[i] },
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			info, err := os.Stat(paths[i])
			if err != nil {
				return err.Error()
			}
			return fmt.Sprintf("Path: %s\nSize: %d bytes\nMode: %s\nModified: %s",
				paths[i], info.Size(), info.Mode(), info.ModTime().Format("2006-01-02 15:04:05"))
		}),
	)
}

func init() {
	walkCmd.Flags().BoolVar(&walkPick, "pick", false, "choose one file with a fuzzy finder and print it")
	rootCmd.AddCommand(walkCmd)
}

var walkCmd = &cobra.Command{
	Use:   "walk <dir>",
	Short: "List every file below a directory",
	Long: `List every non-directory entry below a directory, one path per line.

Directories that cannot be read are skipped with a warning. Symbolic links
to directories are followed; each directory is visited at most once.`,
	Example: `  projkit walk .
  projkit walk ~/src --pick`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := walk.Paths(args[0], walk.WithLogger(logging.FromContext(cmd.Context())))
		if walkPick {
			return runPick(cmd.OutOrStdout(), paths)
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func runPick(w io.Writer, paths []string) error {
	if len(paths) == 0 {
		return errors.NewUserError(errors.New("no files found"), "")
	}

	idx, err := pickFile(paths)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive pick failed")
	}

	fmt.Fprintln(w, paths[idx])
	return nil
}
