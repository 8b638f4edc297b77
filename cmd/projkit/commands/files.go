package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/internal/logging"
	"github.com/thoreinstein/projkit/pkg/backup"
	"github.com/thoreinstein/projkit/pkg/fileutil"
)

var backupList bool

func init() {
	backupCmd.Flags().BoolVarP(&backupList, "list", "l", false, "list existing backups instead of creating one")
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(sameCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Copy a file to the next free numbered backup",
	Long: `Copy a file to <file>.bak, or <file>.bak.1, <file>.bak.2 and so on when
earlier backups exist. Prints the path of the new backup.`,
	Example: `  projkit backup notes.txt
  projkit backup --list notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if backupList {
			return listBackups(cmd.OutOrStdout(), args[0])
		}

		saved, err := backup.Create(args[0])
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, backup.ErrNotRegular) {
				return errors.NewUserError(err, "")
			}
			return errors.NewSystemError(err, "")
		}
		logging.FromContext(cmd.Context()).Debug("backup created", "source", args[0], "backup", saved)
		fmt.Fprintln(cmd.OutOrStdout(), saved)
		return nil
	},
}

func listBackups(w io.Writer, path string) error {
	found, err := backup.Existing(path)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if len(found) == 0 {
		fmt.Fprintf(w, "No backups of %s\n", path)
		return nil
	}

	rows := make([][]string, 0, len(found))
	for _, name := range found {
		info, err := os.Stat(name)
		if err != nil {
			rows = append(rows, []string{name, "?", err.Error()})
			continue
		}
		rows = append(rows, []string{name, strconv.FormatInt(info.Size(), 10), info.ModTime().Format("2006-01-02 15:04:05")})
	}

	fmt.Fprintln(w, renderTable([]string{"BACKUP", "BYTES", "MODIFIED"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
	return nil
}

var mvCmd = &cobra.Command{
	Use:   "mv <from> <to>",
	Short: "Rename a file, copying across filesystems when needed",
	Long: `Rename a file. When source and destination live on different
filesystems the file is copied and the source removed; that fallback is
not atomic.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := fileutil.Rename(args[0], args[1]); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return errors.NewUserError(err, "")
			}
			return errors.NewSystemError(err, "")
		}
		logging.FromContext(cmd.Context()).Debug("renamed", "from", args[0], "to", args[1])
		return nil
	},
}

var sameCmd = &cobra.Command{
	Use:   "same <a> <b>",
	Short: "Report whether two paths name the same file",
	Long: `Report whether two paths refer to the same underlying file, by device
and inode. Prints true or false. A path that does not exist is never the
same as one that does; it is an error when neither exists.`,
	Example: `  projkit same ./a/../b b`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		same, err := fileutil.SameFile(args[0], args[1])
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return errors.NewUserError(err, "")
			}
			return errors.NewSystemError(err, "")
		}
		fmt.Fprintln(cmd.OutOrStdout(), same)
		return nil
	},
}
