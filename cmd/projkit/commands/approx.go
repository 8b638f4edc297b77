package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/pkg/floatx"
)

// defaultTolerance is the relative tolerance used when --tolerance is not given.
const defaultTolerance = 1e-9

var tolerance float64

func init() {
	approxCmd.Flags().Float64VarP(&tolerance, "tolerance", "t", defaultTolerance,
		"maximum relative difference")
	rootCmd.AddCommand(approxCmd)
}

var approxCmd = &cobra.Command{
	Use:   "approx <a> <b>",
	Short: "Compare two numbers with a relative tolerance",
	Long: `Print true when |a-b| / max(|a|, |b|) is within the tolerance, false
otherwise. NaN is never approximately equal to anything.`,
	Example: `  projkit approx 0.1 0.1000000001
  projkit approx 100 101 --tolerance 0.01`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if tolerance < 0 {
			return errors.NewUserError(errors.Newf("tolerance must not be negative, got %g", tolerance), "")
		}

		nums := make([]float64, len(args))
		for i, s := range args {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return errors.NewUserError(errors.Wrapf(err, "parsing %q", s), "")
			}
			nums[i] = v
		}

		fmt.Fprintln(cmd.OutOrStdout(), floatx.AlmostEqual(nums[0], nums[1], tolerance))
		return nil
	},
}
