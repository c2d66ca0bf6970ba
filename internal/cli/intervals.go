package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/partch/internal/eval"
	"github.com/roach88/partch/internal/music"
	"github.com/roach88/partch/internal/transform"
)

// IntervalsOptions holds flags for the intervals command.
type IntervalsOptions struct {
	*RootOptions
	Notes bool
}

// NewIntervalsCommand creates the intervals command.
func NewIntervalsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IntervalsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "intervals <source>",
		Short: "Print the interval table of a source file",
		Long: `Print the table of intervals between the distinct frequencies of a
source file. Entry (i, j) is the ratio taking frequency i to frequency
j, so the diagonal is 1 and opposite entries multiply to 1. Only purely
rational music has an interval table.

Example:
  partch intervals chords.music
  partch intervals chords.music --notes`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntervals(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Notes, "notes", false, "also print the parsed music tree")

	return cmd
}

func runIntervals(opts *IntervalsOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	data, err := os.ReadFile(source)
	if err != nil {
		return outputCommandError(formatter, "failed to read source file", err)
	}
	piece, err := transform.Parse(string(data))
	if err != nil {
		return outputPieceError(formatter, err)
	}
	piece, err = eval.ResolveMarkers(piece)
	if err != nil {
		return outputPieceError(formatter, err)
	}

	table := eval.FormatIntervalTable(piece)
	if table == "" {
		err := fmt.Errorf("%s has no rational intervals", source)
		if outErr := formatter.Error(string(eval.ErrCodeNonRationalInterval), err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "no interval table", err)
	}

	if opts.Format == "json" {
		result := map[string]interface{}{"table": table}
		if opts.Notes {
			result["notes"] = music.Sprint(piece)
		}
		return formatter.Success(result)
	}

	out := cmd.OutOrStdout()
	if opts.Notes {
		fmt.Fprint(out, music.Sprint(piece))
	}
	fmt.Fprint(out, table)
	return nil
}
