package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/partch/internal/scala"
	"github.com/roach88/partch/internal/transform"
)

// ScaleOptions holds flags for the scale command.
type ScaleOptions struct {
	*RootOptions
	Output string
}

// NewScaleCommand creates the scale command.
func NewScaleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScaleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scale <source>",
		Short: "Write the scale of a source file as a Scala .scl file",
		Long: `Extract the scale a source file uses and write it as a Scala .scl file.

Every distinct frequency in the piece is reduced into one octave; the
resulting degrees, sorted and deduplicated, form the scale. The piece
must be purely rational: tempered music has no exact ratios to write.

Example:
  partch scale melody.music
  partch scale melody.music -o harmonic.scl`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScale(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output scale file (default: source with .scl extension)")

	return cmd
}

func runScale(opts *ScaleOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	output := opts.Output
	if output == "" {
		output = withExtension(source, ".scl")
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return outputCommandError(formatter, "failed to read source file", err)
	}
	piece, err := transform.Parse(string(data))
	if err != nil {
		return outputPieceError(formatter, err)
	}

	doc, err := scala.ScaleDocument(piece, outputStem(output))
	if err != nil {
		return outputPieceError(formatter, err)
	}
	if err := os.WriteFile(output, []byte(doc), 0644); err != nil {
		return outputCommandError(formatter, "failed to write scale file", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"file":  output,
			"scale": doc,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", output)
	return nil
}
