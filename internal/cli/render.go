package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/partch/internal/config"
	"github.com/roach88/partch/internal/midi"
	"github.com/roach88/partch/internal/music"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	PieceOptions
	Output string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Render a source file to a MIDI file",
		Long: `Render a source file to a standard MIDI file.

The source is parsed, optionally tempered, and encoded as a Format-1
MIDI file. With pitch-bend tuning (the default) each simultaneous note
gets its own channel so per-note bends can realize exact frequencies.
With Scala tuning the piece's frequencies become MIDI pitches directly
and matching .scl and .kbm tuning files are written next to the output.

Example:
  partch render melody.music
  partch render melody.music -o out.midi -t 0.25 -e 31
  partch render chords.music --tuning-method scala`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output MIDI file (default: source with .midi extension)")
	addPieceFlags(cmd, &opts.PieceOptions)

	return cmd
}

func runRender(opts *RenderOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	cfg, err := resolveConfig(cmd, opts.RootOptions, &opts.PieceOptions)
	if err != nil {
		return outputCommandError(formatter, "invalid configuration", err)
	}

	output := opts.Output
	if output == "" {
		output = withExtension(source, ".midi")
	}

	piece, err := loadPiece(source, cfg)
	if err != nil {
		return outputPieceError(formatter, err)
	}

	formatter.VerboseLog("rendering %s: %d parts", source, len(piece))
	rendering, err := renderPiece(piece, cfg, output)
	if err != nil {
		return outputPieceError(formatter, err)
	}

	return outputRenderSuccess(formatter, cmd, source, rendering)
}

// renderedFiles describes a completed rendering for output.
type renderedFiles struct {
	Files    []string `json:"files"`
	Parts    int      `json:"parts"`
	Channels [][]int  `json:"channels"`
}

// renderPiece encodes the piece and writes the MIDI file, plus the
// Scala tuning sidecars when Scala tuning is selected.
func renderPiece(piece music.Piece, cfg config.Config, output string) (*renderedFiles, error) {
	rendering, err := midi.Encode(piece, cfg.EncodeOptions(outputStem(output)))
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(output, rendering.SMF, 0644); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to write MIDI file", err)
	}
	files := []string{output}

	if rendering.Tuning != nil {
		sclPath := withExtension(output, ".scl")
		if err := os.WriteFile(sclPath, []byte(rendering.Tuning.Scl), 0644); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to write scale file", err)
		}
		kbmPath := withExtension(output, ".kbm")
		if err := os.WriteFile(kbmPath, []byte(rendering.Tuning.Kbm), 0644); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to write keyboard mapping file", err)
		}
		files = append(files, sclPath, kbmPath)
	}

	return &renderedFiles{
		Files:    files,
		Parts:    len(rendering.PartChannels),
		Channels: rendering.PartChannels,
	}, nil
}

func outputRenderSuccess(formatter *OutputFormatter, cmd *cobra.Command, source string, result *renderedFiles) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Rendered %s\n", source)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  wrote %s\n", f)
	}
	for i, channels := range result.Channels {
		fmt.Fprintf(out, "  part %d on channels %v\n", i+1, channels)
	}
	return nil
}
