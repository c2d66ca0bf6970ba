package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/partch/internal/midi"
	"github.com/roach88/partch/internal/play"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	PieceOptions
	Output string

	// Player allows overriding the synth invocation (for testing).
	// If nil, defaults to a fluidsynth subprocess.
	Player *play.Player
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play <source>",
		Short: "Render a source file and play it with fluidsynth",
		Long: `Render a source file to MIDI and play it through fluidsynth.

The MIDI file is written next to the source and kept after playback.
Fluidsynth does not read Scala tuning files, so playback always uses
pitch-bend tuning regardless of the configured tuning method.

Example:
  partch play melody.music
  partch play melody.music -t 0.25 -p 47,33
  partch play melody.music -c partch.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output MIDI file (default: source with .midi extension)")
	addPieceFlags(cmd, &opts.PieceOptions)

	return cmd
}

func runPlay(opts *PlayOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	cfg, err := resolveConfig(cmd, opts.RootOptions, &opts.PieceOptions)
	if err != nil {
		return outputCommandError(formatter, "invalid configuration", err)
	}
	// Fluidsynth tunes with pitch bends only.
	cfg.TuningMethod = midi.TuningPitchBend

	output := opts.Output
	if output == "" {
		output = withExtension(source, ".midi")
	}

	piece, err := loadPiece(source, cfg)
	if err != nil {
		return outputPieceError(formatter, err)
	}

	result, err := renderPiece(piece, cfg, output)
	if err != nil {
		return outputPieceError(formatter, err)
	}
	slog.Debug("rendered", "source", source, "midi", output, "parts", result.Parts)

	// Setup signal handling so Ctrl-C stops the synth
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, stopping playback", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	player := opts.Player
	if player == nil {
		player = play.NewPlayer()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Playing %s\n", output)
	if err := player.Play(ctx, cfg, output, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		if outErr := formatter.Error("PLAYBACK_ERROR", err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "playback failed", err)
	}

	return nil
}
