package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/partch/internal/config"
	"github.com/roach88/partch/internal/eval"
	"github.com/roach88/partch/internal/midi"
	"github.com/roach88/partch/internal/music"
	"github.com/roach88/partch/internal/parser"
	"github.com/roach88/partch/internal/scala"
	"github.com/roach88/partch/internal/transform"
)

// PieceOptions holds the rendering flags shared by commands that turn
// a source file into sound. Each flag overrides the corresponding
// config file field, but only when the user actually set it.
type PieceOptions struct {
	TimeUnit       float64
	Frequency      float64
	EDO            int
	TuningMethod   string
	PitchBendRange int
	Programs       []int
}

func addPieceFlags(cmd *cobra.Command, opts *PieceOptions) {
	flags := cmd.Flags()
	flags.Float64VarP(&opts.TimeUnit, "time", "t", 0.5, "length of one beat in seconds")
	flags.Float64VarP(&opts.Frequency, "frequency", "f", 440, "frequency of the ratio 1/1 in Hz")
	flags.IntVarP(&opts.EDO, "edo", "e", 0, "temper into this many equal divisions of the octave")
	flags.StringVar(&opts.TuningMethod, "tuning-method", string(midi.TuningPitchBend), "tuning method (pitch_bend|scala)")
	flags.IntVar(&opts.PitchBendRange, "pitch-bend-range", midi.DefaultPitchBendRange, "semitones spanned by a full-scale pitch bend")
	flags.IntSliceVarP(&opts.Programs, "programs", "p", nil, "1-based General MIDI programs per part")
}

// resolveConfig layers command-line flags over the config file, or over
// the defaults when no file was given.
func resolveConfig(cmd *cobra.Command, rootOpts *RootOptions, opts *PieceOptions) (config.Config, error) {
	cfg := config.Default()
	if rootOpts.ConfigPath != "" {
		var err error
		cfg, err = config.Load(rootOpts.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("time") {
		cfg.TimeUnit = opts.TimeUnit
	}
	if flags.Changed("frequency") {
		cfg.ReferenceFrequency = opts.Frequency
	}
	if flags.Changed("edo") {
		cfg.EDO = opts.EDO
	}
	if flags.Changed("tuning-method") {
		cfg.TuningMethod = midi.TuningMethod(opts.TuningMethod)
	}
	if flags.Changed("pitch-bend-range") {
		cfg.PitchBendRange = opts.PitchBendRange
	}
	if flags.Changed("programs") {
		parts := make([]config.PartSettings, len(opts.Programs))
		for i, program := range opts.Programs {
			parts[i] = config.PartSettings{Program: program}
		}
		cfg.Parts = parts
	}
	if rootOpts.Verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadPiece reads and parses a source file, tempering the result when
// the config asks for an EDO.
func loadPiece(path string, cfg config.Config) (music.Piece, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read source file", err)
	}
	piece, err := transform.Parse(string(data))
	if err != nil {
		return nil, err
	}
	if cfg.EDO > 0 {
		piece, err = eval.Temper(piece, cfg.EDO)
		if err != nil {
			return nil, err
		}
	}
	return piece, nil
}

// newFormatter builds the output formatter for a command invocation.
func newFormatter(cmd *cobra.Command, rootOpts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}
}

// errorCode maps domain errors to their machine-readable codes.
func errorCode(err error) string {
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "SYNTAX_ERROR"
	}
	var modelErr *music.ModelError
	if errors.As(err, &modelErr) {
		return string(modelErr.Code)
	}
	var evalErr *eval.EvaluationError
	if errors.As(err, &evalErr) {
		return string(evalErr.Code)
	}
	var encodingErr *midi.EncodingError
	if errors.As(err, &encodingErr) {
		return string(encodingErr.Code)
	}
	var tuningErr *scala.TuningError
	if errors.As(err, &tuningErr) {
		return string(tuningErr.Code)
	}
	return "ERROR"
}

// outputCommandError reports a configuration or IO error and exits
// with ExitCommandError.
func outputCommandError(formatter *OutputFormatter, message string, err error) error {
	if outErr := formatter.Error("COMMAND_ERROR", err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, message, err)
}

// outputPieceError reports an error from the parse/evaluate/encode
// pipeline. Command errors keep their exit code; everything else is a
// rendering failure.
func outputPieceError(formatter *OutputFormatter, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if outErr := formatter.Error("COMMAND_ERROR", exitErr.Error(), nil); outErr != nil {
			return outErr
		}
		return exitErr
	}
	if outErr := formatter.Error(errorCode(err), err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitFailure, "rendering failed", err)
}

// withExtension swaps the path's extension for ext.
func withExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// outputStem names a rendering after its output file.
func outputStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
