package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/partch/internal/play"
)

// fakeSynth records the command the player would have run.
type fakeSynth struct {
	name string
	args []string
	err  error
}

func (f *fakeSynth) run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	f.name = name
	f.args = args
	return f.err
}

// newPlayCommand builds a play invocation around a fake synth, since
// the real one shells out to fluidsynth.
func newPlayCommand(t *testing.T, synth *fakeSynth) (*PlayOptions, *cobra.Command, *bytes.Buffer) {
	t.Helper()
	opts := &PlayOptions{
		RootOptions: &RootOptions{Format: "text"},
		Player:      play.NewPlayerWithRunner(synth.run),
	}
	cmd := &cobra.Command{}
	outBuf := &bytes.Buffer{}
	cmd.SetOut(outBuf)
	cmd.SetErr(&bytes.Buffer{})
	addPieceFlags(cmd, &opts.PieceOptions)
	return opts, cmd, outBuf
}

func TestPlayRendersAndInvokesSynth(t *testing.T) {
	source := writeSource(t, "melody.music", "1:1")
	synth := &fakeSynth{}
	opts, cmd, outBuf := newPlayCommand(t, synth)

	err := runPlay(opts, source, cmd)
	require.NoError(t, err)

	assert.Equal(t, "fluidsynth", synth.name)
	midiPath := filepath.Join(filepath.Dir(source), "melody.midi")
	require.NotEmpty(t, synth.args)
	assert.Equal(t, midiPath, synth.args[len(synth.args)-1])
	assert.FileExists(t, midiPath)
	assert.Contains(t, outBuf.String(), "Playing")
}

func TestPlayForcesPitchBendTuning(t *testing.T) {
	source := writeSource(t, "melody.music", "1:1 5/4:1")
	synth := &fakeSynth{}
	opts, cmd, _ := newPlayCommand(t, synth)
	require.NoError(t, cmd.Flags().Set("tuning-method", "scala"))

	err := runPlay(opts, source, cmd)
	require.NoError(t, err)

	// Fluidsynth cannot read Scala files, so none are written.
	assert.NoFileExists(t, filepath.Join(filepath.Dir(source), "melody.scl"))
	assert.FileExists(t, filepath.Join(filepath.Dir(source), "melody.midi"))
}

func TestPlayPropagatesSynthError(t *testing.T) {
	source := writeSource(t, "melody.music", "1:1")
	synth := &fakeSynth{err: errors.New("no audio device")}
	opts, cmd, outBuf := newPlayCommand(t, synth)

	err := runPlay(opts, source, cmd)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, outBuf.String(), "Error [PLAYBACK_ERROR]")
}

func TestPlaySyntaxErrorSkipsSynth(t *testing.T) {
	source := writeSource(t, "bad.music", "1:")
	synth := &fakeSynth{}
	opts, cmd, _ := newPlayCommand(t, synth)

	err := runPlay(opts, source, cmd)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Empty(t, synth.name)
}
