package play

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/partch/internal/config"
)

func TestFluidsynthArgs(t *testing.T) {
	cfg := config.Default()
	got := FluidsynthArgs(cfg, "out.midi")
	assert.Equal(t, []string{"-a", "alsa", "-ni", "-r", "44100", "-g", "2", "out.midi"}, got)

	cfg.Soundfont = "/sf2/default.sf2"
	got = FluidsynthArgs(cfg, "out.midi")
	assert.Equal(t, "/sf2/default.sf2", got[len(got)-2])
}

func TestPlayInvokesFluidsynth(t *testing.T) {
	var gotName string
	var gotArgs []string
	player := NewPlayerWithRunner(func(_ context.Context, _, _ io.Writer, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	cfg := config.Default()
	err := player.Play(context.Background(), cfg, "out.midi", io.Discard, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "fluidsynth", gotName)
	assert.Equal(t, FluidsynthArgs(cfg, "out.midi"), gotArgs)
}

func TestPlayQuietUnlessVerbose(t *testing.T) {
	var gotStdout io.Writer
	player := NewPlayerWithRunner(func(_ context.Context, stdout, _ io.Writer, _ string, _ ...string) error {
		gotStdout = stdout
		return nil
	})

	cfg := config.Default()
	buf := &fakeWriter{}
	require.NoError(t, player.Play(context.Background(), cfg, "out.midi", buf, buf))
	assert.Equal(t, io.Discard, gotStdout)

	cfg.Verbose = true
	require.NoError(t, player.Play(context.Background(), cfg, "out.midi", buf, buf))
	assert.Equal(t, buf, gotStdout)
}

func TestPlayPropagatesError(t *testing.T) {
	want := errors.New("no alsa device")
	player := NewPlayerWithRunner(func(context.Context, io.Writer, io.Writer, string, ...string) error {
		return want
	})
	err := player.Play(context.Background(), config.Default(), "out.midi", io.Discard, io.Discard)
	assert.ErrorIs(t, err, want)
}

type fakeWriter struct{}

func (*fakeWriter) Write(p []byte) (int, error) { return len(p), nil }
