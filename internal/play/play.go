// Package play hands rendered MIDI files to an external synth process.
package play

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/roach88/partch/internal/config"
)

// Runner executes one external command, blocking until it exits. Tests
// substitute their own.
type Runner func(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error

func runCommand(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Player invokes fluidsynth on rendered MIDI files.
type Player struct {
	run Runner
}

// NewPlayer returns a Player shelling out to the real fluidsynth.
func NewPlayer() *Player {
	return &Player{run: runCommand}
}

// NewPlayerWithRunner returns a Player using the given runner.
func NewPlayerWithRunner(run Runner) *Player {
	return &Player{run: run}
}

// FluidsynthArgs builds the fluidsynth invocation for one MIDI file.
// Fluidsynth retunes with pitch bends only, so the file must be rendered
// with pitch-bend tuning.
func FluidsynthArgs(cfg config.Config, midiFile string) []string {
	args := []string{
		"-a", "alsa",
		"-ni",
		"-r", strconv.Itoa(cfg.SampleRate),
		"-g", strconv.FormatFloat(cfg.Volume, 'g', -1, 64),
	}
	if cfg.Soundfont != "" {
		args = append(args, cfg.Soundfont)
	}
	return append(args, midiFile)
}

// Play plays the MIDI file with fluidsynth, blocking until playback
// ends. Synth output goes to stdout/stderr only in verbose mode.
func (p *Player) Play(ctx context.Context, cfg config.Config, midiFile string, stdout, stderr io.Writer) error {
	if !cfg.Verbose {
		stdout, stderr = io.Discard, io.Discard
	}
	return p.run(ctx, stdout, stderr, "fluidsynth", FluidsynthArgs(cfg, midiFile)...)
}
