// Package config loads playback configuration from YAML.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/partch/internal/midi"
)

// PartSettings configures one part.
type PartSettings struct {
	// Program is the 1-based General MIDI program for this part, used
	// with fluidsynth to pick an instrument from the soundfont. Zero
	// means none.
	Program int `yaml:"program,omitempty"`

	// Volume is the part's volume. Zero means synth default.
	Volume float64 `yaml:"volume,omitempty"`

	// Panning is the part's position in the stereo image, -1 (left)
	// to 1 (right).
	Panning *float64 `yaml:"panning,omitempty"`
}

// Config controls rendering and playback.
type Config struct {
	// TimeUnit is the length of one beat in seconds. A note of
	// duration 1 sounds for this long.
	TimeUnit float64 `yaml:"t"`

	// ReferenceFrequency is the frequency of the ratio 1/1 in Hz.
	ReferenceFrequency float64 `yaml:"f"`

	// TuningMethod selects how exact frequencies reach the synth:
	// pitch_bend or scala.
	TuningMethod midi.TuningMethod `yaml:"tuning_method"`

	// PitchBendRange is the number of semitones a full-scale pitch
	// bend spans.
	PitchBendRange int `yaml:"pitch_bend_range"`

	// EDO, when nonzero, tempers all music into this many equal
	// divisions of the octave.
	EDO int `yaml:"edo,omitempty"`

	// Volume is the overall playback gain, 0 to 10.
	Volume float64 `yaml:"volume"`

	// SampleRate is the audio sample rate in Hz.
	SampleRate int `yaml:"sample_rate"`

	// Soundfont is the soundfont file for fluidsynth. Empty uses the
	// synth's default.
	Soundfont string `yaml:"soundfont,omitempty"`

	// Verbose shows subprocess output during playback.
	Verbose bool `yaml:"verbose"`

	// Parts holds per-part settings, in source part order. Parts
	// beyond the last entry reuse it.
	Parts []PartSettings `yaml:"parts,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		TimeUnit:           0.5,
		ReferenceFrequency: 440,
		TuningMethod:       midi.TuningPitchBend,
		PitchBendRange:     midi.DefaultPitchBendRange,
		Volume:             2,
		SampleRate:         44100,
	}
}

// Load reads a YAML config file over the defaults. Unknown fields are
// rejected so typos fail loudly.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if home, err := os.UserHomeDir(); err == nil {
		if rest, ok := strings.CutPrefix(cfg.Soundfont, "~/"); ok {
			cfg.Soundfont = filepath.Join(home, rest)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.TimeUnit <= 0 {
		return fmt.Errorf("t must be positive, got %v", c.TimeUnit)
	}
	if c.ReferenceFrequency <= 0 {
		return fmt.Errorf("f must be positive, got %v", c.ReferenceFrequency)
	}
	switch c.TuningMethod {
	case midi.TuningPitchBend, midi.TuningScala:
	default:
		return fmt.Errorf("unknown tuning_method %q", c.TuningMethod)
	}
	if c.PitchBendRange <= 0 {
		return fmt.Errorf("pitch_bend_range must be positive, got %d", c.PitchBendRange)
	}
	if c.EDO < 0 {
		return fmt.Errorf("edo must be positive, got %d", c.EDO)
	}
	if c.Volume < 0 || c.Volume > 10 {
		return fmt.Errorf("volume must be between 0 and 10, got %v", c.Volume)
	}
	if c.SampleRate < 8000 || c.SampleRate > 96000 {
		return fmt.Errorf("sample_rate must be between 8000 and 96000, got %d", c.SampleRate)
	}
	for i, p := range c.Parts {
		if p.Program < 0 || p.Program > 128 {
			return fmt.Errorf("parts[%d].program must be between 1 and 128, got %d", i, p.Program)
		}
		if p.Panning != nil && (*p.Panning < -1 || *p.Panning > 1) {
			return fmt.Errorf("parts[%d].panning must be between -1 and 1, got %v", i, *p.Panning)
		}
	}
	return nil
}

// Programs returns the per-part MIDI programs, zero for parts with none
// configured.
func (c Config) Programs() []int {
	if len(c.Parts) == 0 {
		return nil
	}
	programs := make([]int, len(c.Parts))
	for i, p := range c.Parts {
		programs[i] = p.Program
	}
	return programs
}

// EncodeOptions bridges the config to the MIDI encoder. name labels the
// Scala scale when Scala tuning is selected.
func (c Config) EncodeOptions(name string) midi.Options {
	return midi.Options{
		TimeUnit:           c.TimeUnit,
		ReferenceFrequency: c.ReferenceFrequency,
		Tuning:             c.TuningMethod,
		PitchBendRange:     c.PitchBendRange,
		Programs:           c.Programs(),
		Name:               name,
	}
}
