package scala

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/partch/internal/music"
	"github.com/roach88/partch/internal/ratio"
)

// maxMappedNotes is the number of MIDI note numbers available for
// keyboard mapping entries.
const maxMappedNotes = 128

// Tuning holds the Scala sidecar files for one rendered piece along with
// the frequency-to-note-number mapping the encoder uses.
type Tuning struct {
	// Scl is the .scl scale description text.
	Scl string

	// Kbm is the .kbm keyboard mapping text.
	Kbm string

	frequencies []ratio.Ratio
	pitches     map[string]int
}

// ForMidi builds the Scala tuning for m: each distinct sounding
// frequency gets its own MIDI note number, lowest first, and the .scl
// and .kbm texts retune those note numbers to the exact frequencies.
// The whole piece shares one fixed scale, so two just pitches may never
// collide on a note number and at most 128 distinct frequencies fit.
func ForMidi(m music.Music, f0 float64, name string) (*Tuning, error) {
	frequencies, err := rationalFrequencies(m)
	if err != nil {
		return nil, err
	}
	if len(frequencies) > maxMappedNotes {
		return nil, tuningErrorf(ErrCodeTooManyFrequencies,
			"%d distinct frequencies exceed the %d mappable MIDI notes",
			len(frequencies), maxMappedNotes)
	}

	t := &Tuning{
		frequencies: frequencies,
		pitches:     make(map[string]int, len(frequencies)),
	}
	for i, f := range frequencies {
		t.pitches[f.String()] = i
	}

	// Degrees are intervals from the lowest frequency. The unison is
	// implicit, so a piece with a single pitch still needs one degree
	// line to give the mapping a scale to index.
	var degrees []ratio.Ratio
	if len(frequencies) > 0 {
		lowest := frequencies[0]
		inverse, err := lowest.Inverse()
		if err != nil {
			return nil, err
		}
		for _, f := range frequencies[1:] {
			degrees = append(degrees, f.Mul(inverse))
		}
		if len(degrees) == 0 {
			degrees = []ratio.Ratio{ratio.One()}
		}
		t.Kbm = formatKbm(len(frequencies), f0*lowest.Float())
	} else {
		t.Kbm = formatKbm(0, f0)
	}
	t.Scl = FormatScl(name, degrees)
	return t, nil
}

// Pitch returns the MIDI note number mapped to frequency f.
func (t *Tuning) Pitch(f ratio.Frequency) (int, bool) {
	p, ok := t.pitches[f.Canonical()]
	return p, ok
}

// Size returns the number of mapped frequencies.
func (t *Tuning) Size() int {
	return len(t.frequencies)
}

// formatKbm renders a .kbm keyboard mapping: map size, first and last
// retuned note numbers, middle note, reference note, reference frequency
// in Hz, formal octave degree, then one scale degree per mapped note.
func formatKbm(size int, referenceHz float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n0\n%d\n0\n0\n%s\n0\n! Mapping\n",
		size, size-1, floatString(referenceHz))
	for i := range size {
		fmt.Fprintf(&b, "%d\n", i)
	}
	return b.String()
}

// floatString formats x with a decimal point even when it is integral,
// the way Scala keyboard mapping files carry reference frequencies.
func floatString(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
