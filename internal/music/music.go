package music

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/partch/internal/ratio"
)

// Music is a sealed interface over the four shapes of the value tree.
// Only Note, Chord, Part, and Piece implement it. Analysis queries in the
// eval package switch exhaustively over these cases.
type Music interface {
	isMusic() // sealed
}

// Element is a sealed interface over the members of a Part: a single Note
// or a Chord. Elements of a part play strictly one after another.
type Element interface {
	Music
	isElement() // sealed
}

// Note is an individual musical note. Frequency, duration, and volume are
// fractions of unspecified basic units: the real frequency is the
// frequency multiplier times a reference frequency f0, the real duration
// is the duration times a basic time unit t0, and volume 1/1 maps to MIDI
// velocity 64.
//
// A rest is a note with zero frequency.
type Note struct {
	// Frequency is the note's frequency multiplier: an exact RatioProduct
	// or, after tempering, a Power of two.
	Frequency ratio.Frequency

	// Duration of the note as a fraction of the basic time unit. Always
	// positive.
	Duration ratio.Ratio

	// Volume of the note relative to the reference volume. Always
	// positive.
	Volume ratio.Ratio

	// EDO, when nonzero, marks the note for tempering into EDO equal
	// divisions of the octave at evaluation time. The marker is carried,
	// not resolved, until eval runs; it never survives evaluation.
	EDO int
}

func (Note) isMusic()   {}
func (Note) isElement() {}

// Chord is an ordered, non-empty set of notes starting together and
// sharing one duration and volume. Order is bottom-to-top and musically
// meaningful; it is preserved for display and interval tables.
type Chord []Note

func (Chord) isMusic()   {}
func (Chord) isElement() {}

// Part is a sequence of notes and chords played one after another.
type Part []Element

func (Part) isMusic() {}

// Piece is a set of parts all starting at time zero and playing
// simultaneously. Part order is irrelevant to evaluation but preserved
// for track and channel assignment.
type Piece []Part

func (Piece) isMusic() {}

// NewNote creates a validated note. Duration and volume must be strictly
// positive; the frequency product must not be negative.
func NewNote(frequency ratio.Frequency, duration, volume ratio.Ratio) (Note, error) {
	if !duration.Positive() {
		return Note{}, newModelError(ErrCodeNonPositiveDuration,
			fmt.Sprintf("note duration %s is not positive", duration))
	}
	if !volume.Positive() {
		return Note{}, newModelError(ErrCodeNonPositiveVolume,
			fmt.Sprintf("note volume %s is not positive", volume))
	}
	if p, ok := frequency.(ratio.RatioProduct); ok && p.Value().Num() < 0 {
		return Note{}, newModelError(ErrCodeNegativeFrequency,
			fmt.Sprintf("note frequency %s is negative", p))
	}
	return Note{Frequency: frequency, Duration: duration, Volume: volume}, nil
}

// IsRest reports whether the note is a rest (zero frequency).
func (n Note) IsRest() bool {
	p, ok := n.Frequency.(ratio.RatioProduct)
	return ok && p.IsZero()
}

// Cents returns the size of the interval from 1/1 up to the note's
// frequency, rounded to three decimal places. NaN for rests.
func (n Note) Cents() float64 {
	f := n.Frequency.Float()
	if f == 0 {
		return math.NaN()
	}
	return math.Round(1200*math.Log2(f)*1000) / 1000
}

// String renders the note for diagnostics, e.g.
// "Note(frequency=5/4, cents=386.314, duration=1)".
func (n Note) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Note(frequency=%s, cents=%.3f, duration=%s", n.Frequency, n.Cents(), n.Duration)
	if !n.Volume.IsOne() {
		fmt.Fprintf(&b, ", volume=%s", n.Volume)
	}
	if n.EDO != 0 {
		fmt.Fprintf(&b, ", edo=%d", n.EDO)
	}
	b.WriteString(")")
	return b.String()
}

// MapNotes applies f to every note in m, returning a new tree of the same
// shape. The input is never modified.
func MapNotes(m Music, f func(Note) Note) Music {
	switch v := m.(type) {
	case Note:
		return f(v)
	case Chord:
		out := make(Chord, len(v))
		for i, n := range v {
			out[i] = f(n)
		}
		return out
	case Part:
		out := make(Part, len(v))
		for i, e := range v {
			out[i] = MapNotes(e, f).(Element)
		}
		return out
	case Piece:
		out := make(Piece, len(v))
		for i, p := range v {
			out[i] = MapNotes(p, f).(Part)
		}
		return out
	default:
		panic(fmt.Sprintf("music: impossible Music case %T", m))
	}
}

// MapNotesErr is MapNotes for transformations that can fail. The first
// error aborts the traversal.
func MapNotesErr(m Music, f func(Note) (Note, error)) (Music, error) {
	switch v := m.(type) {
	case Note:
		return f(v)
	case Chord:
		out := make(Chord, len(v))
		for i, n := range v {
			nn, err := f(n)
			if err != nil {
				return nil, err
			}
			out[i] = nn
		}
		return out, nil
	case Part:
		out := make(Part, len(v))
		for i, e := range v {
			ne, err := MapNotesErr(e, f)
			if err != nil {
				return nil, err
			}
			out[i] = ne.(Element)
		}
		return out, nil
	case Piece:
		out := make(Piece, len(v))
		for i, p := range v {
			np, err := MapNotesErr(p, f)
			if err != nil {
				return nil, err
			}
			out[i] = np.(Part)
		}
		return out, nil
	default:
		panic(fmt.Sprintf("music: impossible Music case %T", m))
	}
}

// Sprint pretty-prints a music tree with two-space indentation, one note
// per line. Chords and pieces print in parentheses, parts in brackets.
func Sprint(m Music) string {
	var b strings.Builder
	sprint(&b, m, 0)
	return b.String()
}

func sprint(b *strings.Builder, m Music, level int) {
	indent := strings.Repeat("  ", level)
	switch v := m.(type) {
	case Note:
		fmt.Fprintf(b, "%s%s,\n", indent, v)
	case Chord:
		fmt.Fprintf(b, "%s(\n", indent)
		for _, n := range v {
			sprint(b, n, level+1)
		}
		fmt.Fprintf(b, "%s),\n", indent)
	case Part:
		fmt.Fprintf(b, "%s[\n", indent)
		for _, e := range v {
			sprint(b, e, level+1)
		}
		fmt.Fprintf(b, "%s],\n", indent)
	case Piece:
		fmt.Fprintf(b, "%s(\n", indent)
		for _, p := range v {
			sprint(b, p, level+1)
		}
		fmt.Fprintf(b, "%s),\n", indent)
	}
}
