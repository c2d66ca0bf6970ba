package eval

import (
	"fmt"
	"math"

	"github.com/roach88/partch/internal/music"
	"github.com/roach88/partch/internal/ratio"
)

// Note is a fully-resolved note: a concrete frequency in Hz alongside
// the exact values it came from.
type Note struct {
	// Hz is the resolved frequency: the reference frequency times the
	// note's frequency multiplier. Zero for rests.
	Hz float64

	// Cents is the interval from the 1/1 reference up to this note,
	// rounded to three decimals. NaN for rests.
	Cents float64

	// Frequency is the resolved, marker-free frequency multiplier.
	Frequency ratio.Frequency

	// Duration and Volume carry over from the source note, still exact.
	Duration ratio.Ratio
	Volume   ratio.Ratio
}

// IsRest reports whether the resolved note is a rest.
func (n Note) IsRest() bool {
	return n.Hz == 0
}

// Chord is a resolved chord; note order is preserved bottom-to-top.
type Chord []Note

// Element is a sealed interface over resolved part members.
type Element interface {
	isElement() // sealed
}

func (Note) isElement()  {}
func (Chord) isElement() {}

// Part is a resolved sequence of notes and chords.
type Part []Element

// Piece is a resolved piece: the evaluator's output and the encoder's
// input.
type Piece []Part

// Evaluate resolves every frequency in the piece against the reference
// frequency f0 (Hz for the ratio 1/1). Tempering markers are applied
// first; the result carries no markers and only finite frequencies.
func Evaluate(piece music.Piece, f0 float64) (Piece, error) {
	if f0 <= 0 || math.IsInf(f0, 0) || math.IsNaN(f0) {
		return nil, evalErrorf(ErrCodeBadReference,
			"reference frequency %v is not finite and positive", f0)
	}

	resolved, err := ResolveMarkers(piece)
	if err != nil {
		return nil, err
	}

	out := make(Piece, len(resolved))
	for i, part := range resolved {
		p := make(Part, len(part))
		for j, e := range part {
			switch v := e.(type) {
			case music.Note:
				n, err := evaluateNote(v, f0)
				if err != nil {
					return nil, err
				}
				p[j] = n
			case music.Chord:
				c := make(Chord, len(v))
				for k, cn := range v {
					n, err := evaluateNote(cn, f0)
					if err != nil {
						return nil, err
					}
					c[k] = n
				}
				p[j] = c
			}
		}
		out[i] = p
	}
	return out, nil
}

func evaluateNote(n music.Note, f0 float64) (Note, error) {
	if n.EDO != 0 {
		return Note{}, evalErrorf(ErrCodeUnresolvedMarker,
			"tempering marker for %d divisions survived resolution on %s", n.EDO, n)
	}
	multiplier := n.Frequency.Float()
	hz := multiplier * f0
	if math.IsInf(hz, 0) || math.IsNaN(hz) || hz < 0 {
		return Note{}, evalErrorf(ErrCodeNonFiniteFrequency,
			"frequency %s does not resolve to a finite value at reference %v Hz", n.Frequency, f0)
	}
	return Note{
		Hz:        hz,
		Cents:     n.Cents(),
		Frequency: n.Frequency,
		Duration:  n.Duration,
		Volume:    n.Volume,
	}, nil
}

// FormatIntervalTable renders the interval table over the distinct
// frequencies of m, lowest first, with row and column headers:
//
//	         1  7/6  4/3
//	     ---------------
//	  1  |   1  7/6  4/3
//	7/6  | 6/7    1  8/7
//	4/3  | 3/4  7/8    1
//
// Returns the empty string when m has no sounding notes or a
// non-rational frequency.
func FormatIntervalTable(m music.Music) string {
	set := FrequencySet(m)
	frequencies := make([]ratio.Ratio, 0, len(set))
	for _, f := range set {
		p, ok := f.(ratio.RatioProduct)
		if !ok {
			return ""
		}
		frequencies = append(frequencies, p.Value())
	}
	if len(frequencies) == 0 {
		return ""
	}
	table, err := RatioTable(frequencies)
	if err != nil {
		return ""
	}

	width := 0
	for _, f := range frequencies {
		width = max(width, len(f.String()))
	}
	for _, row := range table {
		for _, x := range row {
			width = max(width, len(x.String()))
		}
	}

	const separator = "  "
	const border = "  | "
	header := ""
	for i, f := range frequencies {
		if i > 0 {
			header += separator
		}
		header += fmt.Sprintf("%*s", width, f)
	}

	var b []byte
	pad := width + len(border)
	b = fmt.Appendf(b, "\n%*s%s\n", pad, "", header)
	b = fmt.Appendf(b, "%*s%s\n", pad-2, "", dashes(len(header)+2))
	for i, row := range table {
		b = fmt.Appendf(b, "%*s%s", width, frequencies[i], border)
		for j, x := range row {
			if j > 0 {
				b = append(b, separator...)
			}
			b = fmt.Appendf(b, "%*s", width, x)
		}
		b = append(b, '\n')
	}
	b = append(b, '\n')
	return string(b)
}

func dashes(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = '-'
	}
	return string(out)
}
