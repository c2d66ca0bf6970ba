package eval

import (
	"math"

	"github.com/roach88/partch/internal/music"
	"github.com/roach88/partch/internal/ratio"
)

// TemperNote approximates a note's frequency in a system of edo equal
// divisions of the octave, replacing its exact ratio product with a
// power of two. Rests and already-tempered notes at the same division
// count pass through unchanged in value.
//
// Each factor of a ratio product is tempered separately: <1 5/4 11/8>
// tempers in 12EDO to steps 0, 4, 6, and 81/80*<1 5/4 11/8> keeps those
// same intervals instead of shifting the 11/8 to 5 steps. Ties in the
// step rounding go to the nearest even step.
func TemperNote(n music.Note, edo int) (music.Note, error) {
	if edo <= 0 {
		return music.Note{}, evalErrorf(ErrCodeBadDivisions,
			"cannot temper into %d divisions of the octave", edo)
	}
	if n.IsRest() {
		n.EDO = 0
		return n, nil
	}

	var steps int64
	switch f := n.Frequency.(type) {
	case ratio.RatioProduct:
		for _, factor := range f.Factors() {
			steps += int64(math.RoundToEven(float64(edo) * math.Log2(factor.Float())))
		}
	case ratio.Power:
		steps = int64(math.RoundToEven(float64(edo) * f.Exponent().Float()))
	}

	n.Frequency = ratio.NewPower(steps, int64(edo))
	n.EDO = 0
	return n, nil
}

// Temper returns a new piece with every note tempered into edo equal
// divisions of the octave. Pending tempering markers are subsumed.
func Temper(piece music.Piece, edo int) (music.Piece, error) {
	out, err := music.MapNotesErr(piece, func(n music.Note) (music.Note, error) {
		return TemperNote(n, edo)
	})
	if err != nil {
		return nil, err
	}
	return out.(music.Piece), nil
}

// ResolveMarkers tempers every note carrying an EDO marker, leaving
// unmarked notes exact.
func ResolveMarkers(piece music.Piece) (music.Piece, error) {
	out, err := music.MapNotesErr(piece, func(n music.Note) (music.Note, error) {
		if n.EDO == 0 {
			return n, nil
		}
		return TemperNote(n, n.EDO)
	})
	if err != nil {
		return nil, err
	}
	return out.(music.Piece), nil
}
