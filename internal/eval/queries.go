package eval

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/roach88/partch/internal/music"
	"github.com/roach88/partch/internal/ratio"
)

// TotalDuration returns the total duration of m in basic time units.
// Elements of a part play sequentially, so their durations add; parts
// (and the notes of a chord) play in parallel, so the longest wins.
func TotalDuration(m music.Music) ratio.Ratio {
	switch v := m.(type) {
	case music.Note:
		return v.Duration
	case music.Chord:
		longest := ratio.Zero()
		for _, n := range v {
			if n.Duration.Cmp(longest) > 0 {
				longest = n.Duration
			}
		}
		return longest
	case music.Part:
		total := ratio.Zero()
		for _, e := range v {
			total = total.Add(TotalDuration(e))
		}
		return total
	case music.Piece:
		longest := ratio.Zero()
		for _, p := range v {
			if d := TotalDuration(p); d.Cmp(longest) > 0 {
				longest = d
			}
		}
		return longest
	default:
		panic(fmt.Sprintf("eval: impossible Music case %T", m))
	}
}

// Frequencies yields every frequency in m in depth-first, left-to-right
// order, duplicates included. Rests carry no frequency and are skipped.
// The sequence is restartable: ranging again replays it from the start.
func Frequencies(m music.Music) iter.Seq[ratio.Frequency] {
	return func(yield func(ratio.Frequency) bool) {
		walkFrequencies(m, yield)
	}
}

func walkFrequencies(m music.Music, yield func(ratio.Frequency) bool) bool {
	switch v := m.(type) {
	case music.Note:
		if v.IsRest() {
			return true
		}
		return yield(v.Frequency)
	case music.Chord:
		for _, n := range v {
			if !walkFrequencies(n, yield) {
				return false
			}
		}
	case music.Part:
		for _, e := range v {
			if !walkFrequencies(e, yield) {
				return false
			}
		}
	case music.Piece:
		for _, p := range v {
			if !walkFrequencies(p, yield) {
				return false
			}
		}
	}
	return true
}

// FrequencySet returns the distinct frequencies in m sorted from lowest
// to highest. Products reduce to their value, so 4/3*5/4 and 5/3 are one
// entry; exact and tempered frequencies of equal value stay distinct.
func FrequencySet(m music.Music) []ratio.Frequency {
	seen := make(map[string]bool)
	var out []ratio.Frequency
	for f := range Frequencies(m) {
		f = reduceFrequency(f)
		key := f.Canonical()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b ratio.Frequency) int {
		if c := cmp.Compare(a.Float(), b.Float()); c != 0 {
			return c
		}
		return cmp.Compare(a.Canonical(), b.Canonical())
	})
	return out
}

// reduceFrequency collapses a product to its single-factor reduced value.
func reduceFrequency(f ratio.Frequency) ratio.Frequency {
	if p, ok := f.(ratio.RatioProduct); ok {
		return ratio.ProductOf(p.Value())
	}
	return f
}

// Lowest returns the minimum frequency in m. The second result is false
// when m contains no sounding notes.
func Lowest(m music.Music) (ratio.Frequency, bool) {
	var low ratio.Frequency
	for f := range Frequencies(m) {
		if low == nil || f.Float() < low.Float() {
			low = f
		}
	}
	return low, low != nil
}

// Highest returns the maximum frequency in m. The second result is false
// when m contains no sounding notes.
func Highest(m music.Music) (ratio.Frequency, bool) {
	var high ratio.Frequency
	for f := range Frequencies(m) {
		if high == nil || f.Float() > high.Float() {
			high = f
		}
	}
	return high, high != nil
}

// Voices returns the number of simultaneous notes m needs: chords sound
// all their notes at once, parts one element at a time, and a piece
// sounds all its parts together. Drives MIDI channel allocation.
func Voices(m music.Music) int {
	switch v := m.(type) {
	case music.Note:
		return 1
	case music.Chord:
		return len(v)
	case music.Part:
		most := 0
		for _, e := range v {
			if h := Voices(e); h > most {
				most = h
			}
		}
		return most
	case music.Piece:
		total := 0
		for _, p := range v {
			total += Voices(p)
		}
		return total
	default:
		panic(fmt.Sprintf("eval: impossible Music case %T", m))
	}
}

// IntervalTable returns the N x N table of intervals between the chord's
// notes: table[i][j] is the ratio multiplying note i's frequency to
// reach note j's. The diagonal is 1 and table[i][j]*table[j][i] == 1.
// Only exact chords have rational interval tables; tempered or resting
// notes are refused.
func IntervalTable(chord music.Chord) ([][]ratio.Ratio, error) {
	values := make([]ratio.Ratio, len(chord))
	for i, n := range chord {
		p, ok := n.Frequency.(ratio.RatioProduct)
		if !ok || p.IsZero() {
			return nil, evalErrorf(ErrCodeNonRationalInterval,
				"no rational interval from %s", n.Frequency)
		}
		values[i] = p.Value()
	}
	return RatioTable(values)
}

// RatioTable builds the interval table over a list of exact frequencies:
// table[i][j] = frequencies[j] / frequencies[i].
func RatioTable(frequencies []ratio.Ratio) ([][]ratio.Ratio, error) {
	table := make([][]ratio.Ratio, len(frequencies))
	for i, from := range frequencies {
		table[i] = make([]ratio.Ratio, len(frequencies))
		for j, to := range frequencies {
			interval, err := to.Div(from)
			if err != nil {
				return nil, evalErrorf(ErrCodeNonRationalInterval,
					"no interval from zero frequency")
			}
			table[i][j] = interval
		}
	}
	return table, nil
}
