package scala

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/partch/internal/eval"
	"github.com/roach88/partch/internal/music"
	"github.com/roach88/partch/internal/ratio"
)

var (
	two  = ratio.FromInt(2)
	half = mustRatio(1, 2)
)

func mustRatio(num, den int64) ratio.Ratio {
	r, err := ratio.New(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// OctaveReduce maps a positive ratio into [1, 2) by shifting it whole
// octaves.
func OctaveReduce(r ratio.Ratio) ratio.Ratio {
	for r.Cmp(two) >= 0 {
		r = r.Mul(half)
	}
	for r.Cmp(ratio.One()) < 0 {
		r = r.Mul(two)
	}
	return r
}

// BuildScale collects every sounding frequency in m, reduces each into
// the octave above the reference, and returns the distinct pitch classes
// in ascending order. Tempered frequencies have no exact ratio and are
// refused.
func BuildScale(m music.Music) ([]ratio.Ratio, error) {
	frequencies, err := rationalFrequencies(m)
	if err != nil {
		return nil, err
	}
	var scale []ratio.Ratio
	for _, f := range frequencies {
		reduced := OctaveReduce(f)
		if !slices.Contains(scale, reduced) {
			scale = append(scale, reduced)
		}
	}
	slices.SortFunc(scale, ratio.Ratio.Cmp)
	return scale, nil
}

// rationalFrequencies returns the distinct sounding frequencies of m as
// exact ratios, ascending. Pending tempering markers are resolved first
// so marked notes surface as non-rational instead of leaking their
// untempered ratios into the scale.
func rationalFrequencies(m music.Music) ([]ratio.Ratio, error) {
	resolved, err := music.MapNotesErr(m, func(n music.Note) (music.Note, error) {
		if n.EDO == 0 {
			return n, nil
		}
		return eval.TemperNote(n, n.EDO)
	})
	if err != nil {
		return nil, err
	}
	set := eval.FrequencySet(resolved)
	out := make([]ratio.Ratio, 0, len(set))
	for _, f := range set {
		p, ok := f.(ratio.RatioProduct)
		if !ok {
			return nil, tuningErrorf(ErrCodeNonRationalFrequency,
				"cannot express %s as a scale ratio", f)
		}
		out = append(out, p.Value())
	}
	return out, nil
}

// FormatScl renders a .scl scale description: a description line, the
// degree count, a comment separator, then one degree per line. Every
// line of content starts with a space as the Scala tools write them.
func FormatScl(name string, degrees []ratio.Ratio) string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s\n %d\n!\n", name, len(degrees))
	for _, d := range degrees {
		fmt.Fprintf(&b, " %s\n", d)
	}
	return b.String()
}

// ScaleDocument builds the .scl text for the octave-reduced scale of m.
// The unison is implicit in the Scala format, so when the unison pitch
// class is present it is written as the closing octave 2 instead.
func ScaleDocument(m music.Music, name string) (string, error) {
	scale, err := BuildScale(m)
	if err != nil {
		return "", err
	}
	degrees := make([]ratio.Ratio, 0, len(scale))
	unison := false
	for _, d := range scale {
		if d.IsOne() {
			unison = true
			continue
		}
		degrees = append(degrees, d)
	}
	if unison {
		degrees = append(degrees, two)
	}
	return FormatScl(name, degrees), nil
}
