// Package transform converts a parse tree into the music value tree.
//
// The transformation is a deterministic structural recursion with one
// rule per grammar production. Invalid values (zero denominators, empty
// chords, zero durations) are refused here with a ModelError; nothing
// invalid reaches evaluation.
package transform

import (
	"github.com/roach88/partch/internal/music"
	"github.com/roach88/partch/internal/parser"
	"github.com/roach88/partch/internal/ratio"
)

// Piece converts a parse tree into a music.Piece.
func Piece(tree *parser.Tree) (music.Piece, error) {
	piece := make(music.Piece, len(tree.Parts))
	for i, part := range tree.Parts {
		p, err := transformPart(part)
		if err != nil {
			return nil, err
		}
		piece[i] = p
	}
	return piece, nil
}

// Parse parses source text and transforms it in one step.
func Parse(input string) (music.Piece, error) {
	tree, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	return Piece(tree)
}

func transformPart(node parser.PartNode) (music.Part, error) {
	var part music.Part
	for _, expr := range node.Exprs {
		elements, err := transformExpr(expr)
		if err != nil {
			return nil, err
		}
		// A parenthesized group flattens into the enclosing part.
		part = append(part, elements...)
	}
	return part, nil
}

func transformExpr(expr parser.ExprNode) ([]music.Element, error) {
	elements, err := transformAtom(expr.Atom)
	if err != nil {
		return nil, err
	}

	if len(expr.Multipliers) > 0 {
		multiplier, err := transformFactors(expr.Multipliers)
		if err != nil {
			return nil, err
		}
		// One traversal distributes the whole multiplier chain into every
		// note of the atom, keeping the factors visible on each frequency.
		for i, e := range elements {
			elements[i] = music.MapNotes(e, func(n music.Note) music.Note {
				product := n.Frequency.(ratio.RatioProduct)
				n.Frequency = multiplier.Mul(product)
				return n
			}).(music.Element)
		}
	}

	if expr.Divisions != nil {
		divisions, err := temperingDivisions(*expr.Divisions)
		if err != nil {
			return nil, err
		}
		for i, e := range elements {
			elements[i] = music.MapNotes(e, func(n music.Note) music.Note {
				// Inner markers bind tighter than enclosing ones.
				if n.EDO == 0 {
					n.EDO = divisions
				}
				return n
			}).(music.Element)
		}
	}

	return elements, nil
}

func transformAtom(atom parser.Atom) ([]music.Element, error) {
	switch a := atom.(type) {
	case parser.NoteNode:
		note, err := transformNote(a)
		if err != nil {
			return nil, err
		}
		return []music.Element{note}, nil
	case parser.ChordNode:
		chord, err := transformChord(a)
		if err != nil {
			return nil, err
		}
		return []music.Element{chord}, nil
	case parser.GroupNode:
		part, err := transformPart(a.Part)
		if err != nil {
			return nil, err
		}
		return part, nil
	default:
		return nil, music.NewModelError(music.ErrCodeEmptyChord, "impossible atom %T", atom)
	}
}

func transformNote(node parser.NoteNode) (music.Note, error) {
	frequency, err := transformRatio(node.Frequency)
	if err != nil {
		return music.Note{}, err
	}
	duration, err := transformProduct(node.Duration)
	if err != nil {
		return music.Note{}, err
	}
	volume, err := transformVolume(node.Volume)
	if err != nil {
		return music.Note{}, err
	}
	return music.NewNote(ratio.ProductOf(frequency), duration.Value(), volume)
}

func transformChord(node parser.ChordNode) (music.Chord, error) {
	if len(node.Frequencies) == 0 {
		return nil, music.NewModelError(music.ErrCodeEmptyChord,
			"chord at %s has no notes", node.Pos)
	}
	duration, err := transformProduct(node.Duration)
	if err != nil {
		return nil, err
	}
	volume, err := transformVolume(node.Volume)
	if err != nil {
		return nil, err
	}
	chord := make(music.Chord, len(node.Frequencies))
	for i, f := range node.Frequencies {
		frequency, err := transformProduct(f)
		if err != nil {
			return nil, err
		}
		note, err := music.NewNote(frequency, duration.Value(), volume)
		if err != nil {
			return nil, err
		}
		chord[i] = note
	}
	return chord, nil
}

func transformVolume(node *parser.RatioNode) (ratio.Ratio, error) {
	if node == nil {
		return ratio.One(), nil
	}
	return transformRatio(*node)
}

func transformProduct(node parser.ProductNode) (ratio.RatioProduct, error) {
	return transformFactors(node.Factors)
}

func transformFactors(nodes []parser.RatioNode) (ratio.RatioProduct, error) {
	factors := make([]ratio.Ratio, len(nodes))
	for i, n := range nodes {
		r, err := transformRatio(n)
		if err != nil {
			return ratio.RatioProduct{}, err
		}
		factors[i] = r
	}
	product, err := ratio.Product(factors...)
	if err != nil {
		return ratio.RatioProduct{}, music.NewModelError(music.ErrCodeEmptyChord,
			"empty ratio product")
	}
	return product, nil
}

func transformRatio(node parser.RatioNode) (ratio.Ratio, error) {
	r, err := ratio.New(node.Num, node.Den)
	if err != nil {
		return ratio.Ratio{}, music.NewModelError(music.ErrCodeZeroDenominator,
			"ratio %d/%d at %s has a zero denominator", node.Num, node.Den, node.Pos)
	}
	return r, nil
}

// temperingDivisions checks that a '**' operand is a positive whole
// number of octave divisions.
func temperingDivisions(node parser.RatioNode) (int, error) {
	r, err := transformRatio(node)
	if err != nil {
		return 0, err
	}
	if !r.IsInteger() || !r.Positive() {
		return 0, music.NewModelError(music.ErrCodeBadDivisions,
			"tempering divisions %s at %s must be a positive integer", r, node.Pos)
	}
	return int(r.Num()), nil
}
