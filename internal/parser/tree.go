package parser

import "fmt"

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SyntaxError reports source text that does not match the grammar.
type SyntaxError struct {
	Pos     Position
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Message)
}

// RatioNode is a literal ratio: an integer with an optional denominator.
// "3/2" has Den 2; a bare "3" leaves Den 1 with Explicit false.
type RatioNode struct {
	Num      int64
	Den      int64
	Explicit bool // a denominator was written, possibly zero
	Pos      Position
}

// ProductNode is one or more ratios joined by '*'.
type ProductNode struct {
	Factors []RatioNode
}

// Atom is a sealed interface over the three atom productions: a note, a
// chord, or a parenthesized part.
type Atom interface {
	atom() // sealed
}

// NoteNode is "ratio : ratio_product [: ratio]" - frequency, duration,
// optional volume.
type NoteNode struct {
	Frequency RatioNode
	Duration  ProductNode
	Volume    *RatioNode
}

func (NoteNode) atom() {}

// ChordNode is "< ratio_product* > : ratio_product [: ratio]" - the
// frequencies of the chord's notes plus a shared duration and optional
// volume.
type ChordNode struct {
	Frequencies []ProductNode
	Duration    ProductNode
	Volume      *RatioNode
	Pos         Position
}

func (ChordNode) atom() {}

// GroupNode is a parenthesized sub-part.
type GroupNode struct {
	Part PartNode
}

func (GroupNode) atom() {}

// ExprNode is one pow_expr: leading multiplier ratios distributing into
// an atom, with an optional tempering exponent from '**'.
type ExprNode struct {
	Multipliers []RatioNode
	Atom        Atom
	Divisions   *RatioNode // from "** ratio"; nil when untempered
}

// PartNode is a sequence of expressions played one after another.
type PartNode struct {
	Exprs []ExprNode
}

// Tree is the parse tree for a whole source text: one part per
// ';'-separated section.
type Tree struct {
	Parts []PartNode
}
