// Package parser turns source text into a parse tree for the fixed
// grammar:
//
//	integer: INT
//	ratio: integer ["/" integer]
//	ratio_product: ratio ("*" ratio)*
//	note: ratio ":" ratio_product [":" ratio]
//	chord: "<" [ratio_product]* ">" ":" ratio_product [":" ratio]
//	atom: note | chord | "(" part ")"
//	mult_expr: [ratio "*"]* atom
//	pow_expr: mult_expr | mult_expr "**" ratio
//	part: pow_expr*
//	music: part (";" part)*
//
// Alphabetic characters and whitespace are insignificant everywhere and
// can be used for labels and comments. Integers are non-negative.
//
// Parsing is a pure function of the input text. Malformed input is
// refused with a SyntaxError carrying the 1-based line and column of the
// offending character or token.
package parser
