package parser

import "fmt"

// Parse turns source text into a parse tree, or fails with a SyntaxError
// locating the first offending character or token.
func Parse(input string) (*Tree, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	tree, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	return tree, nil
}

type parser struct {
	tokens []token
	i      int
}

func (p *parser) peek() token {
	return p.tokens[p.i]
}

func (p *parser) next() token {
	t := p.tokens[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return token{}, p.errf(t, "expected %s, got %s", kind, t.kind)
	}
	return p.next(), nil
}

func (p *parser) errf(t token, format string, args ...any) error {
	return &SyntaxError{Pos: t.pos, Message: fmt.Sprintf(format, args...)}
}

// music: part (";" part)*
func (p *parser) parseTree() (*Tree, error) {
	tree := &Tree{}
	part, err := p.parsePart()
	if err != nil {
		return nil, err
	}
	tree.Parts = append(tree.Parts, part)

	for p.peek().kind == tokSemicolon {
		p.next()
		part, err := p.parsePart()
		if err != nil {
			return nil, err
		}
		tree.Parts = append(tree.Parts, part)
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errf(t, "unexpected %s", t.kind)
	}
	return tree, nil
}

// part: pow_expr*
func (p *parser) parsePart() (PartNode, error) {
	var part PartNode
	for {
		switch p.peek().kind {
		case tokInt, tokLess, tokLeftParen:
			expr, err := p.parseExpr()
			if err != nil {
				return PartNode{}, err
			}
			part.Exprs = append(part.Exprs, expr)
		default:
			return part, nil
		}
	}
}

// pow_expr: mult_expr | mult_expr "**" ratio
func (p *parser) parseExpr() (ExprNode, error) {
	expr, err := p.parseMultExpr()
	if err != nil {
		return ExprNode{}, err
	}
	if p.peek().kind == tokStarStar {
		p.next()
		r, err := p.parseRatio()
		if err != nil {
			return ExprNode{}, err
		}
		expr.Divisions = &r
	}
	return expr, nil
}

// mult_expr: [ratio "*"]* atom
//
// A leading ratio is a multiplier when followed by '*' and the start of an
// atom's note when followed by ':'.
func (p *parser) parseMultExpr() (ExprNode, error) {
	var expr ExprNode
	for {
		switch t := p.peek(); t.kind {
		case tokInt:
			r, err := p.parseRatio()
			if err != nil {
				return ExprNode{}, err
			}
			switch t := p.peek(); t.kind {
			case tokStar:
				p.next()
				expr.Multipliers = append(expr.Multipliers, r)
			case tokColon:
				note, err := p.parseNoteBody(r)
				if err != nil {
					return ExprNode{}, err
				}
				expr.Atom = note
				return expr, nil
			default:
				return ExprNode{}, p.errf(t, "expected '*' or ':' after ratio, got %s", t.kind)
			}
		case tokLess:
			chord, err := p.parseChord()
			if err != nil {
				return ExprNode{}, err
			}
			expr.Atom = chord
			return expr, nil
		case tokLeftParen:
			p.next()
			part, err := p.parsePart()
			if err != nil {
				return ExprNode{}, err
			}
			if _, err := p.expect(tokRightParen); err != nil {
				return ExprNode{}, err
			}
			expr.Atom = GroupNode{Part: part}
			return expr, nil
		default:
			return ExprNode{}, p.errf(t, "expected note, chord, or '(', got %s", t.kind)
		}
	}
}

// note: ratio ":" ratio_product [":" ratio], with the leading ratio
// already consumed by the caller.
func (p *parser) parseNoteBody(frequency RatioNode) (NoteNode, error) {
	if _, err := p.expect(tokColon); err != nil {
		return NoteNode{}, err
	}
	duration, err := p.parseProduct()
	if err != nil {
		return NoteNode{}, err
	}
	volume, err := p.parseOptionalVolume()
	if err != nil {
		return NoteNode{}, err
	}
	return NoteNode{Frequency: frequency, Duration: duration, Volume: volume}, nil
}

// chord: "<" [ratio_product]* ">" ":" ratio_product [":" ratio]
func (p *parser) parseChord() (ChordNode, error) {
	open, err := p.expect(tokLess)
	if err != nil {
		return ChordNode{}, err
	}
	chord := ChordNode{Pos: open.pos}
	for p.peek().kind == tokInt {
		product, err := p.parseProduct()
		if err != nil {
			return ChordNode{}, err
		}
		chord.Frequencies = append(chord.Frequencies, product)
	}
	if _, err := p.expect(tokGreater); err != nil {
		return ChordNode{}, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return ChordNode{}, err
	}
	chord.Duration, err = p.parseProduct()
	if err != nil {
		return ChordNode{}, err
	}
	chord.Volume, err = p.parseOptionalVolume()
	if err != nil {
		return ChordNode{}, err
	}
	return chord, nil
}

func (p *parser) parseOptionalVolume() (*RatioNode, error) {
	if p.peek().kind != tokColon {
		return nil, nil
	}
	p.next()
	r, err := p.parseRatio()
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ratio_product: ratio ("*" ratio)*
func (p *parser) parseProduct() (ProductNode, error) {
	r, err := p.parseRatio()
	if err != nil {
		return ProductNode{}, err
	}
	product := ProductNode{Factors: []RatioNode{r}}
	for p.peek().kind == tokStar {
		p.next()
		r, err := p.parseRatio()
		if err != nil {
			return ProductNode{}, err
		}
		product.Factors = append(product.Factors, r)
	}
	return product, nil
}

// ratio: integer ["/" integer]
func (p *parser) parseRatio() (RatioNode, error) {
	t, err := p.expect(tokInt)
	if err != nil {
		return RatioNode{}, err
	}
	node := RatioNode{Num: mustInt(t.text), Den: 1, Pos: t.pos}
	if p.peek().kind == tokSlash {
		p.next()
		d, err := p.expect(tokInt)
		if err != nil {
			return RatioNode{}, err
		}
		node.Den = mustInt(d.text)
		node.Explicit = true
	}
	return node, nil
}

// mustInt converts lexed digits; range was checked by the lexer.
func mustInt(text string) int64 {
	var n int64
	for _, c := range text {
		n = n*10 + int64(c-'0')
	}
	return n
}
