package parser

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokSlash     // /
	tokColon     // :
	tokStar      // *
	tokStarStar  // **
	tokLess      // <
	tokGreater   // >
	tokLeftParen // (
	tokRightParen
	tokSemicolon // ;
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokInt:
		return "integer"
	case tokSlash:
		return "'/'"
	case tokColon:
		return "':'"
	case tokStar:
		return "'*'"
	case tokStarStar:
		return "'**'"
	case tokLess:
		return "'<'"
	case tokGreater:
		return "'>'"
	case tokLeftParen:
		return "'('"
	case tokRightParen:
		return "')'"
	case tokSemicolon:
		return "';'"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

// lex scans the whole input up front. Alphabetic characters and
// whitespace are skipped; any other unexpected rune is a SyntaxError.
func lex(input string) ([]token, error) {
	var tokens []token
	line, col := 1, 1
	runes := []rune(input)
	i := 0

	advance := func(r rune) {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	for i < len(runes) {
		r := runes[i]
		pos := Position{Line: line, Column: col}

		switch {
		case unicode.IsSpace(r) || unicode.IsLetter(r):
			advance(r)
			i++
		case r >= '0' && r <= '9':
			start := i
			for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
				advance(runes[i])
				i++
			}
			text := string(runes[start:i])
			if _, err := strconv.ParseInt(text, 10, 64); err != nil {
				return nil, &SyntaxError{Pos: pos, Message: fmt.Sprintf("integer %s out of range", text)}
			}
			tokens = append(tokens, token{kind: tokInt, text: text, pos: pos})
		case r == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				tokens = append(tokens, token{kind: tokStarStar, text: "**", pos: pos})
				advance(r)
				advance(r)
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokStar, text: "*", pos: pos})
				advance(r)
				i++
			}
		case r == '/':
			tokens = append(tokens, token{kind: tokSlash, text: "/", pos: pos})
			advance(r)
			i++
		case r == ':':
			tokens = append(tokens, token{kind: tokColon, text: ":", pos: pos})
			advance(r)
			i++
		case r == '<':
			tokens = append(tokens, token{kind: tokLess, text: "<", pos: pos})
			advance(r)
			i++
		case r == '>':
			tokens = append(tokens, token{kind: tokGreater, text: ">", pos: pos})
			advance(r)
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokLeftParen, text: "(", pos: pos})
			advance(r)
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRightParen, text: ")", pos: pos})
			advance(r)
			i++
		case r == ';':
			tokens = append(tokens, token{kind: tokSemicolon, text: ";", pos: pos})
			advance(r)
			i++
		default:
			return nil, &SyntaxError{Pos: pos, Message: fmt.Sprintf("unexpected character %q", r)}
		}
	}

	tokens = append(tokens, token{kind: tokEOF, pos: Position{Line: line, Column: col}})
	return tokens, nil
}
