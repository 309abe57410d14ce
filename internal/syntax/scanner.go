package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

type tokKind uint8

const (
	tokEOL tokKind = iota
	tokIdent
	tokRef
	tokInt
	tokFloat
	tokComma
	tokEq
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
)

func (k tokKind) String() string {
	switch k {
	case tokEOL:
		return "end of line"
	case tokIdent:
		return "identifier"
	case tokRef:
		return "value reference"
	case tokInt:
		return "integer literal"
	case tokFloat:
		return "float literal"
	case tokComma:
		return "','"
	case tokEq:
		return "'='"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	default:
		return "token"
	}
}

// token is one lexeme of a line, with its 1-based column.
type token struct {
	kind tokKind
	text string
	col  int
	i    int64
	f    float64
}

// scanLine tokenizes one source line. Comments run from "//" to the
// end of the line. The returned slice always ends with a tokEOL token
// carrying the column one past the last consumed character.
func scanLine(line string) ([]token, error) {
	var toks []token
	pos := 0
	for pos < len(line) {
		c := line[pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			pos++
		case c == '/' && pos+1 < len(line) && line[pos+1] == '/':
			pos = len(line)
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", col: pos + 1})
			pos++
		case c == '=':
			toks = append(toks, token{kind: tokEq, text: "=", col: pos + 1})
			pos++
		case c == '[':
			toks = append(toks, token{kind: tokLBracket, text: "[", col: pos + 1})
			pos++
		case c == ']':
			toks = append(toks, token{kind: tokRBracket, text: "]", col: pos + 1})
			pos++
		case c == '{':
			toks = append(toks, token{kind: tokLBrace, text: "{", col: pos + 1})
			pos++
		case c == '}':
			toks = append(toks, token{kind: tokRBrace, text: "}", col: pos + 1})
			pos++
		case c == '%':
			start := pos
			pos++
			for pos < len(line) && isRefChar(line[pos]) {
				pos++
			}
			if pos == start+1 {
				return nil, fmt.Errorf("column %d: empty value reference", start+1)
			}
			toks = append(toks, token{kind: tokRef, text: line[start+1 : pos], col: start + 1})
		case isIdentStart(c):
			start := pos
			for pos < len(line) && isIdentChar(line[pos]) {
				pos++
			}
			toks = append(toks, token{kind: tokIdent, text: line[start:pos], col: start + 1})
		case c == '-' || (c >= '0' && c <= '9'):
			tok, next, err := scanNumber(line, pos)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			pos = next
		default:
			return nil, fmt.Errorf("column %d: unexpected character %q", pos+1, string(c))
		}
	}
	toks = append(toks, token{kind: tokEOL, col: pos + 1})
	return toks, nil
}

func scanNumber(line string, start int) (token, int, error) {
	pos := start
	if line[pos] == '-' {
		pos++
	}
	isFloat := false
	for pos < len(line) {
		c := line[pos]
		switch {
		case c >= '0' && c <= '9':
			pos++
		case c == '.':
			isFloat = true
			pos++
		case c == 'e' || c == 'E':
			isFloat = true
			pos++
			if pos < len(line) && (line[pos] == '+' || line[pos] == '-') {
				pos++
			}
		default:
			goto done
		}
	}
done:
	text := line[start:pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, 0, fmt.Errorf("column %d: bad float literal %q", start+1, text)
		}
		return token{kind: tokFloat, text: text, col: start + 1, f: f}, pos, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token{}, 0, fmt.Errorf("column %d: bad integer literal %q", start+1, text)
	}
	return token{kind: tokInt, text: text, col: start + 1, i: i}, pos, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c == '.' || (c >= '0' && c <= '9')
}

func isRefChar(c byte) bool {
	return isIdentChar(c) || c == '-'
}

// blankLine reports whether the line lexes to nothing but EOL.
func blankLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "//")
}
