package syntax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/diag"
	"github.com/tensorhost/dialect/internal/ir"
)

// Parse error kinds. Codec failures surface with the kind of the
// underlying catalog.CodecError.
const (
	ErrCodeSyntax           = "SYNTAX_ERROR"
	ErrCodeUnknownOperation = "UNKNOWN_OPERATION"
	ErrCodeUndefinedValue   = "UNDEFINED_VALUE"
	ErrCodeRedefinedValue   = "REDEFINED_VALUE"
)

// ParseError is a line-scoped parse failure with its source location.
type ParseError struct {
	Kind    string
	Loc     diag.Location
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Loc, e.Kind, e.Message)
}

// Diagnostic converts the error to its decoded diagnostic form.
func (e *ParseError) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{Loc: e.Loc, Message: e.Message}
}

// Parse reads a whole program from src. Every parse failure is
// reported through the emitter and returned; the offending line is
// skipped and parsing continues, so one bad operation never hides the
// rest of the input. The returned program holds the instances that
// parsed cleanly.
func Parse(reg *catalog.Registry, filename string, src []byte, em diag.Emitter) (*ir.Program, []*ParseError) {
	if em == nil {
		em = diag.Discard{}
	}
	p := &parser{
		reg:     reg,
		file:    filename,
		em:      em,
		defined: make(map[string]ir.ValueKind),
		prog:    &ir.Program{},
	}
	for i, line := range strings.Split(string(src), "\n") {
		if blankLine(line) {
			continue
		}
		p.lineNo = i + 1
		p.parseLine(line)
	}
	return p.prog, p.errs
}

type parser struct {
	reg     *catalog.Registry
	file    string
	em      diag.Emitter
	defined map[string]ir.ValueKind
	prog    *ir.Program
	errs    []*ParseError

	lineNo int
	toks   []token
	pos    int
}

func (p *parser) fail(kind string, col int, format string, args ...any) error {
	e := &ParseError{
		Kind:    kind,
		Loc:     diag.Location{File: p.file, Line: p.lineNo, Column: col},
		Message: fmt.Sprintf(format, args...),
	}
	p.errs = append(p.errs, e)
	p.em.Emit(e.Diagnostic())
	return e
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOL {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokKind) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return token{}, p.fail(ErrCodeSyntax, t.col, "expected %s, found %s", kind, t.kind)
	}
	return p.next(), nil
}

// parseLine handles one non-blank line: an input declaration or an
// operation. Errors abort the line only.
func (p *parser) parseLine(line string) {
	toks, err := scanLine(line)
	if err != nil {
		p.fail(ErrCodeSyntax, 1, "%s", err.Error())
		return
	}
	p.toks, p.pos = toks, 0

	if t := p.peek(); t.kind == tokIdent && t.text == "input" {
		p.next()
		p.parseInput()
		return
	}
	p.parseOp()
}

// parseInput handles "input %name <kind>", declaring a graph-entry
// value such as a root chain.
func (p *parser) parseInput() {
	ref, err := p.expect(tokRef)
	if err != nil {
		return
	}
	kindTok, err := p.expect(tokIdent)
	if err != nil {
		return
	}
	kind, kerr := ir.ParseValueKind(kindTok.text)
	if kerr != nil {
		p.fail(ErrCodeSyntax, kindTok.col, "bad input kind %q", kindTok.text)
		return
	}
	if _, err := p.expect(tokEOL); err != nil {
		return
	}
	if p.define(ref, kind) != nil {
		return
	}
	p.prog.Inputs = append(p.prog.Inputs, ir.ValueRef{Name: ref.text, Kind: kind})
}

func (p *parser) define(tok token, kind ir.ValueKind) error {
	if _, dup := p.defined[tok.text]; dup {
		return p.fail(ErrCodeRedefinedValue, tok.col, "value %%%s defined more than once", tok.text)
	}
	p.defined[tok.text] = kind
	return nil
}

// parseOp handles "<results> = <mnemonic> <operands> <attributes>".
func (p *parser) parseOp() {
	var resultToks []token
	if p.peek().kind == tokRef {
		for {
			t, err := p.expect(tokRef)
			if err != nil {
				return
			}
			resultToks = append(resultToks, t)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
		if _, err := p.expect(tokEq); err != nil {
			return
		}
	}

	mnTok, err := p.expect(tokIdent)
	if err != nil {
		return
	}
	desc, lerr := p.reg.Lookup(mnTok.text)
	if lerr != nil {
		p.fail(ErrCodeUnknownOperation, mnTok.col, "unknown operation %s", mnTok.text)
		return
	}
	loc := diag.Location{File: p.file, Line: p.lineNo, Column: mnTok.col}

	operands, err := p.parseOperands()
	if err != nil {
		return
	}

	attrs, err := p.parseAttrs(desc, mnTok)
	if err != nil {
		return
	}

	if len(resultToks) != len(desc.Results) {
		p.fail(ErrCodeSyntax, mnTok.col, "%s produces %d results, %d named",
			desc.Mnemonic, len(desc.Results), len(resultToks))
		return
	}
	// Definitions commit only after the whole line is accepted, so a
	// rejected line defines nothing.
	results := make([]ir.ValueRef, len(resultToks))
	seen := make(map[string]bool, len(resultToks))
	for i, t := range resultToks {
		if _, dup := p.defined[t.text]; dup || seen[t.text] {
			p.fail(ErrCodeRedefinedValue, t.col, "value %%%s defined more than once", t.text)
			return
		}
		seen[t.text] = true
		results[i] = ir.ValueRef{Name: t.text, Kind: desc.Results[i]}
	}
	for _, r := range results {
		p.defined[r.Name] = r.Kind
	}

	p.prog.Ops = append(p.prog.Ops, &ir.OpInstance{
		Mnemonic: desc.Mnemonic,
		Operands: operands,
		Results:  results,
		Attrs:    attrs,
		Loc:      loc,
	})
}

// parseOperands reads the comma-separated value references following
// the mnemonic, resolving each against the values defined so far.
func (p *parser) parseOperands() ([]ir.ValueRef, error) {
	var operands []ir.ValueRef
	for p.peek().kind == tokRef {
		t := p.next()
		kind, ok := p.defined[t.text]
		if !ok {
			return nil, p.fail(ErrCodeUndefinedValue, t.col, "use of undefined value %%%s", t.text)
		}
		operands = append(operands, ir.ValueRef{Name: t.text, Kind: kind})
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	return operands, nil
}

// parseAttrs dispatches on the descriptor's codec: a custom codec
// consumes a bare literal sequence, the generic codec an optional
// "{name = literal, ...}" dictionary.
func (p *parser) parseAttrs(desc *catalog.Descriptor, mnTok token) (map[string]ir.Attr, error) {
	if cc, ok := desc.Codec.(catalog.CustomCodec); ok {
		return p.parseCustomAttrs(desc, cc, mnTok)
	}
	return p.parseGenericAttrs()
}

func (p *parser) parseCustomAttrs(desc *catalog.Descriptor, cc catalog.CustomCodec, mnTok token) (map[string]ir.Attr, error) {
	col := mnTok.col
	var lits []ir.Attr
	for p.peek().kind != tokEOL {
		if len(lits) == 0 {
			col = p.peek().col
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
		if p.peek().kind == tokComma {
			p.next()
		}
	}
	attrs, err := cc.Parse(desc, lits)
	if err != nil {
		var ce *catalog.CodecError
		if errors.As(err, &ce) {
			return nil, p.fail(ce.Kind, col, "%s", ce.Message)
		}
		return nil, p.fail(ErrCodeSyntax, col, "%s", err.Error())
	}
	return attrs, nil
}

func (p *parser) parseGenericAttrs() (map[string]ir.Attr, error) {
	attrs := make(map[string]ir.Attr)
	if p.peek().kind == tokEOL {
		return attrs, nil
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}
	for p.peek().kind != tokRBrace {
		name, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokEq); err != nil {
			return nil, err
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if _, dup := attrs[name.text]; dup {
			return nil, p.fail(ErrCodeSyntax, name.col, "duplicate attribute %q", name.text)
		}
		attrs[name.text] = lit
		if p.peek().kind == tokComma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(tokRBrace); err != nil {
		return nil, err
	}
	_, err := p.expect(tokEOL)
	return attrs, err
}

// parseLiteral reads one attribute literal: an integer, a float, or a
// homogeneous bracketed list. A list containing any float literal is a
// float list; its integer elements are widened.
func (p *parser) parseLiteral() (ir.Attr, error) {
	switch t := p.peek(); t.kind {
	case tokInt:
		p.next()
		return ir.IntAttr(t.i), nil
	case tokFloat:
		p.next()
		return ir.FloatAttr(t.f), nil
	case tokLBracket:
		p.next()
		return p.parseListLiteral()
	default:
		return nil, p.fail(ErrCodeSyntax, t.col, "expected literal, found %s", t.kind)
	}
}

func (p *parser) parseListLiteral() (ir.Attr, error) {
	var ints []int64
	var floats []float64
	isFloat := false
	for p.peek().kind != tokRBracket {
		switch t := p.peek(); t.kind {
		case tokInt:
			p.next()
			ints = append(ints, t.i)
			floats = append(floats, float64(t.i))
		case tokFloat:
			p.next()
			isFloat = true
			ints = append(ints, int64(t.f))
			floats = append(floats, t.f)
		default:
			return nil, p.fail(ErrCodeSyntax, t.col, "expected list element, found %s", t.kind)
		}
		if p.peek().kind == tokComma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(tokRBracket); err != nil {
		return nil, err
	}
	if isFloat {
		return ir.FloatListAttr(floats), nil
	}
	return ir.IntListAttr(ints), nil
}
