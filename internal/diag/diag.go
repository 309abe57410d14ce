package diag

import "fmt"

// Location identifies a position in a source file.
// The zero value means the location is unknown.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Known reports whether the location carries real position information.
func (l Location) Known() bool {
	return l.Line > 0
}

func (l Location) String() string {
	if !l.Known() {
		return "UnknownLocation"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic is a decoded error report: a message plus an optional
// source location. It carries no severity; everything emitted through
// this package is an error from the caller's point of view.
type Diagnostic struct {
	Loc     Location `json:"location"`
	Message string   `json:"message"`
}

// String renders the diagnostic as "<file>:<line>:<column>: <message>",
// or "UnknownLocation: <message>" when no location is known.
func (d Diagnostic) String() string {
	return d.Loc.String() + ": " + d.Message
}

// Emitter receives diagnostics from parse and verification failure
// sites. Emitting never alters control flow; the failing operation is
// still rejected by its caller.
type Emitter interface {
	Emit(d Diagnostic)
}

// Collector is an Emitter that accumulates diagnostics in order.
// The zero value is ready to use.
type Collector struct {
	Diags []Diagnostic
}

// Emit implements Emitter.
func (c *Collector) Emit(d Diagnostic) {
	c.Diags = append(c.Diags, d)
}

// Strings returns the rendered form of every collected diagnostic.
func (c *Collector) Strings() []string {
	out := make([]string, len(c.Diags))
	for i, d := range c.Diags {
		out[i] = d.String()
	}
	return out
}

// Discard is an Emitter that drops every diagnostic.
type Discard struct{}

// Emit implements Emitter.
func (Discard) Emit(Diagnostic) {}
