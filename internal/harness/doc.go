// Package harness runs YAML conformance suites against the dialect
// front end. A suite holds an inline program in surface syntax plus an
// expectation: either the program is well formed, or it produces an
// exact list of diagnostics.
//
// Suites exercise the whole pipeline the way a user would hit it:
// parse, verify, and (for well-formed programs) the print/reparse
// round trip and content-addressed program ID.
package harness
