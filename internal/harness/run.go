package harness

import (
	"fmt"

	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/diag"
	"github.com/tensorhost/dialect/internal/ir"
	"github.com/tensorhost/dialect/internal/syntax"
	"github.com/tensorhost/dialect/internal/verify"
)

// SourceName is the file name diagnostics carry for inline suite
// programs.
const SourceName = "input"

// Result is one suite's outcome. Failures holds human-readable
// mismatch descriptions; empty Failures means the suite passed.
type Result struct {
	Suite       string
	Passed      bool
	Diagnostics []string
	Failures    []string
}

func (r *Result) fail(format string, args ...any) {
	r.Passed = false
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

// Run executes one suite against a catalog and compares the observed
// verdict to the suite's expectation.
//
// Pipeline per suite:
//  1. Parse the inline program, collecting diagnostics.
//  2. Verify the parsed program, collecting more diagnostics.
//  3. Compare the rendered diagnostic list to the expectation.
//  4. For OK suites, check the round trip and program ID if asked.
func Run(reg *catalog.Registry, suite *Suite) *Result {
	result := &Result{Suite: suite.Name, Passed: true}

	collector := &diag.Collector{}
	prog, parseErrs := syntax.Parse(reg, SourceName, []byte(suite.Program), collector)
	if prog != nil && len(parseErrs) == 0 {
		for _, verr := range verify.Program(reg, prog) {
			collector.Emit(verr.Diagnostic())
		}
	}
	result.Diagnostics = collector.Strings()

	compareDiagnostics(result, suite.Expect.Diagnostics, result.Diagnostics)
	if suite.Expect.OK && len(result.Diagnostics) > 0 {
		// compareDiagnostics already recorded the mismatches.
		return result
	}

	if suite.Expect.OK {
		checkWellFormed(result, reg, suite, prog)
	}
	return result
}

// RunAll executes every suite in order.
func RunAll(reg *catalog.Registry, suites []*Suite) []*Result {
	results := make([]*Result, len(suites))
	for i, s := range suites {
		results[i] = Run(reg, s)
	}
	return results
}

func compareDiagnostics(result *Result, want, got []string) {
	n := len(want)
	if len(got) > n {
		n = len(got)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(want):
			result.fail("unexpected diagnostic: %s", got[i])
		case i >= len(got):
			result.fail("missing diagnostic: %s", want[i])
		case want[i] != got[i]:
			result.fail("diagnostic %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func checkWellFormed(result *Result, reg *catalog.Registry, suite *Suite, prog *ir.Program) {
	if prog == nil {
		result.fail("program did not parse")
		return
	}

	if suite.Expect.RoundTrip {
		printed, err := syntax.PrintProgram(reg, prog)
		if err != nil {
			result.fail("print failed: %v", err)
		} else {
			reparsed, perrs := syntax.Parse(reg, SourceName, []byte(printed), diag.Discard{})
			switch {
			case len(perrs) > 0:
				result.fail("printed program failed to reparse: %v", perrs[0])
			case !prog.Equal(reparsed):
				result.fail("printed program is not structurally equal after reparse")
			}
		}
	}

	if suite.Expect.ProgramID != "" {
		id, err := ir.ProgramID(prog)
		if err != nil {
			result.fail("program ID failed: %v", err)
		} else if id != suite.Expect.ProgramID {
			result.fail("program ID: want %s, got %s", suite.Expect.ProgramID, id)
		}
	}
}
