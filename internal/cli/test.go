package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tensorhost/dialect/internal/dht"
	"github.com/tensorhost/dialect/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // suite filter (glob pattern)
}

// SuiteResult holds the result of a single suite execution.
type SuiteResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Suites []SuiteResult `json:"suites"`
	Passed int           `json:"passed"`
	Failed int           `json:"failed"`
	Total  int           `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <suites-dir>",
		Short: "Run conformance suites",
		Long: `Run YAML conformance suites against the catalog.

Each suite holds an inline program and the diagnostics the front end
must produce for it, or a well-formedness expectation.

Exit codes:
  0 - All suites passed
  1 - One or more suites failed
  2 - Command error (invalid paths, etc.)

Examples:
  dhtc test ./suites
  dhtc test ./suites --filter "chain-*"
  dhtc test ./suites --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter suites by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, suitesDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(suitesDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("suites directory not found: %s", suitesDir))
	}

	suites, err := harness.LoadDir(suitesDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load suites", err)
	}
	if opts.Filter != "" {
		suites, err = filterSuites(suites, opts.Filter)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid filter pattern", err)
		}
	}

	if len(suites) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, TestResult{Suites: []SuiteResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No suites found.")
		return nil
	}

	reg := dht.MustRegistry()
	w := cmd.OutOrStdout()
	result := TestResult{
		Suites: make([]SuiteResult, 0, len(suites)),
		Total:  len(suites),
	}

	for _, suite := range suites {
		run := harness.Run(reg, suite)
		sr := SuiteResult{Name: run.Suite, Pass: run.Passed, Errors: run.Failures}
		result.Suites = append(result.Suites, sr)

		if sr.Pass {
			result.Passed++
			if opts.Format != "json" {
				fmt.Fprintf(w, "✓ %s\n", sr.Name)
			}
			continue
		}
		result.Failed++
		if opts.Format != "json" {
			fmt.Fprintf(w, "✗ %s\n", sr.Name)
			for _, e := range sr.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result)
}

// filterSuites keeps suites whose name matches the glob pattern.
func filterSuites(suites []*harness.Suite, filter string) ([]*harness.Suite, error) {
	var kept []*harness.Suite
	for _, s := range suites {
		matched, err := filepath.Match(filter, s.Name)
		if err != nil {
			return nil, err
		}
		if matched {
			kept = append(kept, s)
		}
	}
	return kept, nil
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}
	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d suite(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d suite(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test result as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d suite(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All suites passed")
	return nil
}
