package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/dht"
	"github.com/tensorhost/dialect/internal/diag"
	"github.com/tensorhost/dialect/internal/ir"
	"github.com/tensorhost/dialect/internal/store"
	"github.com/tensorhost/dialect/internal/syntax"
	"github.com/tensorhost/dialect/internal/verify"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Record bool   // persist validated programs
	DBPath string // SQLite database path for --record
}

// FileResult holds one file's validation outcome.
type FileResult struct {
	File        string   `json:"file"`
	Valid       bool     `json:"valid"`
	Diagnostics []string `json:"diagnostics,omitempty"`
	ProgramID   string   `json:"program_id,omitempty"`
}

// ValidationResult holds validation results across all input files.
type ValidationResult struct {
	Files  []FileResult `json:"files"`
	Valid  bool         `json:"valid"`
	Errors int          `json:"errors"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Parse and verify programs",
		Long: `Parse program files and verify every operation against the catalog.

Diagnostics print one per line in "file:line:col: message" form.
Well-formed programs report their content-addressed program ID.

Exit codes:
  0 - All programs valid
  1 - One or more programs produced diagnostics
  2 - Command error (unreadable files, database errors)

Examples:
  dhtc validate prog.dht
  dhtc validate prog.dht --record --db programs.db
  dhtc validate a.dht b.dht --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Record, "record", false, "persist validated programs to the database")
	cmd.Flags().StringVar(&opts.DBPath, "db", "programs.db", "SQLite database path for --record")

	return cmd
}

func runValidate(opts *ValidateOptions, files []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var st *store.Store
	if opts.Record {
		var err error
		st, err = store.Open(opts.DBPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
	}

	reg := dht.MustRegistry()
	result := ValidationResult{Valid: true}

	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", file), err)
		}
		formatter.VerboseLog("Validating %s", file)

		fr := validateSource(reg, file, src)
		if fr.Valid && opts.Record {
			id, err := st.RecordProgram(context.Background(), fr.program, string(src))
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("failed to record %s", file), err)
			}
			formatter.VerboseLog("Recorded %s as %s", file, id)
		}

		result.Files = append(result.Files, fr.FileResult)
		if !fr.Valid {
			result.Valid = false
			result.Errors += len(fr.Diagnostics)
		}
	}

	if opts.Format == "json" {
		return outputValidateJSON(formatter, result)
	}
	return outputValidateText(cmd, result)
}

type fileOutcome struct {
	FileResult
	program *ir.Program
}

// validateSource runs the parse and verify pipeline over one source
// file. Verification only runs when parsing produced a clean program;
// a partial parse would cascade into spurious verifier errors.
func validateSource(reg *catalog.Registry, file string, src []byte) fileOutcome {
	collector := &diag.Collector{}
	prog, parseErrs := syntax.Parse(reg, file, src, collector)
	if prog != nil && len(parseErrs) == 0 {
		for _, verr := range verify.Program(reg, prog) {
			collector.Emit(verr.Diagnostic())
		}
	}

	out := fileOutcome{FileResult: FileResult{File: file}}
	out.Diagnostics = collector.Strings()
	if len(out.Diagnostics) > 0 || prog == nil {
		return out
	}

	out.Valid = true
	out.program = prog
	out.ProgramID = ir.MustProgramID(prog)
	return out
}

// outputValidateJSON outputs the validation result as JSON.
func outputValidateJSON(formatter *OutputFormatter, result ValidationResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.Valid {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_VALIDATION_FAILED",
			Message: fmt.Sprintf("validation failed with %d diagnostic(s)", result.Errors),
		}
	}

	encoder := json.NewEncoder(formatter.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d diagnostic(s)", result.Errors))
	}
	return nil
}

// outputValidateText outputs the validation result as text.
func outputValidateText(cmd *cobra.Command, result ValidationResult) error {
	w := cmd.OutOrStdout()

	for _, fr := range result.Files {
		if fr.Valid {
			fmt.Fprintf(w, "✓ %s (%s)\n", fr.File, fr.ProgramID)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", fr.File)
		for _, d := range fr.Diagnostics {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d diagnostic(s)", result.Errors))
	}
	return nil
}
