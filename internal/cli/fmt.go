package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tensorhost/dialect/internal/dht"
	"github.com/tensorhost/dialect/internal/diag"
	"github.com/tensorhost/dialect/internal/syntax"
)

// FmtOptions holds flags for the fmt command.
type FmtOptions struct {
	*RootOptions
	Write bool // rewrite files in place
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FmtOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Reprint programs in canonical surface form",
		Long: `Parse program files and reprint them in canonical surface form.

The output parses back to a structurally equal program. Files with
diagnostics are reported and left untouched.

Exit codes:
  0 - All files formatted
  1 - One or more files produced diagnostics
  2 - Command error (unreadable files, etc.)

Examples:
  dhtc fmt prog.dht
  dhtc fmt --write prog.dht`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "rewrite files in place instead of printing")

	return cmd
}

func runFmt(opts *FmtOptions, files []string, cmd *cobra.Command) error {
	reg := dht.MustRegistry()
	w := cmd.OutOrStdout()
	failed := 0

	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", file), err)
		}

		collector := &diag.Collector{}
		prog, parseErrs := syntax.Parse(reg, file, src, collector)
		if prog == nil || len(parseErrs) > 0 {
			failed++
			for _, d := range collector.Strings() {
				fmt.Fprintln(cmd.ErrOrStderr(), d)
			}
			continue
		}

		printed, err := syntax.PrintProgram(reg, prog)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to print %s", file), err)
		}

		if opts.Write {
			if string(src) == printed {
				continue
			}
			if err := os.WriteFile(file, []byte(printed), 0o644); err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("failed to write %s", file), err)
			}
			fmt.Fprintln(w, file)
			continue
		}
		fmt.Fprint(w, printed)
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) failed to parse", failed))
	}
	return nil
}
