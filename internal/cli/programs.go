package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tensorhost/dialect/internal/store"
)

// ProgramsOptions holds flags for the programs command group.
type ProgramsOptions struct {
	*RootOptions
	DBPath string // SQLite database path
}

// ProgramSummary is one stored program's JSON projection.
type ProgramSummary struct {
	ID        string `json:"id"`
	OpCount   int    `json:"op_count"`
	CreatedAt string `json:"created_at"`
}

// NewProgramsCommand creates the programs command group.
func NewProgramsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProgramsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "programs",
		Short: "Inspect recorded programs",
		Long: `Inspect programs recorded by "validate --record".

Programs are keyed by their content-addressed ID.

Examples:
  dhtc programs list
  dhtc programs show <id>
  dhtc programs using dht.print_tensor.i32`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "programs.db", "SQLite database path")

	cmd.AddCommand(newProgramsListCommand(opts))
	cmd.AddCommand(newProgramsShowCommand(opts))
	cmd.AddCommand(newProgramsUsingCommand(opts))

	return cmd
}

func openProgramStore(opts *ProgramsOptions) (*store.Store, error) {
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func programsFormatter(opts *ProgramsOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func newProgramsListCommand(opts *ProgramsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List recorded programs, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openProgramStore(opts)
			if err != nil {
				return err
			}
			defer st.Close()

			recs, err := st.ListPrograms(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list programs", err)
			}

			if opts.Format == "json" {
				summaries := make([]ProgramSummary, 0, len(recs))
				for _, r := range recs {
					summaries = append(summaries, ProgramSummary{
						ID:        r.ID,
						OpCount:   r.OpCount,
						CreatedAt: r.CreatedAt,
					})
				}
				return programsFormatter(opts, cmd).Success(map[string]any{
					"programs": summaries,
					"total":    len(summaries),
				})
			}

			w := cmd.OutOrStdout()
			for _, r := range recs {
				fmt.Fprintf(w, "%s  %d op(s)  %s\n", r.ID, r.OpCount, r.CreatedAt)
			}
			return nil
		},
	}
}

func newProgramsShowCommand(opts *ProgramsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Print a recorded program's source",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openProgramStore(opts)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.GetProgram(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return NewExitError(ExitFailure, err.Error())
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load program", err)
			}

			if opts.Format == "json" {
				return programsFormatter(opts, cmd).Success(map[string]any{
					"id":         rec.ID,
					"op_count":   rec.OpCount,
					"created_at": rec.CreatedAt,
					"source":     rec.Source,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), rec.Source)
			return nil
		},
	}
}

func newProgramsUsingCommand(opts *ProgramsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "using <mnemonic>",
		Short:         "List programs containing an operation",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openProgramStore(opts)
			if err != nil {
				return err
			}
			defer st.Close()

			ids, err := st.ProgramsUsing(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to query programs", err)
			}

			if opts.Format == "json" {
				if ids == nil {
					ids = []string{}
				}
				return programsFormatter(opts, cmd).Success(map[string]any{
					"mnemonic": args[0],
					"programs": ids,
				})
			}

			w := cmd.OutOrStdout()
			for _, id := range ids {
				fmt.Fprintln(w, id)
			}
			return nil
		},
	}
}
