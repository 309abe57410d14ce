package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tensorhost/dialect/internal/dht"
)

// CatalogEntry is one operation's JSON projection.
type CatalogEntry struct {
	Mnemonic      string `json:"mnemonic"`
	Signature     string `json:"signature"`
	SideEffecting bool   `json:"side_effecting"`
}

// CatalogResult holds the catalog listing.
type CatalogResult struct {
	Ops   []CatalogEntry `json:"ops"`
	Total int            `json:"total"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List registered operations",
		Long: `List every operation in the dense host tensor catalog.

Operations print in registration order, one signature per line.

Examples:
  dhtc catalog
  dhtc catalog --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, cmd)
		},
	}

	return cmd
}

func runCatalog(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg := dht.MustRegistry()
	descs := reg.Ops()

	if opts.Format == "json" {
		result := CatalogResult{
			Ops:   make([]CatalogEntry, 0, len(descs)),
			Total: len(descs),
		}
		for _, d := range descs {
			result.Ops = append(result.Ops, CatalogEntry{
				Mnemonic:      d.Mnemonic,
				Signature:     d.Signature(),
				SideEffecting: d.SideEffecting,
			})
		}
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	for _, d := range descs {
		fmt.Fprintln(w, d.Signature())
	}
	formatter.VerboseLog("%d operation(s)", len(descs))
	return nil
}
