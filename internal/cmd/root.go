// Package cmd implements the sienapipe command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sienapipe
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sienapipe",
		Short: "Binding-site ensemble pipeline built on SIENA",
		Long: `sienapipe runs the SIENA binding-site search for each target in a
manifest, collects the resulting structure ensembles, and extracts ligand
identifiers from the SIENA PDB files.

Manifests can be written in YAML or Markdown. Results are written per
target under the output directory, and every run is recorded in a local
history database.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewLigandsCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
