package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bennet/sienapipe/internal/logger"
	"github.com/bennet/sienapipe/internal/siena"
)

// NewLigandsCommand creates the ligands command
func NewLigandsCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "ligands <pdb-file>...",
		Short: "Extract ligand identifiers from SIENA PDB files",
		Long: `Extract ligand identifiers from one or more SIENA PDB files.

Each HET record yields one NAME_CHAIN_RESIDUE identifier, printed to
stdout in file order. Diagnostics (including chain-ID corrections) go to
stderr.

Examples:
  sienapipe ligands results/ensemble/3QPN_19.pdb
  sienapipe ligands results/ensemble/*.pdb`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Diagnostics to stderr so stdout stays machine-readable
			log := logger.NewConsoleLogger(os.Stderr, logLevel)
			extractor := siena.NewExtractor(log)

			for _, path := range args {
				ligands, err := extractor.ExtractLigands(path)
				if err != nil {
					return err
				}
				for _, identifier := range ligands {
					fmt.Fprintln(cmd.OutOrStdout(), identifier)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log verbosity (debug, info, warn, error)")

	return cmd
}
