package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bennet/sienapipe/internal/config"
	"github.com/bennet/sienapipe/internal/history"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent pipeline runs",
		Long: `Show recent pipeline runs from the history database.

Without arguments, lists the most recent runs. With a run ID, lists the
ligand identifiers recorded for that run.

Examples:
  sienapipe history
  sienapipe history --limit 25
  sienapipe history 2f1c9a60-8f4b-4f0e-9c3d-1d2e3f4a5b6c`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			store, err := history.NewStore(cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return showLigands(cmd, store, args[0])
			}
			return showRuns(cmd, store, limit)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to the config file")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to show")

	return cmd
}

func showRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
		return nil
	}

	colorOutput := isatty.IsTerminal(os.Stdout.Fd())

	for _, r := range runs {
		duration := "-"
		if r.FinishedAt != nil {
			duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s %-8s %s  %s\n",
			r.ID, r.Target, formatStatus(r.Status, colorOutput),
			r.StartedAt.Format("2006-01-02 15:04:05"), duration)

		if r.Status == history.StatusFailed && r.Error != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    error: %s\n", r.Error)
		}
	}
	return nil
}

func showLigands(cmd *cobra.Command, store *history.Store, runID string) error {
	ligands, err := store.LigandsForRun(runID)
	if err != nil {
		return err
	}
	if len(ligands) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No ligands recorded for run %s\n", runID)
		return nil
	}

	for _, l := range ligands {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", l.Identifier, l.PDBFile)
	}
	return nil
}

// formatStatus colorizes a run status for terminal output.
func formatStatus(status string, colorOutput bool) string {
	if !colorOutput {
		return status
	}
	switch status {
	case history.StatusOK:
		return color.New(color.FgGreen).Sprint(status)
	case history.StatusFailed:
		return color.New(color.FgRed).Sprint(status)
	case history.StatusRunning:
		return color.New(color.FgYellow).Sprint(status)
	default:
		return status
	}
}
