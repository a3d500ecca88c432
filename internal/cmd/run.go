package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bennet/sienapipe/internal/config"
	"github.com/bennet/sienapipe/internal/history"
	"github.com/bennet/sienapipe/internal/logger"
	"github.com/bennet/sienapipe/internal/manifest"
	"github.com/bennet/sienapipe/internal/pipeline"
)

// runOptions holds the CLI flag overrides for the run command.
type runOptions struct {
	configPath string
	logLevel   string
	logDir     string
	outputDir  string
	dryRun     bool
}

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <manifest>",
		Short: "Run the SIENA pipeline for every target in a manifest",
		Long: `Run the SIENA binding-site pipeline for every target in the manifest.

For each target, sienapipe invokes SIENA with the target's query structure
and binding-site definition, scans the resulting ensemble directory, and
extracts ligand identifiers from each PDB file. Targets are processed
sequentially; the first failing step stops the run.

Configuration is loaded from .sienapipe/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  sienapipe run targets.yaml
  sienapipe run targets.md --output-dir results/
  sienapipe run --dry-run targets.yaml      # Validate the manifest only
  sienapipe run --log-level debug targets.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultConfigPath, "path to the config file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log verbosity (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "", "directory for run log files")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "directory for per-target results")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "parse and validate the manifest without executing")

	return cmd
}

func runPipeline(cmd *cobra.Command, manifestPath string, opts *runOptions) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	// CLI flags override config file settings
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logDir != "" {
		cfg.LogDir = opts.logDir
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}

	m, err := manifest.ParseFile(manifestPath)
	if err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Manifest %s is valid: %d target(s)\n", manifestPath, len(m.Targets))
		for _, t := range m.Targets {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s (query: %s, binding site: %s)\n",
				t.Name, t.QueryPDB, t.BindingSite)
		}
		return nil
	}

	consoleLog := logger.NewConsoleLogger(os.Stdout, cfg.LogLevel)
	fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer fileLog.Close()
	log := logger.NewMultiLogger(consoleLog, fileLog)

	store, err := history.NewStore(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	return pipeline.New(cfg, log, store).Execute(m)
}
