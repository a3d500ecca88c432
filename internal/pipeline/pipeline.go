// Package pipeline composes the sienapipe steps for each target: run SIENA,
// collect the ensemble, extract ligands, and record the run. Targets are
// processed sequentially; the first failing step halts the run.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bennet/sienapipe/internal/config"
	"github.com/bennet/sienapipe/internal/filelock"
	"github.com/bennet/sienapipe/internal/history"
	"github.com/bennet/sienapipe/internal/logger"
	"github.com/bennet/sienapipe/internal/manifest"
	"github.com/bennet/sienapipe/internal/runner"
	"github.com/bennet/sienapipe/internal/siena"
)

// SummaryFile is the name of the per-target ligand summary written into the
// target's output directory.
const SummaryFile = "ligands.txt"

// Pipeline runs the SIENA ensemble workflow for manifest targets.
type Pipeline struct {
	cfg       *config.Config
	log       logger.Logger
	runner    *runner.Runner
	extractor *siena.Extractor
	store     *history.Store
}

// New creates a Pipeline. The store may be nil, in which case runs are not
// recorded. A nil logger is replaced with a NoOpLogger.
func New(cfg *config.Config, log logger.Logger, store *history.Store) *Pipeline {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Pipeline{
		cfg:       cfg,
		log:       log,
		runner:    runner.New(log),
		extractor: siena.NewExtractor(log),
		store:     store,
	}
}

// Execute processes every target in the manifest in order and stops at the
// first failure.
func (p *Pipeline) Execute(m *manifest.Manifest) error {
	for _, target := range m.Targets {
		if err := p.RunTarget(target); err != nil {
			return fmt.Errorf("target %s: %w", target.Name, err)
		}
	}
	return nil
}

// RunTarget runs the full workflow for one target. The target's output
// directory is locked for the duration of the run.
func (p *Pipeline) RunTarget(target manifest.Target) error {
	outDir := filepath.Join(p.cfg.OutputDir, target.Name)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	lock := filelock.New(filepath.Join(outDir, ".lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("output directory %s is locked by another run", outDir)
	}
	defer lock.Unlock()

	runID := uuid.New().String()
	p.log.Info(fmt.Sprintf("Starting run %s for target %s", runID, target.Name))

	if p.store != nil {
		if err := p.store.RecordRun(runID, target.Name, time.Now()); err != nil {
			return err
		}
	}

	if err := p.runTargetSteps(target, outDir, runID); err != nil {
		p.finishRun(runID, history.StatusFailed, err.Error())
		return err
	}

	p.finishRun(runID, history.StatusOK, "")
	p.log.Info(fmt.Sprintf("Run %s for target %s completed", runID, target.Name))
	return nil
}

// runTargetSteps performs the SIENA search and ligand extraction for one
// target, writing the summary into outDir.
func (p *Pipeline) runTargetSteps(target manifest.Target, outDir, runID string) error {
	if _, err := p.runner.Run(p.sienaCommand(target, outDir)); err != nil {
		return err
	}

	p.logStatistic(filepath.Join(outDir, "resultStatistic.csv"))

	pdbs, err := siena.EnsemblePDBs(filepath.Join(outDir, "ensemble"))
	if err != nil {
		return err
	}
	if len(pdbs) == 0 {
		p.log.Warn(fmt.Sprintf("SIENA produced no ensemble members for target %s", target.Name))
	}

	var summary strings.Builder
	for _, pdb := range pdbs {
		ligands, err := p.extractor.ExtractLigands(pdb)
		if err != nil {
			return err
		}
		p.log.Info(fmt.Sprintf("Extracted %d ligand(s) from %s", len(ligands), filepath.Base(pdb)))

		if p.store != nil {
			if err := p.store.RecordLigands(runID, pdb, ligands); err != nil {
				return err
			}
		}
		for _, identifier := range ligands {
			fmt.Fprintf(&summary, "%s\t%s\n", identifier, filepath.Base(pdb))
		}
	}

	return filelock.AtomicWrite(filepath.Join(outDir, SummaryFile), []byte(summary.String()))
}

// sienaCommand builds the SIENA invocation for a target.
func (p *Pipeline) sienaCommand(target manifest.Target, outDir string) runner.Command {
	argv := []string{
		p.cfg.SienaPath,
		"--protein", target.QueryPDB,
		"--binding-site", target.BindingSite,
		"--output", outDir,
	}
	if p.cfg.SienaDBPath != "" {
		argv = append(argv, "--database", p.cfg.SienaDBPath)
	}
	return runner.Command{
		Argv:     argv,
		StepName: fmt.Sprintf("SIENA search for %s", target.Name),
	}
}

// logStatistic reports ensemble statistics when SIENA wrote them. A missing
// or unreadable statistic file is not an error.
func (p *Pipeline) logStatistic(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}

	rows, err := siena.ParseResultStatistic(path)
	if err != nil {
		p.log.Warn(fmt.Sprintf("Could not parse %s: %v", path, err))
		return
	}
	p.log.Info(fmt.Sprintf("SIENA reported %d alignment(s)", len(rows)))
}

// finishRun records the run outcome, logging rather than failing if the
// store update itself goes wrong.
func (p *Pipeline) finishRun(runID, status, errMsg string) {
	if p.store == nil {
		return
	}
	if err := p.store.FinishRun(runID, status, errMsg); err != nil {
		p.log.Error(fmt.Sprintf("Failed to record run outcome: %v", err))
	}
}
