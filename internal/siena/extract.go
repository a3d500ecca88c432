// Package siena parses SIENA result files.
//
// SIENA writes a results directory containing an ensemble/ subdirectory of
// PDB files and a resultStatistic.csv table. The PDB files follow the
// standard convention where ligands appear as HET records, but SIENA
// occasionally emits chain identifiers with the residue number fused onto
// them (e.g. chain "A1" instead of chain "A" residue "1"). The extractor
// repairs those records.
package siena

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bennet/sienapipe/internal/logger"
)

// hetPrefix marks a ligand record in a SIENA PDB file.
const hetPrefix = "HET "

// Extractor reads SIENA PDB files and produces ligand identifiers.
type Extractor struct {
	log logger.Logger
}

// NewExtractor creates an Extractor logging through the given logger.
// A nil logger is replaced with a NoOpLogger.
func NewExtractor(log logger.Logger) *Extractor {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Extractor{log: log}
}

// ExtractLigands reads a SIENA-produced PDB file and returns one
// "NAME_CHAIN_RESIDUE" identifier per HET record, in file order. Duplicate
// records are preserved.
//
// When a chain identifier contains a digit, the record is repaired: the
// chain becomes the first character and the residue number becomes the
// remaining characters of the chain token. The original residue-number
// token is discarded, not merged. HET records with fewer than four fields
// are skipped with a warning, as are repairs that would leave an empty
// residue number.
func (e *Extractor) ExtractLigands(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open siena pdb: %w", err)
	}
	defer f.Close()

	var ligands []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, hetPrefix) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			e.log.Warn(fmt.Sprintf("Skipping malformed HET record: %q", line))
			continue
		}

		name := fields[1]
		chain := fields[2]
		residue := fields[3]

		if strings.ContainsAny(chain, "0123456789") {
			e.log.Warn(fmt.Sprintf("Found number in chain ID '%s' for ligand %s at position %s",
				chain, name, residue))

			// The residue number leaked into the chain token. Keep the
			// first character as the chain and take the rest as the
			// residue number, discarding the original residue token.
			residue = chain[1:]
			chain = chain[:1]

			if residue == "" {
				e.log.Warn(fmt.Sprintf("Skipping HET record for ligand %s: chain ID '%s' leaves no residue number",
					name, chain))
				continue
			}

			e.log.Info(fmt.Sprintf("Split chain ID into '%s' and updated residue number to %s",
				chain, residue))
		}

		ligands = append(ligands, fmt.Sprintf("%s_%s_%s", name, chain, residue))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read siena pdb: %w", err)
	}

	return ligands, nil
}
