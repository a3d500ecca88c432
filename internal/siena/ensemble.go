package siena

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnsemblePDBs scans a SIENA ensemble directory and returns the absolute
// paths of its .pdb files, sorted for consistent processing order.
// Subdirectories are not descended into.
func EnsemblePDBs(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access ensemble directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read ensemble directory: %w", err)
	}

	var pdbs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != ".pdb" {
			continue
		}

		absPath, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", entry.Name(), err)
		}
		pdbs = append(pdbs, absPath)
	}

	sort.Strings(pdbs)
	return pdbs, nil
}
