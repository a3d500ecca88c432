package siena

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ResultRow is one alignment entry from SIENA's resultStatistic.csv.
type ResultRow struct {
	PDBCode      string
	Chains       string
	BackboneRMSD float64
}

// ParseResultStatistic parses SIENA's semicolon-separated result statistic
// table. The first line is a header; column positions are resolved by
// header name so extra columns are tolerated. Rows with an unparsable RMSD
// are rejected.
func ParseResultStatistic(path string) ([]ResultRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result statistic: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1 // SIENA pads some rows with trailing columns
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse result statistic: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("result statistic %s is empty", path)
	}

	codeIdx, chainsIdx, rmsdIdx := -1, -1, -1
	for i, col := range records[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "pdb code":
			codeIdx = i
		case "pdb chains", "chains":
			chainsIdx = i
		case "backbone rmsd":
			rmsdIdx = i
		}
	}
	if codeIdx < 0 {
		return nil, fmt.Errorf("result statistic %s has no 'PDB code' column", path)
	}

	var rows []ResultRow
	for lineNo, record := range records[1:] {
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if codeIdx >= len(record) {
			return nil, fmt.Errorf("result statistic row %d has no PDB code", lineNo+2)
		}

		row := ResultRow{PDBCode: strings.TrimSpace(record[codeIdx])}
		if chainsIdx >= 0 && chainsIdx < len(record) {
			row.Chains = strings.TrimSpace(record[chainsIdx])
		}
		if rmsdIdx >= 0 && rmsdIdx < len(record) {
			rmsd, err := strconv.ParseFloat(strings.TrimSpace(record[rmsdIdx]), 64)
			if err != nil {
				return nil, fmt.Errorf("result statistic row %d: invalid backbone RMSD %q", lineNo+2, record[rmsdIdx])
			}
			row.BackboneRMSD = rmsd
		}

		rows = append(rows, row)
	}

	return rows, nil
}
