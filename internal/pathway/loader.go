package pathway

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"metapathways/rpkmcorr/logger"
)

// Pathway file column names. The header is indexed by name, so column order
// does not matter.
const (
	colSample     = "SAMPLE"
	colName       = "PWY_NAME"
	colCommonName = "PWY_COMMON_NAME"
	colORFs       = "ORFS"
)

func openReader(path string, sep rune) (*os.File, *csv.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return f, r, nil
}

// LoadPathwayInfo parses a pathway file into an ordered sequence of Records.
// The first row must be a header naming the SAMPLE, PWY_NAME, PWY_COMMON_NAME
// and ORFS columns; a missing column or a row too short to hold them is a
// FormatError.
func LoadPathwayInfo(path string, sep rune) ([]Record, error) {
	f, r, err := openReader(path, sep)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &FormatError{Path: path, Line: 0, Reason: err.Error()}
	}
	if len(rows) == 0 {
		return nil, &FormatError{Path: path, Line: 1, Reason: "missing header row"}
	}

	idx := map[string]int{colSample: -1, colName: -1, colCommonName: -1, colORFs: -1}
	for i, col := range rows[0] {
		if _, ok := idx[col]; ok {
			idx[col] = i
		}
	}
	maxIdx := 0
	for col, i := range idx {
		if i < 0 {
			return nil, &FormatError{Path: path, Line: 1, Reason: fmt.Sprintf("header is missing column %s", col)}
		}
		if i > maxIdx {
			maxIdx = i
		}
	}

	var records []Record
	for n, row := range rows[1:] {
		line := n + 2
		if len(row) <= maxIdx {
			return nil, &FormatError{
				Path: path, Line: line,
				Reason: fmt.Sprintf("row has %d fields, need %d", len(row), maxIdx+1),
			}
		}
		records = append(records, Record{
			Sample:     row[idx[colSample]],
			Name:       row[idx[colName]],
			CommonName: row[idx[colCommonName]],
			ORFs:       parseORFList(row[idx[colORFs]]),
		})
	}
	return records, nil
}

// parseORFList parses a bracketed comma list: [O_7_7,O_164_9] -> two IDs.
// Both [] and an empty string are valid empty lists.
func parseORFList(s string) []string {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// LoadExpressionData parses a two-column (gene ID, RPKM value) file into an
// ExpressionTable for the given sample. There is no header; a non-numeric
// value or a short row is a FormatError. Gene IDs are stored verbatim.
// sample is used for lookup translation and for prefix cross-validation only.
func LoadExpressionData(path, sample string, sep rune) (*ExpressionTable, error) {
	f, r, err := openReader(path, sep)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &FormatError{Path: path, Line: 0, Reason: err.Error()}
	}

	table := &ExpressionTable{Sample: sample, Values: make(map[string]float64, len(rows))}
	foreign := 0
	for n, row := range rows {
		line := n + 1
		if len(row) < 2 {
			return nil, &FormatError{
				Path: path, Line: line,
				Reason: fmt.Sprintf("row has %d fields, need 2", len(row)),
			}
		}
		value, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, &FormatError{
				Path: path, Line: line,
				Reason: fmt.Sprintf("non-numeric RPKM value %q", row[1]),
			}
		}
		if !strings.HasPrefix(row[0], sample) {
			foreign++
		}
		table.Values[row[0]] = value
	}
	if foreign > 0 {
		logger.Warn("gene IDs without expected sample prefix",
			zap.String("file", path),
			zap.String("sample", sample),
			zap.Int("count", foreign))
	}
	return table, nil
}

// LoadAnnotations parses a sequence-annotation file into a map keyed by raw
// query (gene) ID. The first row is a header and is skipped, as is any row
// whose first field starts with '#'. Rows with fewer than 10 fields are a
// FormatError. Only the first record per query is kept.
func LoadAnnotations(path string, sep rune) (map[string]Annotation, error) {
	f, r, err := openReader(path, sep)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &FormatError{Path: path, Line: 0, Reason: err.Error()}
	}

	annos := make(map[string]Annotation)
	for n, row := range rows {
		line := n + 1
		if line == 1 || (len(row) > 0 && strings.HasPrefix(row[0], "#")) {
			continue
		}
		if len(row) < 10 {
			return nil, &FormatError{
				Path: path, Line: line,
				Reason: fmt.Sprintf("row has %d fields, need 10", len(row)),
			}
		}
		if _, ok := annos[row[0]]; ok {
			continue
		}
		annos[row[0]] = Annotation{
			Query:     row[0],
			Target:    row[1],
			QLength:   row[2],
			Bitscore:  row[3],
			BSR:       row[4],
			Expect:    row[5],
			AlnLength: row[6],
			Identity:  row[7],
			EC:        row[8],
			Product:   row[9],
		}
	}
	return annos, nil
}

// LoadSelection reads a pathway-selection file: comma-separated, header row
// skipped, first column collected as the set of pathway short names to keep.
func LoadSelection(path string) (map[string]struct{}, error) {
	f, r, err := openReader(path, ',')
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &FormatError{Path: path, Line: 0, Reason: err.Error()}
	}

	selected := make(map[string]struct{})
	for n, row := range rows {
		if n == 0 || len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name != "" {
			selected[name] = struct{}{}
		}
	}
	return selected, nil
}
