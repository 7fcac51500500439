// Package report renders correlation results as delimited flat files. Every
// writer builds its rows fully in memory and writes once, so a failed run
// never leaves a partially written report behind a successful exit.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"metapathways/rpkmcorr/internal/correlate"
)

// Header labels shared across output shapes.
const (
	labelSampleSum = "SAMPLE_SUM"
	labelSampleAvg = "SAMPLE_AVG"
)

var singleHeader = []string{"SAMPLE", "PWY_NAME", "PWY_COMMON_NAME", "RPKM_SUM"}

var annotatedHeader = []string{
	"SAMPLE", "PWY_NAME", "PWY_COMMON_NAME", "ORF", "RPKM",
	"QUERY", "TARGET", "Q_LENGTH", "BITSCORE", "BSR",
	"EXPECT", "ALN_LENGTH", "IDENTITY", "EC", "PRODUCT",
}

// MatrixOptions controls batch matrix rendering.
type MatrixOptions struct {
	ExcludeZeroes bool
	// SeparateStats moves the per-sample SUM/AVG rows into their own file
	// (StatsPath) instead of appending them to the matrix.
	SeparateStats bool
	StatsPath     string
}

// WriteSingle writes single-sample correlation output: one row per pathway
// in input order.
func WriteSingle(path string, sep rune, sums []correlate.PathwaySum) error {
	rows := [][]string{singleHeader}
	for _, s := range sums {
		rows = append(rows, []string{s.Sample, s.Name, s.CommonName, formatValue(s.Total)})
	}
	return writeRows(path, sep, rows)
}

// WriteMatrix writes the batch pathway x sample matrix: rows sorted by
// pathway name, sample columns in first-seen order, trailing RPKM_SUM and
// RPKM_AVG columns on every pathway row, and trailing SAMPLE_SUM/SAMPLE_AVG
// rows (or a separate stats file, per opts). Absent cells render as 0.
func WriteMatrix(path string, sep rune, m *correlate.Matrix, opts MatrixOptions) error {
	samples := m.Samples()

	header := append([]string{"PWY_NAME", "PWY_COMMON_NAME"}, samples...)
	header = append(header, "RPKM_SUM", "RPKM_AVG")
	rows := [][]string{header}

	for _, name := range m.RowNames() {
		row := m.Row(name)
		out := []string{name, row.CommonName}
		for _, sample := range samples {
			v, _ := row.Cell(sample)
			out = append(out, formatValue(v))
		}
		sum, avg := m.RowStats(name, opts.ExcludeZeroes)
		out = append(out, formatValue(sum), formatValue(avg))
		rows = append(rows, out)
	}

	sumRow, avgRow := sampleStatRows(m, samples, opts.ExcludeZeroes)
	if !opts.SeparateStats {
		// Stat rows carry no pathway stats; pad to keep the table rectangular.
		pad := []string{"", ""}
		rows = append(rows,
			append(append([]string{labelSampleSum, ""}, sumRow...), pad...),
			append(append([]string{labelSampleAvg, ""}, avgRow...), pad...))
	}
	if err := writeRows(path, sep, rows); err != nil {
		return err
	}

	if opts.SeparateStats {
		stats := [][]string{
			append([]string{"STAT"}, samples...),
			append([]string{labelSampleSum}, sumRow...),
			append([]string{labelSampleAvg}, avgRow...),
		}
		return writeRows(opts.StatsPath, sep, stats)
	}
	return nil
}

// WriteAnnotated writes annotation correlator output: one row per
// (sample, pathway, ORF) with the RPKM value and the ten annotation fields.
func WriteAnnotated(path string, sep rune, rows []correlate.AnnotatedRow) error {
	out := [][]string{annotatedHeader}
	for _, r := range rows {
		row := []string{r.Sample, r.Name, r.CommonName, r.ORF, formatValue(r.RPKM)}
		out = append(out, append(row, r.Annotation.Fields()...))
	}
	return writeRows(path, sep, out)
}

// StatsPath derives the companion stats filename for a matrix output path:
// pwy_data_batch.tsv -> pwy_data_batch_stats.tsv.
func StatsPath(path string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndex(path, "/") {
		return path[:i] + "_stats" + path[i:]
	}
	return path + "_stats"
}

func sampleStatRows(m *correlate.Matrix, samples []string, excludeZeroes bool) (sums, avgs []string) {
	for _, sample := range samples {
		sum, avg := m.SampleStats(sample, excludeZeroes)
		sums = append(sums, formatValue(sum))
		avgs = append(avgs, formatValue(avg))
	}
	return sums, avgs
}

func writeRows(path string, sep rune, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	w.Comma = sep
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
