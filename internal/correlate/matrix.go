package correlate

import (
	"sort"

	"go.uber.org/zap"

	"metapathways/rpkmcorr/logger"
)

// Matrix is a pathway x sample aggregate of RPKM totals. Samples keep the
// order they were first seen in; rows are keyed by pathway short name. A cell
// that was never set is absent, which is distinct from a present zero — the
// distinction is what the zero-exclusion statistics are defined over.
type Matrix struct {
	samples []string
	seen    map[string]bool
	rows    map[string]*MatrixRow
}

// MatrixRow holds one pathway's per-sample totals.
type MatrixRow struct {
	Name       string
	CommonName string
	cells      map[string]float64
}

// Cell returns the total for the given sample. The second return value
// reports presence; an absent cell is not the same as a zero total.
func (r *MatrixRow) Cell(sample string) (float64, bool) {
	v, ok := r.cells[sample]
	return v, ok
}

func NewMatrix() *Matrix {
	return &Matrix{
		seen: make(map[string]bool),
		rows: make(map[string]*MatrixRow),
	}
}

// AddSample registers a sample column. Folding a sample's sums registers it
// implicitly; this exists so a sample whose pathway file parsed empty still
// appears in the column set.
func (m *Matrix) AddSample(sample string) {
	if !m.seen[sample] {
		m.seen[sample] = true
		m.samples = append(m.samples, sample)
	}
}

// Fold merges one sample's pathway sums into the matrix. The common name for
// a pathway is taken from its first occurrence; a later mismatch is logged
// and the first name kept.
func (m *Matrix) Fold(sample string, sums []PathwaySum) {
	m.AddSample(sample)
	for _, s := range sums {
		row, ok := m.rows[s.Name]
		if !ok {
			row = &MatrixRow{
				Name:       s.Name,
				CommonName: s.CommonName,
				cells:      make(map[string]float64),
			}
			m.rows[s.Name] = row
		} else if row.CommonName != s.CommonName {
			logger.Warn("pathway common name mismatch, keeping first",
				zap.String("pathway", s.Name),
				zap.String("kept", row.CommonName),
				zap.String("ignored", s.CommonName),
				zap.String("sample", sample))
		}
		row.cells[sample] = s.Total
	}
}

// Samples returns the sample columns in first-seen order.
func (m *Matrix) Samples() []string {
	return m.samples
}

// RowNames returns the pathway short names sorted lexicographically.
func (m *Matrix) RowNames() []string {
	names := make([]string, 0, len(m.rows))
	for name := range m.rows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Row returns the row for a pathway short name, or nil.
func (m *Matrix) Row(name string) *MatrixRow {
	return m.rows[name]
}

// RowStats computes the sum and average over a pathway's present cells. The
// sum always covers every present cell; excludeZeroes only shrinks the
// average denominator to the present non-zero cells. An empty count yields
// average 0.
func (m *Matrix) RowStats(name string, excludeZeroes bool) (sum, avg float64) {
	row := m.rows[name]
	if row == nil {
		return 0, 0
	}
	count := 0
	for _, sample := range m.samples {
		v, ok := row.cells[sample]
		if !ok {
			continue
		}
		sum += v
		if !excludeZeroes || v != 0 {
			count++
		}
	}
	return sum, safeAvg(sum, count)
}

// SampleStats computes the sum and average over one sample column,
// symmetrically to RowStats. Rows are visited in sorted order so the
// floating-point sum is reproducible across runs.
func (m *Matrix) SampleStats(sample string, excludeZeroes bool) (sum, avg float64) {
	count := 0
	for _, name := range m.RowNames() {
		v, ok := m.rows[name].cells[sample]
		if !ok {
			continue
		}
		sum += v
		if !excludeZeroes || v != 0 {
			count++
		}
	}
	return sum, safeAvg(sum, count)
}

func safeAvg(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
