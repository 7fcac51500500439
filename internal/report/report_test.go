package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metapathways/rpkmcorr/internal/correlate"
	"metapathways/rpkmcorr/internal/pathway"
)

func readOut(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func testMatrix() *correlate.Matrix {
	m := correlate.NewMatrix()
	m.Fold("A", []correlate.PathwaySum{
		{Sample: "A", Name: "PWY-1", CommonName: "one", Total: 4.0},
		{Sample: "A", Name: "PWY-2", CommonName: "two", Total: 1.0},
	})
	m.Fold("B", []correlate.PathwaySum{
		{Sample: "B", Name: "PWY-2", CommonName: "two", Total: 0.0},
	})
	return m
}

func TestWriteSingle(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pwy_data.tsv")
	sums := []correlate.PathwaySum{
		{Sample: "S1", Name: "PWY-1", CommonName: "Test", Total: 5.0},
		{Sample: "S1", Name: "PWY-2", CommonName: "Other", Total: 0.25},
	}
	require.NoError(t, WriteSingle(out, '\t', sums))

	want := "SAMPLE\tPWY_NAME\tPWY_COMMON_NAME\tRPKM_SUM\n" +
		"S1\tPWY-1\tTest\t5\n" +
		"S1\tPWY-2\tOther\t0.25\n"
	assert.Equal(t, want, readOut(t, out))
}

func TestWriteMatrix(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pwy_data_batch.tsv")
	require.NoError(t, WriteMatrix(out, '\t', testMatrix(), MatrixOptions{}))

	want := "PWY_NAME\tPWY_COMMON_NAME\tA\tB\tRPKM_SUM\tRPKM_AVG\n" +
		"PWY-1\tone\t4\t0\t4\t4\n" + // (PWY-1, B) is absent: rendered 0, excluded from stats
		"PWY-2\ttwo\t1\t0\t1\t0.5\n" +
		"SAMPLE_SUM\t\t5\t0\t\t\n" +
		"SAMPLE_AVG\t\t2.5\t0\t\t\n"
	assert.Equal(t, want, readOut(t, out))
}

func TestWriteMatrixExcludeZeroes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pwy_data_batch.tsv")
	require.NoError(t, WriteMatrix(out, '\t', testMatrix(), MatrixOptions{ExcludeZeroes: true}))

	want := "PWY_NAME\tPWY_COMMON_NAME\tA\tB\tRPKM_SUM\tRPKM_AVG\n" +
		"PWY-1\tone\t4\t0\t4\t4\n" +
		"PWY-2\ttwo\t1\t0\t1\t1\n" + // zero cell dropped from the denominator only
		"SAMPLE_SUM\t\t5\t0\t\t\n" +
		"SAMPLE_AVG\t\t2.5\t0\t\t\n"
	assert.Equal(t, want, readOut(t, out))
}

func TestWriteMatrixSeparateStats(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "pwy_data_batch.tsv")
	stats := StatsPath(out)
	require.NoError(t, WriteMatrix(out, '\t', testMatrix(), MatrixOptions{
		SeparateStats: true,
		StatsPath:     stats,
	}))

	wantMain := "PWY_NAME\tPWY_COMMON_NAME\tA\tB\tRPKM_SUM\tRPKM_AVG\n" +
		"PWY-1\tone\t4\t0\t4\t4\n" +
		"PWY-2\ttwo\t1\t0\t1\t0.5\n"
	assert.Equal(t, wantMain, readOut(t, out))

	wantStats := "STAT\tA\tB\n" +
		"SAMPLE_SUM\t5\t0\n" +
		"SAMPLE_AVG\t2.5\t0\n"
	assert.Equal(t, wantStats, readOut(t, stats))
}

func TestWriteAnnotated(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pwy_anno.tsv")
	rows := []correlate.AnnotatedRow{
		{
			Sample: "A", Name: "PWY-1", CommonName: "one", ORF: "O_1_1", RPKM: 2.0,
			Annotation: pathway.Annotation{
				Query: "A1_1", Target: "sp|P1", QLength: "300", Bitscore: "150",
				BSR: "0.9", Expect: "1e-50", AlnLength: "290", Identity: "98.3",
				EC: "1.2.1.12", Product: "dehydrogenase",
			},
		},
		// No annotation record: ten empty fields, the row is still present.
		{Sample: "A", Name: "PWY-1", CommonName: "one", ORF: "O_1_2", RPKM: 3.0},
	}
	require.NoError(t, WriteAnnotated(out, '\t', rows))

	want := "SAMPLE\tPWY_NAME\tPWY_COMMON_NAME\tORF\tRPKM\tQUERY\tTARGET\tQ_LENGTH\tBITSCORE\tBSR\tEXPECT\tALN_LENGTH\tIDENTITY\tEC\tPRODUCT\n" +
		"A\tPWY-1\tone\tO_1_1\t2\tA1_1\tsp|P1\t300\t150\t0.9\t1e-50\t290\t98.3\t1.2.1.12\tdehydrogenase\n" +
		"A\tPWY-1\tone\tO_1_2\t3\t\t\t\t\t\t\t\t\t\t\n"
	assert.Equal(t, want, readOut(t, out))
}

func TestWriteMatrixCommaSeparator(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pwy_data_batch.csv")
	require.NoError(t, WriteMatrix(out, ',', testMatrix(), MatrixOptions{}))
	assert.Contains(t, readOut(t, out), "PWY_NAME,PWY_COMMON_NAME,A,B,RPKM_SUM,RPKM_AVG\n")
}

func TestStatsPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"pwy_data_batch.tsv", "pwy_data_batch_stats.tsv"},
		{"out/pwy.tsv", "out/pwy_stats.tsv"},
		{"noext", "noext_stats"},
		{"dir.d/noext", "dir.d/noext_stats"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatsPath(tt.in), "StatsPath(%q)", tt.in)
	}
}
