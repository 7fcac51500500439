package correlate_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"metapathways/rpkmcorr/internal/correlate"
	"metapathways/rpkmcorr/internal/report"
)

func writeBatchDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

var batchOpts = correlate.BatchOptions{
	Separator:        '\t',
	PathwaySuffix:    ".pwy.txt",
	ExpressionSuffix: ".orf_rpkm.txt",
}

func TestRunBatchTwoSamples(t *testing.T) {
	dir := writeBatchDir(t, map[string]string{
		"a.pwy.txt": "SAMPLE\tPWY_NAME\tPWY_COMMON_NAME\tORFS\n" +
			"A\tPWY-1\tone\t[O_1_1]\n",
		"a.orf_rpkm.txt": "A1_1\t4.0\n",
		"b.pwy.txt": "SAMPLE\tPWY_NAME\tPWY_COMMON_NAME\tORFS\n" +
			"B\tPWY-2\ttwo\t[]\n",
		"b.orf_rpkm.txt": "B1_1\t9.0\n",
		// No matching RPKM file: skipped with a warning, not an error.
		"c.pwy.txt": "SAMPLE\tPWY_NAME\tPWY_COMMON_NAME\tORFS\nC\tPWY-3\tthree\t[]\n",
	})

	m, err := correlate.RunBatch(dir, batchOpts)
	if err != nil {
		t.Fatal(err)
	}

	samples := m.Samples()
	if len(samples) != 2 || samples[0] != "A" || samples[1] != "B" {
		t.Fatalf("Samples() = %v, want [A B]", samples)
	}

	// PWY-1 was only seen in sample A: cell (PWY-1, B) must be absent.
	if _, ok := m.Row("PWY-1").Cell("B"); ok {
		t.Error("cell (PWY-1, B) should be absent")
	}
	if v, ok := m.Row("PWY-1").Cell("A"); !ok || v != 4.0 {
		t.Errorf("cell (PWY-1, A) = (%v, %v), want (4, true)", v, ok)
	}
	// PWY-2 carries a present zero for B, distinct from absent.
	if v, ok := m.Row("PWY-2").Cell("B"); !ok || v != 0.0 {
		t.Errorf("cell (PWY-2, B) = (%v, %v), want (0, true)", v, ok)
	}

	if _, avg := m.RowStats("PWY-1", true); avg != 4.0 {
		t.Errorf("PWY-1 average with exclusion = %v, want 4 (count=1)", avg)
	}
}

func TestRunBatchSkipsBadPair(t *testing.T) {
	dir := writeBatchDir(t, map[string]string{
		// Header is missing PWY_COMMON_NAME: fatal for this pair only.
		"a.pwy.txt":      "SAMPLE\tPWY_NAME\tORFS\nA\tPWY-1\t[]\n",
		"a.orf_rpkm.txt": "A1_1\t1.0\n",
		"b.pwy.txt": "SAMPLE\tPWY_NAME\tPWY_COMMON_NAME\tORFS\n" +
			"B\tPWY-2\ttwo\t[O_1_1]\n",
		"b.orf_rpkm.txt": "B1_1\t2.5\n",
	})

	m, err := correlate.RunBatch(dir, batchOpts)
	if err != nil {
		t.Fatal(err)
	}
	if samples := m.Samples(); len(samples) != 1 || samples[0] != "B" {
		t.Fatalf("Samples() = %v, want [B]", samples)
	}
	if v, ok := m.Row("PWY-2").Cell("B"); !ok || v != 2.5 {
		t.Errorf("cell (PWY-2, B) = (%v, %v), want (2.5, true)", v, ok)
	}
}

func TestRunBatchIdempotent(t *testing.T) {
	dir := writeBatchDir(t, map[string]string{
		"a.pwy.txt": "SAMPLE\tPWY_NAME\tPWY_COMMON_NAME\tORFS\n" +
			"A\tPWY-2\ttwo\t[O_1_2]\n" +
			"A\tPWY-1\tone\t[O_1_1]\n",
		"a.orf_rpkm.txt": "A1_1\t1.5\nA1_2\t2.5\n",
		"b.pwy.txt": "SAMPLE\tPWY_NAME\tPWY_COMMON_NAME\tORFS\n" +
			"B\tPWY-1\tone\t[O_2_1]\n",
		"b.orf_rpkm.txt": "B2_1\t3.0\n",
	})

	outputs := make([][]byte, 2)
	for i := range outputs {
		m, err := correlate.RunBatch(dir, batchOpts)
		if err != nil {
			t.Fatal(err)
		}
		out := filepath.Join(t.TempDir(), "out.tsv")
		if err := report.WriteMatrix(out, '\t', m, report.MatrixOptions{}); err != nil {
			t.Fatal(err)
		}
		outputs[i], err = os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Errorf("batch output differs between runs:\n%s\n---\n%s", outputs[0], outputs[1])
	}
}

func TestRunBatchMissingDirectory(t *testing.T) {
	if _, err := correlate.RunBatch(filepath.Join(t.TempDir(), "nope"), batchOpts); err == nil {
		t.Error("expected error for missing directory")
	}
}
