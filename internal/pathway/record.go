package pathway

import (
	"fmt"
	"strings"
)

// orfPrefix replaces the sample name in ORF IDs as they appear in pathway
// files, e.g. gene S11_2 of sample S1 is listed as O_1_2.
const orfPrefix = "O_"

// Record is one row of a pathway file: a named pathway and the ORFs believed
// to participate in it. Identity is (Sample, Name).
type Record struct {
	Sample     string
	Name       string
	CommonName string
	ORFs       []string
}

// ExpressionTable maps gene IDs to RPKM readings for one sample. Gene IDs are
// stored exactly as read; the sample prefix is only applied at lookup time.
type ExpressionTable struct {
	Sample string
	Values map[string]float64
}

// GeneID converts a pathway-file ORF ID into the gene ID used by expression
// and annotation files for the given sample: the O_ prefix is replaced by the
// sample name (O_1_2 -> S11_2 for sample S1).
func GeneID(sample, orfID string) string {
	return sample + strings.TrimPrefix(orfID, orfPrefix)
}

// Lookup resolves an ORF ID against the table: an exact key first, then the
// sample-prefixed gene ID.
func (t *ExpressionTable) Lookup(orfID string) (float64, bool) {
	if v, ok := t.Values[orfID]; ok {
		return v, true
	}
	v, ok := t.Values[GeneID(t.Sample, orfID)]
	return v, ok
}

// Annotation is one sequence-annotation record. All fields are kept verbatim
// as strings; the zero value renders as ten empty fields.
type Annotation struct {
	Query     string
	Target    string
	QLength   string
	Bitscore  string
	BSR       string
	Expect    string
	AlnLength string
	Identity  string
	EC        string
	Product   string
}

// Fields returns the annotation columns in output order.
func (a Annotation) Fields() []string {
	return []string{
		a.Query, a.Target, a.QLength, a.Bitscore, a.BSR,
		a.Expect, a.AlnLength, a.Identity, a.EC, a.Product,
	}
}

// FormatError describes a malformed header or row in an input file. In batch
// mode it is a skip-and-continue condition; in single-sample mode it is fatal.
type FormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}
