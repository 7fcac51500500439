package correlate

import (
	"path/filepath"

	"go.uber.org/zap"

	"metapathways/rpkmcorr/internal/pathway"
	"metapathways/rpkmcorr/internal/scan"
	"metapathways/rpkmcorr/logger"
)

// AnnotateOptions configures a directory-wide annotation run. Selected, when
// non-empty, restricts output to pathways whose short name is in the set; a
// selected pathway that never appears in the input is not an error.
type AnnotateOptions struct {
	Separator        rune
	PathwaySuffix    string
	ExpressionSuffix string
	AnnotationSuffix string
	Selected         map[string]struct{}
}

// AnnotatedRow is one output row of the annotation correlator: an ORF that
// resolved in the expression data, with its pathway context and annotation.
type AnnotatedRow struct {
	Sample     string
	Name       string
	CommonName string
	ORF        string
	RPKM       float64
	Annotation pathway.Annotation
}

// RunAnnotate joins every matched pathway/expression/annotation file triple
// under dir into per-ORF annotated rows. Only ORFs present in the expression
// data are emitted; an ORF with no annotation record still produces a row
// with empty annotation fields. Triples that fail to parse are skipped with
// a warning.
func RunAnnotate(dir string, opts AnnotateOptions) ([]AnnotatedRow, error) {
	names, err := scan.ListDir(dir)
	if err != nil {
		return nil, err
	}
	triples, unmatched := scan.MatchTriples(names,
		opts.PathwaySuffix, opts.ExpressionSuffix, opts.AnnotationSuffix)
	for _, w := range unmatched {
		logger.Warn(w, zap.String("dir", dir))
	}

	var rows []AnnotatedRow
	totalPathways, totalPoints, totalAnnotated := 0, 0, 0
	for _, triple := range triples {
		records, table, ok := loadPair(dir, triple.Pathway, triple.Expression, opts.Separator)
		if !ok || len(records) == 0 {
			continue
		}
		sample := records[0].Sample

		annos, err := pathway.LoadAnnotations(filepath.Join(dir, triple.Annotation), opts.Separator)
		if err != nil {
			logger.Warn("skipping triple: bad annotation file", zap.Error(err))
			continue
		}

		missingAnno, missingRPKM := 0, 0
		for _, rec := range records {
			if len(opts.Selected) > 0 {
				if _, ok := opts.Selected[rec.Name]; !ok {
					continue
				}
			}
			totalPathways++
			for _, orf := range rec.ORFs {
				value, ok := table.Lookup(orf)
				if !ok {
					missingRPKM++
					continue
				}
				totalPoints++
				anno, ok := lookupAnnotation(annos, sample, orf)
				if ok {
					totalAnnotated++
				} else {
					missingAnno++
				}
				rows = append(rows, AnnotatedRow{
					Sample:     sample,
					Name:       rec.Name,
					CommonName: rec.CommonName,
					ORF:        orf,
					RPKM:       value,
					Annotation: anno,
				})
			}
		}
		logger.Info("loaded sample",
			zap.String("sample", sample),
			zap.Int("orfs_without_annotation", missingAnno),
			zap.Int("missing_rpkm_data_points", missingRPKM))
	}
	logger.Info("annotation run complete",
		zap.Int("sample_pathway_pairs", totalPathways),
		zap.Int("rpkm_data_points", totalPoints),
		zap.Int("annotations", totalAnnotated))
	return rows, nil
}

// lookupAnnotation resolves an ORF against the annotation map using the same
// ID translation as expression lookups. Missing records yield the zero
// Annotation, which renders as empty fields.
func lookupAnnotation(annos map[string]pathway.Annotation, sample, orf string) (pathway.Annotation, bool) {
	if a, ok := annos[orf]; ok {
		return a, true
	}
	a, ok := annos[pathway.GeneID(sample, orf)]
	return a, ok
}
