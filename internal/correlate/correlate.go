package correlate

import (
	"go.uber.org/zap"

	"metapathways/rpkmcorr/internal/pathway"
	"metapathways/rpkmcorr/logger"
)

// PathwaySum is the RPKM total for one pathway in one sample.
type PathwaySum struct {
	Sample     string
	Name       string
	CommonName string
	Total      float64
}

// Correlate sums expression values over each pathway's ORFs. The output
// preserves input order and always has one entry per input record: an ORF
// absent from the table contributes 0 and is skipped, since expression data
// legitimately omits zero-coverage genes. Records are not deduplicated.
func Correlate(records []pathway.Record, table *pathway.ExpressionTable) []PathwaySum {
	sums := make([]PathwaySum, 0, len(records))
	for _, rec := range records {
		total := 0.0
		for _, orf := range rec.ORFs {
			v, ok := table.Lookup(orf)
			if !ok {
				logger.Debug("missing data point",
					zap.String("sample", rec.Sample),
					zap.String("pathway", rec.Name),
					zap.String("orf", orf))
				continue
			}
			total += v
		}
		sums = append(sums, PathwaySum{
			Sample:     rec.Sample,
			Name:       rec.Name,
			CommonName: rec.CommonName,
			Total:      total,
		})
	}
	return sums
}
