package correlate

import (
	"path/filepath"

	"go.uber.org/zap"

	"metapathways/rpkmcorr/internal/pathway"
	"metapathways/rpkmcorr/internal/scan"
	"metapathways/rpkmcorr/logger"
)

// BatchOptions configures a directory-wide correlation run.
type BatchOptions struct {
	Separator        rune
	PathwaySuffix    string
	ExpressionSuffix string
}

// RunBatch correlates every matched pathway/expression file pair under dir
// and folds the results into a pathway x sample matrix. A file pair that
// fails to parse is skipped with a warning; only an unreadable directory is
// fatal.
func RunBatch(dir string, opts BatchOptions) (*Matrix, error) {
	names, err := scan.ListDir(dir)
	if err != nil {
		return nil, err
	}
	pairs, unmatched := scan.MatchPairs(names, opts.PathwaySuffix, opts.ExpressionSuffix)
	for _, w := range unmatched {
		logger.Warn(w, zap.String("dir", dir))
	}

	m := NewMatrix()
	for _, pair := range pairs {
		records, table, ok := loadPair(dir, pair.Pathway, pair.Expression, opts.Separator)
		if !ok || len(records) == 0 {
			continue
		}
		sample := records[0].Sample
		m.Fold(sample, Correlate(records, table))
		logger.Info("loaded sample",
			zap.String("sample", sample),
			zap.Int("pathways", len(records)))
	}
	return m, nil
}

// loadPair loads one pathway/expression file pair. Parse failures are
// reported and the pair skipped so the rest of the batch continues.
func loadPair(dir, pwyName, rpkmName string, sep rune) ([]pathway.Record, *pathway.ExpressionTable, bool) {
	records, err := pathway.LoadPathwayInfo(filepath.Join(dir, pwyName), sep)
	if err != nil {
		logger.Warn("skipping pair: bad pathway file", zap.Error(err))
		return nil, nil, false
	}
	sample := ""
	if len(records) > 0 {
		sample = records[0].Sample
	}
	table, err := pathway.LoadExpressionData(filepath.Join(dir, rpkmName), sample, sep)
	if err != nil {
		logger.Warn("skipping pair: bad RPKM data file", zap.Error(err))
		return nil, nil, false
	}
	return records, table, true
}
