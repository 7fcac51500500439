package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"metapathways/rpkmcorr/internal/correlate"
	"metapathways/rpkmcorr/internal/pathway"
	"metapathways/rpkmcorr/internal/report"
	"metapathways/rpkmcorr/logger"
)

var correlateCmd = &cobra.Command{
	Use:   "correlate <pathway-file> <rpkm-file> [output-file]",
	Short: "Sum per-ORF RPKM values for each pathway in a single sample",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sep, err := sepRune()
		if err != nil {
			return err
		}
		out := outputPath(args, 2, "pwy_data.tsv")

		records, err := pathway.LoadPathwayInfo(args[0], sep)
		if err != nil {
			return fmt.Errorf("loading pathway info: %w", err)
		}
		sample := ""
		if len(records) > 0 {
			sample = records[0].Sample
		}
		logger.Info("loaded pathway info",
			zap.String("sample", sample),
			zap.String("file", args[0]),
			zap.Int("pathways", len(records)))

		table, err := pathway.LoadExpressionData(args[1], sample, sep)
		if err != nil {
			return fmt.Errorf("loading RPKM data: %w", err)
		}
		logger.Info("loaded RPKM data",
			zap.String("file", args[1]),
			zap.Int("genes", len(table.Values)))

		sums := correlate.Correlate(records, table)
		if err := report.WriteSingle(out, sep, sums); err != nil {
			return err
		}
		logger.Info("correlated data written", zap.String("output", out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(correlateCmd)
}
