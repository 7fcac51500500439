package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"metapathways/rpkmcorr/internal/correlate"
	"metapathways/rpkmcorr/internal/report"
	"metapathways/rpkmcorr/logger"
)

var (
	batchExcludeZeroes bool
	batchSeparateStats bool
	batchPwySuffix     string
	batchRPKMSuffix    string
)

var batchCmd = &cobra.Command{
	Use:   "batch <directory> [output-file]",
	Short: "Correlate every pathway/RPKM file pair in a directory into a pathway x sample matrix",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sep, err := sepRune()
		if err != nil {
			return err
		}
		envOverride(cmd, "pwy-suffix", "RPKMCORR_PWY_SUFFIX", &batchPwySuffix)
		envOverride(cmd, "rpkm-suffix", "RPKMCORR_RPKM_SUFFIX", &batchRPKMSuffix)
		out := outputPath(args, 1, "pwy_data_batch.tsv")

		runID := "run-" + uuid.New().String()
		logger.Info("starting batch run",
			zap.String("run_id", runID),
			zap.String("dir", args[0]))

		m, err := correlate.RunBatch(args[0], correlate.BatchOptions{
			Separator:        sep,
			PathwaySuffix:    batchPwySuffix,
			ExpressionSuffix: batchRPKMSuffix,
		})
		if err != nil {
			return err
		}

		opts := report.MatrixOptions{
			ExcludeZeroes: batchExcludeZeroes,
			SeparateStats: batchSeparateStats,
			StatsPath:     report.StatsPath(out),
		}
		if err := report.WriteMatrix(out, sep, m, opts); err != nil {
			return err
		}
		logger.Info("batch run complete",
			zap.String("run_id", runID),
			zap.Int("samples", len(m.Samples())),
			zap.Int("pathways", len(m.RowNames())),
			zap.String("output", out))
		return nil
	},
}

func init() {
	batchCmd.Flags().BoolVar(&batchExcludeZeroes, "exclude-zeroes", false, "Exclude zero cells from average denominators")
	batchCmd.Flags().BoolVar(&batchSeparateStats, "separate-stats", false, "Write per-sample stats to a separate _stats file")
	batchCmd.Flags().StringVar(&batchPwySuffix, "pwy-suffix", ".pwy.txt", "Filename suffix for pathway files")
	batchCmd.Flags().StringVar(&batchRPKMSuffix, "rpkm-suffix", ".orf_rpkm.txt", "Filename suffix for RPKM data files")
	rootCmd.AddCommand(batchCmd)
}
