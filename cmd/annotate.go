package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"metapathways/rpkmcorr/internal/correlate"
	"metapathways/rpkmcorr/internal/pathway"
	"metapathways/rpkmcorr/internal/report"
	"metapathways/rpkmcorr/logger"
)

const defaultAnnoSuffix = ".metacyc-2016-10-31.lastout.parsed.txt"

var (
	annotateSelectFile string
	annotateAnnoSuffix string
	annotatePwySuffix  string
	annotateRPKMSuffix string
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <directory> [output-file]",
	Short: "Attach per-ORF sequence annotations to correlated RPKM data",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sep, err := sepRune()
		if err != nil {
			return err
		}
		envOverride(cmd, "pwy-suffix", "RPKMCORR_PWY_SUFFIX", &annotatePwySuffix)
		envOverride(cmd, "rpkm-suffix", "RPKMCORR_RPKM_SUFFIX", &annotateRPKMSuffix)
		envOverride(cmd, "anno-suffix", "RPKMCORR_ANNO_SUFFIX", &annotateAnnoSuffix)
		out := outputPath(args, 1, "pwy_anno.tsv")

		var selected map[string]struct{}
		if annotateSelectFile != "" {
			selected, err = pathway.LoadSelection(annotateSelectFile)
			if err != nil {
				return fmt.Errorf("loading pathway selection: %w", err)
			}
			logger.Info("pathway selection loaded",
				zap.String("file", annotateSelectFile),
				zap.Int("pathways", len(selected)))
		}

		runID := "run-" + uuid.New().String()
		logger.Info("starting annotation run",
			zap.String("run_id", runID),
			zap.String("dir", args[0]))

		rows, err := correlate.RunAnnotate(args[0], correlate.AnnotateOptions{
			Separator:        sep,
			PathwaySuffix:    annotatePwySuffix,
			ExpressionSuffix: annotateRPKMSuffix,
			AnnotationSuffix: annotateAnnoSuffix,
			Selected:         selected,
		})
		if err != nil {
			return err
		}

		if err := report.WriteAnnotated(out, sep, rows); err != nil {
			return err
		}
		logger.Info("annotation run complete",
			zap.String("run_id", runID),
			zap.Int("rows", len(rows)),
			zap.String("output", out))
		return nil
	},
}

func init() {
	annotateCmd.Flags().StringVar(&annotateSelectFile, "select-pathways", "", "CSV file whose first column lists pathway short names to include")
	annotateCmd.Flags().StringVar(&annotateAnnoSuffix, "anno-suffix", defaultAnnoSuffix, "Filename suffix for annotation files")
	annotateCmd.Flags().StringVar(&annotatePwySuffix, "pwy-suffix", ".pwy.txt", "Filename suffix for pathway files")
	annotateCmd.Flags().StringVar(&annotateRPKMSuffix, "rpkm-suffix", ".orf_rpkm.txt", "Filename suffix for RPKM data files")
	rootCmd.AddCommand(annotateCmd)
}
