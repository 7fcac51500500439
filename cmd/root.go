package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"metapathways/rpkmcorr/logger"
)

var (
	separator string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "rpkmcorr",
	Short:         "Correlate pathway tables with per-ORF RPKM data",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zapcore.InfoLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		if err := logger.InitLogger(level); err != nil {
			return err
		}
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file, using process environment")
		}
		envOverride(cmd, "separator", "RPKMCORR_SEPARATOR", &separator)
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&separator, "separator", "\t", "Column separator for input and output files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// sepRune validates the configured separator as a single character.
func sepRune() (rune, error) {
	r := []rune(separator)
	if len(r) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", separator)
	}
	return r[0], nil
}

// envOverride replaces a flag's default with an environment value when the
// flag was not set explicitly, so a .env can pin project-wide suffixes while
// explicit flags always win.
func envOverride(cmd *cobra.Command, flag, key string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// outputPath returns the optional trailing output argument, or fallback.
func outputPath(args []string, idx int, fallback string) string {
	if len(args) > idx {
		return args[idx]
	}
	return fallback
}
