package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/jobfit-analyzer/internal/config"
	applog "alfredoptarigan/jobfit-analyzer/internal/logger"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "jobfit",
	Short: "Analyze how well a resume fits a job description",
	Long: `jobfit sends a resume PDF and a job description to the JobFit Analyzer
server and renders the feedback in the terminal.

Example:
  jobfit analyze --resume resume.pdf --job jd.txt --tone friendly
  jobfit analyze --resume resume.pdf --job-text "Senior Go engineer..." --format structured
  jobfit render --mode structured saved-response.txt`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func newLogger(cfg config.LogConfig) *zap.Logger {
	level := cfg.Level
	if verbose {
		level = "debug"
	}
	return applog.New(level, cfg.Format)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
		os.Exit(1)
	}
}
