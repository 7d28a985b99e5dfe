package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/jobfit-analyzer/internal/client"
	"alfredoptarigan/jobfit-analyzer/internal/config"
	"alfredoptarigan/jobfit-analyzer/internal/models"
)

//nolint:gochecknoglobals // Cobra boilerplate
var resumePath string

//nolint:gochecknoglobals // Cobra boilerplate
var jobFile string

//nolint:gochecknoglobals // Cobra boilerplate
var jobText string

//nolint:gochecknoglobals // Cobra boilerplate
var tone string

//nolint:gochecknoglobals // Cobra boilerplate
var format string

//nolint:gochecknoglobals // Cobra boilerplate
var serverURL string

//nolint:gochecknoglobals // Cobra boilerplate
var savePath string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long: `Upload a resume PDF with a job description and render the analysis.

The job description can be provided as:
- A file path (--job jd.txt)
- Inline text (--job-text "...")

With --format markdown (default) the reply is shown as formatted text. With
--format structured it is parsed into scores, keyword gaps and ATS feedback.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Resume PDF file (required)")
	analyzeCmd.Flags().StringVarP(&jobFile, "job", "j", "", "File containing the job description")
	analyzeCmd.Flags().StringVar(&jobText, "job-text", "", "Job description text")
	analyzeCmd.Flags().StringVarP(&tone, "tone", "t", string(models.ToneProfessional), "Feedback tone: professional, friendly or critical")
	analyzeCmd.Flags().StringVarP(&format, "format", "f", string(models.FormatMarkdown), "Response format: markdown or structured")
	analyzeCmd.Flags().StringVar(&serverURL, "server", "", "Analysis server URL (default from JOBFIT_SERVER_URL)")
	analyzeCmd.Flags().StringVarP(&savePath, "save", "o", "", "Also write the raw response to this file")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-text")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := newLogger(cfg.Log)
	defer log.Sync()

	jobDescription, err := readJobDescription()
	if err != nil {
		return err
	}

	server := cfg.Client.ServerURL
	if serverURL != "" {
		server = serverURL
	}

	input := client.AnalyzeInput{
		ResumePath:     resumePath,
		JobDescription: jobDescription,
		Tone:           models.Tone(tone),
		Format:         models.ResponseFormat(format),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(server, cfg.Client.Timeout, log)
	log.Debug("submitting analysis", zap.String("server", server), zap.String("format", format))
	fmt.Fprintln(cmd.ErrOrStderr(), "Analyzing resume...")

	raw, err := c.Analyze(ctx, input)
	if err != nil {
		if errors.Is(err, client.ErrValidation) {
			return err
		}
		return fmt.Errorf("analysis failed: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s Analysis complete\n", color.GreenString("✓"))

	if savePath != "" {
		if err := os.WriteFile(savePath, []byte(raw), 0644); err != nil {
			return fmt.Errorf("failed to save response: %w", err)
		}
		log.Debug("raw response saved", zap.String("path", savePath))
	}

	return renderRaw(cmd.OutOrStdout(), parseModeFor(models.ResponseFormat(format)), raw)
}

func readJobDescription() (string, error) {
	if jobFile == "" {
		return jobText, nil
	}
	content, err := os.ReadFile(jobFile)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}

func parseModeFor(f models.ResponseFormat) models.ParseMode {
	if f == models.FormatStructured {
		return models.ParseModeStructured
	}
	return models.ParseModeAnswer
}
