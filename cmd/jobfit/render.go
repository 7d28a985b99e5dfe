package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/jobfit-analyzer/internal/feedback"
	"alfredoptarigan/jobfit-analyzer/internal/models"
	"alfredoptarigan/jobfit-analyzer/internal/render"
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderMode string

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render a saved raw analysis response",
	Long: `Render a raw response saved with "jobfit analyze --save", without
contacting the server. Reads standard input when the file is "-" or omitted.

Example:
  jobfit render response.txt
  jobfit render --mode structured response.txt
  cat response.txt | jobfit render --mode structured`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderMode, "mode", "m", string(models.ParseModeAnswer), "Parser to use: answer or structured")
}

func runRender(cmd *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	return renderRaw(cmd.OutOrStdout(), models.ParseMode(renderMode), string(raw))
}

// renderRaw runs exactly one of the two parsers on raw.
func renderRaw(w io.Writer, mode models.ParseMode, raw string) error {
	r := render.New(w)

	switch mode {
	case models.ParseModeAnswer:
		r.Answer(raw)
	case models.ParseModeStructured:
		r.Feedback(feedback.Parse(raw))
	default:
		return fmt.Errorf("unknown mode %q: must be one of: %s, %s", mode, models.ParseModeAnswer, models.ParseModeStructured)
	}

	return nil
}
