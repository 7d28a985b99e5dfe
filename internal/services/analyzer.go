package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/jobfit-analyzer/internal/models"
)

// ErrResumeParse wraps every failure to read text out of the uploaded resume.
var ErrResumeParse = errors.New("failed to parse resume")

type AnalyzerService interface {
	Analyze(ctx context.Context, input AnalysisInput) (*AnalysisResult, error)
}

type AnalysisInput struct {
	RequestID      string
	ResumePath     string
	JobDescription string
	Tone           models.Tone
	Format         models.ResponseFormat
}

type AnalysisResult struct {
	// Raw is the model reply exactly as the client should receive it.
	Raw       string
	Format    models.ResponseFormat
	PageCount int
}

type analyzerService struct {
	geminiService GeminiService
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	log           *zap.Logger
}

func NewAnalyzerService(
	geminiService GeminiService,
	pdfParser PDFParserService,
	log *zap.Logger,
) AnalyzerService {
	return &analyzerService{
		geminiService: geminiService,
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(),
		log:           log,
	}
}

func (a *analyzerService) Analyze(ctx context.Context, input AnalysisInput) (*AnalysisResult, error) {
	log := a.log.With(zap.String("request_id", input.RequestID))

	format := input.Format
	if format == "" {
		format = models.FormatMarkdown
	}

	log.Info("parsing resume", zap.String("path", input.ResumePath))
	content, err := a.pdfParser.ExtractText(input.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResumeParse, err)
	}

	prompt := a.promptBuilder.BuildAnalysisPrompt(content.Text, input.JobDescription, input.Tone, format)
	log.Debug("analysis prompt built",
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("pages", content.PageCount),
		zap.String("format", string(format)),
	)

	raw, err := a.geminiService.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	log.Info("analysis completed", zap.Int("response_chars", len(raw)))

	return &AnalysisResult{
		Raw:       raw,
		Format:    format,
		PageCount: content.PageCount,
	}, nil
}
