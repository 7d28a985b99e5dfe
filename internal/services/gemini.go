package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/jobfit-analyzer/internal/config"
	"alfredoptarigan/jobfit-analyzer/internal/metrics"
)

var ErrLLMNotConfigured = errors.New("LLM API key not configured")

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type geminiService struct {
	client          *genai.Client
	modelName       string
	temperature     float32
	maxOutputTokens int32
	log             *zap.Logger
}

// NewGeminiService returns a service that fails every call with
// ErrLLMNotConfigured when no API key is set, so the server can still start.
func NewGeminiService(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (GeminiService, error) {
	if cfg.APIKey == "" {
		log.Warn("GEMINI_API_KEY is not set, analyses will fail")
		return unconfiguredGemini{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:          client,
		modelName:       cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
		log:             log.With(zap.String("model", cfg.Model)),
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxOutputTokens,
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), genConfig)
	metrics.LLMRequestDuration.WithLabelValues(g.modelName).Observe(time.Since(start).Seconds())
	if err != nil {
		g.log.Error("gemini API error", zap.Error(err))
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		g.log.Warn("gemini response has no text content", zap.Int("candidates", len(resp.Candidates)))
		return "", fmt.Errorf("no text content in response")
	}

	g.log.Debug("gemini response received", zap.Int("chars", len(text)))
	return text, nil
}

type unconfiguredGemini struct{}

func (unconfiguredGemini) GenerateText(context.Context, string) (string, error) {
	return "", ErrLLMNotConfigured
}
