package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/jobfit-analyzer/internal/models"
)

var (
	ErrRequestInFlight = errors.New("an analysis request is already in flight")
	ErrValidation      = errors.New("invalid analysis request")
)

const analyzePath = "/api/v1/analyze"

// APIError is a non-2xx answer from the analysis server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Error: %d", e.StatusCode)
	}
	return fmt.Sprintf("Error: %d: %s", e.StatusCode, e.Message)
}

type AnalyzeInput struct {
	ResumePath     string
	JobDescription string
	Tone           models.Tone
	Format         models.ResponseFormat
}

// Client submits analyses to the server. It allows at most one request in
// flight; a second call made meanwhile fails with ErrRequestInFlight.
type Client struct {
	baseURL    string
	httpClient *http.Client
	inFlight   atomic.Bool
	log        *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Validate runs the form checks that happen before anything is sent.
func Validate(input AnalyzeInput) error {
	if strings.TrimSpace(input.ResumePath) == "" {
		return fmt.Errorf("%w: please upload a resume PDF file", ErrValidation)
	}
	if strings.ToLower(filepath.Ext(input.ResumePath)) != ".pdf" {
		return fmt.Errorf("%w: please upload a PDF file", ErrValidation)
	}
	info, err := os.Stat(input.ResumePath)
	if err != nil {
		return fmt.Errorf("%w: cannot read resume: %v", ErrValidation, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: resume path is a directory", ErrValidation)
	}

	req := models.AnalyzeRequest{
		JobDescription: input.JobDescription,
		Tone:           input.Tone,
		Format:         input.Format,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return nil
}

// Analyze validates input, posts it and returns the raw response text.
func (c *Client) Analyze(ctx context.Context, input AnalyzeInput) (string, error) {
	if err := Validate(input); err != nil {
		return "", err
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return "", ErrRequestInFlight
	}
	defer c.inFlight.Store(false)

	body, contentType, err := buildForm(input)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, body)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach analysis server: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("analysis response received",
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", resp.Header.Get("X-Request-ID")),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: errorMessage(payload)}
	}

	return string(payload), nil
}

// InFlight reports whether a request is currently pending.
func (c *Client) InFlight() bool {
	return c.inFlight.Load()
}

func buildForm(input AnalyzeInput) (io.Reader, string, error) {
	f, err := os.Open(input.ResumePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open resume: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("resume", filepath.Base(input.ResumePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("failed to copy resume: %w", err)
	}

	fields := map[string]string{
		"job_description": input.JobDescription,
		"tone":            string(input.Tone),
	}
	if input.Format != "" {
		fields["format"] = string(input.Format)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return body, w.FormDataContentType(), nil
}

func errorMessage(payload []byte) string {
	var body models.ErrorResponse
	if err := json.Unmarshal(payload, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(payload))
}
