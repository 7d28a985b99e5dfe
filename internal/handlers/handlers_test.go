package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"alfredoptarigan/jobfit-analyzer/internal/feedback"
	"alfredoptarigan/jobfit-analyzer/internal/models"
	"alfredoptarigan/jobfit-analyzer/internal/services"
)

// ==========================
// Test Helpers
// ==========================

type fakeAnalyzer struct {
	result *services.AnalysisResult
	err    error
	got    services.AnalysisInput
	called bool
}

func (f *fakeAnalyzer) Analyze(_ context.Context, input services.AnalysisInput) (*services.AnalysisResult, error) {
	f.called = true
	f.got = input
	if _, err := os.Stat(input.ResumePath); err != nil {
		return nil, fmt.Errorf("scratch file missing during analysis: %w", err)
	}
	return f.result, f.err
}

type analyzeForm struct {
	filename       string
	content        []byte
	jobDescription string
	tone           string
	format         string
}

func validForm() analyzeForm {
	return analyzeForm{
		filename:       "resume.pdf",
		content:        []byte("%PDF-1.4 fake"),
		jobDescription: "Senior Go engineer with Kubernetes experience",
		tone:           "professional",
	}
}

func (f analyzeForm) request(t *testing.T) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if f.filename != "" {
		part, err := w.CreateFormFile("resume", f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("job_description", f.jobDescription))
	require.NoError(t, w.WriteField("tone", f.tone))
	if f.format != "" {
		require.NoError(t, w.WriteField("format", f.format))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func setupApp(t *testing.T, analyzer services.AnalyzerService, maxFileSize int64) (*fiber.App, string) {
	t.Helper()

	uploadDir := t.TempDir()
	storage := services.NewStorageService(uploadDir)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	api := app.Group("/api/v1")
	api.Post("/analyze", NewAnalyzeHandler(analyzer, storage, maxFileSize, zaptest.NewLogger(t)).HandleAnalyze)
	api.Post("/parse", NewParseHandler().HandleParse)

	return app, uploadDir
}

func readError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	msg, _ := body["error"].(string)
	return msg
}

// ==========================
// Analyze
// ==========================

func TestHandleAnalyze_Success(t *testing.T) {
	raw := "<answer>\n## Overall Assessment\nStrong match\n</answer>"
	analyzer := &fakeAnalyzer{result: &services.AnalysisResult{Raw: raw, Format: models.FormatMarkdown}}
	app, uploadDir := setupApp(t, analyzer, 1<<20)

	resp, err := app.Test(validForm().request(t), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMETextPlain))
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, raw, string(body))

	assert.Equal(t, models.ToneProfessional, analyzer.got.Tone)
	assert.Equal(t, models.FormatMarkdown, analyzer.got.Format)
	assert.Equal(t, "Senior Go engineer with Kubernetes experience", analyzer.got.JobDescription)
	assert.Equal(t, resp.Header.Get(RequestIDHeader), analyzer.got.RequestID)

	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch resume should be removed")
}

func TestHandleAnalyze_StructuredFormat(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &services.AnalysisResult{Raw: "- score_breakdown:", Format: models.FormatStructured}}
	app, _ := setupApp(t, analyzer, 1<<20)

	form := validForm()
	form.format = "structured"
	resp, err := app.Test(form.request(t), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.FormatStructured, analyzer.got.Format)
}

func TestHandleAnalyze_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(f *analyzeForm)
		maxFileSize int64
		wantError   string
	}{
		{
			name:      "missing file",
			mutate:    func(f *analyzeForm) { f.filename = "" },
			wantError: "resume file is required",
		},
		{
			name:      "short job description",
			mutate:    func(f *analyzeForm) { f.jobDescription = "Go dev" },
			wantError: "job_description must be at least 10 characters",
		},
		{
			name:      "unknown tone",
			mutate:    func(f *analyzeForm) { f.tone = "sarcastic" },
			wantError: "tone must be one of: professional, friendly, critical",
		},
		{
			name:      "unknown format",
			mutate:    func(f *analyzeForm) { f.format = "html" },
			wantError: "format must be one of: markdown, structured",
		},
		{
			name:      "not a pdf",
			mutate:    func(f *analyzeForm) { f.filename = "resume.docx" },
			wantError: "Please upload a PDF file",
		},
		{
			name:        "file too large",
			mutate:      func(f *analyzeForm) {},
			maxFileSize: 4,
			wantError:   "Resume file too large. Max size: 4 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maxFileSize := tt.maxFileSize
			if maxFileSize == 0 {
				maxFileSize = 1 << 20
			}
			analyzer := &fakeAnalyzer{}
			app, _ := setupApp(t, analyzer, maxFileSize)

			form := validForm()
			tt.mutate(&form)
			resp, err := app.Test(form.request(t), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.wantError, readError(t, resp))
			assert.False(t, analyzer.called)
		})
	}
}

func TestHandleAnalyze_AnalysisErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "pdf without text",
			err:        fmt.Errorf("%w: %w", services.ErrResumeParse, services.ErrNoPDFText),
			wantStatus: fiber.StatusBadRequest,
			wantError:  "Could not extract text from the PDF.",
		},
		{
			name:       "unreadable pdf",
			err:        fmt.Errorf("%w: %w", services.ErrResumeParse, errors.New("malformed xref")),
			wantStatus: fiber.StatusInternalServerError,
			wantError:  "Error processing the PDF file.",
		},
		{
			name:       "llm not configured",
			err:        fmt.Errorf("failed to generate analysis: %w", services.ErrLLMNotConfigured),
			wantStatus: fiber.StatusInternalServerError,
			wantError:  "LLM API key not configured.",
		},
		{
			name:       "llm failure",
			err:        errors.New("quota exceeded"),
			wantStatus: fiber.StatusInternalServerError,
			wantError:  "Analysis failed: quota exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, uploadDir := setupApp(t, &fakeAnalyzer{err: tt.err}, 1<<20)

			resp, err := app.Test(validForm().request(t), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, readError(t, resp))

			entries, err := os.ReadDir(uploadDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

// ==========================
// Parse
// ==========================

func postParse(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHandleParse_Structured(t *testing.T) {
	app, _ := setupApp(t, &fakeAnalyzer{}, 1<<20)
	raw := "- score_breakdown:\n- overall_score: 85\n- keyword_gap:\n- missing_keywords: 'Python', 'Docker'\n- ats_feedback:\n- ATS_compatible: True\n- issues: None"

	payload, err := json.Marshal(models.ParseRequest{Raw: raw, Mode: models.ParseModeStructured})
	require.NoError(t, err)
	resp := postParse(t, app, string(payload))
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got feedback.ParsedFeedback
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, feedback.Parse(raw), got)
}

func TestHandleParse_Answer(t *testing.T) {
	app, _ := setupApp(t, &fakeAnalyzer{}, 1<<20)
	raw := "<answer>## Strengths\nGo</answer>"

	payload, err := json.Marshal(models.ParseRequest{Raw: raw, Mode: models.ParseModeAnswer})
	require.NoError(t, err)
	resp := postParse(t, app, string(payload))
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.ParseAnswerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, feedback.ExtractAnswer(raw), got.Text)
}

func TestHandleParse_BadRequests(t *testing.T) {
	app, _ := setupApp(t, &fakeAnalyzer{}, 1<<20)

	resp := postParse(t, app, `{"raw": "x", "mode": "yaml"}`)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "mode must be one of: answer, structured", readError(t, resp))

	resp2 := postParse(t, app, `{not json`)
	defer resp2.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp2.StatusCode)
	assert.Equal(t, "Invalid request payload", readError(t, resp2))
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "short and stout", readError(t, resp))

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp2.StatusCode)
}
