package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/jobfit-analyzer/internal/metrics"
	"alfredoptarigan/jobfit-analyzer/internal/models"
	"alfredoptarigan/jobfit-analyzer/internal/services"
)

const RequestIDHeader = "X-Request-ID"

type AnalyzeHandler struct {
	analyzer       services.AnalyzerService
	storageService services.StorageService
	maxFileSize    int64
	log            *zap.Logger
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	storageService services.StorageService,
	maxFileSize int64,
	log *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:       analyzer,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		log:            log,
	}
}

// HandleAnalyze handles POST /analyze. It answers with the raw model reply
// as text/plain; rendering is left to the caller.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	requestID := uuid.New().String()
	c.Set(RequestIDHeader, requestID)
	log := h.log.With(zap.String("request_id", requestID))

	req := models.AnalyzeRequest{
		JobDescription: c.FormValue("job_description"),
		Tone:           models.Tone(c.FormValue("tone")),
		Format:         models.ResponseFormat(c.FormValue("format")),
	}
	format := req.ResponseFormatOrDefault()
	start := time.Now()

	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if resumeFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filePath, err := h.storageService.SaveFile(resumeFile)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFileType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please upload a PDF file",
			})
		}
		log.Error("failed to store resume", zap.Error(err))
		metrics.AnalysesTotal.WithLabelValues(string(format), metrics.OutcomeServerError).Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing the PDF file.",
		})
	}
	defer func() {
		if err := h.storageService.DeleteFile(filePath); err != nil {
			log.Warn("failed to remove scratch resume", zap.Error(err))
		}
	}()

	result, err := h.analyzer.Analyze(c.UserContext(), services.AnalysisInput{
		RequestID:      requestID,
		ResumePath:     filePath,
		JobDescription: req.JobDescription,
		Tone:           req.Tone,
		Format:         format,
	})
	metrics.AnalysisDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	if err != nil {
		return h.analysisError(c, log, format, err)
	}

	metrics.AnalysesTotal.WithLabelValues(string(format), metrics.OutcomeSuccess).Inc()

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(result.Raw)
}

func (h *AnalyzeHandler) analysisError(c *fiber.Ctx, log *zap.Logger, format models.ResponseFormat, err error) error {
	switch {
	case errors.Is(err, services.ErrNoPDFText):
		metrics.AnalysesTotal.WithLabelValues(string(format), metrics.OutcomeInvalidPDF).Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not extract text from the PDF.",
		})
	case errors.Is(err, services.ErrLLMNotConfigured):
		log.Error("analysis requested without LLM credentials")
		metrics.AnalysesTotal.WithLabelValues(string(format), metrics.OutcomeServerError).Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "LLM API key not configured.",
		})
	case errors.Is(err, services.ErrResumeParse):
		metrics.AnalysesTotal.WithLabelValues(string(format), metrics.OutcomeInvalidPDF).Inc()
		log.Error("failed to parse resume", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing the PDF file.",
		})
	default:
		log.Error("analysis failed", zap.Error(err))
		metrics.AnalysesTotal.WithLabelValues(string(format), metrics.OutcomeLLMError).Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Analysis failed: %v", err),
		})
	}
}
