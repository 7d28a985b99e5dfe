package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"alfredoptarigan/jobfit-analyzer/internal/config"
	"alfredoptarigan/jobfit-analyzer/internal/handlers"
	applog "alfredoptarigan/jobfit-analyzer/internal/logger"
	"alfredoptarigan/jobfit-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := applog.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()
	log.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("❌ Failed to create upload directory", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService()

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(context.Background(), cfg.Gemini, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
	}
	log.Info("✅ Gemini AI initialized", zap.String("model", cfg.Gemini.Model))

	analyzerService := services.NewAnalyzerService(geminiService, pdfParser, log)
	log.Info("✅ Services initialized successfully")

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		analyzerService,
		storageService,
		cfg.Storage.MaxFileSize,
		log,
	)
	parseHandler := handlers.NewParseHandler()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "JobFit Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,

		EnablePrintRoutes: cfg.IsDevelopment(),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: handlers.RequestIDHeader,
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/parse", parseHandler.HandleParse)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "JobFit Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"POST /api/v1/parse",
				"GET /api/v1/health",
				"GET /metrics",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
