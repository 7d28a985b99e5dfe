package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Storage StorageConfig
	Log     LogConfig
	Client  ClientConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins string
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type LogConfig struct {
	Level  string
	Format string
}

type ClientConfig struct {
	ServerURL string
	Timeout   time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			Env:         getEnv("ENV", "development"),
			CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:     getEnvAsFloat32("GEMINI_TEMPERATURE", 0.3),
			MaxOutputTokens: int32(getEnvAsInt("GEMINI_MAX_TOKENS", 1500)),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "console")),
		},
		Client: ClientConfig{
			ServerURL: strings.TrimRight(getEnv("JOBFIT_SERVER_URL", "http://localhost:8000"), "/"),
			Timeout:   getEnvAsDuration("JOBFIT_TIMEOUT", "2m"),
		},
	}
}

// IsDevelopment reports whether the server runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
