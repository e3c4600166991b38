package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the core's tunable defaults plus the thin HTTP layer's
// settings. Config itself is immutable once loaded; a per-request
// optimize.Config is derived from it and overridden by request parameters.
type Config struct {
	Port string

	DefaultQuality    int
	StripMetadata     bool
	ProgressiveJPEG   bool
	PNGLossy          bool
	MaxUploadBytes    int64
	ToolTimeout       time.Duration
	GateSlots         int
	GateQueueCapacity int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Bucket          string
	R2PublicBaseURL   string
	R2S3Endpoint      string
}

func Load() *Config {
	// Try to load a .env file from the project root, then the current
	// directory; either, both, or neither may exist.
	envPath := filepath.Join("..", ".env")
	godotenv.Load(envPath)
	godotenv.Load(".env")

	return &Config{
		Port: getEnv("PORT", "8080"),

		DefaultQuality:    getEnvInt("DEFAULT_QUALITY", 80),
		StripMetadata:     getEnvBool("STRIP_METADATA", true),
		ProgressiveJPEG:   getEnvBool("PROGRESSIVE_JPEG", true),
		PNGLossy:          getEnvBool("PNG_LOSSY", true),
		MaxUploadBytes:    getEnvInt64("MAX_UPLOAD_BYTES", 30*1024*1024),
		ToolTimeout:       getEnvDuration("TOOL_TIMEOUT", 60*time.Second),
		GateSlots:         getEnvInt("GATE_SLOTS", 4),
		GateQueueCapacity: getEnvInt("GATE_QUEUE_CAPACITY", 32),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:          getEnv("R2_BUCKET", "imgopt-assets"),
		R2PublicBaseURL:   getEnv("R2_PUBLIC_BASE_URL", ""),
		R2S3Endpoint:      getEnv("R2_S3_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
