package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment    string
	LogLevel       string
	LogDir         string
	Debug          bool
	OllamaHost     string
	OllamaModel    string
	RequestTimeout time.Duration
	MaxPDFPages    int
	ChunkSize      int
	HTTPPort       string
}

var isTest bool

func init() {
	isTest = os.Getenv("GO_ENVIRONMENT") == "test"
	if !isTest {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Error loading .env file:", err)
		}
	}
}

func Load() Config {
	return Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		LogDir:         getEnv("LOG_DIR", ""),
		Debug:          getEnv("DEBUG", "false") == "true",
		OllamaHost:     getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:    getEnv("OLLAMA_MODEL", "llama2:7b"),
		RequestTimeout: time.Duration(getEnvAsInt("OLLAMA_REQUEST_TIMEOUT", 120)) * time.Second,
		MaxPDFPages:    getEnvAsInt("MAX_PDF_PAGES", 10),
		ChunkSize:      getEnvAsInt("CHUNK_SIZE", 2000),
		HTTPPort:       getEnv("HTTP_PORT", "8087"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
