package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every externally tunable setting. Loaded once at startup
// and injected; nothing reads the environment after that.
type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	EmbedderURL     string
	EmbeddingModel  string
	EmbedderTimeout int

	CompletionURL     string
	CompletionModels  []string
	CompletionTimeout int
	Temperature       float64
	MaxTokens         int
	CompletionRPS     float64

	StorageSignerURL     string
	StorageSignerTimeout int

	SimilarityThreshold float64
	PerVariantLimit     int
	FallbackChunkLimit  int
	DomainContext       string

	ModelCostOverrides map[string]float64

	DisallowedPatterns []string
	OffTopicKeywords   []string

	IncludeDebugPrompts bool
	OTelEnabled         bool
}

// Load reads configuration from the environment with sensible defaults.
func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),

		DBHost:     getEnv("DB_HOST", "qa-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "qa_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "qa_password"),
		DBName:     getEnv("DB_NAME", "qa_db"),

		EmbedderURL:     getEnv("EMBEDDER_URL", "http://ollama:11434"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "embeddinggemma"),
		EmbedderTimeout: getEnvInt("EMBEDDER_TIMEOUT", 30),

		CompletionURL:     getEnv("COMPLETION_URL", "http://ollama:11434"),
		CompletionModels:  getEnvList("COMPLETION_MODELS", "qwen2.5:7b,llama3.1:8b,mistral:7b"),
		CompletionTimeout: getEnvInt("COMPLETION_TIMEOUT", 120),
		Temperature:       getEnvFloat("COMPLETION_TEMPERATURE", 0.2),
		MaxTokens:         getEnvInt("COMPLETION_MAX_TOKENS", 1024),
		CompletionRPS:     getEnvFloat("COMPLETION_RPS", 0),

		StorageSignerURL:     getEnv("STORAGE_SIGNER_URL", "http://storage-hub:9030"),
		StorageSignerTimeout: getEnvInt("STORAGE_SIGNER_TIMEOUT", 10),

		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.30),
		PerVariantLimit:     getEnvInt("PER_VARIANT_LIMIT", 12),
		FallbackChunkLimit:  getEnvInt("FALLBACK_CHUNK_LIMIT", 3),
		DomainContext:       getEnv("DOMAIN_CONTEXT", "the document library"),

		ModelCostOverrides: getEnvRateMap("MODEL_COST_OVERRIDES"),

		DisallowedPatterns: getEnvList("DISALLOWED_PATTERNS", ""),
		OffTopicKeywords:   getEnvList("OFF_TOPIC_KEYWORDS", ""),

		IncludeDebugPrompts: getEnvBool("INCLUDE_DEBUG_PROMPTS", false),
		OTelEnabled:         getEnvBool("OTEL_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvRateMap parses comma-separated model=rate pairs, e.g.
// "gpt-4o=5.00,mistral:7b=0". Malformed entries are dropped.
func getEnvRateMap(key string) map[string]float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	rates := make(map[string]float64)
	for _, part := range strings.Split(raw, ",") {
		model, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || model == "" {
			continue
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || rate < 0 {
			continue
		}
		rates[strings.TrimSpace(model)] = rate
	}
	if len(rates) == 0 {
		return nil
	}
	return rates
}

// getEnvList parses a comma-separated value, dropping empty entries.
func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
