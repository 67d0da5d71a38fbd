package config

import (
	"log"
	"os"
)

type Config struct {
	Port string

	GeminiAPIKey string
	ModelName    string
	UseMockLLM   bool // true = use mock even when a key is set

	StorageBackend string // "memory", "file" or "firestore"
	StorageFile    string
	GCPProjectID   string

	WeatherAPIKey    string
	FoursquareAPIKey string
	AmadeusAPIKey    string
	AmadeusAPISecret string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads all env vars and builds the config
func Load() *Config {
	cfg := &Config{
		Port: getEnv("ITINERA_PORT", "8080"),

		GeminiAPIKey: getEnv("ITINERA_GEMINI_API_KEY", ""),
		ModelName:    getEnv("ITINERA_MODEL_NAME", "gemini-2.0-flash"),

		StorageBackend: getEnv("ITINERA_STORAGE_BACKEND", "memory"),
		StorageFile:    getEnv("ITINERA_STORAGE_FILE", "trip_data.json"),
		GCPProjectID:   getEnv("ITINERA_GCP_PROJECT", ""),

		WeatherAPIKey:    getEnv("ITINERA_WEATHER_API_KEY", ""),
		FoursquareAPIKey: getEnv("ITINERA_FOURSQUARE_API_KEY", ""),
		AmadeusAPIKey:    getEnv("ITINERA_AMADEUS_API_KEY", ""),
		AmadeusAPISecret: getEnv("ITINERA_AMADEUS_API_SECRET", ""),
	}

	cfg.UseMockLLM = getBoolEnv("ITINERA_USE_MOCK_LLM", cfg.GeminiAPIKey == "")

	// Minimal validation
	if !cfg.UseMockLLM && cfg.GeminiAPIKey == "" {
		log.Fatal("ITINERA_GEMINI_API_KEY must be set unless ITINERA_USE_MOCK_LLM=1")
	}
	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("ITINERA_GCP_PROJECT must be set for the firestore backend")
	}

	return cfg
}
