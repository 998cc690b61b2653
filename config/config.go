package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SurveyCSVPath string
	SpecCSVPath   string
	ProfilePath   string

	ServerAddress string
	DefaultTopN   int

	Debug bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SurveyCSVPath: getEnv("SURVEY_CSV_PATH", "./data/input/survey.csv"),
		SpecCSVPath:   getEnv("SPEC_CSV_PATH", "./data/input/vehicle_specs.csv"),
		ProfilePath:   getEnv("ANALYSIS_PROFILE_PATH", ""),

		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		DefaultTopN:   getEnvInt("DEFAULT_TOP_N", 20),

		Debug: getEnvBool("DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
