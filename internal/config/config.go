// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	JWTSecret string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Generator settings. Models are tried in order; later entries are
	// fallbacks used only on quota failures.
	GeneratorModels      []string
	GeneratorMinInterval time.Duration
	UseMockGenerator     bool

	// Job cadence.
	DecayInterval     time.Duration
	ToleranceInterval time.Duration
	PlanWeekday       time.Weekday
	RevisionWeekday   time.Weekday
}

// Load reads .env if present, then resolves every setting with a fallback.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment")
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "focus_enhancer"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		GeneratorModels: []string{
			getEnv("GENERATOR_MODEL", "claude-sonnet-4-5"),
			getEnv("GENERATOR_FALLBACK_MODEL", "claude-3-5-haiku-latest"),
		},
		GeneratorMinInterval: getDurationEnv("GENERATOR_MIN_INTERVAL", 2*time.Second),
		UseMockGenerator:     getEnv("MOCK_GENERATOR", "") == "true",

		DecayInterval:     getDurationEnv("DECAY_INTERVAL", 72*time.Hour),
		ToleranceInterval: getDurationEnv("TOLERANCE_INTERVAL", 24*time.Hour),
		PlanWeekday:       getWeekdayEnv("PLAN_WEEKDAY", time.Monday),
		RevisionWeekday:   getWeekdayEnv("REVISION_WEEKDAY", time.Sunday),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("WARN: invalid duration for %s: %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getWeekdayEnv(key string, fallback time.Weekday) time.Weekday {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 6 {
		log.Printf("WARN: invalid weekday for %s: %q, using %s", key, v, fallback)
		return fallback
	}
	return time.Weekday(n)
}
