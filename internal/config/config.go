package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	// Database selection. DatabaseType chooses the dialect; sqlite uses
	// DatabasePath, postgres and mysql use DatabaseURL.
	DatabaseType string
	DatabaseURL  string
	DatabasePath string

	MigrationsPath  string
	TemplatesPath   string
	StaticFilesPath string

	// Remote workbook locations and the CDN prefix for game media.
	QuizDataURL  string
	UnitDataURL  string
	AssetBaseURL string

	// SessionSecret signs the anonymous player token.
	SessionSecret   string
	SessionDuration time.Duration

	// Tutorial dismissal cookies. The builder tutorial stays dismissed for
	// a month, the shadow one for a day.
	BuilderTutorialTTL time.Duration
	ShadowTutorialTTL  time.Duration

	// Minimum duration of correct-answer feedback per game.
	BuilderFeedbackDelay time.Duration
	ShadowFeedbackDelay  time.Duration
}

// Load reads configuration from the environment with sensible defaults. A
// .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Skipping .env file: %v", err)
	}

	return &Config{
		ServerPort: getEnv("PORT", "8080"),

		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:  getEnv("DB_URL", ""),
		DatabasePath: getEnv("DB_PATH", "./phonicscode.db"),

		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),

		QuizDataURL:  getEnv("QUIZ_DATA_URL", ""),
		UnitDataURL:  getEnv("UNIT_DATA_URL", ""),
		AssetBaseURL: getEnv("ASSET_BASE_URL", ""),

		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionDuration: getDuration("SESSION_DURATION_HOURS", 24) * time.Hour,

		BuilderTutorialTTL: getDuration("BUILDER_TUTORIAL_TTL_HOURS", 30*24) * time.Hour,
		ShadowTutorialTTL:  getDuration("SHADOW_TUTORIAL_TTL_HOURS", 24) * time.Hour,

		BuilderFeedbackDelay: 1000 * time.Millisecond,
		ShadowFeedbackDelay:  500 * time.Millisecond,
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads an integer environment variable as a count of base units
func getDuration(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(defaultValue)
}
