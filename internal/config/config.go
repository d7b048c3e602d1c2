// internal/config/config.go
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment names
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config stores the application configuration
type Config struct {
	Port          string
	ExercisesFile string
	StaticDir     string
	LogDir        string
	Environment   string
	DebugMode     bool
}

// Load reads configuration from the environment. A .env file is honored
// when present.
func Load() (*Config, error) {
	godotenv.Load()

	env := getEnv("APP_ENV", EnvDevelopment)

	// The containerized deployment keeps its data on a mounted volume
	defaultExercisesFile := "data/exercises.json"
	if env == EnvProduction {
		defaultExercisesFile = "/data/exercises.json"
	}

	config := &Config{
		Port:          getEnv("PORT", "3000"),
		ExercisesFile: getEnv("EXERCISES_FILE", defaultExercisesFile),
		StaticDir:     getEnv("STATIC_DIR", "web/static"),
		LogDir:        getEnv("LOG_DIR", "logs"),
		Environment:   env,
		DebugMode:     getEnvBool("DEBUG", false),
	}

	return config, nil
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool returns a boolean environment variable. "true", "1" and "yes"
// count as true.
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}
