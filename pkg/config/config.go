package config

import (
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Remote   RemoteConfig
	Display  DisplayConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

// RemoteConfig controls how the source control API is reached
type RemoteConfig struct {
	Provider      string
	GitLabBaseURL string
	GitHubBaseURL string
	PerPage       int
	Concurrency   int
	RateLimit     float64
	Timeout       time.Duration
}

type DisplayConfig struct {
	Timezone string
	GroupBy  string
}

const (
	ProviderGitLab = "gitlab"
	ProviderGitHub = "github"

	DefaultGitLabBaseURL = "https://gitlab.com/api/v4"
)

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./gcommits.db"),
		},
		Remote: RemoteConfig{
			Provider:      getEnv("PROVIDER", ProviderGitLab),
			GitLabBaseURL: getEnv("GITLAB_BASE_URL", DefaultGitLabBaseURL),
			GitHubBaseURL: getEnv("GITHUB_BASE_URL", ""),
			PerPage:       getEnvAsInt("PER_PAGE", 0),
			Concurrency:   getEnvAsInt("FETCH_CONCURRENCY", 1),
			RateLimit:     getEnvAsFloat("RATE_LIMIT", 0),
			Timeout:       getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		},
		Display: DisplayConfig{
			Timezone: getEnv("DISPLAY_TIMEZONE", "UTC"),
			GroupBy:  getEnv("GROUP_BY", "name"),
		},
	}

	return nil
}

// Location resolves the display timezone, falling back to UTC
func (c DisplayConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown DISPLAY_TIMEZONE %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("45s") or plain seconds ("45")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
