package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultHost    = "0.0.0.0"
	DefaultPort    = 5000
	DefaultAPIRoot = "https://api.github.com"
)

// Config holds service configuration loaded from environment variables.
type Config struct {
	Host      string // bind address for the HTTP server
	Port      int    // listen port
	LogLevel  string // debug, info, warn, error
	LogFormat string // text, json

	GitHubToken   string // GITHUB_TOKEN or GH_TOKEN
	GitHubAPIRoot string // override for GitHub Enterprise / tests

	AI AICredentials
}

// AICredentials holds the chat-completion endpoint settings. Fallback
// credentials are tried after the primary endpoint rejects authentication.
type AICredentials struct {
	APIKey   string
	Endpoint string
	Model    string

	FallbackAPIKey   string
	FallbackEndpoint string
	FallbackModel    string
}

// HasPrimary reports whether primary AI credentials are configured.
func (a AICredentials) HasPrimary() bool {
	return a.APIKey != "" && a.Endpoint != ""
}

// HasFallback reports whether fallback AI credentials are configured.
func (a AICredentials) HasFallback() bool {
	return a.FallbackAPIKey != "" && a.FallbackEndpoint != ""
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

var validLogFormats = []string{"text", "json"}

// Load reads configuration from environment variables, with a .env file as
// optional supplement. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host:          getEnv("CATALYST_HOST", DefaultHost),
		Port:          DefaultPort,
		LogLevel:      getEnv("CATALYST_LOG_LEVEL", "info"),
		LogFormat:     getEnv("CATALYST_LOG_FORMAT", "text"),
		GitHubToken:   githubToken(),
		GitHubAPIRoot: strings.TrimRight(getEnv("GITHUB_API_ROOT", DefaultAPIRoot), "/"),
		AI: AICredentials{
			APIKey:           os.Getenv("AI_API_KEY"),
			Endpoint:         os.Getenv("AI_API_ENDPOINT"),
			Model:            os.Getenv("AI_MODEL"),
			FallbackAPIKey:   os.Getenv("OPENAI_API_KEY"),
			FallbackEndpoint: os.Getenv("OPENAI_API_ENDPOINT"),
			FallbackModel:    os.Getenv("OPENAI_MODEL"),
		},
	}

	if v := os.Getenv("CATALYST_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid CATALYST_PORT %q: must be an integer between 1 and 65535", v)
		}
		cfg.Port = port
	}

	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid CATALYST_LOG_LEVEL %q: must be one of %v", cfg.LogLevel, validLogLevels)
	}
	if !slices.Contains(validLogFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid CATALYST_LOG_FORMAT %q: must be one of %v", cfg.LogFormat, validLogFormats)
	}

	return cfg, nil
}

// Addr returns the host:port pair the server should listen on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// githubToken resolves the GitHub token, preferring GITHUB_TOKEN over GH_TOKEN.
func githubToken() string {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		return v
	}
	return os.Getenv("GH_TOKEN")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
