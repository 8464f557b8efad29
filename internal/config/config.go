package config

import (
	"os"
	"strings"
)

// Config holds the application configuration
type Config struct {
	ServerAddress string
	Environment   string
	SessionSecret string
	BackendURL    string // external token-exchange / issue-creation service
	GitHubAPIURL  string // override for GitHub Enterprise or tests; empty means api.github.com
	GitHub        GitHubOAuthConfig
	CORS          CORSConfig
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// GitHubOAuthConfig holds GitHub OAuth app credentials. The authorization
// code exchange happens in the external backend, so the server only reports
// these (as presence booleans) via the debug endpoints.
type GitHubOAuthConfig struct {
	ClientID     string
	ClientSecret string
}

// DefaultSessionSecret is the development fallback. Production must set
// SESSION_SECRET.
const DefaultSessionSecret = "complex_password_at_least_32_characters_long"

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	// Parse CORS allowed origins from comma-separated string
	corsOrigins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080")
	allowedOrigins := parseCommaSeparatedList(corsOrigins)

	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		SessionSecret: getEnv("SESSION_SECRET", DefaultSessionSecret),
		BackendURL:    getEnv("PYTHON_API_URL", "http://127.0.0.1:8000"),
		GitHubAPIURL:  os.Getenv("GITHUB_API_URL"),
		GitHub: GitHubOAuthConfig{
			ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: allowedOrigins,
		},
	}, nil
}

// SecureCookies reports whether session cookies should carry the Secure
// attribute. Secure only in production so local HTTP development works.
func (c *Config) SecureCookies() bool {
	return c.Environment == "production"
}

// parseCommaSeparatedList splits a comma-separated string into a slice
func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return []string{}
	}

	items := strings.Split(s, ",")
	result := make([]string, 0, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}

	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
