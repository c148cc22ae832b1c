package cli

import (
	"os"

	"github.com/JMaramara/boardgame/internal/client"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BGCAT_SERVER", "http://localhost:8080"),
		TokenFile: getEnvOrDefault("BGCAT_TOKEN_FILE", client.DefaultTokenPath()),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
