package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	APIKey    string
	KeyFile   string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("HVZ_SERVER", "http://localhost:8080"),
		APIKey:    os.Getenv("HVZ_API_KEY"),
		KeyFile:   getEnvOrDefault("HVZ_API_KEY_FILE", defaultKeyFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadKey loads the API key from file if not already set
func (c *Config) LoadKey() error {
	if c.APIKey != "" {
		return nil
	}

	data, err := os.ReadFile(c.KeyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // unauthenticated commands still work
		}
		return err
	}

	c.APIKey = strings.TrimSpace(string(data))
	return nil
}

func defaultKeyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hvzctl/key"
	}
	return filepath.Join(home, ".hvzctl", "key")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
