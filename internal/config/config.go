package config

import (
	"os"
	"path/filepath"
)

// Config holds all configuration values
type Config struct {
	Database DatabaseConfig
	GitHub   GitHubConfig
	Log      LogConfig
}

// DatabaseConfig holds embedded store configuration
type DatabaseConfig struct {
	Path string
}

// GitHubConfig holds GitHub API configuration
type GitHubConfig struct {
	Token       string
	ProfileRepo string
	WalletFile  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Env string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("GITCIRCLES_DB_PATH", defaultDatabasePath()),
		},
		GitHub: GitHubConfig{
			Token:       getEnv("GITHUB_TOKEN", ""),
			ProfileRepo: getEnv("GITCIRCLES_PROFILE_REPO", "gitcircles-profile"),
			WalletFile:  getEnv("GITCIRCLES_WALLET_FILE", "P2PK.pub"),
		},
		Log: LogConfig{
			Env: getEnv("GITCIRCLES_ENV", "production"),
		},
	}
}

// defaultDatabasePath resolves $HOME/.gitcircles/db, falling back to a
// relative path when the home directory is unknown.
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gitcircles", "db")
	}
	return filepath.Join(home, ".gitcircles", "db")
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
