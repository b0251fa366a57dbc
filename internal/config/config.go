package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath            string
	RepoRoot          string
	DefaultBranch     string
	SeedCommit        bool
	SystemAuthorName  string
	SystemAuthorEmail string
	APIPort           string
	LogLevel          slog.Level
	LogFormat         string
	CommitListLimit   int
	CommitListMax     int
}

// FileConfig is the optional TOML configuration file. Any value set here is
// used as the default for the matching environment variable.
type FileConfig struct {
	DBPath            string `toml:"db_path"`
	RepoRoot          string `toml:"repo_root"`
	DefaultBranch     string `toml:"default_branch"`
	SeedCommit        *bool  `toml:"seed_commit"`
	SystemAuthorName  string `toml:"system_author_name"`
	SystemAuthorEmail string `toml:"system_author_email"`
	APIPort           string `toml:"api_port"`
	LogLevel          string `toml:"log_level"`
	LogFormat         string `toml:"log_format"`
	CommitListLimit   int    `toml:"commit_list_limit"`
	CommitListMax     int    `toml:"commit_list_max"`
}

var branchNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,99}$`)

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// If CONFIG_FILE points at a TOML file, its values become the defaults.
// Environment variables already set take precedence over .env file and TOML values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	// Walk up to find a project-level .env (where go.mod usually lives)
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	var file FileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fc, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		file = *fc
	}

	cfg := &Config{
		DBPath:            getEnv("DB_PATH", orDefault(file.DBPath, "./data/notebooks.db")),
		RepoRoot:          getEnv("REPO_ROOT", orDefault(file.RepoRoot, "./data/repos")),
		DefaultBranch:     getEnv("DEFAULT_BRANCH", orDefault(file.DefaultBranch, "main")),
		SystemAuthorName:  getEnv("SYSTEM_AUTHOR_NAME", orDefault(file.SystemAuthorName, "Notebook Bot")),
		SystemAuthorEmail: getEnv("SYSTEM_AUTHOR_EMAIL", orDefault(file.SystemAuthorEmail, "bot@notebooks.local")),
		APIPort:           getEnv("API_PORT", orDefault(file.APIPort, "9000")),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", orDefault(file.LogFormat, "text"))),
	}

	seedDefault := "false"
	if file.SeedCommit != nil && *file.SeedCommit {
		seedDefault = "true"
	}
	cfg.SeedCommit, err = strconv.ParseBool(getEnv("SEED_COMMIT", seedDefault))
	if err != nil {
		return nil, fmt.Errorf("SEED_COMMIT must be a boolean: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", orDefault(file.LogLevel, "info")))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	cfg.CommitListLimit, err = getEnvInt("COMMIT_LIST_LIMIT", orDefaultInt(file.CommitListLimit, 50))
	if err != nil {
		return nil, err
	}
	cfg.CommitListMax, err = getEnvInt("COMMIT_LIST_MAX", orDefaultInt(file.CommitListMax, 500))
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Create data directories if they don't exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.RepoRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create repository root: %w", err)
	}

	return cfg, nil
}

// Validate checks the invariants Load relies on.
func (c *Config) Validate() error {
	if !branchNamePattern.MatchString(c.DefaultBranch) || strings.Contains(c.DefaultBranch, "..") {
		return fmt.Errorf("DEFAULT_BRANCH %q is not a valid branch name", c.DefaultBranch)
	}
	if c.SystemAuthorEmail == "" || !strings.Contains(c.SystemAuthorEmail, "@") {
		return fmt.Errorf("SYSTEM_AUTHOR_EMAIL must be an email address")
	}
	if c.CommitListLimit <= 0 {
		return fmt.Errorf("COMMIT_LIST_LIMIT must be greater than 0")
	}
	if c.CommitListMax < c.CommitListLimit {
		return fmt.Errorf("COMMIT_LIST_MAX must be at least COMMIT_LIST_LIMIT")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\"")
	}
	return nil
}

// ReadFile decodes a TOML configuration file.
func ReadFile(path string) (*FileConfig, error) {
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return &fc, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orDefaultInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
