package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"CONFIG_FILE", "DB_PATH", "REPO_ROOT", "DEFAULT_BRANCH", "SEED_COMMIT",
	"SYSTEM_AUTHOR_NAME", "SYSTEM_AUTHOR_EMAIL", "API_PORT",
	"LOG_LEVEL", "LOG_FORMAT", "COMMIT_LIST_LIMIT", "COMMIT_LIST_MAX",
}

// isolateEnv clears every config variable and moves into an empty directory so
// that no stray .env file is picked up. Everything is restored on cleanup.
func isolateEnv(t *testing.T) string {
	t.Helper()

	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}

	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	_ = os.Chdir(tmpDir)

	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	})
	return tmpDir
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(t *testing.T, dir string)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name:     "default values",
			setupEnv: func(t *testing.T, dir string) {},
			checkConfig: func(cfg *Config) bool {
				return cfg.DBPath == "./data/notebooks.db" &&
					cfg.RepoRoot == "./data/repos" &&
					cfg.DefaultBranch == "main" &&
					!cfg.SeedCommit &&
					cfg.SystemAuthorName == "Notebook Bot" &&
					cfg.SystemAuthorEmail == "bot@notebooks.local" &&
					cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					cfg.CommitListLimit == 50 &&
					cfg.CommitListMax == 500
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T, dir string) {
				setEnv("DB_PATH", filepath.Join(dir, "custom", "index.db"))
				setEnv("REPO_ROOT", filepath.Join(dir, "repos"))
				setEnv("DEFAULT_BRANCH", "trunk")
				setEnv("SEED_COMMIT", "true")
				setEnv("LOG_LEVEL", "debug")
				setEnv("LOG_FORMAT", "JSON")
				setEnv("COMMIT_LIST_LIMIT", "10")
				setEnv("COMMIT_LIST_MAX", "20")
			},
			checkConfig: func(cfg *Config) bool {
				return filepath.Base(cfg.DBPath) == "index.db" &&
					cfg.DefaultBranch == "trunk" &&
					cfg.SeedCommit &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.CommitListLimit == 10 &&
					cfg.CommitListMax == 20
			},
		},
		{
			name: "invalid branch name",
			setupEnv: func(t *testing.T, dir string) {
				setEnv("DEFAULT_BRANCH", "bad..name")
			},
			wantErr: true,
		},
		{
			name: "invalid SEED_COMMIT",
			setupEnv: func(t *testing.T, dir string) {
				setEnv("SEED_COMMIT", "sometimes")
			},
			wantErr: true,
		},
		{
			name: "invalid COMMIT_LIST_LIMIT",
			setupEnv: func(t *testing.T, dir string) {
				setEnv("COMMIT_LIST_LIMIT", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero COMMIT_LIST_LIMIT",
			setupEnv: func(t *testing.T, dir string) {
				setEnv("COMMIT_LIST_LIMIT", "0")
			},
			wantErr: true,
		},
		{
			name: "negative COMMIT_LIST_LIMIT",
			setupEnv: func(t *testing.T, dir string) {
				setEnv("COMMIT_LIST_LIMIT", "-1")
			},
			wantErr: true,
		},
		{
			name: "limit above max",
			setupEnv: func(t *testing.T, dir string) {
				setEnv("COMMIT_LIST_LIMIT", "100")
				setEnv("COMMIT_LIST_MAX", "10")
			},
			wantErr: true,
		},
		{
			name: "unknown log level",
			setupEnv: func(t *testing.T, dir string) {
				setEnv("LOG_LEVEL", "chatty")
			},
			wantErr: true,
		},
		{
			name: "unknown log format",
			setupEnv: func(t *testing.T, dir string) {
				setEnv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name: "toml file supplies defaults",
			setupEnv: func(t *testing.T, dir string) {
				path := filepath.Join(dir, "notebooks.toml")
				content := "default_branch = \"develop\"\nseed_commit = true\ncommit_list_limit = 25\napi_port = \"8088\"\n"
				if err := os.WriteFile(path, []byte(content), 0644); err != nil {
					t.Fatal(err)
				}
				setEnv("CONFIG_FILE", path)
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.DefaultBranch == "develop" &&
					cfg.SeedCommit &&
					cfg.CommitListLimit == 25 &&
					cfg.APIPort == "8088"
			},
		},
		{
			name: "env overrides toml file",
			setupEnv: func(t *testing.T, dir string) {
				path := filepath.Join(dir, "notebooks.toml")
				if err := os.WriteFile(path, []byte("default_branch = \"develop\"\n"), 0644); err != nil {
					t.Fatal(err)
				}
				setEnv("CONFIG_FILE", path)
				setEnv("DEFAULT_BRANCH", "release")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.DefaultBranch == "release"
			},
		},
		{
			name: "missing toml file",
			setupEnv: func(t *testing.T, dir string) {
				setEnv("CONFIG_FILE", filepath.Join(dir, "missing.toml"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolateEnv(t)
			tt.setupEnv(t, dir)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectories(t *testing.T) {
	tmpDir := isolateEnv(t)
	dbPath := filepath.Join(tmpDir, "test", "db.db")
	repoRoot := filepath.Join(tmpDir, "repos", "nested")

	setEnv("DB_PATH", dbPath)
	setEnv("REPO_ROOT", repoRoot)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}
	if _, err := os.Stat(repoRoot); os.IsNotExist(err) {
		t.Errorf("Load() should create repository root: %v", err)
	}

	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestGetEnv(t *testing.T) {
	originalValue := os.Getenv("TEST_ENV_VAR")
	defer func() {
		if originalValue != "" {
			setEnv("TEST_ENV_VAR", originalValue)
		} else {
			unsetEnv("TEST_ENV_VAR")
		}
	}()

	tests := []struct {
		name         string
		setupEnv     func()
		key          string
		defaultValue string
		want         string
	}{
		{
			name: "env var set",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "set-value")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "set-value",
		},
		{
			name: "env var not set",
			setupEnv: func() {
				unsetEnv("TEST_ENV_VAR")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
		{
			name: "empty env var uses default",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}
