package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/jeovahfialho/banking-frontend/ledger"
	"github.com/jeovahfialho/banking-frontend/types"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	DefaultAccount = "100"
)

func Defaults() types.Config {
	cfg := types.Config{}
	cfg.API.BaseURL = DefaultBaseURL
	cfg.API.Timeout = types.Duration{Duration: ledger.DefaultTimeout}
	cfg.Storage.Driver = "file"
	cfg.Storage.Path = defaultStoragePath()
	cfg.Storage.SQLDriver = "pgx"
	cfg.DefaultAccount = DefaultAccount
	cfg.ViewMode = types.ViewSingle
	return cfg
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".banking-frontend", "session.json")
}

// Load layers defaults, the optional JSON file at path, and the environment
// (a .env file in the working directory is read first when present).
func Load(path string) (types.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("ignoring .env", "err", err)
	}

	cfg := Defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return types.Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return types.Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *types.Config) error {
	if v := os.Getenv("BANKING_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("BANKING_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BANKING_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = types.Duration{Duration: d}
	}
	if v := os.Getenv("BANKING_STORAGE"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("BANKING_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("BANKING_SQL_DRIVER"); v != "" {
		cfg.Storage.SQLDriver = v
	}
	if v := os.Getenv("BANKING_VIEW_MODE"); v != "" {
		cfg.ViewMode = types.ViewMode(v)
	}
	return nil
}

func Validate(cfg types.Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.baseUrl is required")
	}
	switch cfg.Storage.Driver {
	case "file":
		if cfg.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the file driver")
		}
	case "sql":
		if cfg.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn (or DATABASE_URL) is required for the sql driver")
		}
		if cfg.Storage.SQLDriver != "pgx" && cfg.Storage.SQLDriver != "mysql" {
			return fmt.Errorf("storage.sqlDriver must be pgx or mysql, got %q", cfg.Storage.SQLDriver)
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if cfg.ViewMode != types.ViewSingle && cfg.ViewMode != types.ViewTabbed {
		return fmt.Errorf("viewMode must be single or tabbed, got %q", cfg.ViewMode)
	}
	return nil
}
