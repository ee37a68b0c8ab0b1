package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeovahfialho/banking-frontend/types"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"BANKING_API_URL", "BANKING_API_TIMEOUT", "BANKING_STORAGE", "BANKING_STORAGE_PATH",
		"DATABASE_URL", "BANKING_SQL_DRIVER", "BANKING_VIEW_MODE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout.Duration)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "100", cfg.DefaultAccount)
	assert.Equal(t, types.ViewSingle, cfg.ViewMode)
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api": {"baseUrl": "http://ledger:8080", "timeout": "3s"},
		"storage": {"driver": "memory"},
		"defaultAccount": "200",
		"viewMode": "tabbed"
	}`), 0o600))
	t.Setenv("BANKING_API_URL", "http://override:9000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://override:9000", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout.Duration)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "200", cfg.DefaultAccount)
	assert.Equal(t, types.ViewTabbed, cfg.ViewMode)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*types.Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*types.Config) {}, ok: true},
		{name: "sql without dsn", mutate: func(c *types.Config) { c.Storage.Driver = "sql" }},
		{name: "sql mysql", mutate: func(c *types.Config) {
			c.Storage.Driver = "sql"
			c.Storage.SQLDriver = "mysql"
			c.Storage.DSN = "root:@tcp(127.0.0.1:3306)/bank"
		}, ok: true},
		{name: "sql unknown driver", mutate: func(c *types.Config) {
			c.Storage.Driver = "sql"
			c.Storage.SQLDriver = "sqlite"
			c.Storage.DSN = "x"
		}},
		{name: "unknown storage", mutate: func(c *types.Config) { c.Storage.Driver = "redis" }},
		{name: "bad view mode", mutate: func(c *types.Config) { c.ViewMode = "grid" }},
		{name: "no base url", mutate: func(c *types.Config) { c.API.BaseURL = "" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Defaults()
			c.mutate(&cfg)
			err := Validate(cfg)
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("BANKING_API_TIMEOUT", "soon")
	_, err := Load("")
	assert.Error(t, err)
}
