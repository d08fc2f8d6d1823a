package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(envFrom(map[string]string{
		"PORT":            "8080",
		"MONGO_URI":       "mongodb://db:27017/catalog",
		"JWT_EXPIRE":      "7d",
		"CORS_ORIGINS":    "http://a.test, http://b.test,",
		"SEARCH_DEBOUNCE": "250ms",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://db:27017/catalog", cfg.MongoURI)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.SearchDebounce)
}

func TestApplyEnv_InvalidDuration(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(envFrom(map[string]string{"SEARCH_DEBOUNCE": "soon"}))
	assert.Error(t, err)

	err = cfg.applyEnv(envFrom(map[string]string{"JWT_EXPIRE": "xd"}))
	assert.Error(t, err)
}

func TestDatabaseFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/collibra", "collibra"},
		{"mongodb://localhost:27017/", DefaultDatabase},
		{"mongodb://localhost:27017", DefaultDatabase},
		{"mongodb+srv://u:p@cluster.example.net/gov?retryWrites=true", "gov"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, DatabaseFromURI(tt.uri))
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Port = ""
	cfg.APIBaseURL = "not a url"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port is required")
	assert.Contains(t, err.Error(), "api base url")
}

func TestWarnings(t *testing.T) {
	cfg := Default()
	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "JWT_SECRET")

	require.NoError(t, cfg.applyEnv(envFrom(map[string]string{
		"JWT_SECRET":   "4f1c9e",
		"CORS_ORIGINS": "http://localhost:3000",
	})))
	assert.Empty(t, cfg.Warnings())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\napiBaseUrl: http://api.test/api/v1\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/seeded")
	t.Setenv("MONGO_DB", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://api.test/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "seeded", cfg.MongoDatabase)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	logger, err = NewLogger("bogus")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
}
