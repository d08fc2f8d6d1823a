// config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort       = "3002"
	DefaultMongoURI   = "mongodb://localhost:27017/data-governance"
	DefaultDatabase   = "data-governance"
	DefaultAPIBaseURL = "http://localhost:3002/api/v1"
	DefaultJWTSecret  = "secret"
)

type Config struct {
	Port           string        `yaml:"port"`
	MongoURI       string        `yaml:"mongoUri"`
	MongoDatabase  string        `yaml:"mongoDatabase"`
	JWTSecret      string        `yaml:"jwtSecret"`
	JWTExpiration  time.Duration `yaml:"jwtExpiration"`
	APIBaseURL     string        `yaml:"apiBaseUrl"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	LogLevel       string        `yaml:"logLevel"`
	SearchDebounce time.Duration `yaml:"searchDebounce"`
}

func Default() *Config {
	return &Config{
		Port:           DefaultPort,
		MongoURI:       DefaultMongoURI,
		JWTSecret:      DefaultJWTSecret,
		JWTExpiration:  24 * time.Hour,
		APIBaseURL:     DefaultAPIBaseURL,
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
		SearchDebounce: 500 * time.Millisecond,
	}
}

// Load reads .env (if present), an optional YAML file named by CONFIG_FILE,
// then environment variables. Later sources win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = DatabaseFromURI(cfg.MongoURI)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := getenv("MONGO_URI"); v != "" {
		c.MongoURI = v
	}
	if v := getenv("MONGO_DB"); v != "" {
		c.MongoDatabase = v
	}
	if v := getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := getenv("JWT_EXPIRE"); v != "" {
		dur, err := parseExpiry(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_EXPIRE %q: %w", v, err)
		}
		c.JWTExpiration = dur
	}
	if v := getenv("API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("SEARCH_DEBOUNCE"); v != "" {
		dur, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SEARCH_DEBOUNCE %q: %w", v, err)
		}
		c.SearchDebounce = dur
	}
	return nil
}

// parseExpiry accepts Go durations plus the "<n>d" form used in .env files.
func parseExpiry(v string) (time.Duration, error) {
	if strings.HasSuffix(v, "d") {
		var days int
		if _, err := fmt.Sscanf(strings.TrimSuffix(v, "d"), "%d", &days); err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DatabaseFromURI returns the database named in the URI path, or
// DefaultDatabase when the URI names none.
func DatabaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return DefaultDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return DefaultDatabase
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.MongoURI == "" {
		errs = append(errs, errors.New("mongo uri is required"))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api base url is required"))
	} else if _, err := url.ParseRequestURI(c.APIBaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api base url: %w", err))
	}
	if c.JWTExpiration <= 0 {
		errs = append(errs, errors.New("jwt expiration must be positive"))
	}
	if c.SearchDebounce < 0 {
		errs = append(errs, errors.New("search debounce must not be negative"))
	}
	return errors.Join(errs...)
}

// Warnings lists settings that are valid but unsafe outside development.
func (c *Config) Warnings() []string {
	var out []string
	if c.JWTSecret == DefaultJWTSecret {
		out = append(out, "JWT_SECRET is not set; tokens are signed with the built-in default secret")
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			out = append(out, "CORS_ORIGINS allows any origin")
			break
		}
	}
	return out
}

// NewLogger builds the production zap logger at the configured level.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
