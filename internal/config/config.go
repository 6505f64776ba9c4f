package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"AvisailYachts/internal/catalog"
)

const (
	SourceSeed     = "seed"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config is read once at startup. Precedence, lowest first: defaults, the
// YAML file named by CONFIG_FILE, .env, the process environment.
type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	CatalogSource string `yaml:"catalog_source"`
	CatalogPath   string `yaml:"catalog_path"`
	MessagesDir   string `yaml:"messages_dir"`
	DatabaseURL   string `yaml:"database_url"`

	MetricsEnabled bool   `yaml:"metrics_enabled"`
	MetricsToken   string `yaml:"metrics_token"`

	// RelatedLimit is the default ?limit= for related yachts; 0 means
	// catalog.DefaultRelatedLimit.
	RelatedLimit       int `yaml:"related_limit"`
	FavoritesRateLimit int `yaml:"favorites_rate_limit"`
}

func Defaults() Config {
	return Config{
		Port:               "8082",
		LogLevel:           "info",
		RelatedLimit:       3,
		FavoritesRateLimit: 60,
	}
}

// Load never fails on a missing .env; a CONFIG_FILE that is named but
// unreadable is an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.mergeEnv(os.Getenv)

	cfg.inferSource()
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) {
	setString(&c.Port, getenv("PORT"))
	setString(&c.LogLevel, getenv("LOG_LEVEL"))
	setString(&c.CatalogSource, strings.ToLower(getenv("CATALOG_SOURCE")))
	setString(&c.CatalogPath, getenv("CATALOG_PATH"))
	setString(&c.MessagesDir, getenv("MESSAGES_DIR"))
	setString(&c.DatabaseURL, getenv("DATABASE_URL"))
	setString(&c.MetricsToken, getenv("METRICS_TOKEN"))
	setBool(&c.MetricsEnabled, getenv("METRICS_ENABLED"))
	setInt(&c.RelatedLimit, getenv("RELATED_LIMIT"))
	setInt(&c.FavoritesRateLimit, getenv("FAVORITES_RATE_LIMIT"))
}

// inferSource picks file when only a path is given, seed otherwise.
func (c *Config) inferSource() {
	if c.CatalogSource != "" {
		return
	}
	c.CatalogSource = SourceSeed
	if c.CatalogPath != "" {
		c.CatalogSource = SourceFile
	}
}

func (c Config) Validate() error {
	switch c.CatalogSource {
	case SourceSeed:
	case SourceFile:
		if c.CatalogPath == "" {
			return errors.New("CATALOG_PATH is required when CATALOG_SOURCE=file")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when CATALOG_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if c.RelatedLimit < 0 || c.RelatedLimit > catalog.MaxRelatedLimit {
		return fmt.Errorf("RELATED_LIMIT must be in [0, %d], got %d", catalog.MaxRelatedLimit, c.RelatedLimit)
	}
	if c.MetricsEnabled && c.MetricsToken == "" {
		return errors.New("METRICS_TOKEN is required when METRICS_ENABLED is set")
	}
	return nil
}

func (c Config) Addr() string { return ":" + c.Port }

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v string) {
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}

func setInt(dst *int, v string) {
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
