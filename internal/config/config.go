package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend selects where the ledger keeps its data.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

type Config struct {
	App struct {
		Name           string `envconfig:"APP_NAME" default:"Spend"`
		Host           string `envconfig:"HOST" default:"127.0.0.1"`
		Port           int    `envconfig:"PORT" default:"8080"`
		CurrencySymbol string `envconfig:"CURRENCY_SYMBOL" default:"$"`
	}

	Storage struct {
		Backend    Backend `envconfig:"STORAGE_BACKEND" default:"file"`
		FilePath   string  `envconfig:"STORAGE_FILE" default:"./data/spend.json"`
		SQLitePath string  `envconfig:"SQLITE_PATH" default:"./data/spend.db"`
	}

	// DB is only used by the postgres backend.
	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"spend"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"./exports"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
		// File is where the TUI writes logs, since it owns the terminal.
		File string `envconfig:"LOG_FILE" default:"spend-tui.log"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", c.App.Port))
	}

	switch c.Storage.Backend {
	case BackendMemory, BackendPostgres:
	case BackendFile:
		if strings.TrimSpace(c.Storage.FilePath) == "" {
			errs = append(errs, errors.New("STORAGE_FILE is required for the file backend"))
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid storage backend %q: must be one of memory, file, sqlite, postgres", c.Storage.Backend))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format))
	}

	return errors.Join(errs...)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
