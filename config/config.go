package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

const allowedOriginsKey = "server.allowed_origins"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	App      AppConfig      `koanf:"app"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// AllowedOrigins is the CORS allow list. Empty allows every origin.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver      string `koanf:"driver"`
	DSN         string `koanf:"dsn"`
	Host        string `koanf:"host"`
	Port        int    `koanf:"port"`
	User        string `koanf:"user"`
	Password    string `koanf:"password"`
	Name        string `koanf:"name"`
	SSLMode     string `koanf:"sslmode"`
	MaxConns    int    `koanf:"max_conns"`
	MinConns    int    `koanf:"min_conns"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`
	Version     string `koanf:"version"`
}

// envKeys maps the environment variables we honour onto koanf paths.
// Anything not listed here is ignored.
var envKeys = map[string]string{
	"PORT":                  "server.port",
	"HTTP_READ_TIMEOUT":     "server.read_timeout",
	"HTTP_WRITE_TIMEOUT":    "server.write_timeout",
	"HTTP_SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
	"CORS_ALLOWED_ORIGINS":  allowedOriginsKey,

	"DB_DRIVER":       "database.driver",
	"DB_DSN":          "database.dsn",
	"DB_HOST":         "database.host",
	"DB_PORT":         "database.port",
	"DB_USER":         "database.user",
	"DB_PASSWORD":     "database.password",
	"DB_NAME":         "database.name",
	"DB_SSLMODE":      "database.sslmode",
	"DB_MAX_CONNS":    "database.max_conns",
	"DB_MIN_CONNS":    "database.min_conns",
	"DB_AUTO_MIGRATE": "database.auto_migrate",

	"SERVICE_NAME": "app.name",
	"APP_ENV":      "app.environment",
	"LOG_LEVEL":    "app.log_level",
	"APP_VERSION":  "app.version",
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:      DriverPQ,
			Host:        "localhost",
			Port:        5432,
			User:        "postgres",
			Name:        "items",
			SSLMode:     "disable",
			MaxConns:    10,
			MinConns:    2,
			AutoMigrate: true,
		},
		App: AppConfig{
			Name:        "items-api",
			Environment: "development",
			LogLevel:    "info",
			Version:     "1.0.0",
		},
	}
}

// Load layers defaults, an optional YAML file named by CONFIG_FILE and the
// process environment (after .env, if present), then validates the result.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		path := envKeys[key]
		if path == allowedOriginsKey {
			return path, splitList(value)
		}
		return path, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList turns a comma separated env value into its trimmed, non-empty
// entries.
func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	switch c.Database.Driver {
	case DriverPQ, DriverPGX:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
