// Package config loads settings for the server and the CLI.
//
// Precedence, lowest first: built-in defaults, the YAML file, a .env file,
// process environment, command-line flags (applied by the caller).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Report   ReportConfig   `yaml:"report"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite or memory
	Path   string `yaml:"path"`   // SQLite file, ":memory:" for none on disk
}

type LogConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // console encoder instead of JSON
}

type ReportConfig struct {
	Format   string `yaml:"format"`   // text or json
	Currency string `yaml:"currency"` // symbol printed before amounts
}

// Environment variable names.
const (
	EnvPort     = "SALARY_PORT"
	EnvDB       = "SALARY_DB"
	EnvDriver   = "SALARY_DB_DRIVER"
	EnvLogLevel = "SALARY_LOG_LEVEL"
	EnvCurrency = "SALARY_CURRENCY"
	EnvFormat   = "SALARY_FORMAT"
)

// Archive drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
		Database: DatabaseConfig{Driver: DriverSQLite, Path: "payslips.db"},
		Log:      LogConfig{Level: "info"},
		Report:   ReportConfig{Format: "text", Currency: "R$"},
	}
}

// Load reads path (a missing file means defaults), then .env and the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvDriver); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		c.Report.Currency = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Report.Format = v
	}
	return nil
}

// Validate rejects settings no component can honour.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("database.driver: unknown driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}
	return nil
}
