package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // gin mode: debug, release, test
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"` // "postgres" or "sqlite"
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// SQLiteConfig contains SQLite settings
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig contains document upload settings
type StorageConfig struct {
	UploadDir     string `yaml:"upload_dir"`
	MaxFileSizeMB int64  `yaml:"max_file_size_mb"`
}

// CleanupConfig contains settings for the orphaned-file janitor
type CleanupConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Schedule    string `yaml:"schedule"`      // cron spec
	MinAgeHours int    `yaml:"min_age_hours"` // skip files younger than this
}

// CORSConfig contains CORS settings for the frontend
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "release",
		},
		Database: DatabaseConfig{
			Type: "postgres",
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "immo_user",
				Password: "immo_pass",
				Database: "immo_db",
				SSLMode:  "disable",
			},
			SQLite: SQLiteConfig{
				Path: "data/immo.db",
			},
		},
		Storage: StorageConfig{
			UploadDir:     "documents",
			MaxFileSizeMB: 50,
		},
		Cleanup: CleanupConfig{
			Enabled:     false,
			Schedule:    "30 3 * * *",
			MinAgeHours: 24,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:5173"},
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file is not
// an error; defaults apply and environment overrides are still honoured.
func LoadConfig(filepath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		applyEnvOverrides(config)
		return config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides lets deployment environments override the file-based
// configuration, e.g. PORT or DB_HOST in a container.
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		c.Database.Type = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Postgres.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.Postgres.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Postgres.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.Postgres.Database = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.Storage.UploadDir = v
	}
}

// MaxFileSizeBytes returns the upload size cap in bytes.
func (c *StorageConfig) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}
