package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	minJWTSecretLength = 32
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	AWS      AWSConfig      `yaml:"aws"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" env:"BLOG_SERVER_PORT"`
	Host            string        `yaml:"host" env:"BLOG_SERVER_HOST"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"BLOG_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"BLOG_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"BLOG_SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"BLOG_DB_DRIVER"`
	Host     string `yaml:"host" env:"BLOG_DB_HOST"`
	Port     int    `yaml:"port" env:"BLOG_DB_PORT"`
	User     string `yaml:"user" env:"BLOG_DB_USER"`
	Password string `yaml:"password" env:"BLOG_DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"BLOG_DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"BLOG_DB_SSLMODE"`
}

// AWSConfig holds object storage configuration for blog images
type AWSConfig struct {
	Region        string `yaml:"region" env:"BLOG_AWS_REGION"`
	S3Bucket      string `yaml:"s3_bucket" env:"BLOG_AWS_S3_BUCKET"`
	AccessKey     string `yaml:"access_key" env:"BLOG_AWS_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"BLOG_AWS_SECRET_KEY"`
	Endpoint      string `yaml:"endpoint" env:"BLOG_AWS_ENDPOINT"`
	PublicBaseURL string `yaml:"public_base_url" env:"BLOG_AWS_PUBLIC_BASE_URL"`
}

// Enabled reports whether image uploads are configured.
func (c AWSConfig) Enabled() bool {
	return c.S3Bucket != "" && c.Region != ""
}

// JWTConfig holds session token configuration. A zero TTL issues tokens
// without an expiry claim.
type JWTConfig struct {
	Secret string        `yaml:"secret" env:"BLOG_JWT_SECRET"`
	TTL    time.Duration `yaml:"ttl" env:"BLOG_JWT_TTL"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level" env:"BLOG_LOG_LEVEL"`
	File  string `yaml:"file" env:"BLOG_LOG_FILE"`
}

// Load reads configuration from a YAML file and applies environment overrides.
// A missing file is not an error; the configuration then comes from defaults
// and the environment alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration used before any file or environment
// values are applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            4000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:  DriverPostgres,
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf("jwt secret must be at least %d bytes", minJWTSecretLength)
	}
	if c.JWT.TTL < 0 {
		return fmt.Errorf("jwt ttl must not be negative")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
