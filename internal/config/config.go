package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string `validate:"required,numeric"`
	Environment   string `validate:"required"`
	LogLevel      string `validate:"oneof=debug info warn error"`
	StorageDriver string `validate:"oneof=postgres memory"`
	Database      DatabaseConfig
	SLAHours      int    `validate:"gt=0"`
	CORSOrigin    string `validate:"required"`
	Timezone      string `validate:"required"`
	Kafka         KafkaConfig

	// Location is Timezone resolved by Load
	Location *time.Location `validate:"-"`
}

type DatabaseConfig struct {
	URL      string `validate:"omitempty,url"`
	Host     string `validate:"required_without=URL"`
	Port     string `validate:"required_without=URL"`
	User     string
	Password string
	DBName   string `validate:"required_without=URL"`
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string `validate:"dive,hostname_port"`
	Topic   string   `validate:"required_with=Brokers"`
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DSN returns the connection string for lib/pq
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// MaskedDSN is DSN with the password hidden, safe to print
func (d DatabaseConfig) MaskedDSN() string {
	if d.URL != "" {
		u, err := url.Parse(d.URL)
		if err != nil {
			return "<unparseable DATABASE_URL>"
		}
		return u.Redacted()
	}
	masked := d
	if masked.Password != "" {
		masked.Password = "xxxxx"
	}
	return masked.DSN()
}

func Load() (*Config, error) {
	if err := loadDotEnv(".", "..", "../.."); err != nil {
		return nil, err
	}

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_DRIVER", "postgres")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("SLA_HOURS", "2")
	viper.SetDefault("KAFKA_TOPIC", "shipment-requests")

	// Read from environment variables
	viper.AutomaticEnv()

	slaHours, err := strconv.Atoi(getEnvOrViper("SLA_HOURS", "2"))
	if err != nil {
		return nil, fmt.Errorf("SLA_HOURS must be an integer: %w", err)
	}

	cfg := &Config{
		Port:          getEnvOrViper("PORT", "8080"),
		Environment:   getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:      strings.ToLower(getEnvOrViper("LOG_LEVEL", "info")),
		StorageDriver: strings.ToLower(getEnvOrViper("STORAGE_DRIVER", "postgres")),
		Database: DatabaseConfig{
			URL:      getEnvOrViper("DATABASE_URL", ""),
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "shipments"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		SLAHours:   slaHours,
		CORSOrigin: getEnvOrViper("CORS_ORIGIN", "http://localhost:5173"),
		Timezone:   getEnvOrViper("TIMEZONE", "Local"),
		Kafka: KafkaConfig{
			Brokers: splitList(getEnvOrViper("KAFKA_BROKERS", "")),
			Topic:   getEnvOrViper("KAFKA_TOPIC", "shipment-requests"),
		},
	}

	// Validate required fields
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// loadDotEnv loads the first .env found in dirs. Variables already set in the
// environment win over the file.
func loadDotEnv(dirs ...string) error {
	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")
		err := godotenv.Load(path)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading %s: %w", path, err)
		}
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
