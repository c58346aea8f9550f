package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.0"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Scheduler   SchedulerConfig
	SendBackend SendBackendConfig
	Security    SecurityConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type SchedulerConfig struct {
	CompletionCheckInterval time.Duration
	ProgressLogInterval     time.Duration
}

// SendBackendConfig selects and tunes the delivery transport.
type SendBackendConfig struct {
	// Mode is "simulator" or "smtp".
	Mode string

	// Simulator knobs
	MinLatency  time.Duration
	MaxLatency  time.Duration
	SuccessRate float64

	// SMTP knobs
	MaxConcurrentConnections int64
	DialTimeout              time.Duration

	// Per-sender anti-spam envelope, shared by both modes
	PerMinuteLimit int
	PerHourLimit   int
}

type SecurityConfig struct {
	// Secret passphrase for sender credential encryption
	SecretKey string
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "mailcadence")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Scheduler defaults
	v.SetDefault("SCHEDULER_COMPLETION_CHECK_INTERVAL", "60s")
	v.SetDefault("SCHEDULER_PROGRESS_LOG_INTERVAL", "5m")

	// Send backend defaults
	v.SetDefault("SEND_BACKEND_MODE", "simulator")
	v.SetDefault("SEND_BACKEND_MIN_LATENCY", "100ms")
	v.SetDefault("SEND_BACKEND_MAX_LATENCY", "1s")
	v.SetDefault("SEND_BACKEND_SUCCESS_RATE", 0.95)
	v.SetDefault("SEND_BACKEND_MAX_CONNECTIONS", 10)
	v.SetDefault("SEND_BACKEND_DIAL_TIMEOUT", "30s")
	v.SetDefault("SEND_BACKEND_PER_MINUTE_LIMIT", 30)
	v.SetDefault("SEND_BACKEND_PER_HOUR_LIMIT", 500)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	secretKey := v.GetString("SECRET_KEY")
	if secretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}

	mode := v.GetString("SEND_BACKEND_MODE")
	if mode != "simulator" && mode != "smtp" {
		return nil, fmt.Errorf("SEND_BACKEND_MODE must be simulator or smtp, got %q", mode)
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Scheduler: SchedulerConfig{
			CompletionCheckInterval: v.GetDuration("SCHEDULER_COMPLETION_CHECK_INTERVAL"),
			ProgressLogInterval:     v.GetDuration("SCHEDULER_PROGRESS_LOG_INTERVAL"),
		},
		SendBackend: SendBackendConfig{
			Mode:                     mode,
			MinLatency:               v.GetDuration("SEND_BACKEND_MIN_LATENCY"),
			MaxLatency:               v.GetDuration("SEND_BACKEND_MAX_LATENCY"),
			SuccessRate:              v.GetFloat64("SEND_BACKEND_SUCCESS_RATE"),
			MaxConcurrentConnections: v.GetInt64("SEND_BACKEND_MAX_CONNECTIONS"),
			DialTimeout:              v.GetDuration("SEND_BACKEND_DIAL_TIMEOUT"),
			PerMinuteLimit:           v.GetInt("SEND_BACKEND_PER_MINUTE_LIMIT"),
			PerHourLimit:             v.GetInt("SEND_BACKEND_PER_HOUR_LIMIT"),
		},
		Security: SecurityConfig{
			SecretKey: secretKey,
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	return config, nil
}

// IsDevelopment returns true when running in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
