// Package config provides the application configuration.
// Values come from an optional YAML file, then .env files, then the environment.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config is the root configuration structure
type Config struct {
	Env      string         `yaml:"env"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Login    LoginConfig    `yaml:"login"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL settings.
// Connection coordinates are taken from the environment only.
type DatabaseConfig struct {
	Host     string `yaml:"-"`
	Port     string `yaml:"-"`
	User     string `yaml:"-"`
	Password string `yaml:"-"`
	DBName   string `yaml:"-"`

	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnectRetries  uint64        `yaml:"connect_retries"`
}

// SessionConfig holds session cookie settings
type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
	Secure     bool          `yaml:"secure"`
}

// LoginConfig holds login throttling settings
type LoginConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	Window       time.Duration `yaml:"window"`
	LockDuration time.Duration `yaml:"lock_duration"`
}

// requiredDBEnv lists the variables that must be present at startup.
var requiredDBEnv = []string{"DB_HOST", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_PORT"}

// Default returns a configuration with every optional value filled in.
func Default() *Config {
	return &Config{
		Env: "dev",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			ConnectRetries:  5,
		},
		Session: SessionConfig{
			CookieName: "portal_session",
			TTL:        12 * time.Hour,
		},
		Login: LoginConfig{
			MaxAttempts:  5,
			Window:       15 * time.Minute,
			LockDuration: 10 * time.Minute,
		},
	}
}

// Load reads the configuration. An empty filename skips the YAML file.
func Load(filename string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	if filename != "" {
		if err := cfg.readFile(filename); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open config file %s: %w", filename, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", filename, err)
	}
	return nil
}

func loadEnvFiles() {
	// godotenv never overrides variables that are already set
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err == nil {
			continue
		}
		cwd, err := os.Getwd()
		if err != nil {
			continue
		}
		parent := filepath.Dir(cwd)
		if parent == "" || parent == cwd {
			continue
		}
		_ = godotenv.Load(filepath.Join(parent, name))
	}
}

func (c *Config) applyEnv() {
	c.Env = getEnv("APP_ENV", c.Env)
	c.Server.Addr = getEnv("HTTP_ADDR", c.Server.Addr)

	c.Database.Host = os.Getenv("DB_HOST")
	c.Database.Port = os.Getenv("DB_PORT")
	c.Database.User = os.Getenv("DB_USER")
	c.Database.Password = os.Getenv("DB_PASSWORD")
	c.Database.DBName = os.Getenv("DB_NAME")
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)

	c.Session.Secret = getEnv("SESSION_SECRET", c.Session.Secret)
	c.Session.TTL = getEnvAsDuration("SESSION_TTL", c.Session.TTL)
	c.Session.Secure = getEnvAsBool("SESSION_SECURE", c.Session.Secure)
}

// Validate checks that the configuration can be used to start the server.
func (c *Config) Validate() error {
	var missing []string
	for _, key := range requiredDBEnv {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if _, err := strconv.Atoi(c.Database.Port); err != nil {
		return fmt.Errorf("DB_PORT must be a number, got %q", c.Database.Port)
	}

	if c.Session.Secret == "" {
		if c.Env == "prod" {
			return fmt.Errorf("SESSION_SECRET is required in prod")
		}
		c.Session.Secret = "dev-insecure-session-secret"
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.Session.TTL)
	}
	return nil
}

// DSN builds a lib/pq connection URL.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// getEnv returns the variable value or the default when it is unset.
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
