package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	SourceMongo   = "mongo"
	SourcePayload = "payload"
)

type Config struct {
	Server struct {
		Port           string        `yaml:"port"`
		ReadTimeout    time.Duration `yaml:"read_timeout"`
		WriteTimeout   time.Duration `yaml:"write_timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"server"`

	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`

	Redis struct {
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"redis"`

	Payload struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"payload"`

	// Source selects where hostels are read from: "mongo" or "payload".
	Source string `yaml:"source"`

	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`

	Listing struct {
		PageSize int `yaml:"page_size"`
	} `yaml:"listing"`

	Auth struct {
		JWTKey   string        `yaml:"jwt_key"`
		TokenTTL time.Duration `yaml:"token_ttl"`
		Issuer   string        `yaml:"issuer"`
	} `yaml:"auth"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 10 * time.Second
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Mongo.Database = "hostel_listing"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.CacheTTL = 5 * time.Minute
	cfg.Source = SourceMongo
	cfg.SQLite.Path = "data/preferences.db"
	cfg.Listing.PageSize = 100
	cfg.Auth.TokenTTL = 15 * time.Minute
	cfg.Auth.Issuer = "hostel_listing_system"
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	return cfg
}

// LoadEnv loads .env style files into the process environment. Missing
// files are skipped and variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setList(&c.Server.AllowedOrigins, "CORS_ORIGINS")
	setString(&c.Mongo.URI, "MONGOURI")
	setString(&c.Mongo.Database, "DB")
	setString(&c.Redis.Addr, "REDIS_ADD")
	setString(&c.Redis.Password, "REDIS_PASS")
	setString(&c.Payload.BaseURL, "PAYLOAD_URL")
	setString(&c.Payload.APIKey, "PAYLOAD_API_KEY")
	setString(&c.Source, "HOSTEL_SOURCE")
	setString(&c.SQLite.Path, "SQLITE_PATH")
	setString(&c.Auth.JWTKey, "JWT_KEY")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&c.Listing.PageSize, "LISTING_PAGE_SIZE"); err != nil {
		return err
	}
	if err := setDuration(&c.Redis.CacheTTL, "CACHE_TTL"); err != nil {
		return err
	}
	return setDuration(&c.Auth.TokenTTL, "JWT_TTL")
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	var problems []string
	// Admins, tenants and payments live in MongoDB whatever the hostel source.
	if c.Mongo.URI == "" {
		problems = append(problems, "MONGOURI is required")
	}
	switch c.Source {
	case SourceMongo:
	case SourcePayload:
		if c.Payload.BaseURL == "" {
			problems = append(problems, "PAYLOAD_URL is required when source is payload")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown hostel source %q", c.Source))
	}
	if c.Listing.PageSize < 1 || c.Listing.PageSize > 100 {
		problems = append(problems, "listing page size must be between 1 and 100")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "token ttl must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func setString(dst *string, key string) {
	*dst = getEnv(key, *dst)
}

func setList(dst *[]string, key string) {
	v := getEnv(key, "")
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func setInt(dst *int, key string) error {
	v := getEnv(key, "")
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := getEnv(key, "")
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
