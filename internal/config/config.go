// Package config loads the server configuration from YAML with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied after loading.
const (
	DefaultTokenTTLMinutes  = 120
	DefaultAITimeoutSeconds = 30
	DefaultMaxUploadBytes   = 15 << 20
	DefaultRateLimit        = 10
	DefaultRateWindowSec    = 60
)

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port        string `yaml:"port"`
	LogLevel    string `yaml:"logLevel"`
	DatabaseURL string `yaml:"databaseURL"`

	JWTSecret       string `yaml:"jwtSecret"`
	TokenTTLMinutes int    `yaml:"tokenTTLMinutes"`

	// Document storage: either MinIO or a local upload directory.
	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`
	UploadDir      string `yaml:"uploadDir"`

	MaxUploadBytes int64 `yaml:"maxUploadBytes"`

	// AI provider; empty provider means local fallback summaries.
	AIProvider       string `yaml:"aiProvider"`
	AIAPIKey         string `yaml:"aiApiKey"`
	AIBaseURL        string `yaml:"aiBaseURL"`
	AIModel          string `yaml:"aiModel"`
	AITimeoutSeconds int    `yaml:"aiTimeoutSeconds"`

	// Redis-backed rate limiting for auth routes; empty addr disables it.
	RedisAddr         string `yaml:"redisAddr"`
	RedisPassword     string `yaml:"redisPassword"`
	RateLimit         int    `yaml:"rateLimit"`
	RateWindowSeconds int    `yaml:"rateWindowSeconds"`

	HonorClientHighlights *bool `yaml:"honorClientHighlights"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.MinioBucket = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v == "true" {
		cfg.MinioUseSSL = true
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}
	if v := os.Getenv("AI_PROVIDER"); v != "" {
		cfg.AIProvider = v
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AIAPIKey = v
	}
	if v := os.Getenv("AI_BASE_URL"); v != "" {
		cfg.AIBaseURL = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		cfg.AIModel = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxUploadBytes = n
		}
	}
	applyDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.TokenTTLMinutes <= 0 {
		cfg.TokenTTLMinutes = DefaultTokenTTLMinutes
	}
	if cfg.AITimeoutSeconds <= 0 {
		cfg.AITimeoutSeconds = DefaultAITimeoutSeconds
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateWindowSeconds <= 0 {
		cfg.RateWindowSeconds = DefaultRateWindowSec
	}
}

// UseMinio reports whether MinIO storage is configured.
func (c FileConfig) UseMinio() bool {
	return c.MinioEndpoint != ""
}

// HonorHighlights resolves the optional honorClientHighlights flag,
// defaulting to true.
func (c FileConfig) HonorHighlights() bool {
	if c.HonorClientHighlights == nil {
		return true
	}
	return *c.HonorClientHighlights
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml or PORT)")
	}
	if cfg.DatabaseURL == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	if cfg.JWTSecret == "" {
		return errors.New("config: jwtSecret is required (set in config.yaml or JWT_SECRET)")
	}
	if cfg.UseMinio() {
		if cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "" {
			return errors.New("config: minioAccessKey, minioSecretKey and minioBucket are required when minioEndpoint is set")
		}
	} else if cfg.UploadDir == "" {
		return errors.New("config: either minioEndpoint or uploadDir is required")
	}
	return nil
}
