package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		Env            string   `yaml:"env"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`
	Auth struct {
		AdminPassword string `yaml:"adminPassword"`
		SessionTTL    string `yaml:"sessionTTL"`
		// cookie or bearer
		Transport  string `yaml:"transport"`
		CookieName string `yaml:"cookieName"`
		HashCost   int    `yaml:"hashCost"`
	} `yaml:"auth"`
	Storage struct {
		// file, memory or postgres
		Driver   string `yaml:"driver"`
		DataDir  string `yaml:"dataDir"`
		CacheTTL string `yaml:"cacheTTL"`
	} `yaml:"storage"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Uploads struct {
		// disk or s3
		Driver   string `yaml:"driver"`
		Dir      string `yaml:"dir"`
		MaxBytes int64  `yaml:"maxBytes"`
	} `yaml:"uploads"`
	S3 struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"accessKey"`
		SecretKey string `yaml:"secretKey"`
		Bucket    string `yaml:"bucket"`
		UseSSL    bool   `yaml:"useSSL"`
	} `yaml:"s3"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "5000"
	cfg.Server.Env = "development"
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Auth.SessionTTL = "24h"
	cfg.Auth.Transport = "cookie"
	cfg.Auth.CookieName = "authToken"
	cfg.Auth.HashCost = 10
	cfg.Storage.Driver = "file"
	cfg.Storage.DataDir = "data"
	cfg.Storage.CacheTTL = "30s"
	cfg.Uploads.Driver = "disk"
	cfg.Uploads.Dir = "uploads"
	cfg.Uploads.MaxBytes = 100 << 20
	cfg.Log.Level = "info"
	return cfg
}

// Load reads YAML config from path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("ADMIN_PASSWORD"); ok {
		cfg.Auth.AdminPassword = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
}

// Production reports whether the service runs with production settings.
func (c Config) Production() bool {
	return c.Server.Env == "production"
}

// TTLDuration reads a Go duration string such as "24h" or "30s". Empty,
// malformed and non-positive values yield fallback.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
