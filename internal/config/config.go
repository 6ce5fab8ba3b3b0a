package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // for local storage
		BaseURL    string `yaml:"base_url"`    // public URL base
		Bucket     string `yaml:"bucket"`      // for S3/R2
		Region     string `yaml:"region"`      // for S3
		AccessKey  string `yaml:"access_key"`  // for S3/R2
		SecretKey  string `yaml:"secret_key"`  // for S3/R2
		Endpoint   string `yaml:"endpoint"`    // for R2 or custom S3
		PublicRead bool   `yaml:"public_read"` // public URLs instead of signed ones
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // max file size in bytes
		AllowedTypes []string `yaml:"allowed_types"` // allowed MIME types
	} `yaml:"upload"`

	I18n struct {
		DefaultLocale    string   `yaml:"default_locale"`
		SupportedLocales []string `yaml:"supported_locales"`
	} `yaml:"i18n"`
}

var appConfig *Config

// LoadConfig reads config.yaml, or builds the config from environment
// variables when DATABASE_URL is set (the mode tests and containers use).
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.DSN = dbURL
		cfg.Server.Host = os.Getenv("SERVER_HOST")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.JWT.TTL = 60

		cfg.Storage.Type = envOr("STORAGE_TYPE", "local")
		cfg.Storage.BasePath = envOr("STORAGE_BASE_PATH", "./uploads")
		cfg.Storage.BaseURL = envOr("STORAGE_BASE_URL", "/api/v1/files")
		cfg.Storage.Bucket = os.Getenv("STORAGE_BUCKET")
		cfg.Storage.Region = os.Getenv("STORAGE_REGION")
		cfg.Storage.AccessKey = os.Getenv("STORAGE_ACCESS_KEY")
		cfg.Storage.SecretKey = os.Getenv("STORAGE_SECRET_KEY")
		cfg.Storage.Endpoint = os.Getenv("STORAGE_ENDPOINT")
		cfg.Storage.PublicRead = os.Getenv("STORAGE_PUBLIC_READ") == "true"

		applyDefaults(&cfg)
		appConfig = &cfg
		return
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	if err != nil {
		log.Fatalf("Failed to open config file at %s: %v", configPath, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
	}

	applyDefaults(&cfg)
	appConfig = &cfg
}

func GetConfig() *Config {
	if appConfig == nil {
		LoadConfig()
	}
	return appConfig
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}
	if cfg.I18n.DefaultLocale == "" {
		cfg.I18n.DefaultLocale = "en"
	}
	if len(cfg.I18n.SupportedLocales) == 0 {
		cfg.I18n.SupportedLocales = []string{"en", "ru"}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
