package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string   `mapstructure:"PORT"`
	Env                 string   `mapstructure:"ENV"`
	MongoURI            string   `mapstructure:"MONGODB_URI"`
	MongoDatabase       string   `mapstructure:"MONGODB_DATABASE"`
	MongoConnectRetries int      `mapstructure:"MONGO_CONNECT_ATTEMPTS"`
	JWTSecret           string   `mapstructure:"JWT_SECRET"`
	JWTExpireHours      int      `mapstructure:"JWT_EXPIRE_HOURS"`
	S3Bucket            string   `mapstructure:"S3_BUCKET"`
	S3Region            string   `mapstructure:"S3_REGION"`
	S3Endpoint          string   `mapstructure:"S3_ENDPOINT"`
	S3AccessKey         string   `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey         string   `mapstructure:"S3_SECRET_KEY"`
	S3PublicBaseURL     string   `mapstructure:"S3_PUBLIC_BASE_URL"`
	StorageDeleteStrict bool     `mapstructure:"STORAGE_DELETE_STRICT"`
	GeminiAPIKey        string   `mapstructure:"GEMINI_API_KEY"`
	GeminiModel         string   `mapstructure:"GEMINI_MODEL"`
	GeminiBaseURL       string   `mapstructure:"GEMINI_BASE_URL"`
	MaxFileSize         int64    `mapstructure:"MAX_FILE_SIZE"`
	CORSOrigins         []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("MONGODB_DATABASE", "healthmate")
	v.SetDefault("MONGO_CONNECT_ATTEMPTS", 3)
	v.SetDefault("JWT_EXPIRE_HOURS", 24)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("STORAGE_DELETE_STRICT", false)
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash-exp")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV",
		"MONGODB_URI", "MONGODB_DATABASE", "MONGO_CONNECT_ATTEMPTS",
		"JWT_SECRET", "JWT_EXPIRE_HOURS",
		"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY",
		"S3_SECRET_KEY", "S3_PUBLIC_BASE_URL", "STORAGE_DELETE_STRICT",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL",
		"MAX_FILE_SIZE", "CORS_ORIGINS",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// a JWT signing secret is mandatory. Storage and AI credentials are only
// enforced in production: without them uploads and analysis fail upstream,
// which is acceptable while developing against the in-memory store.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV is %q", c.Env)
	}
	if c.JWTExpireHours <= 0 {
		return fmt.Errorf("JWT_EXPIRE_HOURS must be positive, got %d", c.JWTExpireHours)
	}
	if c.IsProduction() {
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required in production")
		}
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required in production")
		}
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.MaxFileSize)
	}
	return nil
}
