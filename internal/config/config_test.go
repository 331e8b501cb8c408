package config

import (
	"os"
	"testing"
)

func TestLoad_RequiresMongoURI(t *testing.T) {
	os.Unsetenv("MONGODB_URI")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when MONGODB_URI is missing")
	}
}

func TestLoad_WithMongoURI(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	defer os.Unsetenv("MONGODB_URI")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("expected MONGODB_URI to be set, got %s", cfg.MongoURI)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}

	if cfg.MongoDatabase != "healthmate" {
		t.Errorf("expected default database 'healthmate', got %s", cfg.MongoDatabase)
	}

	if cfg.JWTExpireHours != 24 {
		t.Errorf("expected default token validity 24h, got %d", cfg.JWTExpireHours)
	}

	if cfg.MaxFileSize != 10*1024*1024 {
		t.Errorf("expected default max file size 10MB, got %d", cfg.MaxFileSize)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestConfig_Validate(t *testing.T) {
	c := &Config{Env: "production", JWTExpireHours: 24, MaxFileSize: 1024}
	if err := c.Validate(); err == nil {
		t.Error("expected error for production without JWT_SECRET")
	}

	c.JWTSecret = "secret"
	if err := c.Validate(); err == nil {
		t.Error("expected error for production without S3_BUCKET")
	}

	c.S3Bucket = "reports"
	c.GeminiAPIKey = "key"
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	dev := &Config{Env: "development", JWTExpireHours: 24, MaxFileSize: 1024}
	if err := dev.Validate(); err != nil {
		t.Errorf("development config should validate without secrets: %v", err)
	}
}
