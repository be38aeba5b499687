package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	testCases := map[string]string{
		"PORT":         "9090",
		"ENVIRONMENT":  "test",
		"DATABASE_URL": "postgres://ai:ai@localhost:5432/msme?sslmode=disable",
		"MODEL_DIR":    "/opt/models",
	}

	for key, value := range testCases {
		os.Setenv(key, value)
	}

	defer func() {
		for key := range testCases {
			os.Unsetenv(key)
		}
	}()

	cfg := LoadConfig()

	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be '9090', got '%s'", cfg.Port)
	}

	if cfg.Environment != "test" {
		t.Errorf("Expected Environment to be 'test', got '%s'", cfg.Environment)
	}

	if cfg.DatabaseURL != "postgres://ai:ai@localhost:5432/msme?sslmode=disable" {
		t.Errorf("Expected DatabaseURL to match, got '%s'", cfg.DatabaseURL)
	}

	if cfg.ModelDir != "/opt/models" {
		t.Errorf("Expected ModelDir to be '/opt/models', got '%s'", cfg.ModelDir)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	vars := []string{"PORT", "ENVIRONMENT", "DATABASE_URL", "MODEL_DIR"}

	for _, v := range vars {
		os.Unsetenv(v)
	}

	cfg := LoadConfig()

	if cfg.Port != "8080" {
		t.Errorf("Expected default Port to be '8080', got '%s'", cfg.Port)
	}

	if cfg.Environment != "development" {
		t.Errorf("Expected default Environment to be 'development', got '%s'", cfg.Environment)
	}

	if cfg.DatabaseURL != "" {
		t.Errorf("Expected default DatabaseURL to be empty, got '%s'", cfg.DatabaseURL)
	}

	if cfg.ModelDir != "models" {
		t.Errorf("Expected default ModelDir to be 'models', got '%s'", cfg.ModelDir)
	}
}
