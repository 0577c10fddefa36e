package config_test

import (
	"strings"
	"testing"

	"github.com/jhconstruction/backoffice/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB_NAME", "backoffice_test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL.Hours() != 72 {
		t.Errorf("token ttl = %v, want 72h", cfg.Auth.TokenTTL)
	}
	if cfg.Jobs.ReconcileCron == "" || cfg.Jobs.SummaryCron == "" {
		t.Error("job schedules must have defaults")
	}
	if cfg.StorageEnabled() {
		t.Error("storage must be disabled without credentials")
	}
	if cfg.SheetsEnabled() {
		t.Error("sheets export must be disabled without credentials")
	}
}

func TestLoadMissingJWTSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := config.Load(""); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoadPartialStorageCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_CLOUD_NAME", "demo")

	_, err := config.Load("")
	if err == nil {
		t.Fatal("expected error for partial storage credentials")
	}
	if !strings.Contains(err.Error(), "STORAGE") {
		t.Errorf("error %q does not mention storage variables", err)
	}
}

func TestLoadStorageEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_CLOUD_NAME", "demo")
	t.Setenv("STORAGE_API_KEY", "key")
	t.Setenv("STORAGE_API_SECRET", "secret")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.StorageEnabled() {
		t.Error("storage must be enabled with full credentials")
	}
	if cfg.Storage.Folder != "payment-slips" {
		t.Errorf("folder = %q, want payment-slips", cfg.Storage.Folder)
	}
}

func TestLoadInvalidTokenTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TOKEN_TTL", "not-a-duration")

	if _, err := config.Load(""); err == nil {
		t.Fatal("expected error for invalid JWT_TOKEN_TTL")
	}
}
