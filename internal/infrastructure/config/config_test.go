package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func required() map[string]string {
	return map[string]string{
		"JWT_SECRET":         "jwt",
		"PRODUCT_KEY_SECRET": "pk",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(required()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.UserStore != "mongo" || cfg.RoleSource != "store" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.JWTTTL != time.Hour || cfg.Login.Window != 15*time.Minute || cfg.Login.MaxAttempts != 10 {
		t.Fatalf("unexpected durations: %+v %+v", cfg.Auth, cfg.Login)
	}
	if cfg.Audit.Workers != 2 || cfg.Mongo.Database != "listing" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoad_RequiresSecrets(t *testing.T) {
	for _, missing := range []string{"JWT_SECRET", "PRODUCT_KEY_SECRET"} {
		env := required()
		delete(env, missing)
		if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Fatalf("expected error without %s", missing)
		}
	}
}

func TestLoad_UserStoreValidation(t *testing.T) {
	env := required()
	env["USER_STORE"] = "Postgres"
	if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
		t.Fatalf("expected error without POSTGRES_URL")
	}

	env["POSTGRES_URL"] = "postgres://localhost/listing"
	cfg, err := load(context.Background(), envconfig.MapLookuper(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UserStore != "postgres" {
		t.Fatalf("expected normalized store, got %q", cfg.UserStore)
	}

	env["USER_STORE"] = "sqlite"
	if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
		t.Fatalf("expected error for unknown store")
	}
}

func TestLoad_Overrides(t *testing.T) {
	env := required()
	env["JWT_TTL"] = "30m"
	env["LOGIN_MAX_ATTEMPTS"] = "3"
	env["GUARD_ROLE_SOURCE"] = "token"
	cfg, err := load(context.Background(), envconfig.MapLookuper(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.JWTTTL != 30*time.Minute || cfg.Login.MaxAttempts != 3 || cfg.RoleSource != "token" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file must be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("LISTING_DOTENV_PROBE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("LISTING_DOTENV_PROBE", "")
	os.Unsetenv("LISTING_DOTENV_PROBE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("LISTING_DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
