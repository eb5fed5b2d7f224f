// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

database:
  path: "./test.db"

auth:
  pepper: "p3pper"
  salt: "s4lt"

bootstrap:
  admin_username: "root"
  admin_password: "rootpw"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("unexpected http_addr: %q", cfg.Server.HTTPAddr)
	}
	if cfg.Database.Path != "./test.db" {
		t.Errorf("unexpected database path: %q", cfg.Database.Path)
	}
	if cfg.Auth.Pepper != "p3pper" || cfg.Auth.Salt != "s4lt" {
		t.Errorf("unexpected auth secrets: %q / %q", cfg.Auth.Pepper, cfg.Auth.Salt)
	}
	if cfg.Bootstrap.AdminUsername != "root" {
		t.Errorf("unexpected admin username: %q", cfg.Bootstrap.AdminUsername)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("STASHD_TEST_PASSWORD", "from-env")

	path := writeConfig(t, `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
bootstrap:
  admin_username: "root"
  admin_password: "${STASHD_TEST_PASSWORD}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Bootstrap.AdminPassword != "from-env" {
		t.Errorf("expected env expansion, got %q", cfg.Bootstrap.AdminPassword)
	}
}

func TestLoad_UnsetEnvVarBecomesEmpty(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
bootstrap:
  admin_username: "root"
  admin_password: "${STASHD_DEFINITELY_UNSET_VAR}"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation failure for empty admin password")
	}
	if !strings.Contains(err.Error(), "admin_password") {
		t.Errorf("expected admin_password in error, got: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing http_addr", func(c *Config) { c.Server.HTTPAddr = "" }, "http_addr"},
		{"missing database path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"missing admin username", func(c *Config) { c.Bootstrap.AdminUsername = "" }, "admin_username"},
		{"missing admin password", func(c *Config) { c.Bootstrap.AdminPassword = "" }, "admin_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:    ServerConfig{HTTPAddr: "localhost:8080"},
				Database:  DatabaseConfig{Path: "./test.db"},
				Bootstrap: BootstrapConfig{AdminUsername: "root", AdminPassword: "pw"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_AuthSecretsOptional(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{HTTPAddr: "localhost:8080"},
		Database:  DatabaseConfig{Path: "./test.db"},
		Bootstrap: BootstrapConfig{AdminUsername: "root", AdminPassword: "pw"},
	}

	// Pepper/salt fall back to fixed literals in the hasher
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected empty auth secrets to validate, got: %v", err)
	}
}
