package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigs(t *testing.T, public, private []byte) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "public.yaml"), public, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "private.yaml"), private, 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestMustLoad(t *testing.T) {
	public := []byte("port: \"9090\"\npredictor_url: http://predictor:5000\ncredentials_path: /data/credentials.yaml\nsession_limit: 10\ngateway_timeout: 3s\n")
	private := []byte("bootstrap_cookie_key: 'k'\n")
	dir := writeConfigs(t, public, private)

	cfg := MustLoad(dir)

	if cfg.Public.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Public.Port)
	}
	if cfg.Public.PredictorURL != "http://predictor:5000" {
		t.Errorf("predictor_url = %q", cfg.Public.PredictorURL)
	}
	if cfg.Public.SessionLimit != 10 {
		t.Errorf("session_limit = %d, want 10", cfg.Public.SessionLimit)
	}
	if cfg.Public.GatewayTimeout != 3*time.Second {
		t.Errorf("gateway_timeout = %v, want 3s", cfg.Public.GatewayTimeout)
	}
	if cfg.BootstrapCookieKey() != "k" {
		t.Errorf("bootstrap key = %q, want k", cfg.BootstrapCookieKey())
	}
}

func TestMustLoadDefaults(t *testing.T) {
	dir := writeConfigs(t, []byte("predictor_url: http://localhost:5000\n"), []byte("bootstrap_cookie_key: 'k'\n"))

	cfg := MustLoad(dir)

	if cfg.Public.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Public.Port)
	}
	if cfg.Public.CredentialsPath != "credentials.yaml" {
		t.Errorf("default credentials_path = %q", cfg.Public.CredentialsPath)
	}
	if cfg.Public.GatewayTimeout != 10*time.Second {
		t.Errorf("default gateway_timeout = %v", cfg.Public.GatewayTimeout)
	}
}

func TestMustLoadMissingFile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for missing config folder, got none")
		}
	}()

	_ = MustLoad(t.TempDir())
}
