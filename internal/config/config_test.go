package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.API.Port)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("expected default bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.TokenTTL().Hours() != 24 {
		t.Fatalf("expected default token ttl 24h, got %v", cfg.Auth.TokenTTL())
	}
}

func TestLoad_MissingTokenSecret(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when token secret is missing")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("API_PORT", "9001")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 9001 {
		t.Fatalf("expected port 9001, got %d", cfg.API.Port)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Fatalf("expected bcrypt cost 12, got %d", cfg.Auth.BcryptCost)
	}
}

func TestCORSOrigins(t *testing.T) {
	c := CORSConfig{AllowOrigins: " http://a.example , http://b.example ,, "}
	origins := c.Origins()
	if len(origins) != 2 || origins[0] != "http://a.example" || origins[1] != "http://b.example" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}
