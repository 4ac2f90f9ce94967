package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %q", cfg.Server.Host)
	}
	if cfg.Server.Port != "8000" {
		t.Errorf("expected default port 8000, got %q", cfg.Server.Port)
	}
	if cfg.Mongo.Database != "hron_ecommerce" {
		t.Errorf("expected default database hron_ecommerce, got %q", cfg.Mongo.Database)
	}
	if cfg.RateLimit.Enabled {
		t.Error("rate limiting should be disabled by default")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("MONGO_URI", "mongodb://db.example:27017")
	t.Setenv("APP_SECRET", "reserved-secret")

	cfg := Load()

	if cfg.Server.Port != "9999" {
		t.Errorf("expected port from environment, got %q", cfg.Server.Port)
	}
	if cfg.Mongo.URI != "mongodb://db.example:27017" {
		t.Errorf("expected mongo URI from environment, got %q", cfg.Mongo.URI)
	}
	if cfg.App.Secret != "reserved-secret" {
		t.Errorf("expected secret from environment, got %q", cfg.App.Secret)
	}
}
