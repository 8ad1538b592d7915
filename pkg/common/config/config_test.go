package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8000" {
		t.Fatalf("unexpected default port %s", cfg.ServerPort)
	}
	if cfg.ArtifactDir != "linear-regression" {
		t.Fatalf("unexpected default artifact dir %s", cfg.ArtifactDir)
	}
	if cfg.CacheEnabled || cfg.EventsEnabled {
		t.Fatal("cache and events must default to disabled")
	}
	if cfg.PredictionCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache TTL %v", cfg.PredictionCacheTTL)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ARTIFACT_DIR", "/opt/models")
	t.Setenv("PREDICTION_CACHE_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")

	cfg := Load()
	if cfg.ServerPort != "9000" {
		t.Fatalf("expected port 9000, got %s", cfg.ServerPort)
	}
	if cfg.ArtifactDir != "/opt/models" {
		t.Fatalf("expected /opt/models, got %s", cfg.ArtifactDir)
	}
	if !cfg.CacheEnabled {
		t.Fatal("expected cache enabled")
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "broker2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
}

func TestLoadAppliesYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server_port: \"7777\"\nartifact_dir: /data/artifacts\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CONFIG_FILE", path)

	cfg := Load()
	if cfg.ServerPort != "7777" {
		t.Fatalf("file should override env, got %s", cfg.ServerPort)
	}
	if cfg.ArtifactDir != "/data/artifacts" {
		t.Fatalf("unexpected artifact dir %s", cfg.ArtifactDir)
	}
	// keys absent from the file keep their env/default values
	if cfg.ServerHost != "0.0.0.0" {
		t.Fatalf("unexpected host %s", cfg.ServerHost)
	}
}
