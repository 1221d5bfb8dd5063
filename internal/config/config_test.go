package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func TestLoad_AppliesDefaults(t *testing.T) {
	writeConfig(t, `
http:
  port: 8080
database:
  addrs: ["localhost:6379"]
`)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected default read timeout 10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.MaxResults != 100 {
		t.Errorf("expected default max_results 100, got %d", cfg.Search.MaxResults)
	}
	if cfg.Search.CacheTTLSec != 300 {
		t.Errorf("expected default cache_ttl_sec 300, got %d", cfg.Search.CacheTTLSec)
	}
	if cfg.Search.SemanticThreshold != 0.3 {
		t.Errorf("expected default semantic_threshold 0.3, got %g", cfg.Search.SemanticThreshold)
	}
	if cfg.Search.SnippetMaxLength != 200 {
		t.Errorf("expected default snippet_max_length 200, got %d", cfg.Search.SnippetMaxLength)
	}
	if cfg.Embedding.Provider != "fingerprint" {
		t.Errorf("expected default provider fingerprint, got %q", cfg.Embedding.Provider)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_REDIS_PASSWORD", "s3cret")
	writeConfig(t, `
http:
  port: 8080
database:
  addrs: ["localhost:6379"]
  password: ${TEST_REDIS_PASSWORD}
search:
  max_results: ${UNSET_MAX_RESULTS:-50}
`)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.Password != "s3cret" {
		t.Errorf("expected password from env, got %q", cfg.Database.Password)
	}
	if cfg.Search.MaxResults != 50 {
		t.Errorf("expected default value 50 from ${VAR:-default}, got %d", cfg.Search.MaxResults)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing addrs",
			yaml: "http:\n  port: 8080\n",
		},
		{
			name: "bad port",
			yaml: "http:\n  port: 99999\ndatabase:\n  addrs: [\"localhost:6379\"]\n",
		},
		{
			name: "unknown embedding provider",
			yaml: "http:\n  port: 8080\ndatabase:\n  addrs: [\"localhost:6379\"]\nembedding:\n  provider: magic\n",
		},
		{
			name: "openai without api key",
			yaml: "http:\n  port: 8080\ndatabase:\n  addrs: [\"localhost:6379\"]\nembedding:\n  provider: openai\n",
		},
		{
			name: "threshold above one",
			yaml: "http:\n  port: 8080\ndatabase:\n  addrs: [\"localhost:6379\"]\nsearch:\n  semantic_threshold: 1.5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.yaml)
			if _, err := Load("test"); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestGetEnv_Default(t *testing.T) {
	t.Setenv("ENV", "")
	if env := GetEnv(); env != "local" {
		t.Errorf("expected local, got %q", env)
	}

	t.Setenv("ENV", "prod")
	if env := GetEnv(); env != "prod" {
		t.Errorf("expected prod, got %q", env)
	}
}
