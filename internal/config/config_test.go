package config

import (
	"encoding/json"
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	if cfg.StatusPort != 8088 {
		t.Errorf("StatusPort: got %d, want 8088", cfg.StatusPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %s", cfg.LogLevel)
	}
	if cfg.BindAddress != "127.0.0.1" {
		t.Errorf("BindAddress: got %s", cfg.BindAddress)
	}
	if cfg.MaxStackHeight != 12 {
		t.Errorf("MaxStackHeight: got %d, want 12", cfg.MaxStackHeight)
	}
	if cfg.CacheBackend != "memory" {
		t.Errorf("CacheBackend: got %s", cfg.CacheBackend)
	}
	if cfg.CacheCapacity != 10000 {
		t.Errorf("CacheCapacity: got %d, want 10000", cfg.CacheCapacity)
	}
}

func TestLoadEnv_StatusPort(t *testing.T) {
	t.Setenv("STATUS_PORT", "9090")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.StatusPort != 9090 {
		t.Errorf("StatusPort: got %d, want 9090", cfg.StatusPort)
	}
}

func TestLoadEnv_LogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %s", cfg.LogLevel)
	}
}

func TestLoadEnv_BindAddress(t *testing.T) {
	t.Setenv("BIND_ADDRESS", "0.0.0.0")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.BindAddress != "0.0.0.0" {
		t.Errorf("BindAddress: got %s", cfg.BindAddress)
	}
}

func TestLoadEnv_StatusToken(t *testing.T) {
	t.Setenv("STATUS_TOKEN", "secret-token")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.StatusToken != "secret-token" {
		t.Errorf("StatusToken: got %s", cfg.StatusToken)
	}
}

func TestLoadEnv_MaxStackHeight(t *testing.T) {
	t.Setenv("MAX_STACK_HEIGHT", "20")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.MaxStackHeight != 20 {
		t.Errorf("MaxStackHeight: got %d, want 20", cfg.MaxStackHeight)
	}
}

func TestLoadEnv_MaxStackHeight_Zero_Ignored(t *testing.T) {
	t.Setenv("MAX_STACK_HEIGHT", "0")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.MaxStackHeight != 12 {
		t.Errorf("MaxStackHeight: got %d, want 12 (zero should be ignored)", cfg.MaxStackHeight)
	}
}

func TestLoadEnv_CacheBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "bbolt")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.CacheBackend != "bbolt" {
		t.Errorf("CacheBackend: got %s", cfg.CacheBackend)
	}
}

func TestLoadEnv_InvalidPort_Ignored(t *testing.T) {
	t.Setenv("STATUS_PORT", "not-a-number")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.StatusPort != 8088 {
		t.Errorf("StatusPort: got %d, want 8088 (invalid env should be ignored)", cfg.StatusPort)
	}
}

func TestLoadFile_ValidJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	if err != nil {
		t.Fatal(err)
	}

	data, marshalErr := json.Marshal(map[string]any{
		"statusPort":     9999,
		"cacheBackend":   "redis",
		"maxStackHeight": 30,
	})
	if marshalErr != nil {
		t.Fatal(marshalErr)
	}
	if _, err := f.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := defaults()
	loadFile(cfg, f.Name())

	if cfg.StatusPort != 9999 {
		t.Errorf("StatusPort: got %d, want 9999", cfg.StatusPort)
	}
	if cfg.CacheBackend != "redis" {
		t.Errorf("CacheBackend: got %s", cfg.CacheBackend)
	}
	if cfg.MaxStackHeight != 30 {
		t.Errorf("MaxStackHeight: got %d, want 30", cfg.MaxStackHeight)
	}
}

func TestLoadFile_Missing_IsNoOp(t *testing.T) {
	cfg := defaults()
	loadFile(cfg, "/nonexistent/path/config.json")
	if cfg.StatusPort != 8088 {
		t.Errorf("StatusPort changed unexpectedly: %d", cfg.StatusPort)
	}
}

func TestLoadFile_InvalidJSON_PreservesDefaults(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "config-bad-*.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{this is not json}"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := defaults()
	loadFile(cfg, f.Name())
	if cfg.StatusPort != 8088 {
		t.Errorf("StatusPort changed on bad JSON: %d", cfg.StatusPort)
	}
}

func TestLoad_ReturnsNonNil(t *testing.T) {
	cfg := Load()
	if cfg == nil {
		t.Fatal("Load() returned nil")
	}
	if cfg.StatusPort <= 0 {
		t.Errorf("StatusPort should be positive, got %d", cfg.StatusPort)
	}
}
