// Package config loads and holds all witnessgen service configuration.
// Settings are layered: defaults → witnessgen-config.json → environment
// variables (env vars win).
package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds the full witness-generation service configuration.
type Config struct {
	StatusPort     int    `json:"statusPort"`
	LogLevel       string `json:"logLevel"`
	BindAddress    string `json:"bindAddress"`
	StatusToken    string `json:"statusToken"`

	// MaxStackHeight is M, the JSON state machine's runtime-configured
	// stack depth bound. Go has no const generics suitable for a
	// compile-time bound here, so this is checked once at machine
	// construction instead.
	MaxStackHeight int `json:"maxStackHeight"`

	// RandomizerHex is a base-16 polynomial randomizer p, loaded from the
	// config file or RANDOMIZER_HEX. No component reads it: the generate
	// command's --capture digest always uses the fixed randomizer 131.
	RandomizerHex string `json:"randomizerHex"`

	// CacheBackend selects the digest cache implementation: "memory",
	// "bbolt", or "redis".
	CacheBackend string `json:"cacheBackend"`
	// CacheFile is the bbolt database path when CacheBackend is "bbolt".
	CacheFile string `json:"cacheFile"`
	// CacheRedisAddr is the redis address when CacheBackend is "redis".
	CacheRedisAddr string `json:"cacheRedisAddr"`
	// CacheCapacity bounds the in-memory S3-FIFO cache's entry count.
	CacheCapacity int `json:"cacheCapacity"`
}

// Load returns config with defaults overridden by witnessgen-config.json and
// env vars.
func Load() *Config {
	cfg := defaults()
	loadFile(cfg, "witnessgen-config.json")
	loadEnv(cfg)
	return cfg
}

func defaults() *Config {
	return &Config{
		StatusPort:      8088,
		LogLevel:        "info",
		BindAddress:     "127.0.0.1",
		MaxStackHeight:  12,
		RandomizerHex:   "",
		CacheBackend:    "memory",
		CacheFile:       "witnessgen-cache.db",
		CacheRedisAddr:  "127.0.0.1:6379",
		CacheCapacity:   10000,
	}
}

func loadFile(cfg *Config, path string) {
	data, err := os.ReadFile(path) //nolint:gosec // G703: path is a controlled config file path, not user input
	if err != nil {
		return // file is optional
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Printf("[CONFIG] Warning: could not parse %s: %v", path, err)
	} else {
		log.Printf("[CONFIG] Loaded %s", path)
	}
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("STATUS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.StatusPort = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BIND_ADDRESS"); v != "" {
		cfg.BindAddress = v
	}
	if v := os.Getenv("STATUS_TOKEN"); v != "" {
		cfg.StatusToken = v
	}
	if v := os.Getenv("MAX_STACK_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxStackHeight = n
		}
	}
	if v := os.Getenv("RANDOMIZER_HEX"); v != "" {
		cfg.RandomizerHex = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.CacheBackend = v
	}
	if v := os.Getenv("CACHE_FILE"); v != "" {
		cfg.CacheFile = v
	}
	if v := os.Getenv("CACHE_REDIS_ADDR"); v != "" {
		cfg.CacheRedisAddr = v
	}
	if v := os.Getenv("CACHE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheCapacity = n
		}
	}
}
