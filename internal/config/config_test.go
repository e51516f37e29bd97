package config

import (
	"flag"
	"os"
	"testing"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	// подавляем вывод парсера флагов в тестах
	flag.CommandLine.SetOutput(os.Stderr)
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "")
	t.Setenv("DATABASE_URI", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("ENABLE_HTTPS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CACHE", "")
	t.Setenv("CORS_ORIGINS", "")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.RunAddress != "0.0.0.0:8000" {
		t.Fatalf("RunAddress default expected '0.0.0.0:8000', got %q", cfg.RunAddress)
	}
	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.SQLitePath != "cyclekeeper.db" {
		t.Fatalf("SQLitePath default expected 'cyclekeeper.db', got %q", cfg.SQLitePath)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel default expected 'info', got %q", cfg.LogLevel)
	}
	if cfg.Cache != "memory" {
		t.Fatalf("Cache default expected 'memory', got %q", cfg.Cache)
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "example.com:443")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("DATABASE_URI", "postgres://u:p@db:5432/cycle")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.RunAddress != "example.com:443" {
		t.Fatalf("RunAddress expected 'example.com:443', got %q", cfg.RunAddress)
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected from env 'top', got %q", cfg.AuthSecret)
	}
	if cfg.DatabaseDSN != "postgres://u:p@db:5432/cycle" {
		t.Fatalf("DatabaseDSN expected from env, got %q", cfg.DatabaseDSN)
	}
	if !cfg.EnableHTTPS {
		t.Fatalf("EnableHTTPS expected true")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel expected 'debug', got %q", cfg.LogLevel)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example" {
		t.Fatalf("CORSOrigins expected two origins, got %v", cfg.CORSOrigins)
	}
}

func TestNewConfig_InvalidRunAddressFallback(t *testing.T) {
	// Невалидный RUN_ADDRESS (со схемой) должен откатиться на 0.0.0.0:8000
	t.Setenv("RUN_ADDRESS", "http://bad:8080")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.RunAddress != "0.0.0.0:8000" {
		t.Fatalf("invalid RUN_ADDRESS must fallback to '0.0.0.0:8000', got %q", cfg.RunAddress)
	}
}

func TestNewConfig_CacheNormalization(t *testing.T) {
	t.Setenv("CACHE", "Redis")
	t.Setenv("REDIS_ADDR", "")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.Cache != "redis" {
		t.Fatalf("Cache expected 'redis', got %q", cfg.Cache)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr default expected 'localhost:6379', got %q", cfg.RedisAddr)
	}

	t.Setenv("CACHE", "bogus")
	resetFlagSet(t)
	cfg = NewConfig()
	if cfg.Cache != "memory" {
		t.Fatalf("unknown cache type must fallback to 'memory', got %q", cfg.Cache)
	}
}
