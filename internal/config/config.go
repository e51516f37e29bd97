package config

import (
	"flag"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config — настройки сервера.
type Config struct {
	// Адрес и база
	RunAddress  string `env:"RUN_ADDRESS"`
	DatabaseDSN string `env:"DATABASE_URI"`
	SQLitePath  string `env:"SQLITE_PATH"`

	// Авторизация
	AuthSecret  string `env:"AUTH_SECRET"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Логирование
	LogLevel string `env:"LOG_LEVEL"`
	LogFile  string `env:"LOG_FILE"`

	// Кеш статистики
	Cache         string `env:"CACHE"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "адрес и порт сервера (host:port)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "путь к файлу SQLite, если DSN не задан")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "ставить Secure на cookie авторизации")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "уровень логирования (debug|info|warn|error)")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "файл логов с ротацией; пусто — только stderr")
	flag.StringVar(&cfg.Cache, "cache", cfg.Cache, "кеш статистики (memory|redis)")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "адрес Redis (host:port)")
	corsFlag := flag.String("cors-origins", "", "разрешённые CORS origins через запятую")

	flag.Parse()

	if len(cfg.CORSOrigins) == 0 && *corsFlag != "" {
		cfg.CORSOrigins = strings.Split(*corsFlag, ",")
	}

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	// validate RunAddress: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.RunAddress) {
		cfg.RunAddress = "0.0.0.0:8000"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "cyclekeeper.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Cache = strings.ToLower(cfg.Cache)
	if cfg.Cache != "memory" && cfg.Cache != "redis" {
		cfg.Cache = "memory"
	}
	if cfg.Cache == "redis" && cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}

	return cfg
}
