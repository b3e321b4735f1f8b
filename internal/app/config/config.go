package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int

	// REST бэкенд
	BackendURL     string
	APIBaseURL     string
	RequestTimeout time.Duration

	DefaultLocale string
	DownloadDir   string

	// Проверка токенов провайдера аутентификации
	JWTSecret  string
	SessionTTL time.Duration

	// Redis Configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MinIO Configuration
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Таблицы, доступные только администраторам
	AdminEndpoints []string
	// Права, необходимые для таблиц: endpoint -> permission slugs
	Permissions map[string][]string
}

func NewConfig() (*Config, error) {
	var err error

	// Загружаем .env файл
	_ = godotenv.Load()

	// Загружаем TOML конфигурацию
	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("DefaultLocale", "en")
	viper.SetDefault("DownloadDir", "downloads")
	viper.SetDefault("AdminEndpoints", []string{"users", "roles"})

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Warn("config file not found, using defaults and environment")
	} else {
		viper.WatchConfig()
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// Адрес API из .env
	cfg.BackendURL = getEnv("BACKEND_URL", cfg.BackendURL)
	cfg.APIBaseURL = getEnv("API_BASE_URL", cfg.APIBaseURL)
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "/api/v1/admin"
	}
	if strings.HasPrefix(cfg.APIBaseURL, "/") {
		cfg.APIBaseURL = strings.TrimRight(cfg.BackendURL, "/") + cfg.APIBaseURL
	}

	cfg.RequestTimeout = getDuration("REQUEST_TIMEOUT", cfg.RequestTimeout, 30*time.Second)
	cfg.DefaultLocale = getEnv("DEFAULT_LOCALE", cfg.DefaultLocale)
	cfg.DownloadDir = getEnv("DOWNLOAD_DIR", cfg.DownloadDir)

	// Без секрета утверждения токена читаются без проверки подписи
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty - token claims are read unverified")
	}
	cfg.SessionTTL = getDuration("SESSION_TTL", cfg.SessionTTL, 24*time.Hour)

	// Redis конфигурация из .env
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}
	cfg.RedisDB = redisDB

	// MinIO конфигурация из .env
	cfg.MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	cfg.MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minio")
	cfg.MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minio124")
	cfg.MinioBucket = getEnv("MINIO_BUCKET", "console-exports")
	cfg.MinioUseSSL = getEnv("MINIO_USE_SSL", "false") == "true"

	log.Info("config parsed")

	return cfg, nil
}

// getEnv вспомогательная функция для получения environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, current, fallback time.Duration) time.Duration {
	if exp := os.Getenv(key); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			return parsed
		}
		log.Warnf("invalid duration in %s: %q", key, exp)
	}
	if current > 0 {
		return current
	}
	return fallback
}
