package config

import (
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"io/fs"
	"net/http"
	"os"
	"time"
)

type AppConfig struct {
	Environment    string          `yaml:"environment"`
	ServerAddr     string          `yaml:"serverAddr"`
	DatabaseConfig DatabaseConfig  `yaml:"databaseConfig"`
	RedisConfig    RedisConfig     `yaml:"redisConfig"`
	JWT            JWTConfig       `yaml:"jwt"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Cleanup        CleanupConfig   `yaml:"cleanup"`
	Admin          AdminConfig     `yaml:"admin"`
}

// LoadConfig читает .env (если есть), затем yaml-файл, затем переменные окружения.
// Отсутствующий yaml-файл не является ошибкой: конфигурация собирается из окружения и значений по умолчанию.
func LoadConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ошибка чтения .env: %w", err)
	}

	var cfg AppConfig
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(file, &cfg); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Environment = v
	} else if v := os.Getenv("NODE_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.ServerAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseConfig.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.SecretKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisConfig.Addr = v
		c.RedisConfig.Enabled = true
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "course-platform-auth"
	}
	if c.JWT.AccessTokenTTL == "" {
		c.JWT.AccessTokenTTL = "15m"
	}
	if c.JWT.RefreshTokenTTL == "" {
		c.JWT.RefreshTokenTTL = "168h"
	}

	// в разработке лимит на вход выше, чтобы не мешать ручному тестированию
	if c.RateLimit.Login.Limit == 0 {
		if c.IsDevelopment() {
			c.RateLimit.Login = RateLimitRule{Limit: 50, Window: "5m"}
		} else {
			c.RateLimit.Login = RateLimitRule{Limit: 10, Window: "10m"}
		}
	}
	if c.RateLimit.Register.Limit == 0 {
		c.RateLimit.Register = RateLimitRule{Limit: 10, Window: "10m"}
	}
	if c.Cleanup.Interval == "" {
		c.Cleanup.Interval = "1h"
	}
}

// Validate проверяет конфигурацию. В production обязательны DSN и секрет подписи.
func (c *AppConfig) Validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("неизвестное окружение: %q", c.Environment)
	}

	if c.DatabaseConfig.DSN == "" {
		return fmt.Errorf("не задан DSN базы данных (DATABASE_URL)")
	}

	if c.IsProduction() && len(c.JWT.SecretKey) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET должен быть не короче %d символов", MinSecretLength)
	}

	for name, raw := range map[string]string{
		"access_token_ttl":  c.JWT.AccessTokenTTL,
		"refresh_token_ttl": c.JWT.RefreshTokenTTL,
		"cleanup.interval":  c.Cleanup.Interval,
	} {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("некорректное значение %s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("значение %s должно быть положительным", name)
		}
	}

	for name, rule := range map[string]RateLimitRule{
		"rateLimit.login":    c.RateLimit.Login,
		"rateLimit.register": c.RateLimit.Register,
	} {
		if rule.Limit <= 0 {
			return fmt.Errorf("%s.limit должен быть положительным: %d", name, rule.Limit)
		}
		if _, err := rule.WindowDuration(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
