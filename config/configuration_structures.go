package config

import (
	"fmt"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	Issuer          string `yaml:"issuer"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

// RateLimitRule : лимит попыток за фиксированное окно
type RateLimitRule struct {
	Limit  int    `yaml:"limit"`
	Window string `yaml:"window"`
}

// WindowDuration возвращает окно в виде time.Duration
func (r RateLimitRule) WindowDuration() (time.Duration, error) {
	window, err := time.ParseDuration(r.Window)
	if err != nil {
		return 0, fmt.Errorf("некорректное окно rate limit %q: %w", r.Window, err)
	}
	if window <= 0 {
		return 0, fmt.Errorf("окно rate limit должно быть положительным: %q", r.Window)
	}
	return window, nil
}

type RateLimitConfig struct {
	Login    RateLimitRule `yaml:"login"`
	Register RateLimitRule `yaml:"register"`
}

// CleanupConfig : периодическая очистка просроченных refresh токенов и счетчиков
type CleanupConfig struct {
	Interval string `yaml:"interval"`
}

// AdminConfig : учетная запись администратора, создаваемая при старте, если ее нет
type AdminConfig struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}
