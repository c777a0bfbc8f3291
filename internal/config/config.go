package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Clamd    ClamdConfig    `mapstructure:"clamd"`
	Login    LoginConfig    `mapstructure:"login"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port        int    `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
}

// AuthConfig contains token signing and password hashing settings.
type AuthConfig struct {
	TokenSecret   string `mapstructure:"token_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
}

// CORSConfig 描述允许跨域访问的来源列表（逗号分隔）。
type CORSConfig struct {
	AllowOrigins string `mapstructure:"allow_origins"`
}

// ClamdConfig contains the clamd daemon address used for upload scanning.
type ClamdConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoginConfig contains login throttling settings.
type LoginConfig struct {
	RateLimitPerHour int `mapstructure:"rate_limit_per_hour"`
	LockThreshold    int `mapstructure:"lock_threshold"`
	LockTTLMinutes   int `mapstructure:"lock_ttl_minutes"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// TokenTTL 返回访问令牌有效期。
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// LockTTL 返回登录失败锁定时长。
func (l LoginConfig) LockTTL() time.Duration {
	return time.Duration(l.LockTTLMinutes) * time.Minute
}

// Origins splits the allow-list into individual origins.
func (c CORSConfig) Origins() []string {
	parts := strings.Split(c.AllowOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.environment", "development")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "resumade")
	v.SetDefault("database.user", "resumade")
	v.SetDefault("database.password", "resumade")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "resumes")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("cors.allow_origins", "http://localhost:5173")
	v.SetDefault("clamd.addr", "tcp://localhost:3310")
	v.SetDefault("login.rate_limit_per_hour", 10)
	v.SetDefault("login.lock_threshold", 5)
	v.SetDefault("login.lock_ttl_minutes", 15)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                  "API_PORT",
		"api.environment":           "APP_ENV",
		"database.host":             "DATABASE_HOST",
		"database.port":             "DATABASE_PORT",
		"database.name":             "POSTGRES_DB",
		"database.user":             "POSTGRES_USER",
		"database.password":         "POSTGRES_PASSWORD",
		"database.sslmode":          "DATABASE_SSLMODE",
		"redis.host":                "REDIS_HOST",
		"redis.port":                "REDIS_PORT",
		"minio.endpoint":            "MINIO_ENDPOINT",
		"minio.access_key_id":       "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":   "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":             "MINIO_USE_SSL",
		"minio.bucket":              "MINIO_BUCKET",
		"auth.token_secret":         "TOKEN_SECRET",
		"auth.token_ttl_hours":      "TOKEN_TTL_HOURS",
		"auth.bcrypt_cost":          "BCRYPT_COST",
		"cors.allow_origins":        "CORS_ALLOW_ORIGINS",
		"clamd.addr":                "CLAMD_ADDR",
		"login.rate_limit_per_hour": "LOGIN_RATE_LIMIT_PER_HOUR",
		"login.lock_threshold":      "LOGIN_LOCK_THRESHOLD",
		"login.lock_ttl_minutes":    "LOGIN_LOCK_TTL_MINUTES",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	if cfg.Auth.TokenSecret == "" {
		return errors.New("token secret is required")
	}
	if cfg.Auth.TokenTTLHours <= 0 {
		return errors.New("token ttl must be positive")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return errors.New("bcrypt cost must be between 4 and 31")
	}
	return nil
}
