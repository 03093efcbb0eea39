package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"yatube/internal/infrastructure/database"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database *database.DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Web      WebConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
	BcryptCost        int
}

// WebConfig gom các setting của phần HTML: pagination, login URL, cookie
type WebConfig struct {
	PostsPerPage int
	LoginURL     string
	CookieName   string
	CookieSecure bool
	SSL          bool
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Yatube"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 14*24*60), // 2 weeks
			BcryptCost:        getEnvInt("BCRYPT_COST", 12),
		},
		Web: WebConfig{
			PostsPerPage: getEnvInt("POSTS_PER_PAGE", 10),
			LoginURL:     getEnv("LOGIN_URL", "/auth/login/"),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "access_token"),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
			SSL:          getEnvBool("APP_SSL", false),
		},
	}

	dbCfg, err := LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	cfg.Database = dbCfg

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Web.PostsPerPage < 1 {
		return fmt.Errorf("POSTS_PER_PAGE must be positive, got %d", c.Web.PostsPerPage)
	}
	if c.JWT.AccessTokenExpiry < 1 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive, got %d", c.JWT.AccessTokenExpiry)
	}

	// Production environment phải có JWT secret
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database == nil || c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// SessionTTL là thời gian sống của access token và session trong Redis
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
