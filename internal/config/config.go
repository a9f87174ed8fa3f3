package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultSecret = "your-secret-key-change-in-production"

// Config 应用配置
type Config struct {
	Env         string
	AppSecret   string
	DatabaseURL string
	JWTExpiry   time.Duration
	Port        string
	SiteName    string
	SiteUrl     string
	SiteAuthor  string

	// 内容目录（data/、blog/、about.yaml）
	ContentDir string
	// 模板与静态资源目录（templates/、static/）
	WebDir string

	LogLevel  string
	LogFormat string

	AdminEmail        string
	AdminPasswordHash string
}

// Load 加载配置
func Load() *Config {
	expiryHours, err := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "72"))
	if err != nil || expiryHours <= 0 {
		expiryHours = 72
	}

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "homepage")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	env := getEnv("APP_ENV", "development")

	logFormat := "console"
	if env == "production" {
		logFormat = "json"
	}

	port := getEnv("PORT", "5005")

	return &Config{
		Env:               env,
		AppSecret:         getEnv("APP_SECRET", getEnv("JWT_SECRET", defaultSecret)),
		DatabaseURL:       dbURL,
		JWTExpiry:         time.Duration(expiryHours) * time.Hour,
		Port:              port,
		SiteName:          getEnv("SITE_NAME", "Jason Nguyen"),
		SiteUrl:           getEnv("SITE_URL", "http://localhost:"+port),
		SiteAuthor:        getEnv("SITE_AUTHOR", "Jason Nguyen"),
		ContentDir:        getEnv("CONTENT_DIR", "./content"),
		WebDir:            getEnv("WEB_DIR", "./web"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", logFormat),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}
}

// IsProduction 是否生产环境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDefaultSecret 是否仍在使用默认密钥
func (c *Config) UsesDefaultSecret() bool {
	return c.AppSecret == defaultSecret
}

// AdminEnabled 是否配置了管理员账号
func (c *Config) AdminEnabled() bool {
	return c.AdminEmail != "" && c.AdminPasswordHash != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
