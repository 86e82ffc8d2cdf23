package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.User != "" && c.Pass != ""
}

type Config struct {
	AppEnv          string
	Port            string
	APIBaseURL      string
	APITimeout      time.Duration
	StateBackend    string
	StateDir        string
	RedisURL        string
	RedisAddr       string
	RedisPassword   string
	DatabaseURL     string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
	LocalesDir      string
	DefaultLanguage string
	PageSize        int
	OriginURL       string
	LogLevel        string
	MaxUploadSize   int64
	Cloudinary      CloudinaryConfig
	SMTP            SMTPConfig

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

var AppConfig *Config

func LoadConfig() *Config {
	envLoaded := godotenv.Load() == nil

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	pageSize, _ := strconv.Atoi(os.Getenv("PAGE_SIZE"))
	if pageSize < 1 {
		pageSize = 10
	}

	timeout, err := time.ParseDuration(getEnv("API_TIMEOUT", "15s"))
	if err != nil || timeout <= 0 {
		timeout = 15 * time.Second
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}

	AppConfig = &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("APP_PORT", getEnv("PORT", "8082")),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:5000"),
		APITimeout:      timeout,
		StateBackend:    getEnv("STATE_BACKEND", "file"),
		StateDir:        getEnv("STATE_DIR", "./state"),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "storefront"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		LocalesDir:      getEnv("LOCALES_DIR", "./locales"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		PageSize:        pageSize,
		OriginURL:       os.Getenv("ORIGIN_URL"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		MaxUploadSize:   maxUploadSize,
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		SMTP: SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			Port: smtpPort,
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: os.Getenv("SMTP_FROM"),
		},
		EnvFileLoaded: envLoaded,
	}
	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PostgresDSN prefers DATABASE_URL over the individual DB_* settings.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
