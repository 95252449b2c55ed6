package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	Vision VisionConfig
	Scan   ScanConfig
	Excel  ExcelConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for passport image storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// VisionConfig holds OCR text-annotation API settings.
type VisionConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	MaxRetries  int    `mapstructure:"max_retries"`
}

// ScanConfig holds batch scan settings.
type ScanConfig struct {
	Concurrency  int `mapstructure:"concurrency"`
	MaxBatchSize int `mapstructure:"max_batch_size"`
}

// ExcelConfig holds registry workbook export settings.
type ExcelConfig struct {
	SheetName string `mapstructure:"sheet_name"`
	FileName  string `mapstructure:"file_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the PASSDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PASSDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "passdesk")
	v.SetDefault("db.password", "passdesk_secret")
	v.SetDefault("db.name", "passdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "passdesk")

	// S3 defaults
	v.SetDefault("s3.region", "ap-northeast-1")
	v.SetDefault("s3.bucket", "passdesk-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Vision defaults
	v.SetDefault("vision.endpoint", "https://vision.googleapis.com/v1/images:annotate")
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.timeout_secs", 60)
	v.SetDefault("vision.max_retries", 2)

	// Scan defaults
	v.SetDefault("scan.concurrency", 4)
	v.SetDefault("scan.max_batch_size", 50)

	// Excel defaults
	v.SetDefault("excel.sheet_name", "旅券情報")
	v.SetDefault("excel.file_name", "passport_registry.xlsx")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "PASSDESK_SERVER_PORT",
		"server.read_timeout":  "PASSDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout": "PASSDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":   "PASSDESK_SERVER_ENVIRONMENT",
		"db.host":              "PASSDESK_DB_HOST",
		"db.port":              "PASSDESK_DB_PORT",
		"db.user":              "PASSDESK_DB_USER",
		"db.password":          "PASSDESK_DB_PASSWORD",
		"db.name":              "PASSDESK_DB_NAME",
		"db.sslmode":           "PASSDESK_DB_SSLMODE",
		"db.max_open":          "PASSDESK_DB_MAX_OPEN",
		"db.max_idle":          "PASSDESK_DB_MAX_IDLE",
		"jwt.secret":           "PASSDESK_JWT_SECRET",
		"jwt.access_expiry":    "PASSDESK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":   "PASSDESK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":           "PASSDESK_JWT_ISSUER",
		"s3.region":            "PASSDESK_S3_REGION",
		"s3.bucket":            "PASSDESK_S3_BUCKET",
		"s3.endpoint":          "PASSDESK_S3_ENDPOINT",
		"s3.access_key":        "PASSDESK_S3_ACCESS_KEY",
		"s3.secret_key":        "PASSDESK_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "PASSDESK_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":    "PASSDESK_S3_PRESIGN_EXPIRY",
		"vision.endpoint":      "PASSDESK_VISION_ENDPOINT",
		"vision.api_key":       "PASSDESK_VISION_API_KEY",
		"vision.timeout_secs":  "PASSDESK_VISION_TIMEOUT_SECS",
		"vision.max_retries":   "PASSDESK_VISION_MAX_RETRIES",
		"scan.concurrency":     "PASSDESK_SCAN_CONCURRENCY",
		"scan.max_batch_size":  "PASSDESK_SCAN_MAX_BATCH_SIZE",
		"excel.sheet_name":     "PASSDESK_EXCEL_SHEET_NAME",
		"excel.file_name":      "PASSDESK_EXCEL_FILE_NAME",
		"log.level":            "PASSDESK_LOG_LEVEL",
		"log.format":           "PASSDESK_LOG_FORMAT",
		"cors.allowed_origins": "PASSDESK_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PASSDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PASSDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Vision = VisionConfig{
		Endpoint:    v.GetString("vision.endpoint"),
		APIKey:      v.GetString("vision.api_key"),
		TimeoutSecs: v.GetInt("vision.timeout_secs"),
		MaxRetries:  v.GetInt("vision.max_retries"),
	}
	cfg.Scan = ScanConfig{
		Concurrency:  v.GetInt("scan.concurrency"),
		MaxBatchSize: v.GetInt("scan.max_batch_size"),
	}
	cfg.Excel = ExcelConfig{
		SheetName: v.GetString("excel.sheet_name"),
		FileName:  v.GetString("excel.file_name"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
