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
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	Extractor ExtractorConfig
	Recon     ReconConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds the ledger PostgreSQL connection settings.
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

// S3Config holds the settings of the batch-mode document source.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExtractorConfig holds the invoice extraction service settings.
type ExtractorConfig struct {
	Provider      string `mapstructure:"provider"`
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// ReconConfig holds the reconciliation engine settings.
type ReconConfig struct {
	// AmountTolerance is a decimal string ("0.01") bounding the
	// invoice-total vs declared-amount comparison.
	AmountTolerance string `mapstructure:"amount_tolerance"`
	// RecognizedDocumentTypes are case-insensitive substrings identifying
	// invoice-class document types.
	RecognizedDocumentTypes []string `mapstructure:"recognized_document_types"`
	// AllowFallbackMatch attaches an unmatched ledger row when no exact
	// document-number match exists.
	AllowFallbackMatch bool `mapstructure:"allow_fallback_match"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the FISCAUDIT_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FISCAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "fiscaudit")
	v.SetDefault("db.password", "fiscaudit_secret")
	v.SetDefault("db.name", "fiscaudit_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Extractor defaults
	v.SetDefault("extractor.provider", "gemini")
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.model", "gemini-2.0-flash")
	v.SetDefault("extractor.timeout_secs", 120)
	v.SetDefault("extractor.max_file_size_mb", 100)

	// Recon defaults
	v.SetDefault("recon.amount_tolerance", "0.01")
	v.SetDefault("recon.recognized_document_types",
		"nota fiscal,danfe,fatura,invoice,utility bill,telecom bill,nf,nfe,nf-e")
	v.SetDefault("recon.allow_fallback_match", false)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "FISCAUDIT_SERVER_PORT",
		"server.read_timeout":             "FISCAUDIT_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "FISCAUDIT_SERVER_WRITE_TIMEOUT",
		"server.environment":              "FISCAUDIT_SERVER_ENVIRONMENT",
		"db.host":                         "FISCAUDIT_DB_HOST",
		"db.port":                         "FISCAUDIT_DB_PORT",
		"db.user":                         "FISCAUDIT_DB_USER",
		"db.password":                     "FISCAUDIT_DB_PASSWORD",
		"db.name":                         "FISCAUDIT_DB_NAME",
		"db.sslmode":                      "FISCAUDIT_DB_SSLMODE",
		"db.max_open":                     "FISCAUDIT_DB_MAX_OPEN",
		"db.max_idle":                     "FISCAUDIT_DB_MAX_IDLE",
		"s3.region":                       "FISCAUDIT_S3_REGION",
		"s3.bucket":                       "FISCAUDIT_S3_BUCKET",
		"s3.endpoint":                     "FISCAUDIT_S3_ENDPOINT",
		"s3.access_key":                   "FISCAUDIT_S3_ACCESS_KEY",
		"s3.secret_key":                   "FISCAUDIT_S3_SECRET_KEY",
		"log.level":                       "FISCAUDIT_LOG_LEVEL",
		"log.format":                      "FISCAUDIT_LOG_FORMAT",
		"extractor.provider":              "FISCAUDIT_EXTRACTOR_PROVIDER",
		"extractor.api_key":               "FISCAUDIT_EXTRACTOR_API_KEY",
		"extractor.model":                 "FISCAUDIT_EXTRACTOR_MODEL",
		"extractor.timeout_secs":          "FISCAUDIT_EXTRACTOR_TIMEOUT_SECS",
		"extractor.max_file_size_mb":      "FISCAUDIT_EXTRACTOR_MAX_FILE_SIZE_MB",
		"recon.amount_tolerance":          "FISCAUDIT_RECON_AMOUNT_TOLERANCE",
		"recon.recognized_document_types": "FISCAUDIT_RECON_RECOGNIZED_DOCUMENT_TYPES",
		"recon.allow_fallback_match":      "FISCAUDIT_RECON_ALLOW_FALLBACK_MATCH",
		"cors.allowed_origins":            "FISCAUDIT_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// FISCAUDIT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FISCAUDIT_SERVER_PORT") == "" {
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
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Extractor = ExtractorConfig{
		Provider:      v.GetString("extractor.provider"),
		APIKey:        v.GetString("extractor.api_key"),
		Model:         v.GetString("extractor.model"),
		TimeoutSecs:   v.GetInt("extractor.timeout_secs"),
		MaxFileSizeMB: v.GetInt64("extractor.max_file_size_mb"),
	}
	cfg.Recon = ReconConfig{
		AmountTolerance:         v.GetString("recon.amount_tolerance"),
		RecognizedDocumentTypes: splitList(v.GetString("recon.recognized_document_types")),
		AllowFallbackMatch:      v.GetBool("recon.allow_fallback_match"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
