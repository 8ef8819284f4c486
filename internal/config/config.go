package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	CORS    CORSConfig
	Email   EmailConfig
	Share   ShareConfig
	Invoice InvoiceConfig
}

// EmailConfig holds invoice email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ShareConfig holds settings for signed public invoice download links.
type ShareConfig struct {
	Secret    string        `mapstructure:"secret"`
	Expiry    time.Duration `mapstructure:"expiry"`
	Issuer    string        `mapstructure:"issuer"`
	PublicURL string        `mapstructure:"public_url"`
}

// InvoiceConfig holds document rendering defaults.
type InvoiceConfig struct {
	DateFormat   string   `mapstructure:"date_format"`
	CreditLine   string   `mapstructure:"credit_line"`
	Terms        []string `mapstructure:"terms"`
	Letterhead   bool     `mapstructure:"letterhead"`
	SendEmail    bool     `mapstructure:"send_email"`
	PDFKeyPrefix string   `mapstructure:"pdf_key_prefix"`
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

// S3Config holds object storage settings for invoice PDFs and branding assets.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load reads configuration from environment variables with the HISAAB_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("HISAAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "hisaab")
	v.SetDefault("db.password", "hisaab_secret")
	v.SetDefault("db.name", "hisaab_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "hisaab-invoices")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "billing@hisaabkeeper.in")
	v.SetDefault("email.from_name", "HisaabKeeper")

	// Share link defaults
	v.SetDefault("share.secret", "change-me-in-production")
	v.SetDefault("share.expiry", "168h")
	v.SetDefault("share.issuer", "hisaab")
	v.SetDefault("share.public_url", "http://localhost:8080")

	// Invoice defaults
	v.SetDefault("invoice.date_format", "02-01-2006")
	v.SetDefault("invoice.credit_line", "This document is generated using HisaabKeeper.")
	v.SetDefault("invoice.terms", "")
	v.SetDefault("invoice.letterhead", false)
	v.SetDefault("invoice.send_email", false)
	v.SetDefault("invoice.pdf_key_prefix", "invoices")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "HISAAB_SERVER_PORT",
		"server.read_timeout":    "HISAAB_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "HISAAB_SERVER_WRITE_TIMEOUT",
		"server.environment":     "HISAAB_SERVER_ENVIRONMENT",
		"db.host":                "HISAAB_DB_HOST",
		"db.port":                "HISAAB_DB_PORT",
		"db.user":                "HISAAB_DB_USER",
		"db.password":            "HISAAB_DB_PASSWORD",
		"db.name":                "HISAAB_DB_NAME",
		"db.sslmode":             "HISAAB_DB_SSLMODE",
		"db.max_open":            "HISAAB_DB_MAX_OPEN",
		"db.max_idle":            "HISAAB_DB_MAX_IDLE",
		"s3.region":              "HISAAB_S3_REGION",
		"s3.bucket":              "HISAAB_S3_BUCKET",
		"s3.endpoint":            "HISAAB_S3_ENDPOINT",
		"s3.access_key":          "HISAAB_S3_ACCESS_KEY",
		"s3.secret_key":          "HISAAB_S3_SECRET_KEY",
		"s3.presign_expiry":      "HISAAB_S3_PRESIGN_EXPIRY",
		"cors.allowed_origins":   "HISAAB_CORS_ALLOWED_ORIGINS",
		"email.provider":         "HISAAB_EMAIL_PROVIDER",
		"email.region":           "HISAAB_EMAIL_REGION",
		"email.from_address":     "HISAAB_EMAIL_FROM_ADDRESS",
		"email.from_name":        "HISAAB_EMAIL_FROM_NAME",
		"share.secret":           "HISAAB_SHARE_SECRET",
		"share.expiry":           "HISAAB_SHARE_EXPIRY",
		"share.issuer":           "HISAAB_SHARE_ISSUER",
		"share.public_url":       "HISAAB_SHARE_PUBLIC_URL",
		"invoice.date_format":    "HISAAB_INVOICE_DATE_FORMAT",
		"invoice.credit_line":    "HISAAB_INVOICE_CREDIT_LINE",
		"invoice.terms":          "HISAAB_INVOICE_TERMS",
		"invoice.letterhead":     "HISAAB_INVOICE_LETTERHEAD",
		"invoice.send_email":     "HISAAB_INVOICE_SEND_EMAIL",
		"invoice.pdf_key_prefix": "HISAAB_INVOICE_PDF_KEY_PREFIX",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if HISAAB_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HISAAB_SERVER_PORT") == "" {
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
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins"), ","),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Share = ShareConfig{
		Secret:    v.GetString("share.secret"),
		Expiry:    v.GetDuration("share.expiry"),
		Issuer:    v.GetString("share.issuer"),
		PublicURL: strings.TrimRight(v.GetString("share.public_url"), "/"),
	}
	// Terms are separated by "|" since they contain commas.
	cfg.Invoice = InvoiceConfig{
		DateFormat:   v.GetString("invoice.date_format"),
		CreditLine:   v.GetString("invoice.credit_line"),
		Terms:        splitList(v.GetString("invoice.terms"), "|"),
		Letterhead:   v.GetBool("invoice.letterhead"),
		SendEmail:    v.GetBool("invoice.send_email"),
		PDFKeyPrefix: strings.Trim(v.GetString("invoice.pdf_key_prefix"), "/"),
	}

	return cfg, nil
}
