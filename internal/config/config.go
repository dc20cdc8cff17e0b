// Package config loads service configuration from the environment.
// The Config struct is built once in main and injected into the
// components that need it; nothing reads env vars after startup.
package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full runtime configuration of the service.
type Config struct {
	// HTTPAddr is the listen address of the HTTP server.
	HTTPAddr string

	DB      DBConfig
	Storage StorageConfig
	Captcha CaptchaConfig
}

// DBConfig describes the Postgres connection for the ticket store.
type DBConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// DSN renders the lib/pq connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Name, c.User, c.Password, c.SSLMode)
}

// StorageConfig describes the S3-compatible object storage that holds
// generated ticket artifacts.
type StorageConfig struct {
	// Endpoint is the API endpoint the service uploads through.
	Endpoint string
	// PublicEndpoint is the base URL clients download artifacts from.
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
}

// CaptchaConfig describes the SmartCaptcha verification endpoint.
type CaptchaConfig struct {
	Secret    string
	VerifyURL string
	// Enforce selects real verification. When false an always-pass
	// verifier is wired instead; this is an explicit toggle so a
	// disabled security control is visible in configuration.
	Enforce bool
	Timeout time.Duration
}

const (
	defaultPGPort     = 6432
	defaultSSLMode    = "require"
	defaultBucket     = "tickets-bucket"
	defaultS3Endpoint = "https://storage.yandexcloud.net"
	defaultVerifyURL  = "https://smartcaptcha.api.cloud.yandex.net/v1/captcha:verify"
	defaultHTTPAddr   = ":8080"
)

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PG_PORT", defaultPGPort)
	v.SetDefault("PG_SSLMODE", defaultSSLMode)
	v.SetDefault("BUCKET_NAME", defaultBucket)
	v.SetDefault("S3_ENDPOINT", defaultS3Endpoint)
	v.SetDefault("SMARTCAPTCHA_VERIFY_URL", defaultVerifyURL)
	v.SetDefault("ENFORCE_CAPTCHA", true)
	v.SetDefault("CAPTCHA_TIMEOUT", 5*time.Second)
	v.SetDefault("HTTP_ADDR", defaultHTTPAddr)

	cfg := &Config{
		HTTPAddr: v.GetString("HTTP_ADDR"),
		DB: DBConfig{
			Host:     v.GetString("PG_HOST"),
			Port:     v.GetInt("PG_PORT"),
			Name:     v.GetString("PG_DB"),
			User:     v.GetString("PG_USER"),
			Password: v.GetString("PG_PASSWORD"),
			SSLMode:  v.GetString("PG_SSLMODE"),
		},
		Storage: StorageConfig{
			Endpoint:       v.GetString("S3_ENDPOINT"),
			PublicEndpoint: v.GetString("S3_ENDPOINT_URL"),
			AccessKey:      v.GetString("S3_ACCESS_KEY"),
			SecretKey:      v.GetString("S3_SECRET_KEY"),
			Bucket:         v.GetString("BUCKET_NAME"),
		},
		Captcha: CaptchaConfig{
			Secret:    v.GetString("SMARTCAPTCHA_SECRET"),
			VerifyURL: v.GetString("SMARTCAPTCHA_VERIFY_URL"),
			Enforce:   v.GetBool("ENFORCE_CAPTCHA"),
			Timeout:   v.GetDuration("CAPTCHA_TIMEOUT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	required := map[string]string{
		"PG_HOST":         c.DB.Host,
		"PG_DB":           c.DB.Name,
		"PG_USER":         c.DB.User,
		"PG_PASSWORD":     c.DB.Password,
		"S3_ENDPOINT_URL": c.Storage.PublicEndpoint,
		"S3_ACCESS_KEY":   c.Storage.AccessKey,
		"S3_SECRET_KEY":   c.Storage.SecretKey,
	}
	for name, val := range required {
		if val == "" {
			missing = append(missing, name)
		}
	}
	if c.Captcha.Enforce && c.Captcha.Secret == "" {
		missing = append(missing, "SMARTCAPTCHA_SECRET")
	}
	if len(missing) > 0 {
		// Deterministic error text regardless of map order.
		sort.Strings(missing)
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
