// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	MigrateOnly = pflag.Bool("migrate-only", false, "Applies database migrations and exits")

	validLogLevels      = []string{"debug", "info", "warn", "error", "fatal"}
	validStorageTypes   = []string{"local", "s3", "r2"}
	validDBDrivers      = []string{"sqlite", "postgres"}
	validPasswordHashes = []string{"argon2id", "bcrypt"}
	validCacheStores    = []string{"memory", "redis"}
)

type Config struct {
	App        App
	Host       Host
	DB         Database
	JWT        JWT
	Security   Security
	Mail       Mail
	Storage    Storage
	AWS        AWS
	Cloudflare Cloudflare
	Upload     Upload
	Cache      Cache
	Redis      Redis
}

type App struct {
	LogLevel    string
	FrontendURL string
}

type Host struct {
	Port     int
	Domain   string
	BasePath string
	CORS     []string
	SSL      SSL
}

type SSL struct {
	Enabled            bool
	CertificatePath    string
	CertificateKeyPath string
}

type Database struct {
	Driver string
	DSN    string
}

type JWT struct {
	Secret string
}

type Security struct {
	PasswordHash string
	RateLimit    int
}

type Mail struct {
	Enabled       bool
	Host          string
	Port          int
	Username      string
	Password      string
	SenderAddress string
}

type Storage struct {
	Type      string
	LocalPath string
	PublicURL string
}

type AWS struct {
	AccessKey       string
	SecretAccessKey string
	Region          string
	Bucket          string
}

type Cloudflare struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Turnstile       Turnstile
}

type Turnstile struct {
	Enabled     bool
	SecretToken string
}

type Upload struct {
	MaxSize int64 // bytes
}

type Cache struct {
	Enabled bool
	TTL     time.Duration
	Store   string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() (*Config, error) {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	// A missing .env is fine, real deployments pass envs directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file, %w", err)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	bindEnvs()
	setDefaults()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	c := Load()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if !c.Cloudflare.Turnstile.Enabled {
		fmt.Println("[WARNING]: Cloudflare's turnstile is disabled. Registration won't be guarded against bots")
	}

	return c, nil
}

func bindEnvs() {
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")
	v.BindEnv("app.frontend_url", "APP_FRONTEND_URL")

	v.BindEnv("host.port", "HOST_PORT")
	v.BindEnv("host.domain", "HOST_DOMAIN")
	v.BindEnv("host.base_path", "HOST_BASE_PATH")
	v.BindEnv("host.cors", "HOST_CORS")

	v.BindEnv("host.ssl.enabled", "HOST_SSL_ENABLED")
	v.BindEnv("host.ssl.certificate_path", "HOST_SSL_CERTIFICATE_PATH")
	v.BindEnv("host.ssl.certificate_key_path", "HOST_SSL_CERTIFICATE_KEY_PATH")

	v.BindEnv("db.driver", "DB_DRIVER")
	v.BindEnv("db.dsn", "DB_DSN")

	v.BindEnv("jwt.secret", "SECURITY_JWT_SECRET")

	v.BindEnv("security.password_hash", "SECURITY_PASSWORD_HASH")
	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")

	v.BindEnv("mail.enabled", "MAIL_ENABLED")
	v.BindEnv("mail.host", "MAIL_HOST")
	v.BindEnv("mail.port", "MAIL_PORT")
	v.BindEnv("mail.username", "MAIL_USERNAME")
	v.BindEnv("mail.password", "MAIL_PASSWORD")
	v.BindEnv("mail.sender_address", "MAIL_SENDER_ADDRESS")

	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.local_path", "STORAGE_LOCAL_PATH")
	v.BindEnv("storage.public_url", "STORAGE_PUBLIC_URL")

	v.BindEnv("aws.access_key", "ACCESS_KEY_ID")
	v.BindEnv("aws.secret_access_key", "SECRET_ACCESS_KEY")
	v.BindEnv("aws.region", "REGION")
	v.BindEnv("aws.bucket", "BUCKET")

	v.BindEnv("cloudflare.account_id", "CLOUDFLARE_ACCOUNT_ID")
	v.BindEnv("cloudflare.access_key_id", "CLOUDFLARE_ACCESS_KEY_ID")
	v.BindEnv("cloudflare.secret_access_key", "CLOUDFLARE_SECRET_ACCESS_KEY")
	v.BindEnv("cloudflare.bucket", "CLOUDFLARE_BUCKET")

	v.BindEnv("cloudflare.turnstile.enabled", "TURNSTILE_ENABLED")
	v.BindEnv("cloudflare.turnstile.secret_token", "TURNSTILE_SECRET_TOKEN")

	v.BindEnv("upload.max_size", "UPLOAD_MAX_SIZE")

	v.BindEnv("cache.enabled", "CACHE_ENABLED")
	v.BindEnv("cache.ttl", "CACHE_TTL")
	v.BindEnv("cache.store", "CACHE_STORE")

	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
}

func setDefaults() {
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.frontend_url", "http://localhost:5173")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.base_path", "")
	v.SetDefault("host.cors", []string{"*"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("security.password_hash", "argon2id")
	v.SetDefault("security.rate_limit", 10)

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.port", 587)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "uploads")
	v.SetDefault("storage.public_url", "http://localhost:8080/uploads")

	v.SetDefault("upload.max_size", 5) // MiB

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "15s")
	v.SetDefault("cache.store", "memory")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cloudflare.turnstile.enabled", false)
}

// Load builds a Config from whatever viper currently holds. Setup has to be
// called first in real runs, tests may seed viper directly.
func Load() *Config {
	return &Config{
		App: App{
			LogLevel:    v.GetString("app.log_level"),
			FrontendURL: v.GetString("app.frontend_url"),
		},
		Host: Host{
			Port:     v.GetInt("host.port"),
			Domain:   v.GetString("host.domain"),
			BasePath: v.GetString("host.base_path"),
			CORS:     splitList(v.GetStringSlice("host.cors")),
			SSL: SSL{
				Enabled:            v.GetBool("host.ssl.enabled"),
				CertificatePath:    v.GetString("host.ssl.certificate_path"),
				CertificateKeyPath: v.GetString("host.ssl.certificate_key_path"),
			},
		},
		DB: Database{
			Driver: v.GetString("db.driver"),
			DSN:    v.GetString("db.dsn"),
		},
		JWT: JWT{
			Secret: v.GetString("jwt.secret"),
		},
		Security: Security{
			PasswordHash: v.GetString("security.password_hash"),
			RateLimit:    v.GetInt("security.rate_limit"),
		},
		Mail: Mail{
			Enabled:       v.GetBool("mail.enabled"),
			Host:          v.GetString("mail.host"),
			Port:          v.GetInt("mail.port"),
			Username:      v.GetString("mail.username"),
			Password:      v.GetString("mail.password"),
			SenderAddress: v.GetString("mail.sender_address"),
		},
		Storage: Storage{
			Type:      v.GetString("storage.type"),
			LocalPath: v.GetString("storage.local_path"),
			PublicURL: v.GetString("storage.public_url"),
		},
		AWS: AWS{
			AccessKey:       v.GetString("aws.access_key"),
			SecretAccessKey: v.GetString("aws.secret_access_key"),
			Region:          v.GetString("aws.region"),
			Bucket:          v.GetString("aws.bucket"),
		},
		Cloudflare: Cloudflare{
			AccountID:       v.GetString("cloudflare.account_id"),
			AccessKeyID:     v.GetString("cloudflare.access_key_id"),
			SecretAccessKey: v.GetString("cloudflare.secret_access_key"),
			Bucket:          v.GetString("cloudflare.bucket"),
			Turnstile: Turnstile{
				Enabled:     v.GetBool("cloudflare.turnstile.enabled"),
				SecretToken: v.GetString("cloudflare.turnstile.secret_token"),
			},
		},
		Upload: Upload{
			MaxSize: v.GetInt64("upload.max_size") << 20,
		},
		Cache: Cache{
			Enabled: v.GetBool("cache.enabled"),
			TTL:     v.GetDuration("cache.ttl"),
			Store:   v.GetString("cache.store"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
	}
}

// splitList flattens comma separated entries, HOST_CORS arrives as one string
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}

	return out
}

// Validate reports the first setting that would stop the app from running
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.App.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if c.Host.Port <= 0 {
		return errors.New("invalid port provided")
	}

	if c.Host.SSL.Enabled {
		if c.Host.SSL.CertificatePath == "" {
			return errors.New("no ssl certificate path provided")
		}

		if c.Host.SSL.CertificateKeyPath == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if !slices.Contains(validDBDrivers, c.DB.Driver) {
		return errors.New("invalid database driver provided")
	}

	if c.DB.DSN == "" {
		return errors.New("database dsn can't be empty")
	}

	if c.JWT.Secret == "" {
		return errors.New("jwt secret can't be empty")
	}

	if !slices.Contains(validPasswordHashes, c.Security.PasswordHash) {
		return errors.New("invalid password hash algorithm provided")
	}

	if c.Security.RateLimit < 0 {
		return errors.New("rate limit can't be negative")
	}

	if c.Mail.Enabled {
		if c.Mail.Host == "" {
			return errors.New("mail host can't be empty")
		}
		if c.Mail.SenderAddress == "" {
			return errors.New("mail sender address can't be empty")
		}
	}

	if c.Upload.MaxSize <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	switch c.Storage.Type {
	case "local":
		if c.Storage.LocalPath == "" {
			return errors.New("local storage path can't be empty")
		}
	case "s3":
		if c.AWS.AccessKey == "" || c.AWS.SecretAccessKey == "" {
			return errors.New("aws credentials can't be empty")
		}
		if c.AWS.Bucket == "" {
			return errors.New("bucket can't be empty")
		}
		if c.AWS.Region == "" {
			return errors.New("region can't be empty")
		}
	case "r2":
		if c.Cloudflare.AccountID == "" {
			return errors.New("account id can't be empty")
		}
		if c.Cloudflare.AccessKeyID == "" {
			return errors.New("account access id can't be empty")
		}
		if c.Cloudflare.SecretAccessKey == "" {
			return errors.New("secret access key can't be empty")
		}
		if c.Cloudflare.Bucket == "" {
			return errors.New("bucket can't be empty")
		}
	}

	if !slices.Contains(validStorageTypes, c.Storage.Type) {
		return errors.New("invalid storage type provided")
	}

	if c.Cache.Enabled {
		if !slices.Contains(validCacheStores, c.Cache.Store) {
			return errors.New("invalid cache store provided")
		}
		if c.Cache.TTL <= 0 {
			return errors.New("cache ttl must be bigger than 0")
		}
	}

	if c.Cloudflare.Turnstile.Enabled && c.Cloudflare.Turnstile.SecretToken == "" {
		return errors.New("turnstile secret token is missing")
	}

	return nil
}
