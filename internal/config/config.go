package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
		LoginRateLimit     int      `mapstructure:"login_rate_limit"` // attempts per minute per IP
	} `mapstructure:"server"`

	Auth struct {
		Username     string `mapstructure:"username"`
		Password     string `mapstructure:"password"`
		PasswordHash string `mapstructure:"password_hash"`
		SessionHours int    `mapstructure:"session_hours"`
	} `mapstructure:"auth"`

	JWT struct {
		Secret string `mapstructure:"secret"`
		Issuer string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	SMTP struct {
		Host           string `mapstructure:"host"`
		Port           int    `mapstructure:"port"`
		SSL            bool   `mapstructure:"ssl"`
		User           string `mapstructure:"user"`
		Pass           string `mapstructure:"pass"`
		FromName       string `mapstructure:"from_name"`
		FromAddress    string `mapstructure:"from_address"`
		Recipient      string `mapstructure:"recipient"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
		AttachPDF      bool   `mapstructure:"attach_pdf"`
		XMailer        string `mapstructure:"x_mailer"`
	} `mapstructure:"smtp"`

	Redis struct {
		Enabled  bool   `mapstructure:"enabled"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`

	Archive struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Prefix    string `mapstructure:"prefix"`
	} `mapstructure:"archive"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

func Load() *Config {
	return LoadFile("configs/config.yaml")
}

// LoadFile reads configuration from path (optional), .env and the environment.
func LoadFile(path string) *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("server.login_rate_limit", 10)
	v.SetDefault("auth.username", "admin")
	v.SetDefault("auth.session_hours", 24)
	v.SetDefault("jwt.issuer", "barcodebuddy")
	v.SetDefault("smtp.port", 465)
	v.SetDefault("smtp.ssl", true)
	v.SetDefault("smtp.from_name", "BarcodeBuddy")
	v.SetDefault("smtp.timeout_seconds", 15)
	v.SetDefault("smtp.x_mailer", "BarcodeBuddy")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("archive.region", "auto")
	v.SetDefault("archive.prefix", "reports")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		logg.Infof("[Config] No config file found at %s, using defaults", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logg.Fatalf("config unmarshal error: %v", err)
	}

	applyEnvOverrides(&cfg)

	// Sessions live only as long as the process, so a random secret is acceptable
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = randomSecret()
		logg.Warn("[Config] JWT_SECRET not set, generated a per-process secret")
	}

	if cfg.FromAddress() == "" {
		logg.Warn("[Config] FROM_EMAIL/SMTP_USER not set, reports cannot be sent by SMTP")
	}

	ConfigureLogger(cfg.Log.Level, cfg.Log.Format)
	return &cfg
}

// applyEnvOverrides maps the flat variable names used by the deployment
func applyEnvOverrides(cfg *Config) {
	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.SMTP.Host = host
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.SMTP.Port = n
		}
	}
	if user := os.Getenv("SMTP_USER"); user != "" {
		cfg.SMTP.User = user
	}
	if pass := os.Getenv("SMTP_PASS"); pass != "" {
		cfg.SMTP.Pass = pass
	}
	if from := os.Getenv("FROM_EMAIL"); from != "" {
		cfg.SMTP.FromAddress = from
	}
	if to := os.Getenv("RECIPIENT_EMAIL"); to != "" {
		cfg.SMTP.Recipient = to
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if user := os.Getenv("APP_USERNAME"); user != "" {
		cfg.Auth.Username = user
	}
	if pass := os.Getenv("APP_PASSWORD"); pass != "" {
		cfg.Auth.Password = pass
	}
	if hash := os.Getenv("APP_PASSWORD_HASH"); hash != "" {
		cfg.Auth.PasswordHash = hash
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
		cfg.Redis.Enabled = true
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}
	if key := os.Getenv("ARCHIVE_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if secret := os.Getenv("ARCHIVE_SECRET_KEY"); secret != "" {
		cfg.Archive.SecretKey = secret
	}
}

// FromAddress is the sender address; SMTP user when FROM_EMAIL is unset.
func (c *Config) FromAddress() string {
	if c.SMTP.FromAddress != "" {
		return c.SMTP.FromAddress
	}
	return c.SMTP.User
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		logg.WithError(err).Fatal("[Config] cannot generate JWT secret")
	}
	return hex.EncodeToString(b)
}

// GetLoggerEntry returns a logger scoped to a module, e.g. "[Email]".
func GetLoggerEntry(module string) *logrus.Entry {
	return logg.WithField("module", module)
}
