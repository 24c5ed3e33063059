package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrInvalidMaxFileSize = errors.New("max file size must be greater than 0")
	ErrInvalidServerAddr  = errors.New("server address must be set")
	ErrInvalidTimeout     = errors.New("server timeouts must not be negative")
)

// EnvPrefix prefixes every environment variable read by the application
const EnvPrefix = "DROPCORD"

// LegacyWebhookEnv is the variable the original web app read the webhook from
const LegacyWebhookEnv = "DISCORD_WEBHOOK_URL"

// DefaultMaxFileSize is the largest file the upload boundary accepts
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Config holds all application configuration
type Config struct {
	Webhook WebhookConfig `mapstructure:"webhook"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Server  ServerConfig  `mapstructure:"server"`
}

// WebhookConfig holds the destination webhook
type WebhookConfig struct {
	// URL is not validated at startup; a missing URL fails the first upload.
	URL string `mapstructure:"url"`
}

// UploadConfig holds limits enforced before files enter the pipeline
type UploadConfig struct {
	MaxFileSize int64 `mapstructure:"max_file_size"`
}

// ServerConfig holds the HTTP upload server configuration
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Webhook: WebhookConfig{
			URL: "",
		},
		Upload: UploadConfig{
			MaxFileSize: DefaultMaxFileSize, // 10 MiB
		},
		Server: ServerConfig{
			Addr:         ":9002",
			ReadTimeout:  2 * time.Minute,
			WriteTimeout: 0, // uploads wait on the webhook, which has no timeout
		},
	}
}

// SetDefaults registers the default configuration with v
func SetDefaults(v *viper.Viper) {
	def := NewDefaultConfig()
	v.SetDefault("webhook.url", def.Webhook.URL)
	v.SetDefault("upload.max_file_size", def.Upload.MaxFileSize)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.read_timeout", def.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", def.Server.WriteTimeout)
}

// BindEnv maps DROPCORD_* variables onto config keys. The webhook URL is read
// from DROPCORD_WEBHOOK_URL first, then DISCORD_WEBHOOK_URL.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v.BindEnv("webhook.url", EnvPrefix+"_WEBHOOK_URL", LegacyWebhookEnv)
}

// LoadDotEnv loads dir/.env into the process environment without overriding
// variables that are already set. It returns the path of the loaded file, or
// an error when there is none.
func LoadDotEnv(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	envPath := filepath.Join(dir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		return "", err
	}
	return envPath, nil
}

// Load builds a Config from v on top of the defaults
func Load(v *viper.Viper) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the configuration is valid
func (c *Config) Validate() error {
	if c.Upload.MaxFileSize <= 0 {
		return ErrInvalidMaxFileSize
	}
	if c.Server.Addr == "" {
		return ErrInvalidServerAddr
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}
