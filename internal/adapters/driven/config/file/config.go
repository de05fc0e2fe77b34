// Package file loads deskhub configuration from a TOML file.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default values applied when the file omits a field.
const (
	DefaultListenAddr     = ":3000"
	DefaultStaticDir      = "public"
	DefaultRedirectURL    = "http://localhost:3000/auth/google/callback"
	DefaultUploadMaxBytes = 10 * 1024 * 1024
	DefaultOCRWorkers     = 2
	DefaultOCRQueueSize   = 8
	DefaultPageSize       = 10
)

// DefaultScopes is the Google scope set requested during authorization.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/drive.file",
	"https://www.googleapis.com/auth/spreadsheets",
}

// Config is the static configuration loaded once at startup.
type Config struct {
	ListenAddr string `toml:"listen_addr"`
	StaticDir  string `toml:"static_dir"`
	// DataDir holds the credential record and the telemetry database.
	// Empty means ~/.deskhub.
	DataDir string `toml:"data_dir"`

	Google    GoogleConfig    `toml:"google"`
	Anthropic AnthropicConfig `toml:"anthropic"`
	Limits    LimitsConfig    `toml:"limits"`
}

// GoogleConfig is the OAuth client identity.
type GoogleConfig struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	RedirectURL  string   `toml:"redirect_url"`
	Scopes       []string `toml:"scopes"`
}

// AnthropicConfig configures the chat completion adapter.
type AnthropicConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// LimitsConfig bounds uploads and the extraction worker pool.
type LimitsConfig struct {
	UploadMaxBytes int64 `toml:"upload_max_bytes"`
	OCRWorkers     int   `toml:"ocr_workers"`
	OCRQueueSize   int   `toml:"ocr_queue_size"`
}

// Load reads configuration from path. If path is empty, defaults to
// ~/.deskhub/config.toml. A missing file yields pure defaults. Secrets
// can be overridden by DESKHUB_GOOGLE_CLIENT_SECRET and
// DESKHUB_ANTHROPIC_API_KEY so they need not live in the file.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".deskhub", "config.toml")
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file yet, start from defaults.
	default:
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
	if c.Google.RedirectURL == "" {
		c.Google.RedirectURL = DefaultRedirectURL
	}
	if len(c.Google.Scopes) == 0 {
		c.Google.Scopes = append([]string(nil), DefaultScopes...)
	}
	if c.Limits.UploadMaxBytes <= 0 {
		c.Limits.UploadMaxBytes = DefaultUploadMaxBytes
	}
	if c.Limits.OCRWorkers <= 0 {
		c.Limits.OCRWorkers = DefaultOCRWorkers
	}
	if c.Limits.OCRQueueSize <= 0 {
		c.Limits.OCRQueueSize = DefaultOCRQueueSize
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DESKHUB_GOOGLE_CLIENT_SECRET"); v != "" {
		c.Google.ClientSecret = v
	}
	if v := os.Getenv("DESKHUB_ANTHROPIC_API_KEY"); v != "" {
		c.Anthropic.APIKey = v
	}
}
