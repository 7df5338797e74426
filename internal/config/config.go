// Package config provides layered configuration for every subcommand:
// built-in defaults, then an optional TOML file, then the environment
// (after loading .env). Command line flags are applied by the caller last.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"

	"termfolio/internal/logging"
)

// Config holds the settings shared by the TUI, exec, validate and serve.
type Config struct {
	// Document
	Resume string // path to a JSON or TOML resume; empty uses the built-in sample

	// Interpreter
	AnswerURL     string        // base URL of the answer service; empty disables the fallback query
	AnswerTimeout time.Duration // bound on one query round trip
	TypeSpeed     time.Duration // delay per revealed character; zero prints instantly
	DownloadDir   string        // where "resume --json" writes its file

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Server
	Addr         string
	DatabasePath string
	TopK         int
	GeminiAPIKey string
	GeminiModel  string
	ContactEmail string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AnswerTimeout: 30 * time.Second,
		TypeSpeed:     18 * time.Millisecond,
		DownloadDir:   ".",
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":8000",
		DatabasePath:  "termfolio.db",
		TopK:          3,
		GeminiModel:   "gemini-2.5-flash",
		SMTPPort:      587,
	}
}

// DefaultPath is ~/.config/termfolio/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "termfolio", "config.toml"), nil
}

// Load builds the configuration. An explicit path must exist; with an empty
// path the default location is used when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			if err := cfg.LoadFile(path); err != nil {
				return nil, err
			}
		}
	}

	_ = godotenv.Load()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays values from a TOML file. Keys are dotted, e.g.
// ui.type_speed = "18ms" or [serve] addr = ":8000".
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	tree, err := toml.LoadBytes(b)
	if err != nil {
		return fmt.Errorf("failed to parse config TOML %s: %w", path, err)
	}

	var errs []error
	str := func(key string, dst *string) {
		if v := tree.Get(key); v != nil {
			*dst = fmt.Sprintf("%v", v)
		}
	}
	num := func(key string, dst *int) {
		switch v := tree.Get(key).(type) {
		case nil:
		case int64:
			*dst = int(v)
		default:
			errs = append(errs, fmt.Errorf("config error: %q must be an integer", key))
		}
	}
	dur := func(key string, dst *time.Duration) {
		switch v := tree.Get(key).(type) {
		case nil:
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config error: %q: %w", key, err))
				return
			}
			*dst = d
		case int64:
			*dst = time.Duration(v) * time.Millisecond
		default:
			errs = append(errs, fmt.Errorf("config error: %q must be a duration", key))
		}
	}

	str("resume.path", &c.Resume)
	str("answer.url", &c.AnswerURL)
	dur("answer.timeout", &c.AnswerTimeout)
	dur("ui.type_speed", &c.TypeSpeed)
	str("ui.download_dir", &c.DownloadDir)
	str("log.level", &c.LogLevel)
	str("log.format", &c.LogFormat)
	str("log.file", &c.LogFile)
	str("serve.addr", &c.Addr)
	str("serve.db", &c.DatabasePath)
	num("serve.top_k", &c.TopK)
	str("gemini.api_key", &c.GeminiAPIKey)
	str("gemini.model", &c.GeminiModel)
	str("contact.email", &c.ContactEmail)
	str("smtp.host", &c.SMTPHost)
	num("smtp.port", &c.SMTPPort)
	str("smtp.user", &c.SMTPUser)
	str("smtp.pass", &c.SMTPPass)

	return errors.Join(errs...)
}

// ApplyEnv overlays environment variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}
	var errs []error
	num := func(dst *int, key string) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config error: %s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	dur := func(dst *time.Duration, key string) {
		if v, ok := lookup(key); ok && v != "" {
			if ms, err := strconv.Atoi(v); err == nil {
				*dst = time.Duration(ms) * time.Millisecond
				return
			}
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config error: %s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str(&c.Resume, "TERMFOLIO_RESUME")
	str(&c.AnswerURL, "TERMFOLIO_ANSWER_URL", "BACKEND_API_URL")
	dur(&c.AnswerTimeout, "TERMFOLIO_ANSWER_TIMEOUT")
	dur(&c.TypeSpeed, "TERMFOLIO_TYPE_SPEED")
	str(&c.DownloadDir, "TERMFOLIO_DOWNLOAD_DIR")
	str(&c.LogLevel, "TERMFOLIO_LOG_LEVEL")
	str(&c.LogFormat, "TERMFOLIO_LOG_FORMAT")
	str(&c.LogFile, "TERMFOLIO_LOG_FILE")
	str(&c.Addr, "TERMFOLIO_ADDR")
	str(&c.DatabasePath, "TERMFOLIO_DB")
	str(&c.GeminiAPIKey, "GEMINI_API_KEY")
	str(&c.GeminiModel, "TERMFOLIO_MODEL")
	str(&c.ContactEmail, "CONTACT_EMAIL")
	str(&c.SMTPHost, "SMTP_HOST")
	num(&c.SMTPPort, "SMTP_PORT")
	str(&c.SMTPUser, "SMTP_USER")
	str(&c.SMTPPass, "SMTP_PASS")

	return errors.Join(errs...)
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.TypeSpeed < 0 {
		return fmt.Errorf("config error: type speed must be non-negative")
	}
	if c.AnswerTimeout < 0 {
		return fmt.Errorf("config error: answer timeout must be non-negative")
	}
	if !slices.Contains(logging.Levels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}
	if !slices.Contains(logging.Formats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("config error: unknown log format %q", c.LogFormat)
	}
	if c.AnswerURL != "" {
		u, err := url.Parse(c.AnswerURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: answer URL %q is not absolute", c.AnswerURL)
		}
	}
	if c.TopK < 1 {
		return fmt.Errorf("config error: top_k must be at least 1")
	}
	if c.SMTPPort < 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("config error: smtp port %d out of range", c.SMTPPort)
	}
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	return nil
}

// SMTPEnabled reports whether contact messages should be relayed by mail.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.ContactEmail != ""
}
