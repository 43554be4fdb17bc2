// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for clara.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - $CLARA_HOME/config.toml (or ~/.clara/config.toml)
//   - $CLARA_HOME/config.json (or ~/.clara/config.json)
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/clara-tui/internal/logging"
	"github.com/jeranaias/clara-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete clara configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Responder is the remote service that answers chat messages.
	Responder ResponderConfig `toml:"responder" json:"responder"`

	// Identity controls where the per-installation user id is kept.
	Identity IdentityConfig `toml:"identity" json:"identity"`

	// Receipt bounds the simulated read-receipt delay.
	Receipt ReceiptConfig `toml:"receipt" json:"receipt"`

	UI UIConfig `toml:"ui" json:"ui"`

	// Server configures the bundled reference responder (clara serve).
	Server ServerConfig `toml:"server" json:"server"`

	Log LogConfig `toml:"log" json:"log"`
}

// ResponderConfig describes the outbound chat endpoint.
type ResponderConfig struct {
	// BaseURL is scheme + host (+ optional prefix) of the responder.
	BaseURL string `toml:"base_url" json:"base_url"`
	// ChatPath is appended to BaseURL for every message.
	ChatPath string `toml:"chat_path" json:"chat_path"`
	// TimeoutSecs bounds a single request/response exchange.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// IdentityConfig selects the identity store backend.
type IdentityConfig struct {
	// Backend is one of "sqlite", "pebble", "memory".
	Backend string `toml:"backend" json:"backend"`
	// Path is the store location (empty = inside the config dir).
	Path string `toml:"path" json:"path"`
	// Key is the namespaced storage key for the user id.
	Key string `toml:"key" json:"key"`
}

// ReceiptConfig bounds the Sent -> Delivered delay, in milliseconds.
// The delay is drawn from [MinDelayMs, MaxDelayMs).
type ReceiptConfig struct {
	MinDelayMs int `toml:"min_delay_ms" json:"min_delay_ms"`
	MaxDelayMs int `toml:"max_delay_ms" json:"max_delay_ms"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// AssistantName is shown in the header and on remote bubbles.
	AssistantName string `toml:"assistant_name" json:"assistant_name"`
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme" json:"theme"`
	// Mouse enables mouse reporting (needed for click-to-dismiss).
	Mouse bool `toml:"mouse" json:"mouse"`
	// ShowTimestamps toggles the HH:MM footer on bubbles.
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
}

// ServerConfig configures the reference responder.
type ServerConfig struct {
	Port int `toml:"port" json:"port"`
	// HistoryLimit is the number of turns kept per user id.
	HistoryLimit int `toml:"history_limit" json:"history_limit"`
	// SystemPrompt is the persona handed to the replier.
	SystemPrompt string `toml:"system_prompt" json:"system_prompt"`
	// RatePerMinute is the per-client request allowance (0 disables limiting).
	RatePerMinute int `toml:"rate_per_minute" json:"rate_per_minute"`
}

// LogConfig configures zerolog output.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
	// File is used while the TUI owns the terminal (empty = <config dir>/clara.log).
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultSystemPrompt is the persona the reference responder advertises.
const DefaultSystemPrompt = "Você é a Dra. Ana, uma assistente médica virtual especializada em saúde feminina. " +
	"Seu tom deve ser profissional, empático e informativo. " +
	"Lembre sempre ao usuário que você é uma IA e não substitui uma consulta médica real."

// Default returns a configuration with built-in defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		Responder: ResponderConfig{
			BaseURL:     "http://127.0.0.1:5000",
			ChatPath:    "/chat",
			TimeoutSecs: 60,
		},
		Identity: IdentityConfig{
			Backend: "sqlite",
			Key:     "clara/user_id",
		},
		Receipt: ReceiptConfig{
			MinDelayMs: 1500,
			MaxDelayMs: 2500,
		},
		UI: UIConfig{
			AssistantName:  "Clara",
			Theme:          "auto",
			Mouse:          true,
			ShowTimestamps: true,
		},
		Server: ServerConfig{
			Port:          5000,
			HistoryLimit:  20,
			SystemPrompt:  DefaultSystemPrompt,
			RatePerMinute: 60,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ResponderURL joins BaseURL and ChatPath.
func (c *Config) ResponderURL() string {
	return strings.TrimRight(c.Responder.BaseURL, "/") + c.Responder.ChatPath
}

// ResponderTimeout returns the request timeout as a duration.
func (c *Config) ResponderTimeout() time.Duration {
	return time.Duration(c.Responder.TimeoutSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the clara configuration directory. CLARA_HOME wins over
// ~/.clara.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CLARA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".clara"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	return inConfigDir("config.toml")
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	return inConfigDir("config.json")
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// IdentityPath returns the store location for the configured backend.
func (c *Config) IdentityPath() (string, error) {
	if c.Identity.Path != "" {
		return c.Identity.Path, nil
	}
	switch c.Identity.Backend {
	case "pebble":
		return inConfigDir("identity.pebble")
	default:
		return inConfigDir("identity.db")
	}
}

// LogPath returns the file the TUI logs to.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return inConfigDir("clara.log")
}

// HistoryPath returns the line-mode prompt history file.
func HistoryPath() (string, error) {
	return inConfigDir("history")
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last. A file that fails to parse is
// reported through the returned error alongside a usable default config.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil && fileExists(tomlPath) {
		cfg, err := LoadFromPath(tomlPath)
		if err == nil {
			return cfg, nil
		}
		loadErr = err
	}

	if loadErr == nil {
		if jsonPath, err := ConfigPathJSON(); err == nil && fileExists(jsonPath) {
			cfg, err := LoadFromPath(jsonPath)
			if err == nil {
				return cfg, nil
			}
			loadErr = err
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file with full
// validation. Fields the file leaves out keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with a short header comment.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# clara configuration file\n")
	b.WriteString("# Environment variables (CLARA_*) override these values.\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return b.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns every problem at once as
// ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Responder
	if u, err := url.Parse(c.Responder.BaseURL); err != nil {
		add("responder.base_url", "invalid URL '%s': %v", c.Responder.BaseURL, err)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		add("responder.base_url", "scheme must be http or https, got '%s'", u.Scheme)
	} else if u.Host == "" {
		add("responder.base_url", "missing host in '%s'", c.Responder.BaseURL)
	}
	if !strings.HasPrefix(c.Responder.ChatPath, "/") {
		add("responder.chat_path", "must start with '/', got '%s'", c.Responder.ChatPath)
	}
	if c.Responder.TimeoutSecs <= 0 {
		add("responder.timeout_secs", "must be positive, got %d", c.Responder.TimeoutSecs)
	}

	// Identity
	switch c.Identity.Backend {
	case "sqlite", "pebble", "memory":
	default:
		add("identity.backend", "invalid backend '%s', must be one of: sqlite, pebble, memory", c.Identity.Backend)
	}
	if strings.TrimSpace(c.Identity.Key) == "" {
		add("identity.key", "must not be empty")
	}

	// Receipt
	if c.Receipt.MinDelayMs < 0 {
		add("receipt.min_delay_ms", "must not be negative, got %d", c.Receipt.MinDelayMs)
	}
	if c.Receipt.MaxDelayMs <= c.Receipt.MinDelayMs {
		add("receipt.max_delay_ms", "must be greater than min_delay_ms (%d), got %d",
			c.Receipt.MinDelayMs, c.Receipt.MaxDelayMs)
	}

	// UI
	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme)
	}

	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.HistoryLimit <= 0 {
		add("server.history_limit", "must be positive, got %d", c.Server.HistoryLimit)
	}
	if c.Server.RatePerMinute < 0 {
		add("server.rate_per_minute", "must not be negative, got %d", c.Server.RatePerMinute)
	}

	// Log
	switch c.Log.Format {
	case "console", "json":
	default:
		add("log.format", "invalid format '%s', must be one of: console, json", c.Log.Format)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that a partial file or an override left
// behind.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Responder.BaseURL == "" {
		c.Responder.BaseURL = d.Responder.BaseURL
	}
	if c.Responder.ChatPath == "" {
		c.Responder.ChatPath = d.Responder.ChatPath
	}
	if c.Responder.TimeoutSecs == 0 {
		c.Responder.TimeoutSecs = d.Responder.TimeoutSecs
	}
	if c.Identity.Backend == "" {
		c.Identity.Backend = d.Identity.Backend
	}
	if c.Identity.Key == "" {
		c.Identity.Key = d.Identity.Key
	}
	if c.Receipt.MinDelayMs == 0 && c.Receipt.MaxDelayMs == 0 {
		c.Receipt = d.Receipt
	}
	if c.UI.AssistantName == "" {
		c.UI.AssistantName = d.UI.AssistantName
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.HistoryLimit == 0 {
		c.Server.HistoryLimit = d.Server.HistoryLimit
	}
	if c.Server.SystemPrompt == "" {
		c.Server.SystemPrompt = d.Server.SystemPrompt
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CLARA_URL: overrides responder.base_url
//   - CLARA_CHAT_PATH: overrides responder.chat_path
//   - CLARA_TIMEOUT: overrides responder.timeout_secs
//   - CLARA_IDENTITY_BACKEND: overrides identity.backend
//   - CLARA_LOG_LEVEL: overrides log.level
//   - CLARA_NO_MOUSE: "1" or "true" disables mouse reporting
//   - PORT: overrides server.port
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CLARA_URL"); v != "" {
		c.Responder.BaseURL = v
	}
	if v := os.Getenv("CLARA_CHAT_PATH"); v != "" {
		c.Responder.ChatPath = v
	}
	if v := os.Getenv("CLARA_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Responder.TimeoutSecs = n
		}
	}
	if v := os.Getenv("CLARA_IDENTITY_BACKEND"); v != "" {
		c.Identity.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("CLARA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CLARA_NO_MOUSE"); v != "" {
		c.UI.Mouse = !(v == "1" || strings.EqualFold(v, "true"))
	}
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		}
	}
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			logging.Logger.Warn().Err(err).Msg("using default configuration")
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
