// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/onboard-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete onboard configuration.
type Config struct {
	API     APIConfig     `toml:"api" json:"api"`
	TTS     TTSConfig     `toml:"tts" json:"tts"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Extract ExtractConfig `toml:"extract" json:"extract"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// APIConfig configures the backend client.
type APIConfig struct {
	BaseURL           string `toml:"base_url" json:"base_url"`
	TimeoutSecs       int    `toml:"timeout_secs" json:"timeout_secs"`
	UploadTimeoutSecs int    `toml:"upload_timeout_secs" json:"upload_timeout_secs"`
}

// TTSConfig configures speech playback.
type TTSConfig struct {
	Enabled    bool     `toml:"enabled" json:"enabled"`
	Player     string   `toml:"player" json:"player"`
	PlayerArgs []string `toml:"player_args" json:"player_args"`
	TempDir    string   `toml:"temp_dir" json:"temp_dir"`
}

// UIConfig configures the TUI.
type UIConfig struct {
	DefaultTab     string `toml:"default_tab" json:"default_tab"`
	ShowTimestamps bool   `toml:"show_timestamps" json:"show_timestamps"`
	CompactMode    bool   `toml:"compact_mode" json:"compact_mode"`
}

// ExtractConfig configures the document extractor.
type ExtractConfig struct {
	DocumentType string `toml:"document_type" json:"document_type"`
	ExportFormat string `toml:"export_format" json:"export_format"`
	ExportDir    string `toml:"export_dir" json:"export_dir"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}

// Tabs are the valid values of ui.default_tab.
var Tabs = []string{"chat", "roadmap", "content", "extract"}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "http://127.0.0.1:5001",
			TimeoutSecs:       60,
			UploadTimeoutSecs: 180,
		},
		TTS: TTSConfig{
			Enabled:    true,
			Player:     "ffplay",
			PlayerArgs: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"},
		},
		UI: UIConfig{
			DefaultTab:     "chat",
			ShowTimestamps: true,
		},
		Extract: ExtractConfig{
			DocumentType: "cv",
			ExportFormat: "json",
			ExportDir:    ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SetDefaults fills zero values with defaults. Booleans are left alone.
func (c *Config) SetDefaults() {
	d := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = d.API.TimeoutSecs
	}
	if c.API.UploadTimeoutSecs <= 0 {
		c.API.UploadTimeoutSecs = d.API.UploadTimeoutSecs
	}
	if c.TTS.Player == "" {
		c.TTS.Player = d.TTS.Player
		c.TTS.PlayerArgs = d.TTS.PlayerArgs
	}
	if c.UI.DefaultTab == "" {
		c.UI.DefaultTab = d.UI.DefaultTab
	}
	if c.Extract.DocumentType == "" {
		c.Extract.DocumentType = d.Extract.DocumentType
	}
	if c.Extract.ExportFormat == "" {
		c.Extract.ExportFormat = d.Extract.ExportFormat
	}
	if c.Extract.ExportDir == "" {
		c.Extract.ExportDir = d.Extract.ExportDir
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns ~/.onboard, or $ONBOARD_HOME when set.
func ConfigDir() (string, error) {
	if dir := os.Getenv("ONBOARD_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".onboard"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the log file path: log.file when set, else
// ~/.onboard/onboard.log.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "onboard.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.onboard/config.toml (if present), applies .env and
// environment overrides, fills defaults and validates.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, err
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load for an explicit file. A missing file is not an
// error.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	loadDotEnv()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return ValidateErrors{{Field: strings.Join(keys, ", "), Message: "unknown key"}}
	}
	return nil
}

// loadDotEnv loads .env from the working directory. Variables already set
// in the environment win.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}
}

// ApplyEnvOverrides applies ONBOARD_* variables.
func (c *Config) ApplyEnvOverrides() {
	if base := os.Getenv("ONBOARD_API_BASE"); base != "" {
		c.API.BaseURL = base
	}
	if level := os.Getenv("ONBOARD_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	if player := os.Getenv("ONBOARD_TTS_PLAYER"); player != "" {
		fields := strings.Fields(player)
		c.TTS.Player = fields[0]
		c.TTS.PlayerArgs = fields[1:]
	}
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

// SaveTOML writes cfg to path with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# onboard configuration file\n")
	buf.WriteString("# Generated by onboard - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
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
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: "must be an http(s) URL"})
	}
	if c.API.TimeoutSecs < 0 || c.API.TimeoutSecs > 3600 {
		errs = append(errs, ValidationError{Field: "api.timeout_secs", Message: "must be between 0 and 3600"})
	}
	if c.API.UploadTimeoutSecs < 0 || c.API.UploadTimeoutSecs > 3600 {
		errs = append(errs, ValidationError{Field: "api.upload_timeout_secs", Message: "must be between 0 and 3600"})
	}
	if c.UI.DefaultTab != "" && !contains(Tabs, c.UI.DefaultTab) {
		errs = append(errs, ValidationError{Field: "ui.default_tab", Message: "must be one of " + strings.Join(Tabs, ", ")})
	}
	if c.Extract.DocumentType != "" && !contains([]string{"cv", "id_card", "diploma", "other"}, c.Extract.DocumentType) {
		errs = append(errs, ValidationError{Field: "extract.document_type", Message: "must be cv, id_card, diploma or other"})
	}
	if c.Extract.ExportFormat != "" && !contains([]string{"json", "yaml"}, c.Extract.ExportFormat) {
		errs = append(errs, ValidationError{Field: "extract.export_format", Message: "must be json or yaml"})
	}
	if c.Log.Level != "" && !contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		errs = append(errs, ValidationError{Field: "log.level", Message: "must be debug, info, warn or error"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// field resolves a dot-notation key such as "api.base_url" by TOML tag.
func (c *Config) field(key string) (reflect.Value, error) {
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		t := v.Type()
		found := false
		for j := 0; j < t.NumField(); j++ {
			if tomlName(t.Field(j)) == part {
				v = v.Field(j)
				found = true
				break
			}
		}
		if !found {
			return reflect.Value{}, fmt.Errorf("unknown key: %s", strings.Join(parts[:i+1], "."))
		}
		if i < len(parts)-1 && v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("key '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
	}
	if v.Kind() == reflect.Struct {
		return reflect.Value{}, fmt.Errorf("key '%s' is a section", key)
	}
	return v, nil
}

func tomlName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
	return name
}

// Get returns the value at key formatted for display.
func (c *Config) Get(key string) (string, error) {
	v, err := c.field(key)
	if err != nil {
		return "", err
	}
	switch v.Kind() {
	case reflect.Slice:
		items := make([]string, v.Len())
		for i := range items {
			items[i] = fmt.Sprint(v.Index(i).Interface())
		}
		return strings.Join(items, " "), nil
	default:
		return fmt.Sprint(v.Interface()), nil
	}
}

// Set parses value into the field at key. Slices are whitespace separated.
// The result is validated; on failure the config is left unchanged.
func (c *Config) Set(key, value string) error {
	next := c.Clone()
	v, err := next.field(key)
	if err != nil {
		return err
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(value)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %v", err)
		}
		v.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %v", err)
		}
		v.SetBool(b)
	case reflect.Slice:
		v.Set(reflect.ValueOf(strings.Fields(value)))
	default:
		return fmt.Errorf("cannot set %s", key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*c = *next
	return nil
}

// Keys returns every settable key in dot notation, sorted.
func Keys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		for j := 0; j < section.Type.NumField(); j++ {
			keys = append(keys, tomlName(section)+"."+tomlName(section.Type.Field(j)))
		}
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.TTS.PlayerArgs = append([]string(nil), c.TTS.PlayerArgs...)
	return &out
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first
// access. Load failures fall back to defaults with a warning on stderr.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			if cfg == nil {
				cfg = Default()
			}
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
