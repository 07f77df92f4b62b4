package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"pipesheet-cli/internal/interfaces"
	"pipesheet-cli/internal/option"
	"pipesheet-cli/internal/session"
)

var _ interfaces.ConfigManager = (*Manager)(nil)

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("PIPESHEET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("relay_url", session.DefaultRelayURLs[0])
	v.SetDefault("relay_urls", session.DefaultRelayURLs)
	v.SetDefault("fragment", "")
	v.SetDefault("server_port", "22")
	v.SetDefault("client_port", "1022")
	v.SetDefault("listener", string(option.DefaultListener))
	v.SetDefault("format", "text")
	v.SetDefault("target", "stdout")
	v.SetDefault("share_url", "")
	v.SetDefault("copy_indicator_ms", 1500)
}

// DefaultPath returns ~/.config/pipesheet/config.toml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "pipesheet", "config.toml"), nil
}

// Load loads configuration from the specified path
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	path = expandPath(path)

	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Config file doesn't exist, use defaults
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()

	// Apply flag overrides (highest precedence)
	m.applyFlagOverrides(config)

	return config, nil
}

// applyFlagOverrides applies non-empty string flag values over the configuration
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	overrides := map[string]*string{
		"relay_url":   &config.RelayURL,
		"fragment":    &config.Fragment,
		"server_port": &config.ServerPort,
		"client_port": &config.ClientPort,
		"listener":    &config.Listener,
		"format":      &config.Format,
		"target":      &config.Target,
		"share_url":   &config.ShareURL,
	}
	for key, dst := range overrides {
		val, exists := m.flags[key]
		if !exists || val == nil {
			continue
		}
		if str, ok := val.(string); ok && str != "" {
			*dst = str
		}
	}

	if config.Fragment != "" {
		config.EmptyFragment = false
	}
	if empty, ok := m.flags["empty_fragment"].(bool); ok && empty {
		config.Fragment = ""
		config.EmptyFragment = true
	}

	if val, exists := m.flags["copy_indicator_ms"]; exists && val != nil {
		if ms, ok := val.(int); ok && ms > 0 {
			config.CopyIndicatorMS = ms
		}
	}
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if _, err := option.ParseListener(config.Listener); err != nil {
		return fmt.Errorf("invalid listener: %s (must be 'nc -l', 'nc -lp' or 'socat')", config.Listener)
	}

	// Validate target
	validTargets := map[string]bool{
		"clipboard": true,
		"stdout":    true,
	}
	// Also allow file: prefix
	if !validTargets[config.Target] && !strings.HasPrefix(config.Target, "file:") {
		return fmt.Errorf("invalid target: %s (must be 'clipboard', 'stdout', or 'file:/path')", config.Target)
	}

	if config.Format == "" {
		return fmt.Errorf("format cannot be empty (use 'text', 'markdown' or a template path)")
	}

	if config.CopyIndicatorMS < 0 {
		return fmt.Errorf("invalid copy_indicator_ms: %d (must not be negative)", config.CopyIndicatorMS)
	}

	return nil
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		RelayURL:        m.v.GetString("relay_url"),
		RelayURLs:       m.v.GetStringSlice("relay_urls"),
		Fragment:        m.v.GetString("fragment"),
		ServerPort:      m.v.GetString("server_port"),
		ClientPort:      m.v.GetString("client_port"),
		Listener:        m.v.GetString("listener"),
		Format:          expandPath(m.v.GetString("format")),
		Target:          m.v.GetString("target"),
		ShareURL:        m.v.GetString("share_url"),
		CopyIndicatorMS: m.v.GetInt("copy_indicator_ms"),
		// fragment = "" in the file keeps the paths without a suffix
		EmptyFragment: m.v.InConfig("fragment") && m.v.GetString("fragment") == "",
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
