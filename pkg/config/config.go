/*
Package config manages TOML configuration for the nuspell spell-checking
tools (spec §"Configuration").
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Suggest SuggestConfig `toml:"suggest"`
	Cache   CacheConfig   `toml:"cache"`
	CLI     CliConfig     `toml:"cli"`
}

// SuggestConfig tunes the Suggestor (spec §4.9).
type SuggestConfig struct {
	MaxSuggestions      int `toml:"max_suggestions"`
	MaxNgramSuggestions int `toml:"max_ngram_suggestions"`
	EnableNgramFallback bool `toml:"enable_ngram_fallback"`
}

// CacheConfig controls the msgpack-compiled-dictionary cache.
type CacheConfig struct {
	Dir     string `toml:"dir"`
	Enabled bool   `toml:"enabled"`
}

// CliConfig holds options for the cmd/nuspell REPL.
type CliConfig struct {
	MaxDisplayed    int  `toml:"max_displayed"`
	ShowSuggestions bool `toml:"show_suggestions"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/nuspell
// 2. ~/Library/Application Support/nuspell (macOS)
// 3. current executable dir
// If the executable dir cannot be determined either, it returns an error.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := getExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "nuspell")
	if result := checkDirStatus(primaryPath); result.writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "nuspell")
	if result := checkDirStatus(macOSPath); result.writable {
		return macOSPath, nil
	}
	execDir, err := getExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. custom path from --config flag
// 2. default path: [UserConfigDir]/nuspell/config.toml
// 3. builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Suggest: SuggestConfig{
			MaxSuggestions:      15,
			MaxNgramSuggestions: 4,
			EnableNgramFallback: true,
		},
		Cache: CacheConfig{
			Dir:     "",
			Enabled: true,
		},
		CLI: CliConfig{
			MaxDisplayed:    10,
			ShowSuggestions: true,
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := ensureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !fileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := loadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := parseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if suggestSection, ok := extractSection(tempConfig, "suggest"); ok {
		extractSuggestConfig(suggestSection, &config.Suggest)
	}
	if cacheSection, ok := extractSection(tempConfig, "cache"); ok {
		extractCacheConfig(cacheSection, &config.Cache)
	}
	if cliSection, ok := extractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

// extractSuggestConfig extracts suggest configuration from a map
func extractSuggestConfig(data map[string]any, suggest *SuggestConfig) {
	if val, ok := extractInt64(data, "max_suggestions"); ok {
		suggest.MaxSuggestions = val
	}
	if val, ok := extractInt64(data, "max_ngram_suggestions"); ok {
		suggest.MaxNgramSuggestions = val
	}
	if val, ok := extractBool(data, "enable_ngram_fallback"); ok {
		suggest.EnableNgramFallback = val
	}
}

// extractCacheConfig extracts cache configuration from a map
func extractCacheConfig(data map[string]any, cache *CacheConfig) {
	if val, ok := data["dir"].(string); ok {
		cache.Dir = val
	}
	if val, ok := extractBool(data, "enabled"); ok {
		cache.Enabled = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := extractInt64(data, "max_displayed"); ok {
		cli.MaxDisplayed = val
	}
	if val, ok := extractBool(data, "show_suggestions"); ok {
		cli.ShowSuggestions = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := ensureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return saveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return getAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return saveTOMLFile(config, configPath)
}

// Update changes the config values and saves to file.
func (c *Config) Update(configPath string, maxSuggestions *int, enableNgramFallback *bool) error {
	if maxSuggestions != nil {
		c.Suggest.MaxSuggestions = *maxSuggestions
	}
	if enableNgramFallback != nil {
		c.Suggest.EnableNgramFallback = *enableNgramFallback
	}
	return SaveConfig(c, configPath)
}
