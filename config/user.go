package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// UserConfig holds per-user CLI preferences.
type UserConfig struct {
	DefaultDeck string `toml:"default_deck"`
	SaveDir     string `toml:"save_dir"`
	Store       string `toml:"store"`
	Colorize    bool   `toml:"colorize"`
	RulesFile   string `toml:"rules_file"`
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "roguepoker", "config.toml")
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DefaultDeck: "Base",
		SaveDir:     filepath.Join(GetXDGDataHome(), "roguepoker", "saves"),
		Store:       "file",
		Colorize:    true,
	}
}

// LoadUserConfig loads the config file, creating it with defaults on first run.
func LoadUserConfig() (*UserConfig, error) {
	return LoadUserConfigFrom(GetConfigFilePath())
}

func LoadUserConfigFrom(configPath string) (*UserConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultUserConfig()
		if err := SaveUserConfig(configPath, config); err != nil {
			return nil, err
		}
		return config, nil
	}

	config := DefaultUserConfig()
	_, err := toml.DecodeFile(configPath, config)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}
	return config, nil
}

func SaveUserConfig(configPath string, config *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}
	return nil
}
