package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Paintersrp/curio/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		fmt.Sprintf("%s.%s", constants.ConfigFile, constants.ConfigFileType),
	)
}

// EnsureConfigExists creates the config directory and an empty config file
// if they are missing, so a first run has something to load.
func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return &ConfigInitError{Err: fmt.Errorf("failed to create config directory: %w", err)}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		file, err := os.Create(configPath)
		if err != nil {
			return &ConfigInitError{Err: fmt.Errorf("failed to create config file: %w", err)}
		}
		defer file.Close()
	} else if err != nil {
		return &ConfigInitError{Err: fmt.Errorf("failed to check config file: %w", err)}
	}

	return nil
}
