package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wslkit/wslkit/internal/constants"
)

// GlobalConfigDir returns the directory holding the user-wide config file
// (~/.wslkit).
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, constants.Home), nil
}

// GlobalConfigPath returns the full path of the global config file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the path of the project-local config file
// relative to the current working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.Home, constants.ConfigFileName)
}

// WriteDefault writes the default configuration to the given path in YAML
// form, creating parent directories as needed. Existing files are not
// overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306 -- config contains no secrets
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
