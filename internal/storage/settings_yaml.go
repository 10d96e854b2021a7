package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sgsd/internal/core/model"
	"sgsd/internal/logging"
	"sgsd/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Preset   string `yaml:"preset"`
	Theme    string `yaml:"theme"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// SettingsPath returns the settings file location for appName under configDir.
func SettingsPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, settingsFileName)
}

// LoadSettings reads user preferences from the YAML file at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the YAML file at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(yamlSettings{
		Preset:   settings.Preset,
		Theme:    settings.Theme,
		LogLevel: settings.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// applyYamlSettings keeps the default for every field the file leaves empty or
// sets to a value outside the enumerated options.
func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if _, err := model.LookupPreset(fileData.Preset); err == nil {
		settings.Preset = fileData.Preset
	}
	if _, err := model.LookupTheme(fileData.Theme); err == nil {
		settings.Theme = fileData.Theme
	}
	if _, err := logging.ParseLevel(fileData.LogLevel); err == nil && fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}
