package preferences

import (
	"sgsd/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Preset   string
	Theme    string
	LogLevel string
}

// DefaultSettings returns default settings for SGSD.
func DefaultSettings() Settings {
	return Settings{
		Preset:   model.PresetPomodoro,
		Theme:    model.ThemeMonkey,
		LogLevel: "info",
	}
}

// TimerConfig converts settings to a TimerConfig.
func (settings Settings) TimerConfig() (model.TimerConfig, error) {
	return model.Build(settings.Preset, settings.Theme)
}
