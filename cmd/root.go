package main

import (
	"fmt"
	"path/filepath"

	"sgsd/internal/core/model"
	"sgsd/internal/logging"
	"sgsd/internal/platform"
	"sgsd/internal/storage"
	"sgsd/internal/ui/preferences"

	"github.com/spf13/cobra"
)

type options struct {
	preset     string
	theme      string
	logLevel   string
	configPath string
	strict     bool
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "sgsd [flags]",
		Short:        "Tray countdown timer with a notification when time is up",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.preset, "preset", "p", "", "Countdown preset, listed by sgsd presets. Overrides the settings file.")
	flags.StringVarP(&opts.theme, "theme", "t", "", "Glyph theme, listed by sgsd presets. Overrides the settings file.")
	flags.StringVar(&opts.logLevel, "log-level", "", "Logging level (debug|info|warn|error). Overrides the settings file.")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Settings file. Defaults to settings.yaml in the user config directory.")
	flags.BoolVar(&opts.strict, "strict", false, "Crash on invalid timer transitions instead of rejecting them.")

	cmd.AddCommand(tuiCmd(opts), presetsCmd(), autostartCmd())
	return cmd
}

// loadedSettings keeps the settings file contents apart from the flag
// overrides so that saving preferences never persists a flag.
type loadedSettings struct {
	path   string
	stored preferences.Settings
	active preferences.Settings
}

// windowSettings seeds the preferences window: the stored file values with
// the active preset and theme, since those are the only fields it edits.
func (loaded loadedSettings) windowSettings() preferences.Settings {
	settings := loaded.stored
	settings.Preset = loaded.active.Preset
	settings.Theme = loaded.active.Theme
	return settings
}

// load reads the settings file, applies flag overrides and sets the log level.
func (opts *options) load(service platform.Service) (loadedSettings, error) {
	loaded := loadedSettings{path: opts.configPath}
	if loaded.path == "" {
		configDir, err := service.GetConfigDir()
		if err != nil {
			return loaded, err
		}
		loaded.path = storage.SettingsPath(configDir, appName)
	}

	stored, err := storage.LoadSettings(loaded.path)
	if err != nil {
		return loaded, err
	}
	loaded.stored = stored
	loaded.active = stored

	if opts.preset != "" {
		if _, err := model.LookupPreset(opts.preset); err != nil {
			return loaded, fmt.Errorf("--preset: %w", err)
		}
		loaded.active.Preset = opts.preset
	}
	if opts.theme != "" {
		if _, err := model.LookupTheme(opts.theme); err != nil {
			return loaded, fmt.Errorf("--theme: %w", err)
		}
		loaded.active.Theme = opts.theme
	}
	if opts.logLevel != "" {
		loaded.active.LogLevel = opts.logLevel
	}

	level, err := logging.ParseLevel(loaded.active.LogLevel)
	if err != nil {
		return loaded, fmt.Errorf("--log-level: %w", err)
	}
	logging.SetLevel(level)

	return loaded, nil
}

func logPath(settingsPath string) string {
	return filepath.Join(filepath.Dir(settingsPath), "sgsd.log")
}
