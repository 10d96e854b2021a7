package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"sgsd/internal/clocks"
	"sgsd/internal/core/controller"
	"sgsd/internal/core/model"
	"sgsd/internal/logging"
	"sgsd/internal/platform"
	"sgsd/internal/storage"
	"sgsd/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	platform.Service
	configDir string
}

func (s stubService) GetConfigDir() (string, error) {
	return s.configDir, nil
}

func TestOptionsLoad_Defaults(t *testing.T) {
	configDir := t.TempDir()
	opts := &options{}

	loaded, err := opts.load(stubService{configDir: configDir})
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), loaded.active)
	assert.Equal(t, loaded.stored, loaded.active)
	assert.Equal(t, filepath.Join(configDir, appName, "settings.yaml"), loaded.path)
	assert.Equal(t, filepath.Join(configDir, appName, "sgsd.log"), logPath(loaded.path))
}

func TestOptionsLoad_FlagsOverrideFile(t *testing.T) {
	previous := logging.Level()
	t.Cleanup(func() { logging.SetLevel(previous) })

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, storage.SaveSettings(path, preferences.Settings{
		Preset:   model.PresetShortBreak,
		Theme:    model.ThemePlain,
		LogLevel: "warn",
	}))

	opts := &options{configPath: path, preset: model.PresetDemo, logLevel: "debug"}
	loaded, err := opts.load(stubService{})
	require.NoError(t, err)

	assert.Equal(t, path, loaded.path)
	assert.Equal(t, model.PresetDemo, loaded.active.Preset)
	assert.Equal(t, model.ThemePlain, loaded.active.Theme)
	assert.Equal(t, "debug", loaded.active.LogLevel)
	assert.Equal(t, slog.LevelDebug, logging.Level())

	assert.Equal(t, model.PresetShortBreak, loaded.stored.Preset)
	assert.Equal(t, "warn", loaded.stored.LogLevel)
	assert.Equal(t, preferences.Settings{
		Preset:   model.PresetDemo,
		Theme:    model.ThemePlain,
		LogLevel: "warn",
	}, loaded.windowSettings())
}

func TestOptionsLoad_RejectsUnknownFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	_, err := (&options{configPath: path, preset: "forever"}).load(stubService{})
	assert.ErrorIs(t, err, model.ErrUnknownPreset)

	_, err = (&options{configPath: path, theme: "neon"}).load(stubService{})
	assert.ErrorIs(t, err, model.ErrUnknownTheme)

	_, err = (&options{configPath: path, logLevel: "trace"}).load(stubService{})
	assert.ErrorContains(t, err, "--log-level")
}

func TestSavePreferences_DoesNotPersistFlags(t *testing.T) {
	previous := logging.Level()
	t.Cleanup(func() { logging.SetLevel(previous) })

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, storage.SaveSettings(path, preferences.Settings{
		Preset:   model.PresetPomodoro,
		Theme:    model.ThemeMonkey,
		LogLevel: "warn",
	}))

	loaded, err := (&options{configPath: path, logLevel: "debug"}).load(stubService{})
	require.NoError(t, err)
	config, err := loaded.active.TimerConfig()
	require.NoError(t, err)

	keeper, err := controller.New(config, clocks.NewManualClock(), nil, nil, nil, controller.Options{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- keeper.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	updated := loaded.windowSettings()
	updated.Preset = model.PresetDemo
	require.NoError(t, savePreferences(ctx, keeper, loaded.path, updated))

	saved, err := storage.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, preferences.Settings{
		Preset:   model.PresetDemo,
		Theme:    model.ThemeMonkey,
		LogLevel: "warn",
	}, saved)

	status, err := keeper.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, status.Duration)
}

func TestSavePreferences_RejectedWhileRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	config, err := preferences.DefaultSettings().TimerConfig()
	require.NoError(t, err)

	keeper, err := controller.New(config, clocks.NewManualClock(), nil, nil, nil, controller.Options{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- keeper.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	_, err = keeper.Start(ctx)
	require.NoError(t, err)

	err = savePreferences(ctx, keeper, path, preferences.Settings{
		Preset:   model.PresetDemo,
		Theme:    model.ThemeMonkey,
		LogLevel: "info",
	})
	assert.ErrorContains(t, err, "stop the timer")
	assert.NoFileExists(t, path)
}

func TestPresetsCommand(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"presets"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "pomodoro")
	assert.Contains(t, out.String(), "25:00")
	assert.Contains(t, out.String(), "demo")
	assert.Contains(t, out.String(), "00:05")
	assert.Contains(t, out.String(), "🙈")
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd().Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["tui"])
	assert.True(t, names["presets"])
	assert.True(t, names["autostart"])
}
