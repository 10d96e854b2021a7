package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"sgsd/internal/clocks"
	"sgsd/internal/core/controller"
	"sgsd/internal/logging"
	"sgsd/internal/platform"
	"sgsd/internal/storage"
	"sgsd/internal/ui/preferences"
	"sgsd/internal/ui/tray"
	"sgsd/resources"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

func runTray(opts *options) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	logger := logging.New(os.Stderr)
	loaded, err := opts.load(platform.NewService())
	if err != nil {
		return err
	}
	config, err := loaded.active.TimerConfig()
	if err != nil {
		return err
	}

	fyneApp := app.NewWithID("io.sgsd.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconRunning))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var keeper *controller.Controller
	var prefsWindow *preferences.Window

	trayManager := tray.New(desktopApp, tray.Icons{
		Idle:    resources.MustIcon(resources.IconIdle),
		Running: resources.MustIcon(resources.IconRunning),
	}, tray.Callbacks{
		OnToggle: func() {
			go func() {
				if _, err := keeper.Toggle(ctx); err != nil {
					logger.Error("toggle timer", "error", err)
				}
			}()
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnQuit: func() {
			cancel()
			fyneApp.Quit()
		},
	})

	keeper, err = controller.New(config, clocks.NewSystemClock(), trayManager,
		platform.NewNotifier(appName, fyneApp), logger, controller.Options{Strict: opts.strict})
	if err != nil {
		return err
	}

	prefsWindow = preferences.New(fyneApp, loaded.windowSettings(), func(updated preferences.Settings) error {
		return savePreferences(ctx, keeper, loaded.path, updated)
	})

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := keeper.Run(ctx); err != nil {
			logger.Error("controller stopped", "error", err)
		}
	}()
	defer func() {
		cancel()
		<-runDone
	}()

	logger.Info("tray started", "preset", loaded.active.Preset, "theme", loaded.active.Theme, "settings", loaded.path)
	fyneApp.Run()
	return nil
}

// savePreferences applies settings from the preferences window to the
// controller and writes them to the settings file.
func savePreferences(ctx context.Context, keeper *controller.Controller, path string, updated preferences.Settings) error {
	config, err := updated.TimerConfig()
	if err != nil {
		return err
	}
	if _, err := keeper.Reconfigure(ctx, config); err != nil {
		if errors.Is(err, controller.ErrRunning) {
			return errors.New("stop the timer before changing settings")
		}
		return err
	}
	if err := storage.SaveSettings(path, updated); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
