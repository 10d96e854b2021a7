package tray

import (
	"fmt"

	"sgsd/internal/core/controller"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"
)

const menuTitle = "SGSD"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle      func()
	OnPreferences func()
	OnQuit        func()
}

// Icons are swapped with the running state.
type Icons struct {
	Idle    fyne.Resource
	Running fyne.Resource
}

// Manager handles system tray state and is the Display of the tray host.
type Manager struct {
	app        desktop.App
	icons      Icons
	callbacks  Callbacks
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	running    bool
	text       string

	// systray title and tooltip setters; replaced in tests.
	setTitle   func(string)
	setTooltip func(string)
}

var _ controller.RunningDisplay = (*Manager)(nil)

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		icons:      icons,
		callbacks:  callbacks,
		setTitle:   systray.SetTitle,
		setTooltip: systray.SetTooltip,
	}

	manager.statusItem = fyne.NewMenuItem("Idle", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(menuTitle, manager.toggleItem, manager.statusItem, fyne.NewMenuItemSeparator(), preferences, quit)
	if app != nil {
		app.SetSystemTrayMenu(manager.menu)
		if icons.Idle != nil {
			app.SetSystemTrayIcon(icons.Idle)
		}
	}

	return manager
}

// SetDisplayText shows text as the tray title. Safe to call from any goroutine.
func (manager *Manager) SetDisplayText(text string) {
	fyne.Do(func() {
		manager.applyText(text)
	})
}

// SetRunning switches the toggle label and the icon. Safe to call from any
// goroutine.
func (manager *Manager) SetRunning(running bool) {
	fyne.Do(func() {
		manager.applyRunning(running)
	})
}

func (manager *Manager) applyText(text string) {
	manager.text = text
	manager.setTitle(text)
	manager.setTooltip(fmt.Sprintf("%s %s", menuTitle, text))
	manager.refreshStatus()
}

func (manager *Manager) applyRunning(running bool) {
	if manager.running == running {
		return
	}
	manager.running = running
	if running {
		manager.toggleItem.Label = "Stop"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.refreshStatus()

	if manager.app == nil {
		return
	}
	icon := manager.icons.Idle
	if running {
		icon = manager.icons.Running
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshStatus() {
	if manager.running {
		manager.statusItem.Label = fmt.Sprintf("Running: %s", manager.text)
	} else {
		manager.statusItem.Label = "Idle"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
