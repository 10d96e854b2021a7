package preferences

import (
	"fmt"

	"sgsd/internal/core/countdown"
	"sgsd/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings) error
	preset   *widget.Select
	theme    *widget.Select
	summary  *widget.Label
}

// New creates a preferences window. onSave may reject the settings, in which
// case the error is shown and the window stays open.
func New(app fyne.App, settings Settings, onSave func(Settings) error) *Window {
	window := app.NewWindow("SGSD Settings")

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,
		summary:  widget.NewLabel(""),
	}

	prefs.preset = widget.NewSelect(model.PresetNames(), func(string) { prefs.refreshSummary() })
	prefs.theme = widget.NewSelect(model.ThemeNames(), func(string) { prefs.refreshSummary() })
	prefs.preset.SetSelected(settings.Preset)
	prefs.theme.SetSelected(settings.Theme)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Preset"), prefs.preset),
		container.NewHBox(widget.NewLabel("Theme"), prefs.theme),
		prefs.summary,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(320, 200))

	prefs.refreshSummary()
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.preset.SetSelected(settings.Preset)
	prefs.theme.SetSelected(settings.Theme)
	prefs.refreshSummary()
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.Preset = prefs.preset.Selected
	settings.Theme = prefs.theme.Selected

	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.settings = settings
	prefs.window.Hide()
}

func (prefs *Window) refreshSummary() {
	if prefs.preset == nil || prefs.theme == nil {
		return
	}
	config, err := model.Build(prefs.preset.Selected, prefs.theme.Selected)
	if err != nil {
		prefs.summary.SetText("")
		return
	}
	prefs.summary.SetText(fmt.Sprintf("%s idle, %s %s running",
		config.Glyphs.Idle, config.Glyphs.Running, countdown.Clock(config.Duration)))
}
