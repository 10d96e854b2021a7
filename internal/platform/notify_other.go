//go:build !linux

package platform

import (
	"sgsd/internal/core/controller"

	"fyne.io/fyne/v2"
)

func newNotifier(_ string, app fyne.App) controller.Notifier {
	if app == nil {
		return unsupportedNotifier{}
	}
	return &fyneNotifier{app: app}
}
