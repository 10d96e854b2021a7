package platform

import (
	"context"
	"errors"

	"sgsd/internal/core/controller"

	"fyne.io/fyne/v2"
)

// ErrNotificationsUnsupported indicates no notification backend is available.
var ErrNotificationsUnsupported = errors.New("notifications unsupported")

// NewNotifier returns the notification backend for this platform. app may be
// nil when no fyne application is running.
func NewNotifier(appName string, app fyne.App) controller.Notifier {
	return newNotifier(appName, app)
}

// fyneNotifier hands notifications to the fyne driver. The driver gives no
// delivery feedback, so Notify only fails on a cancelled context.
type fyneNotifier struct {
	app fyne.App
}

func (notifier *fyneNotifier) Notify(ctx context.Context, notification controller.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fyne.Do(func() {
		notifier.app.SendNotification(fyne.NewNotification(notification.Title, notification.Body))
	})
	return nil
}

type unsupportedNotifier struct{}

func (unsupportedNotifier) Notify(context.Context, controller.Notification) error {
	return ErrNotificationsUnsupported
}
