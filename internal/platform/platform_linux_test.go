//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"sgsd/internal/core/controller"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopEntry(t *testing.T) {
	entry := desktopEntry("SGSD", "/opt/my apps/sgsd")
	assert.Contains(t, entry, "[Desktop Entry]\n")
	assert.Contains(t, entry, "Name=SGSD\n")
	assert.Contains(t, entry, `Exec="/opt/my apps/sgsd"`+"\n")

	assert.Contains(t, desktopEntry("SGSD", "/usr/bin/sgsd"), "Exec=/usr/bin/sgsd\n")
}

func TestAutostart_EnableDisable(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()

	require.NoError(t, service.EnableAutostart("SGSD", "/usr/bin/sgsd"))
	entryPath := filepath.Join(configDir, "autostart", "sgsd.desktop")
	data, err := os.ReadFile(entryPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Exec=/usr/bin/sgsd")

	require.NoError(t, service.DisableAutostart("SGSD"))
	_, err = os.Stat(entryPath)
	assert.True(t, os.IsNotExist(err))

	// Disabling twice is fine.
	require.NoError(t, service.DisableAutostart("SGSD"))
	assert.Error(t, service.EnableAutostart("", "/usr/bin/sgsd"))
}

func TestNotifyArgs(t *testing.T) {
	args := notifyArgs("SGSD", controller.Notification{ID: "abc", Title: "SGSD", Body: "Time is up!"})
	require.Len(t, args, 8)

	assert.Equal(t, "SGSD", args[0])
	assert.Equal(t, uint32(0), args[1])
	assert.Equal(t, "SGSD", args[3])
	assert.Equal(t, "Time is up!", args[4])
	assert.Equal(t, int32(-1), args[7])

	hints, ok := args[6].(map[string]dbus.Variant)
	require.True(t, ok)
	assert.Equal(t, "abc", hints["x-sgsd-request-id"].Value())
}
