package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var errEmptyAppName = errors.New("app name is empty")

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory, falling back
// to a path under the home directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		return "", fmt.Errorf("get config dir: %w", errors.Join(err, homeErr))
	}
	return fallbackConfigDir(homeDir), nil
}

func checkAutostartArgs(appName, execPath string) error {
	if strings.TrimSpace(appName) == "" {
		return errEmptyAppName
	}
	if execPath == "" {
		return errors.New("exec path is empty")
	}
	return nil
}

// autostartSlug turns "My App" into "my-app".
func autostartSlug(appName string) string {
	slug := strings.ToLower(strings.TrimSpace(appName))
	if slug == "" {
		return "sgsd"
	}
	return strings.Join(strings.Fields(slug), "-")
}
