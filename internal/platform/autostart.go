package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// LaunchCommand is what the session runs at login.
type LaunchCommand struct {
	Path string
	Args []string
}

// Service defines OS-specific helpers needed by the watchface.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName string, command LaunchCommand) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) bool
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// SetAutostart enables or disables launch at login for the running binary.
// Enabling again rewrites the entry so changed args take effect.
func SetAutostart(service Service, appName string, enabled bool, args ...string) error {
	if !enabled {
		if !service.AutostartEnabled(appName) {
			return nil
		}
		return service.DisableAutostart(appName)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	return service.EnableAutostart(appName, LaunchCommand{Path: execPath, Args: args})
}

func (command LaunchCommand) validate(appName string) error {
	if appName == "" {
		return errors.New("app name is empty")
	}
	if command.Path == "" {
		return errors.New("exec path is empty")
	}
	return nil
}

func slugName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "watchface"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}
