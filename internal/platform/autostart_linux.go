//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *platformService) EnableAutostart(appName string, command LaunchCommand) error {
	if err := command.validate(appName); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	entryPath, err := service.desktopEntryPath(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(entryPath), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}
	if err := os.WriteFile(entryPath, []byte(buildDesktopEntry(appName, command)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	entryPath, err := service.desktopEntryPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) AutostartEnabled(appName string) bool {
	entryPath, err := service.desktopEntryPath(appName)
	if err != nil {
		return false
	}
	_, err = os.Stat(entryPath)
	return err == nil
}

func (service *platformService) desktopEntryPath(appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", slugName(appName)+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func buildDesktopEntry(appName string, command LaunchCommand) string {
	var entry strings.Builder
	entry.WriteString("[Desktop Entry]\n")
	entry.WriteString("Type=Application\n")
	fmt.Fprintf(&entry, "Name=%s\n", appName)
	entry.WriteString("Comment=Desktop watchface\n")
	fmt.Fprintf(&entry, "Exec=%s\n", desktopExecLine(command))
	entry.WriteString("Terminal=false\n")
	entry.WriteString("X-GNOME-Autostart-enabled=true\n")
	entry.WriteString("X-GNOME-Autostart-Delay=2\n")
	return entry.String()
}

// desktopExecLine quotes each argument per the Desktop Entry Exec rules.
func desktopExecLine(command LaunchCommand) string {
	parts := make([]string, 0, len(command.Args)+1)
	for _, arg := range append([]string{command.Path}, command.Args...) {
		parts = append(parts, desktopQuote(arg))
	}
	return strings.Join(parts, " ")
}

func desktopQuote(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n\"'\\><~|&;$*?#()`") {
		return arg
	}
	escaper := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`)
	return `"` + escaper.Replace(arg) + `"`
}
