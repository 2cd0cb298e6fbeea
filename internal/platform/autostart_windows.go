//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(appName string, command LaunchCommand) error {
	if err := command.validate(appName); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	value := runKeyValue(command)
	if err := runReg("add", registryRunKey, "/v", slugName(appName), "/t", "REG_SZ", "/d", value, "/f"); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if err := runReg("delete", registryRunKey, "/v", slugName(appName), "/f"); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func (service *platformService) AutostartEnabled(appName string) bool {
	return exec.Command("reg", "query", registryRunKey, "/v", slugName(appName)).Run() == nil
}

func runReg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

// runKeyValue renders a command line; the path is always quoted.
func runKeyValue(command LaunchCommand) string {
	parts := []string{`"` + strings.Trim(command.Path, `"`) + `"`}
	for _, arg := range command.Args {
		if strings.ContainsAny(arg, " \t") {
			arg = `"` + arg + `"`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}
