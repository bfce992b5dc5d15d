package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/emersion/go-autostart"
)

func autostartApp() (*autostart.App, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	// Resolve symlinks so the login item survives package manager links
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	return &autostart.App{
		Name:        "alarm-clock",
		DisplayName: "Alarm Clock",
		Exec:        []string{execPath},
	}, nil
}

// setupAutostart makes the login item match enable
func setupAutostart(enable bool) error {
	app, err := autostartApp()
	if err != nil {
		return err
	}

	switch {
	case enable && !app.IsEnabled():
		if err := app.Enable(); err != nil {
			return fmt.Errorf("enable autostart: %w", err)
		}
		logger.Log.Info("Autostart enabled")
	case !enable && app.IsEnabled():
		if err := app.Disable(); err != nil {
			return fmt.Errorf("disable autostart: %w", err)
		}
		logger.Log.Info("Autostart disabled")
	}

	return nil
}
