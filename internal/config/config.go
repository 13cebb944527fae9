package config

import (
	"os"
	"path/filepath"
)

const (
	AppName      = "qeydar"
	DbName       = "qeydar.db"
	SettingsName = "settings.yaml"
)

// DataDir returns the path to the qeydar data directory (~/.qeydar/)
// Creates the directory if it doesn't exist
// Can be overridden with QEYDAR_DATA_DIR environment variable (primarily for testing)
func DataDir() (string, error) {
	if dataDir := os.Getenv("QEYDAR_DATA_DIR"); dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", err
		}
		return dataDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(home, "."+AppName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// DatabasePath returns the path to the SQLite database (~/.qeydar/qeydar.db)
func DatabasePath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, DbName), nil
}

// SettingsPath returns the path to the demo settings file (~/.qeydar/settings.yaml)
func SettingsPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, SettingsName), nil
}

// LogDir returns the path to the log directory (~/.qeydar/logs/)
// Creates the directory if it doesn't exist
func LogDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", err
	}

	return logDir, nil
}
