package integration

import (
	"os"
	"path/filepath"
	"testing"
)

// TestTempDir creates a temporary directory for integration tests
func TestTempDir(t *testing.T) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "qeydar-integration-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	// Clean up temp dir after test
	t.Cleanup(func() {
		os.RemoveAll(tempDir)
	})

	return tempDir
}

// SetupTestEnvironment creates an isolated data directory
func SetupTestEnvironment(t *testing.T) string {
	t.Helper()

	dataDir := filepath.Join(TestTempDir(t), ".qeydar")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}

	return dataDir
}

// WriteSettingsFile writes raw YAML to the settings file in dataDir
func WriteSettingsFile(t *testing.T, dataDir, content string) string {
	t.Helper()

	path := filepath.Join(dataDir, "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}

	return path
}
