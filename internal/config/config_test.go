package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("QEYDAR_DATA_DIR", dir)

	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDerivedPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QEYDAR_DATA_DIR", dir)

	db, err := DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "qeydar.db"), db)

	settings, err := SettingsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settings.yaml"), settings)

	logs, err := LogDir()
	require.NoError(t, err)
	assert.DirExists(t, logs)
}

func TestDataDirDefaultsToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("QEYDAR_DATA_DIR", "")
	t.Setenv("HOME", home)

	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".qeydar"), got)
}
