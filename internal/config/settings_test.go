package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRegistry() calendar.Registry {
	now := time.Date(2024, time.April, 30, 12, 0, 0, 0, time.UTC)
	return calendar.DefaultRegistry(calendar.WithClock(func() time.Time { return now }))
}

func TestLoadSettingsMissingFileGivesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestSettingsSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SettingsName)
	want := Settings{
		Calendar: "gregorian",
		Mode:     "range",
		Format:   "yyyy-MM-dd",
		MinDate:  "-30d",
		MaxDate:  "2999-01-01",
		RTL:      true,
		Value:    "2024-05-01",
	}

	require.NoError(t, want.Save(path))
	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsName)
	require.NoError(t, os.WriteFile(path, []byte("mode: month\n"), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "month", s.Mode)
	assert.Equal(t, "jalali", s.Calendar)
	assert.Equal(t, calendar.LayoutDay, s.Format)
}

func TestLoadSettingsRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "calendar: [unterminated"},
		{"unknown calendar", "calendar: mayan\n"},
		{"unknown mode", "mode: week\n"},
		{"format without year", "format: MM/dd\n"},
		{"bad min", "min_date: someday\n"},
		{"min after max", "min_date: 1403/05/01\nmax_date: 1403/01/01\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), SettingsName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadSettings(path)
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestSaveRejectsInvalidSettings(t *testing.T) {
	s := Defaults()
	s.Calendar = "mayan"
	err := s.Save(filepath.Join(t.TempDir(), SettingsName))
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.ErrorIs(t, err, calendar.ErrUnknownSystem)
}

func TestPickerConfigResolvesBounds(t *testing.T) {
	s := Settings{
		Calendar: "georgian",
		Mode:     "Range",
		Format:   "yyyy/MM/dd",
		MinDate:  "-30d",
		MaxDate:  "today",
	}

	cfg, err := s.PickerConfig(fixedRegistry())
	require.NoError(t, err)

	g := calendar.NewGregorian()
	assert.Equal(t, picker.ModeRange, cfg.Mode)
	assert.Equal(t, calendar.SystemGregorian, cfg.Calendar)
	assert.Equal(t, "2024/03/31", g.Format(cfg.MinDate, cfg.Format))
	assert.Equal(t, "2024/04/30", g.Format(cfg.MaxDate, cfg.Format))
}

func TestPickerConfigDefaultsFormat(t *testing.T) {
	s := Defaults()
	s.Format = ""
	cfg, err := s.PickerConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, calendar.LayoutDay, cfg.Format)
	assert.True(t, cfg.MinDate.IsZero())
}

func TestInitialValue(t *testing.T) {
	s := Defaults()
	assert.Equal(t, picker.SingleValue("1403/02/11"), s.InitialValue())

	s.Mode = "range"
	assert.Equal(t, picker.RangeValue("1403/02/11", ""), s.InitialValue())

	s.Value = ""
	assert.True(t, s.InitialValue().IsZero())
}
