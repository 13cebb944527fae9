package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned when a settings file cannot drive a picker.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the persisted state of the demo application.
//
// MinDate and MaxDate accept anything calendar.ParseRelative does: a date in
// Format, "today", or an offset such as "-30d". They are resolved each time
// the settings are turned into a picker config, so "today" moves with the
// clock.
type Settings struct {
	Calendar string `yaml:"calendar"`
	Mode     string `yaml:"mode"`
	Format   string `yaml:"format"`
	MinDate  string `yaml:"min_date,omitempty"`
	MaxDate  string `yaml:"max_date,omitempty"`
	RTL      bool   `yaml:"rtl"`
	Value    string `yaml:"value,omitempty"`
}

// Defaults is a Jalali day picker holding 1403/02/11.
func Defaults() Settings {
	return Settings{
		Calendar: string(calendar.SystemJalali),
		Mode:     string(picker.ModeDay),
		Format:   calendar.LayoutDay,
		Value:    "1403/02/11",
	}
}

// LoadSettings reads path. A missing file yields Defaults.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes the settings atomically so a watcher never sees half a file.
func (s Settings) Save(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// Validate checks that the settings resolve to a usable picker config.
func (s Settings) Validate() error {
	_, err := s.PickerConfig(nil)
	return err
}

// Adapter returns the adapter of the configured calendar from registry, or
// from calendar.DefaultRegistry when registry is nil.
func (s Settings) Adapter(registry calendar.Registry) (calendar.Adapter, error) {
	if registry == nil {
		registry = calendar.DefaultRegistry()
	}
	system, err := calendar.ParseSystem(s.Calendar)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return registry.Lookup(system)
}

// PickerConfig resolves the settings against registry.
func (s Settings) PickerConfig(registry calendar.Registry) (picker.Config, error) {
	a, err := s.Adapter(registry)
	if err != nil {
		return picker.Config{}, err
	}
	mode, err := picker.ParseMode(s.Mode)
	if err != nil {
		return picker.Config{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	format := s.Format
	if format == "" {
		format = calendar.LayoutDay
	}

	cfg := picker.Config{
		Mode:     mode,
		Format:   format,
		Calendar: a.System(),
	}
	if s.MinDate != "" {
		if cfg.MinDate, err = calendar.ParseRelative(s.MinDate, a, format); err != nil {
			return picker.Config{}, fmt.Errorf("%w: min_date: %w", ErrInvalidSettings, err)
		}
	}
	if s.MaxDate != "" {
		if cfg.MaxDate, err = calendar.ParseRelative(s.MaxDate, a, format); err != nil {
			return picker.Config{}, fmt.Errorf("%w: max_date: %w", ErrInvalidSettings, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return picker.Config{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return cfg, nil
}

// InitialValue is the stored value as a picker value for the configured mode.
func (s Settings) InitialValue() picker.Value {
	if s.Value == "" {
		return picker.Value{}
	}
	if s.Mode == string(picker.ModeRange) {
		return picker.RangeValue(s.Value, "")
	}
	return picker.SingleValue(s.Value)
}
