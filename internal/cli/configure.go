package cli

import (
	"fmt"
	"strings"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Edit the demo settings interactively",
		Long:  `Opens a form for the demo settings and saves them to the settings file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.SettingsPath()
			if err != nil {
				return fmt.Errorf("failed to get settings path: %w", err)
			}
			settings, err := config.LoadSettings(path)
			if err != nil {
				return err
			}

			if err := settingsForm(&settings).Run(); err != nil {
				return fmt.Errorf("form cancelled: %w", err)
			}

			if err := settings.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings saved to %s\n", path)
			return nil
		},
	}
}

// settingsForm builds a form that edits s in place
func settingsForm(s *config.Settings) *huh.Form {
	modes := make([]huh.Option[string], len(picker.Modes))
	for i, m := range picker.Modes {
		modes[i] = huh.NewOption(string(m), string(m))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Calendar").
				Options(
					huh.NewOption("Jalali", string(calendar.SystemJalali)),
					huh.NewOption("Gregorian", string(calendar.SystemGregorian)),
				).
				Value(&s.Calendar),
			huh.NewSelect[string]().
				Title("Mode").
				Options(modes...).
				Value(&s.Mode),
			huh.NewInput().
				Title("Format").
				Description("yyyy, MM, M, dd and d; anything else is literal").
				Value(&s.Format).
				Validate(validateFormat),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Min date (optional)").
				Description("A date in the format above, or today, -30d, +1m ...").
				Value(&s.MinDate).
				Validate(func(v string) error { return validateBound(*s, v) }),
			huh.NewInput().
				Title("Max date (optional)").
				Value(&s.MaxDate).
				Validate(func(v string) error { return validateBound(*s, v) }),
			huh.NewConfirm().
				Title("Right to left").
				Value(&s.RTL),
		),
	)
}

func validateFormat(format string) error {
	if strings.TrimSpace(format) == "" {
		return fmt.Errorf("format is required")
	}
	if !calendar.HasYear(format) {
		return fmt.Errorf("format must contain yyyy")
	}
	return calendar.CheckLayout(format)
}

// validateBound checks that bound resolves in the calendar and format of s
func validateBound(s config.Settings, bound string) error {
	if strings.TrimSpace(bound) == "" {
		return nil
	}
	a, err := s.Adapter(registry)
	if err != nil {
		return err
	}
	_, err = calendar.ParseRelative(bound, a, s.Format)
	return err
}
