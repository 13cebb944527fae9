package cli

import (
	"encoding/json"
	"fmt"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/MikeBiancalana/qeydar/internal/logger"
	"github.com/MikeBiancalana/qeydar/internal/models"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	"github.com/spf13/cobra"
)

// correctResult is the --json output of qd correct
type correctResult struct {
	Input    []string     `json:"input"`
	Value    picker.Value `json:"value"`
	Calendar string       `json:"calendar"`
	Mode     string       `json:"mode"`
	Format   string       `json:"format"`
	Changes  int          `json:"changes"`
}

type correctOptions struct {
	calendar  string
	mode      string
	format    string
	min       string
	max       string
	json      bool
	noHistory bool
}

func newCorrectCmd() *cobra.Command {
	var opts correctOptions

	cmd := &cobra.Command{
		Use:   "correct <text> [end-text]",
		Short: "Run text through the picker's correction rules",
		Long: `Commits text the way pressing Enter in the picker does and prints the
resulting value. Text that is not a date becomes today (or the nearest bound),
and dates outside --min/--max are clamped.

In range mode a second argument is committed as the end date.

Examples:
  qd correct 1403/13/40
  qd correct "" --min +30d
  qd correct 2024/05/01 2024/05/10 --calendar gregorian --mode range --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runCorrect(opts, args)
			if err != nil {
				return err
			}

			if !opts.noHistory && !result.Value.IsZero() {
				if err := recordCorrection(result); err != nil {
					logger.Warn("failed to record correction", "error", err)
				}
			}

			out := cmd.OutOrStdout()
			if opts.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("failed to encode result as JSON: %w", err)
				}
				return nil
			}
			fmt.Fprintln(out, result.Value.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.calendar, "calendar", "c", string(calendar.SystemJalali), "Calendar system (jalali, gregorian)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", string(picker.ModeDay), "Picker mode (day, month, year, range)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", calendar.LayoutDay, "Date layout")
	cmd.Flags().StringVar(&opts.min, "min", "", "Earliest allowed date (date or relative, e.g. -30d)")
	cmd.Flags().StringVar(&opts.max, "max", "", "Latest allowed date (date or relative, e.g. +30d)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record the value in the history")

	return cmd
}

// runCorrect commits args to a fresh picker built from opts
func runCorrect(opts correctOptions, args []string) (correctResult, error) {
	settings := config.Settings{
		Calendar: opts.calendar,
		Mode:     opts.mode,
		Format:   opts.format,
		MinDate:  opts.min,
		MaxDate:  opts.max,
	}
	cfg, err := settings.PickerConfig(registry)
	if err != nil {
		return correctResult{}, err
	}
	if len(args) > 1 && !cfg.Mode.IsRange() {
		return correctResult{}, fmt.Errorf("end text is only accepted in range mode")
	}

	changes := 0
	p, err := picker.New(cfg,
		picker.WithRegistry(registry),
		picker.WithLogger(logger.GetLogger()),
		picker.OnChange(func(picker.Value) { changes++ }),
	)
	if err != nil {
		return correctResult{}, err
	}

	if cfg.Mode.IsRange() {
		p.CommitText(picker.SlotStart, args[0])
		if len(args) > 1 {
			p.CommitText(picker.SlotEnd, args[1])
		}
	} else {
		p.CommitText(picker.SlotNone, args[0])
	}

	return correctResult{
		Input:    args,
		Value:    p.Value(),
		Calendar: cfg.Calendar.String(),
		Mode:     string(cfg.Mode),
		Format:   cfg.Format,
		Changes:  changes,
	}, nil
}

// recordCorrection appends a corrected value to the history
func recordCorrection(result correctResult) error {
	history, closeHistory, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory()

	e := models.NewEmission(result.Calendar, result.Mode, result.Format, models.SourceCLI)
	e.Date = result.Value.Date
	e.Start = result.Value.Start
	e.End = result.Value.End
	return history.Record(e)
}
