package cli

import (
	"fmt"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var from, to, format, toFormat string

	cmd := &cobra.Command{
		Use:   "convert <date>",
		Short: "Convert a date between calendars",
		Long: `Converts a date from one calendar to another.

The date is read with --format, or may be relative to today:
  today, tomorrow, yesterday, +3d, -2w, +1m, -1y

Examples:
  qd convert 1403/02/11
  qd convert 2024-04-30 --from gregorian --to jalali --format yyyy-MM-dd
  qd convert +30d --to-format dd/MM/yyyy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := lookupAdapter(from)
			if err != nil {
				return err
			}
			dst, err := lookupAdapter(to)
			if err != nil {
				return err
			}

			d, err := calendar.ParseRelative(args[0], src, format)
			if err != nil {
				return err
			}

			outFormat := toFormat
			if outFormat == "" {
				outFormat = format
			}
			fmt.Fprintln(cmd.OutOrStdout(), dst.Format(d, outFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", string(calendar.SystemJalali), "Calendar of the input date")
	cmd.Flags().StringVar(&to, "to", string(calendar.SystemGregorian), "Calendar of the output date")
	cmd.Flags().StringVarP(&format, "format", "f", calendar.LayoutDay, "Layout of the input date")
	cmd.Flags().StringVar(&toFormat, "to-format", "", "Layout of the output date (defaults to --format)")

	return cmd
}
