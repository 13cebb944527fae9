package cli

import (
	"fmt"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
	"github.com/spf13/cobra"
)

func newTodayCmd() *cobra.Command {
	var calendarName, format string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print today's date",
		Long:  `Prints today's date in the chosen calendar and layout.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := lookupAdapter(calendarName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.Format(a.Today(), format))
			return nil
		},
	}

	cmd.Flags().StringVarP(&calendarName, "calendar", "c", string(calendar.SystemJalali), "Calendar system (jalali, gregorian)")
	cmd.Flags().StringVarP(&format, "format", "f", calendar.LayoutDay, "Date layout (yyyy, MM, M, dd, d)")

	return cmd
}
