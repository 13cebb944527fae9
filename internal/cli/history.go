package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit      int
		formatFlag string
		jsonFlag   bool
		clearFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show values emitted by the picker",
		Long: `Lists the values the demo and qd correct emitted, newest first.

Examples:
  qd history
  qd history --limit 5 --json
  qd history --format csv > history.csv
  qd history --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, closeHistory, err := openHistory()
			if err != nil {
				return err
			}
			defer closeHistory()

			out := cmd.OutOrStdout()

			if clearFlag {
				n, err := history.Clear()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Cleared %d emissions\n", n)
				return nil
			}

			if jsonFlag {
				formatFlag = string(FormatJSON)
			}
			format, err := parseFormat(formatFlag)
			if err != nil {
				return err
			}

			emissions, err := history.Recent(limit)
			if err != nil {
				return err
			}
			return formatEmissions(out, format, emissions)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 for all)")
	cmd.Flags().StringVar(&formatFlag, "format", string(FormatTSV), "Output format (json, tsv, csv)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON (same as --format json)")
	cmd.Flags().BoolVar(&clearFlag, "clear", false, "Delete every recorded entry")

	return cmd
}
