package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MikeBiancalana/qeydar/internal/models"
)

type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatTSV  OutputFormat = "tsv"
	FormatCSV  OutputFormat = "csv"
)

func parseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "tsv":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, tsv, csv)", s)
	}
}

// formatEmissions writes emissions to w in format
func formatEmissions(w io.Writer, format OutputFormat, emissions []*models.Emission) error {
	switch format {
	case FormatJSON:
		return formatEmissionsJSON(w, emissions)
	case FormatCSV:
		return formatEmissionsCSV(w, emissions)
	default:
		return formatEmissionsTSV(w, emissions)
	}
}

func formatEmissionsJSON(w io.Writer, emissions []*models.Emission) error {
	if emissions == nil {
		emissions = []*models.Emission{}
	}
	return json.NewEncoder(w).Encode(emissions)
}

func formatEmissionsTSV(w io.Writer, emissions []*models.Emission) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tCALENDAR\tMODE\tVALUE")
	for _, e := range emissions {
		fmt.Fprintf(tw, "%.8s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.Source, e.Calendar, e.Mode, e.Text())
	}
	return tw.Flush()
}

func formatEmissionsCSV(w io.Writer, emissions []*models.Emission) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"ID", "CREATED", "SOURCE", "CALENDAR", "MODE", "FORMAT", "DATE", "START", "END"})
	for _, e := range emissions {
		record := []string{
			e.ID,
			e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			e.Source,
			e.Calendar,
			e.Mode,
			e.Format,
			e.Date,
			e.Start,
			e.End,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
