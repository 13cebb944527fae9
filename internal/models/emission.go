package models

import (
	"time"

	"github.com/rs/xid"
)

// Emission is one value a date picker handed to its host, as recorded in
// the history table.
type Emission struct {
	ID        string    `json:"id"`
	Calendar  string    `json:"calendar"`
	Mode      string    `json:"mode"`
	Format    string    `json:"format"`
	Date      string    `json:"date,omitempty"`
	Start     string    `json:"start,omitempty"`
	End       string    `json:"end,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Sources of an emission.
const (
	SourceTUI = "tui"
	SourceCLI = "cli"
)

func NewEmission(calendar, mode, format, source string) *Emission {
	return &Emission{
		ID:        xid.New().String(),
		Calendar:  calendar,
		Mode:      mode,
		Format:    format,
		Source:    source,
		CreatedAt: time.Now(),
	}
}

// IsRange reports whether the emission carries a start/end pair.
func (e *Emission) IsRange() bool {
	return e.Start != "" || e.End != ""
}

// Text is the emitted value as shown to a user.
func (e *Emission) Text() string {
	if e.IsRange() {
		return e.Start + " → " + e.End
	}
	return e.Date
}
