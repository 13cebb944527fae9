package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeBiancalana/qeydar/internal/models"
	"github.com/MikeBiancalana/qeydar/internal/perf"
	"github.com/MikeBiancalana/qeydar/internal/storage"
)

// HistoryRepository stores the values date pickers emitted.
type HistoryRepository struct {
	db      *storage.Database
	queries *perf.Recorder
}

func NewHistoryRepository(db *storage.Database, logger *slog.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:      db,
		queries: perf.NewRecorder("history_query", logger, 50*time.Millisecond),
	}
}

func (r *HistoryRepository) Record(e *models.Emission) error {
	return r.queries.Time(func() error {
		_, err := r.db.DB().Exec(`
			INSERT INTO emissions (id, calendar, mode, format, date, start_date, end_date, source, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			e.ID, e.Calendar, e.Mode, e.Format,
			nullString(e.Date), nullString(e.Start), nullString(e.End),
			e.Source, e.CreatedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to record emission: %w", err)
		}
		return nil
	})
}

// Recent returns up to limit emissions, newest first. A limit of zero or
// less returns everything.
func (r *HistoryRepository) Recent(limit int) ([]*models.Emission, error) {
	var out []*models.Emission
	err := r.queries.Time(func() error {
		query := `
			SELECT id, calendar, mode, format, date, start_date, end_date, source, created_at
			FROM emissions ORDER BY created_at DESC, rowid DESC
		`
		args := []any{}
		if limit > 0 {
			query += " LIMIT ?"
			args = append(args, limit)
		}

		rows, err := r.db.DB().Query(query, args...)
		if err != nil {
			return fmt.Errorf("failed to list emissions: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var e models.Emission
			var date, start, end sql.NullString
			var createdAt int64

			err := rows.Scan(&e.ID, &e.Calendar, &e.Mode, &e.Format,
				&date, &start, &end, &e.Source, &createdAt)
			if err != nil {
				return fmt.Errorf("failed to scan emission: %w", err)
			}

			e.Date, e.Start, e.End = date.String, start.String, end.String
			e.CreatedAt = time.UnixMilli(createdAt)
			out = append(out, &e)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to list emissions: %w", err)
		}
		return nil
	})
	return out, err
}

func (r *HistoryRepository) Count() (int, error) {
	var n int
	err := r.queries.Time(func() error {
		if err := r.db.DB().QueryRow("SELECT COUNT(*) FROM emissions").Scan(&n); err != nil {
			return fmt.Errorf("failed to count emissions: %w", err)
		}
		return nil
	})
	return n, err
}

// Clear deletes every emission and returns how many were removed.
func (r *HistoryRepository) Clear() (int64, error) {
	var n int64
	err := r.queries.Time(func() error {
		res, err := r.db.DB().Exec("DELETE FROM emissions")
		if err != nil {
			return fmt.Errorf("failed to clear emissions: %w", err)
		}
		n, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to clear emissions: %w", err)
		}
		return nil
	})
	return n, err
}

// Stats reports how the repository's queries have performed.
func (r *HistoryRepository) Stats() perf.Stats {
	return r.queries.Stats()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
