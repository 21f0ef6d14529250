package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

// =============================================================================
// Temple Queries
// =============================================================================

const templeColumns = `id, name, latitude, longitude, deity, district, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemple(row rowScanner) (*Temple, error) {
	var t Temple
	var createdAt, updatedAt sql.NullString
	if err := row.Scan(&t.ID, &t.Name, &t.Latitude, &t.Longitude, &t.Deity, &t.District, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if ts := parseTimestamp(createdAt); ts != nil {
		t.CreatedAt = *ts
	}
	if ts := parseTimestamp(updatedAt); ts != nil {
		t.UpdatedAt = *ts
	}
	return &t, nil
}

// CreateTemple inserts t, assigning a new UUID when t.ID is empty.
// Returns ErrDuplicate if the id or name is already taken.
func (db *DB) CreateTemple(ctx context.Context, t *Temple) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
		INSERT INTO temples (id, name, latitude, longitude, deity, district)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING created_at, updated_at
	`

	var createdAt, updatedAt sql.NullString
	err := db.QueryRowContext(ctx, query, t.ID, t.Name, t.Latitude, t.Longitude, t.Deity, t.District).
		Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("temple %q: %w", t.Name, ErrDuplicate)
		}
		return fmt.Errorf("insert temple: %w", err)
	}

	if ts := parseTimestamp(createdAt); ts != nil {
		t.CreatedAt = *ts
	}
	if ts := parseTimestamp(updatedAt); ts != nil {
		t.UpdatedAt = *ts
	}
	return nil
}

// GetTemple retrieves a temple by id.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) GetTemple(ctx context.Context, id string) (*Temple, error) {
	row := db.QueryRowContext(ctx, `SELECT `+templeColumns+` FROM temples WHERE id = ?`, id)
	t, err := scanTemple(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query temple: %w", err)
	}
	return t, nil
}

// GetTempleByName retrieves a temple by its unique name.
func (db *DB) GetTempleByName(ctx context.Context, name string) (*Temple, error) {
	row := db.QueryRowContext(ctx, `SELECT `+templeColumns+` FROM temples WHERE name = ?`, name)
	t, err := scanTemple(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query temple by name: %w", err)
	}
	return t, nil
}

// ListTemples returns every temple ordered by name.
// Returns an empty slice when there are none.
func (db *DB) ListTemples(ctx context.Context) ([]Temple, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+templeColumns+` FROM temples ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query temples: %w", err)
	}
	defer rows.Close()

	temples := []Temple{}
	for rows.Next() {
		t, err := scanTemple(rows)
		if err != nil {
			return nil, fmt.Errorf("scan temple: %w", err)
		}
		temples = append(temples, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate temples: %w", err)
	}
	return temples, nil
}

// DeleteTemple removes a temple and, through the foreign keys, its stored
// calendars and events. Returns ErrNotFound if the id doesn't exist.
func (db *DB) DeleteTemple(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM temples WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete temple: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// =============================================================================
// Calendar Queries
// =============================================================================

// SaveCalendar stores cal for a temple, replacing any calendar already
// saved for the same year. The JSON document and the flattened events are
// written in one transaction. Returns ErrNotFound if the temple doesn't
// exist.
func (db *DB) SaveCalendar(ctx context.Context, templeID string, cal *calendar.YearlyCalendar) (*CalendarRecord, error) {
	payload, err := json.Marshal(cal)
	if err != nil {
		return nil, fmt.Errorf("marshal calendar: %w", err)
	}

	rec := &CalendarRecord{
		TempleID:    templeID,
		Year:        cal.Year,
		EventCount:  cal.EventCount(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
	}

	err = db.WithTx(ctx, func(tx *Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM temples WHERE id = ?`, templeID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("check temple: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO calendars (temple_id, year, payload, event_count, generated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(temple_id, year) DO UPDATE SET
				payload = excluded.payload,
				event_count = excluded.event_count,
				generated_at = excluded.generated_at
		`, templeID, cal.Year, string(payload), rec.EventCount, rec.GeneratedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("upsert calendar: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM festival_events WHERE temple_id = ? AND year = ?`, templeID, cal.Year); err != nil {
			return fmt.Errorf("clear events: %w", err)
		}

		return insertEvents(ctx, tx, templeID, cal)
	})
	if err != nil {
		return nil, err
	}

	db.logger.Debug("calendar saved",
		"temple_id", templeID,
		"year", cal.Year,
		"events", rec.EventCount,
	)
	return rec, nil
}

func insertEvents(ctx context.Context, tx *Tx, templeID string, cal *calendar.YearlyCalendar) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO festival_events (temple_id, year, date, category, name, weekday, tithi, nakshatra, tamil_month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range cal.AllEvents() {
		if _, err := stmt.ExecContext(ctx, templeID, cal.Year, e.Date, string(e.Category), e.Name, e.Day, e.Tithi, e.Nakshatra, e.TamilMonth); err != nil {
			return fmt.Errorf("insert event %s %s: %w", e.Date, e.Category, err)
		}
	}

	// Special festivals are indexed by their first day.
	for _, f := range cal.SpecialFestivals {
		if _, err := stmt.ExecContext(ctx, templeID, cal.Year, f.Start, string(calendar.CategorySpecial), f.Name, "", "", "", ""); err != nil {
			return fmt.Errorf("insert festival %s: %w", f.Name, err)
		}
	}
	return nil
}

// GetCalendarPayload returns the stored JSON document for a temple and year.
// Returns ErrNotFound if no calendar was saved.
func (db *DB) GetCalendarPayload(ctx context.Context, templeID string, year int) (json.RawMessage, error) {
	var payload string
	err := db.QueryRowContext(ctx, `SELECT payload FROM calendars WHERE temple_id = ? AND year = ?`, templeID, year).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query calendar: %w", err)
	}
	return json.RawMessage(payload), nil
}

// GetCalendar decodes the stored calendar for a temple and year.
func (db *DB) GetCalendar(ctx context.Context, templeID string, year int) (*calendar.YearlyCalendar, error) {
	payload, err := db.GetCalendarPayload(ctx, templeID, year)
	if err != nil {
		return nil, err
	}

	var cal calendar.YearlyCalendar
	if err := json.Unmarshal(payload, &cal); err != nil {
		return nil, fmt.Errorf("unmarshal calendar: %w", err)
	}
	return &cal, nil
}

// ListCalendars returns the stored calendars of a temple, oldest year first.
func (db *DB) ListCalendars(ctx context.Context, templeID string) ([]CalendarRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT temple_id, year, event_count, generated_at
		FROM calendars
		WHERE temple_id = ?
		ORDER BY year
	`, templeID)
	if err != nil {
		return nil, fmt.Errorf("query calendars: %w", err)
	}
	defer rows.Close()

	records := []CalendarRecord{}
	for rows.Next() {
		var r CalendarRecord
		var generatedAt sql.NullString
		if err := rows.Scan(&r.TempleID, &r.Year, &r.EventCount, &generatedAt); err != nil {
			return nil, fmt.Errorf("scan calendar: %w", err)
		}
		if ts := parseTimestamp(generatedAt); ts != nil {
			r.GeneratedAt = *ts
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calendars: %w", err)
	}
	return records, nil
}

// =============================================================================
// Event Queries
// =============================================================================

// GetEventsByRange returns stored events of a temple dated between start
// and end inclusive (YYYY-MM-DD), in calendar order. An empty category
// returns every category. Returns an empty slice if nothing matches.
func (db *DB) GetEventsByRange(ctx context.Context, templeID, start, end, category string) ([]StoredEvent, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, temple_id, year, date, category, name, weekday, tithi, nakshatra, tamil_month
		FROM festival_events
		WHERE temple_id = ? AND date BETWEEN ? AND ?
	`)
	args := []any{templeID, start, end}
	if category != "" {
		sb.WriteString(` AND category = ?`)
		args = append(args, category)
	}
	sb.WriteString(` ORDER BY date, id`)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query events by range: %w", err)
	}
	defer rows.Close()

	events := []StoredEvent{}
	for rows.Next() {
		var e StoredEvent
		if err := rows.Scan(&e.ID, &e.TempleID, &e.Year, &e.Date, &e.Category, &e.Name, &e.Weekday, &e.Tithi, &e.Nakshatra, &e.TamilMonth); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// GetCalendarStats counts the stored years and events of a temple.
func (db *DB) GetCalendarStats(ctx context.Context, templeID string) (*CalendarStats, error) {
	stats := &CalendarStats{
		TempleID:   templeID,
		Years:      []int{},
		ByCategory: map[string]int{},
	}

	records, err := db.ListCalendars(ctx, templeID)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		stats.Years = append(stats.Years, r.Year)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM festival_events
		WHERE temple_id = ?
		GROUP BY category
	`, templeID)
	if err != nil {
		return nil, fmt.Errorf("query event counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		stats.ByCategory[category] = n
		stats.TotalEvents += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event counts: %w", err)
	}
	return stats, nil
}
