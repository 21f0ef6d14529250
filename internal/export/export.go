// Package export renders a yearly calendar as iCalendar, CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
)

// Format is an export file format.
type Format string

const (
	FormatICS  Format = "ics"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for formats other than ics, csv and json.
var ErrUnknownFormat = errors.New("unknown export format")

// ProductID identifies this generator in iCalendar output.
const ProductID = "-//Temple Calendar//Festival Calendar//EN"

// ParseFormat converts s (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatICS, FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatICS:
		return "text/calendar; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Filename is a download name for a calendar in format f.
func Filename(cal *calendar.YearlyCalendar, f Format) string {
	return fmt.Sprintf("%s_%d.%s", slug(cal.Temple), cal.Year, f)
}

// Write renders cal to w in format f.
func Write(w io.Writer, f Format, cal *calendar.YearlyCalendar) error {
	switch f {
	case FormatICS:
		return WriteICS(w, cal)
	case FormatCSV:
		return WriteCSV(w, cal)
	case FormatJSON:
		return WriteJSON(w, cal)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// WriteJSON writes cal as indented JSON.
func WriteJSON(w io.Writer, cal *calendar.YearlyCalendar) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

var csvHeader = []string{
	"date", "day", "category", "name", "tithi", "nakshatra", "tamil_month", "sunrise", "details",
}

// WriteCSV writes one row per event sorted by date, followed by one row per
// special festival with its date range in the date column.
func WriteCSV(w io.Writer, cal *calendar.YearlyCalendar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range cal.AllEvents() {
		row := []string{
			e.Date, e.Day, string(e.Category), e.Name, e.Tithi, e.Nakshatra, e.TamilMonth, e.Sunrise, details(e),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", e.Date, err)
		}
	}

	for _, f := range cal.SpecialFestivals {
		row := []string{
			f.DateRange(), "", string(calendar.CategorySpecial), f.Name, "", "", "", "", f.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", f.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// details joins the optional ritual fields of e.
func details(e calendar.Event) string {
	var parts []string
	if e.Timing != "" {
		parts = append(parts, "Timing: "+e.Timing)
	}
	if e.FastingType != "" {
		parts = append(parts, "Fasting: "+e.FastingType)
	}
	if e.TarpanamTime != "" {
		parts = append(parts, "Tarpanam: "+e.TarpanamTime)
	}
	if e.DeepamTime != "" {
		parts = append(parts, "Deepam: "+e.DeepamTime)
	}
	return strings.Join(parts, "; ")
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "calendar"
	}
	return out
}

// stamp is the DTSTAMP of every VEVENT: midnight UTC on 1 January of the
// calendar year, so identical calendars export identically.
func stamp(year int) string {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format("20060102T150405Z")
}
