package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
)

const icsDate = "20060102"

// icsWriter writes CRLF-terminated content lines and remembers the first
// error.
type icsWriter struct {
	w   *bufio.Writer
	err error
}

func (iw *icsWriter) line(format string, args ...any) {
	if iw.err != nil {
		return
	}
	_, iw.err = fmt.Fprintf(iw.w, format+"\r\n", args...)
}

// WriteICS writes cal as an iCalendar file of all-day events. UIDs are
// derived from date, category and temple so re-imports update in place.
func WriteICS(w io.Writer, cal *calendar.YearlyCalendar) error {
	iw := &icsWriter{w: bufio.NewWriter(w)}
	host := slug(cal.Temple)
	dtstamp := stamp(cal.Year)

	iw.line("BEGIN:VCALENDAR")
	iw.line("VERSION:2.0")
	iw.line("PRODID:%s", ProductID)
	iw.line("X-WR-CALNAME:%s %d", escapeText(cal.Temple), cal.Year)
	iw.line("CALSCALE:GREGORIAN")
	iw.line("METHOD:PUBLISH")

	for _, e := range cal.AllEvents() {
		start, err := calendar.ParseDateString(e.Date)
		if err != nil {
			return fmt.Errorf("invalid event date %q: %w", e.Date, err)
		}

		iw.line("BEGIN:VEVENT")
		iw.line("UID:%s-%s@%s", e.Date, e.Category, host)
		iw.line("DTSTAMP:%s", dtstamp)
		iw.line("DTSTART;VALUE=DATE:%s", start.Format(icsDate))
		iw.line("DTEND;VALUE=DATE:%s", start.AddDate(0, 0, 1).Format(icsDate))
		iw.line("SUMMARY:%s", escapeText(e.Name))
		iw.line("DESCRIPTION:%s", escapeText(eventDescription(e)))
		iw.line("LOCATION:%s", escapeText(cal.Temple))
		iw.line("CATEGORIES:%s", strings.ToUpper(string(e.Category)))
		iw.line("END:VEVENT")
	}

	for i, f := range cal.SpecialFestivals {
		start, err := calendar.ParseDateString(f.Start)
		if err != nil {
			return fmt.Errorf("invalid festival start %q: %w", f.Start, err)
		}
		end := start
		if f.End != "" {
			if end, err = calendar.ParseDateString(f.End); err != nil {
				return fmt.Errorf("invalid festival end %q: %w", f.End, err)
			}
		}

		iw.line("BEGIN:VEVENT")
		iw.line("UID:%s-special-%d@%s", f.Start, i, host)
		iw.line("DTSTAMP:%s", dtstamp)
		iw.line("DTSTART;VALUE=DATE:%s", start.Format(icsDate))
		iw.line("DTEND;VALUE=DATE:%s", end.AddDate(0, 0, 1).Format(icsDate))
		iw.line("SUMMARY:%s", escapeText(f.Name))
		iw.line("DESCRIPTION:%s", escapeText(strings.TrimSpace(f.Type+"\n"+f.Description)))
		iw.line("LOCATION:%s", escapeText(cal.Temple))
		iw.line("CATEGORIES:%s", strings.ToUpper(string(calendar.CategorySpecial)))
		iw.line("END:VEVENT")
	}

	iw.line("END:VCALENDAR")

	if iw.err != nil {
		return fmt.Errorf("failed to write ics: %w", iw.err)
	}
	return iw.w.Flush()
}

func eventDescription(e calendar.Event) string {
	desc := fmt.Sprintf("Tithi: %s\nNakshatra: %s\nTamil month: %s\nSunrise: %s", e.Tithi, e.Nakshatra, e.TamilMonth, e.Sunrise)
	if d := details(e); d != "" {
		desc += "\n" + d
	}
	return desc
}

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

// escapeText escapes an iCalendar TEXT value.
func escapeText(s string) string {
	return icsEscaper.Replace(s)
}
