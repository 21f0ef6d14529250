package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
)

func testCalendar() *calendar.YearlyCalendar {
	return calendar.Generate("Sankarankovil Gomathi Ambal Temple", calendar.Location{Latitude: 9.1688, Longitude: 77.4538}, 2025)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"ics", FormatICS, false},
		{"CSV", FormatCSV, false},
		{"json", FormatJSON, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteICS(t *testing.T) {
	cal := testCalendar()

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, cal))
	body := buf.String()

	for _, field := range []string{
		"BEGIN:VCALENDAR\r\n",
		"VERSION:2.0\r\n",
		"PRODID:" + ProductID + "\r\n",
		"X-WR-CALNAME:Sankarankovil Gomathi Ambal Temple 2025\r\n",
		"END:VCALENDAR\r\n",
	} {
		assert.Contains(t, body, field)
	}

	wantEvents := len(cal.AllEvents()) + len(cal.SpecialFestivals)
	assert.Equal(t, wantEvents, strings.Count(body, "BEGIN:VEVENT"))
	assert.Equal(t, wantEvents, strings.Count(body, "END:VEVENT"))

	assert.Contains(t, body, "UID:2025-02-26-shivaratri@sankarankovil-gomathi-ambal-temple\r\n")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20250226\r\nDTEND;VALUE=DATE:20250227\r\nSUMMARY:Maha Shivaratri\r\n")
	assert.Contains(t, body, "DTSTAMP:20250101T000000Z\r\n")
	assert.NotContains(t, body, "DTSTAMP:2026")

	// Multi-day festival: Navaratri 21-30 September ends exclusive on 1 October.
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20250921\r\nDTEND;VALUE=DATE:20251001\r\n")
}

func TestWriteICS_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, WriteICS(&a, testCalendar()))
	require.NoError(t, WriteICS(&b, testCalendar()))
	assert.Equal(t, a.String(), b.String())
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, `a\, b\; c\\d\nnext`, escapeText("a, b; c\\d\nnext"))
}

func TestWriteCSV(t *testing.T) {
	cal := testCalendar()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cal))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+len(cal.AllEvents())+len(cal.SpecialFestivals))
	assert.Equal(t, csvHeader, rows[0])

	var found bool
	for _, row := range rows[1:] {
		if row[0] == "2025-01-11" && row[2] == "pradosham" {
			found = true
			assert.Equal(t, "Shani Pradosham", row[3])
			assert.Equal(t, "Saturday", row[1])
			assert.Equal(t, "Timing: 4:30 PM - 6:00 PM", row[8])
		}
	}
	assert.True(t, found)

	last := rows[len(rows)-1]
	assert.Equal(t, "special_festivals", last[2])
}

func TestWriteJSON(t *testing.T) {
	cal := testCalendar()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, cal))

	var got calendar.YearlyCalendar
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, cal.Year, got.Year)
	assert.Len(t, got.Events[calendar.CategoryPradosham], len(cal.Events[calendar.CategoryPradosham]))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \""))
}

func TestWrite_Dispatch(t *testing.T) {
	cal := testCalendar()
	for _, f := range []Format{FormatICS, FormatCSV, FormatJSON} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, f, cal), f)
		assert.NotZero(t, buf.Len())
	}

	assert.ErrorIs(t, Write(&bytes.Buffer{}, Format("xml"), cal), ErrUnknownFormat)
}

func TestFilename(t *testing.T) {
	cal := testCalendar()
	assert.Equal(t, "sankarankovil-gomathi-ambal-temple_2025.ics", Filename(cal, FormatICS))
	assert.Equal(t, "calendar_2025.csv", Filename(&calendar.YearlyCalendar{Year: 2025}, FormatCSV))
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "text/calendar; charset=utf-8", FormatICS.ContentType())
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Equal(t, "application/json; charset=utf-8", FormatJSON.ContentType())
}
