package database

import (
	"time"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
)

// Temple is a registered temple and its fixed location.
type Temple struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Deity     string    `json:"deity,omitempty"`
	District  string    `json:"district,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location returns the temple's coordinates.
func (t *Temple) Location() calendar.Location {
	return calendar.Location{Latitude: t.Latitude, Longitude: t.Longitude}
}

// CalendarRecord describes a stored calendar without its payload.
type CalendarRecord struct {
	TempleID    string    `json:"temple_id"`
	Year        int       `json:"year"`
	EventCount  int       `json:"event_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// StoredEvent is one flattened calendar event.
type StoredEvent struct {
	ID         int64  `json:"id"`
	TempleID   string `json:"temple_id"`
	Year       int    `json:"year"`
	Date       string `json:"date"` // YYYY-MM-DD
	Category   string `json:"category"`
	Name       string `json:"name"`
	Weekday    string `json:"weekday,omitempty"`
	Tithi      string `json:"tithi,omitempty"`
	Nakshatra  string `json:"nakshatra,omitempty"`
	TamilMonth string `json:"tamil_month,omitempty"`
}

// CalendarStats summarises what is stored for one temple.
type CalendarStats struct {
	TempleID    string         `json:"temple_id"`
	Years       []int          `json:"years"`
	TotalEvents int            `json:"total_events"`
	ByCategory  map[string]int `json:"by_category"`
}
