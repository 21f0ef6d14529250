// Package calendar turns the lunar state of each day into temple
// observances and assembles them into a yearly calendar.
package calendar

import (
	"errors"
	"fmt"
)

// Category groups observances that recur every lunar fortnight or month.
type Category string

const (
	CategoryPradosham  Category = "pradosham"
	CategoryEkadashi   Category = "ekadashi"
	CategoryPournami   Category = "pournami"
	CategoryAmavasya   Category = "amavasya"
	CategoryChaturthi  Category = "chaturthi"
	CategoryShashti    Category = "shashti"
	CategoryAshtami    Category = "ashtami"
	CategoryShivaratri Category = "shivaratri"
	CategoryKarthigai  Category = "karthigai"

	// CategorySpecial holds the curated multi-day festivals. They are not
	// derived from the lunar rules.
	CategorySpecial Category = "special_festivals"
)

// ErrUnknownCategory is returned when parsing an unrecognised category.
var ErrUnknownCategory = errors.New("unknown category")

// Categories returns the rule-derived categories in display order.
func Categories() []Category {
	return []Category{
		CategoryPradosham,
		CategoryEkadashi,
		CategoryPournami,
		CategoryAmavasya,
		CategoryChaturthi,
		CategoryShashti,
		CategoryAshtami,
		CategoryShivaratri,
		CategoryKarthigai,
	}
}

// IsValid checks if c is a rule-derived category or the special category.
func (c Category) IsValid() bool {
	if c == CategorySpecial {
		return true
	}
	return c.order() >= 0
}

// order is the position of c in Categories, or -1.
func (c Category) order() int {
	for i, valid := range Categories() {
		if c == valid {
			return i
		}
	}
	return -1
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Location is the fixed point a calendar is generated for.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Event is one observance on one date. Events are created during
// generation and not modified afterwards.
type Event struct {
	Date       string   `json:"date"` // YYYY-MM-DD
	Day        string   `json:"day"`  // weekday name
	Tithi      string   `json:"tithi"`
	TithiIndex int      `json:"tithi_index"`
	Nakshatra  string   `json:"nakshatra"`
	TamilMonth string   `json:"tamil_month"`
	Sunrise    string   `json:"sunrise"` // HH:MM, approximate
	Category   Category `json:"category"`
	Name       string   `json:"name"`

	// Optional ritual details, set by the matching rule.
	Timing       string `json:"timing,omitempty"`
	FastingType  string `json:"fasting_type,omitempty"`
	TarpanamTime string `json:"tarpanam_time,omitempty"`
	DeepamTime   string `json:"deepam_time,omitempty"`
}

// DailyTimings are the inauspicious windows and Abhijit Muhurtham for a day.
type DailyTimings struct {
	RahuKalam        string `json:"rahu_kalam"`
	Gulikai          string `json:"gulikai"`
	Yamagandam       string `json:"yamagandam"`
	AbhijitMuhurtham string `json:"abhijit_muhurtham"`
}

// SpecialFestival is a hand-curated temple festival, possibly spanning
// several days. End is empty for single-day festivals.
type SpecialFestival struct {
	Name        string `json:"name" yaml:"name"`
	Start       string `json:"start" yaml:"start"`
	End         string `json:"end,omitempty" yaml:"end,omitempty"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
}

// DateRange renders the festival dates as "start" or "start to end".
func (f SpecialFestival) DateRange() string {
	if f.End == "" || f.End == f.Start {
		return f.Start
	}
	return f.Start + " to " + f.End
}

// YearlyCalendar is the complete set of observances for one temple and year.
// It is fully built before it is returned and is read-only afterwards.
type YearlyCalendar struct {
	Temple           string                  `json:"temple"`
	Location         Location                `json:"location"`
	Year             int                     `json:"year"`
	Events           map[Category][]Event    `json:"events"`
	SpecialFestivals []SpecialFestival       `json:"special_festivals"`
	DailyTimings     map[string]DailyTimings `json:"daily_timings"`
}

// AllEvents returns every rule-derived event sorted by date, then category.
func (c *YearlyCalendar) AllEvents() []Event {
	var all []Event
	for _, cat := range Categories() {
		all = append(all, c.Events[cat]...)
	}
	SortEvents(all)
	return all
}

// EventCount is the number of rule-derived events plus special festivals.
func (c *YearlyCalendar) EventCount() int {
	n := len(c.SpecialFestivals)
	for _, events := range c.Events {
		n += len(events)
	}
	return n
}
