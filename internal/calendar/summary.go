package calendar

import (
	"strings"
	"time"
)

// Summary counts the events of a calendar.
type Summary struct {
	Temple      string           `json:"temple"`
	Year        int              `json:"year"`
	TotalEvents int              `json:"total_events"`
	ByCategory  map[Category]int `json:"by_category"`
	TimingDays  int              `json:"timing_days"`
}

// Summarize returns per-category and total event counts, special festivals
// included.
func Summarize(cal *YearlyCalendar) Summary {
	s := Summary{
		Temple:     cal.Temple,
		Year:       cal.Year,
		ByCategory: make(map[Category]int, len(Categories())+1),
		TimingDays: len(cal.DailyTimings),
	}
	for _, c := range Categories() {
		n := len(cal.Events[c])
		s.ByCategory[c] = n
		s.TotalEvents += n
	}
	s.ByCategory[CategorySpecial] = len(cal.SpecialFestivals)
	s.TotalEvents += len(cal.SpecialFestivals)
	return s
}

// MonthView is every observance in one month of a calendar.
type MonthView struct {
	Temple           string            `json:"temple"`
	Year             int               `json:"year"`
	Month            time.Month        `json:"month"`
	MonthName        string            `json:"month_name"`
	Events           []Event           `json:"events"`
	SpecialFestivals []SpecialFestival `json:"special_festivals"`
}

// Month collects the rule-derived events of one month sorted by date, plus
// the special festivals whose date range mentions that month.
func Month(cal *YearlyCalendar, month time.Month) MonthView {
	view := MonthView{
		Temple:           cal.Temple,
		Year:             cal.Year,
		Month:            month,
		MonthName:        month.String(),
		Events:           []Event{},
		SpecialFestivals: []SpecialFestival{},
	}

	for _, e := range cal.AllEvents() {
		d, err := ParseDateString(e.Date)
		if err != nil || d.Month() != month {
			continue
		}
		view.Events = append(view.Events, e)
	}

	prefix := time.Date(cal.Year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	for _, f := range cal.SpecialFestivals {
		if strings.Contains(f.DateRange(), prefix) {
			view.SpecialFestivals = append(view.SpecialFestivals, f)
		}
	}

	return view
}
