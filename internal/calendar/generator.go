package calendar

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/temple-calendar/internal/panchang"
)

// Generator builds yearly calendars. It holds only immutable configuration
// and is safe for concurrent use.
type Generator struct {
	specials []SpecialFestival
}

// Option configures a Generator.
type Option func(*Generator)

// WithSpecialFestivals replaces the built-in curated festival list.
func WithSpecialFestivals(festivals []SpecialFestival) Option {
	return func(g *Generator) {
		g.specials = make([]SpecialFestival, len(festivals))
		copy(g.specials, festivals)
	}
}

// NewGenerator creates a Generator using the built-in festival list unless
// overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{specials: DefaultSpecialFestivals()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the calendar with the built-in festival list.
func Generate(temple string, loc Location, year int) *YearlyCalendar {
	return NewGenerator().Generate(temple, loc, year)
}

// Generate walks every day of year, classifies it and collects the
// observances, daily timings and special festivals.
//
// The result depends only on the arguments: no wall clock, no shared state.
// Validate year and location before calling; any year converts, but the
// output outside a few centuries of J2000 is meaningless.
func (g *Generator) Generate(temple string, loc Location, year int) *YearlyCalendar {
	cal := &YearlyCalendar{
		Temple:       temple,
		Location:     loc,
		Year:         year,
		Events:       make(map[Category][]Event, len(Categories())),
		DailyTimings: make(map[string]DailyTimings, DaysInYear(year)),
	}
	for _, c := range Categories() {
		cal.Events[c] = []Event{}
	}

	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Year() == year {
		for _, e := range eventsFor(day, loc) {
			cal.Events[e.Category] = append(cal.Events[e.Category], e)
		}
		cal.DailyTimings[FormatDate(day)] = TimingsFor(day.Weekday())
		day = day.AddDate(0, 0, 1)
	}

	cal.SpecialFestivals = festivalsForYear(g.specials, year)
	return cal
}

// GenerateYears builds calendars for several years concurrently. Results
// are returned in the order of years.
func (g *Generator) GenerateYears(ctx context.Context, temple string, loc Location, years []int) ([]*YearlyCalendar, error) {
	out := make([]*YearlyCalendar, len(years))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, year := range years {
		i, year := i, year
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cal := g.Generate(temple, loc, year)
			for _, events := range cal.Events {
				SortEvents(events)
			}
			out[i] = cal
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DayInfo is the full panchang view of a single date.
type DayInfo struct {
	Date       string              `json:"date"`
	Day        string              `json:"day"`
	Lunar      panchang.LunarState `json:"lunar"`
	TamilMonth string              `json:"tamil_month"`
	Sunrise    string              `json:"sunrise"`
	Events     []Event             `json:"events"`
	Timings    DailyTimings        `json:"timings"`
}

// Day computes the lunar state, observances and timings for one date.
func Day(date time.Time, loc Location) DayInfo {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	events := eventsFor(date, loc)
	if events == nil {
		events = []Event{}
	}
	return DayInfo{
		Date:       FormatDate(date),
		Day:        DayName(date),
		Lunar:      panchang.Compute(date),
		TamilMonth: TamilMonth(date),
		Sunrise:    ApproxSunrise(date, loc.Latitude).Format("15:04"),
		Events:     events,
		Timings:    TimingsFor(date.Weekday()),
	}
}

// eventsFor classifies date and applies the rule table.
func eventsFor(date time.Time, loc Location) []Event {
	tithi, tithiName := panchang.Tithi(date)
	nakshatra, nakshatraName := panchang.Nakshatra(date)

	observances := Observances(date, tithi, nakshatra)
	if len(observances) == 0 {
		return nil
	}

	base := Event{
		Date:       FormatDate(date),
		Day:        DayName(date),
		Tithi:      tithiName,
		TithiIndex: tithi,
		Nakshatra:  nakshatraName,
		TamilMonth: TamilMonth(date),
		Sunrise:    ApproxSunrise(date, loc.Latitude).Format("15:04"),
	}

	events := make([]Event, 0, len(observances))
	for _, o := range observances {
		e := base
		e.Category = o.Category
		e.Name = o.Name
		e.Timing = o.Timing
		e.FastingType = o.FastingType
		e.TarpanamTime = o.TarpanamTime
		e.DeepamTime = o.DeepamTime
		events = append(events, e)
	}
	return events
}

// SortEvents orders events by date, then category display order.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Category.order() < events[j].Category.order()
	})
}
