package calendar

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the ISO 8601 date format used throughout the calendar.
const DateLayout = "2006-01-02"

// Boundary errors. The generator itself has no failure modes; callers
// validate input before invoking it.
var (
	ErrInvalidYear     = errors.New("invalid year")
	ErrInvalidLocation = errors.New("invalid location")
)

// ParseDateString parses a date string in YYYY-MM-DD format.
func ParseDateString(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// DayName returns the day of week name (Sunday, Monday, etc.)
func DayName(date time.Time) string {
	return date.Weekday().String()
}

// DaysInYear returns 366 for Gregorian leap years and 365 otherwise.
func DaysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}

// ValidateYear checks that year lies within [lo, hi].
func ValidateYear(year, lo, hi int) error {
	if year < lo || year > hi {
		return fmt.Errorf("%w: %d not in %d-%d", ErrInvalidYear, year, lo, hi)
	}
	return nil
}

// ValidateLocation checks latitude and longitude ranges.
func ValidateLocation(loc Location) error {
	var errs []error
	if math.IsNaN(loc.Latitude) || loc.Latitude < -90 || loc.Latitude > 90 {
		errs = append(errs, fmt.Errorf("%w: latitude %v not in [-90, 90]", ErrInvalidLocation, loc.Latitude))
	}
	if math.IsNaN(loc.Longitude) || loc.Longitude < -180 || loc.Longitude > 180 {
		errs = append(errs, fmt.Errorf("%w: longitude %v not in [-180, 180]", ErrInvalidLocation, loc.Longitude))
	}
	return errors.Join(errs...)
}
