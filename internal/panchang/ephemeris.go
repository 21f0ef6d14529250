// Package panchang computes the lunar-calendar elements (tithi, nakshatra)
// used to place temple observances on the Gregorian calendar.
//
// The solar and lunar positions come from low-precision formulas: a mean
// longitude plus a single correction term, with no nutation or aberration.
// Results can be off by several hours against a true ephemeris, so dates
// near a tithi boundary may land a day early or late. Treat the output as an
// approximation for scheduling observances, not as an authoritative almanac.
package panchang

import (
	"math"
	"time"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// daysPerCentury is the length of a Julian century in days.
const daysPerCentury = 36525.0

// JulianDay converts a Gregorian date to a Julian Day number.
//
// The integer part is the standard Gregorian day number; the fractional part
// is the wall-clock time of day of t. The location (time zone) of t is not
// converted, so callers working at daily granularity should pass midnight.
func JulianDay(t time.Time) float64 {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()

	a := (14 - int(month)) / 12
	y := year + 4800 - a
	m := int(month) + 12*a - 3

	jdn := day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045

	fraction := (float64(hour) + float64(minute)/60.0 + float64(second)/3600.0) / 24.0
	return float64(jdn) + fraction
}

// SunLongitude returns the Sun's apparent ecliptic longitude in degrees,
// [0, 360), using the mean longitude plus the first-order equation of center.
func SunLongitude(jd float64) float64 {
	t := centuries(jd)
	meanLongitude := 280.46646 + 36000.76983*t
	meanAnomaly := 357.52911 + 35999.05029*t
	center := (1.914602 - 0.004817*t) * math.Sin(radians(meanAnomaly))
	return NormalizeDegrees(meanLongitude + center)
}

// MoonLongitude returns the Moon's ecliptic longitude in degrees, [0, 360),
// using the mean longitude plus the single dominant periodic term driven by
// the mean elongation.
func MoonLongitude(jd float64) float64 {
	t := centuries(jd)
	meanLongitude := 218.316 + 481267.881*t
	elongation := 297.85 + 445267.111*t
	return NormalizeDegrees(meanLongitude + 6.289*math.Sin(radians(elongation)))
}

// NormalizeDegrees maps any angle onto [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod of a tiny negative value can round back up to exactly 360.
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func centuries(jd float64) float64 {
	return (jd - J2000) / daysPerCentury
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// floorDiv is integer division rounding toward negative infinity, so years
// before 4800 BC still convert without a discontinuity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
