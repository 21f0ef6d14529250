package calendar

import (
	"math"
	"time"
)

// tamilMonths is ordered from Thai. Gregorian months map onto it with a
// fixed offset, which is only right for the second half of each Tamil month.
var tamilMonths = [12]string{
	"Thai", "Maasi", "Panguni", "Chithirai", "Vaikasi", "Aani",
	"Aadi", "Aavani", "Purattasi", "Aippasi", "Karthigai", "Margazhi",
}

// TamilMonth returns the approximate Tamil month label for date. It uses a
// fixed month offset rather than the solar transit.
func TamilMonth(date time.Time) string {
	return tamilMonths[(int(date.Month())+8)%12]
}

// Weekday tables for Sankarankovil. They depend on the weekday only.
var (
	rahuKalam = [7]string{
		time.Sunday:    "4:30 PM - 6:00 PM",
		time.Monday:    "7:30 AM - 9:00 AM",
		time.Tuesday:   "3:00 PM - 4:30 PM",
		time.Wednesday: "12:00 PM - 1:30 PM",
		time.Thursday:  "1:30 PM - 3:00 PM",
		time.Friday:    "10:30 AM - 12:00 PM",
		time.Saturday:  "9:00 AM - 10:30 AM",
	}
	gulikai = [7]string{
		time.Sunday:    "3:00 PM - 4:30 PM",
		time.Monday:    "1:30 PM - 3:00 PM",
		time.Tuesday:   "12:00 PM - 1:30 PM",
		time.Wednesday: "10:30 AM - 12:00 PM",
		time.Thursday:  "9:00 AM - 10:30 AM",
		time.Friday:    "7:30 AM - 9:00 AM",
		time.Saturday:  "6:00 AM - 7:30 AM",
	}
	yamagandam = [7]string{
		time.Sunday:    "12:00 PM - 1:30 PM",
		time.Monday:    "10:30 AM - 12:00 PM",
		time.Tuesday:   "9:00 AM - 10:30 AM",
		time.Wednesday: "7:30 AM - 9:00 AM",
		time.Thursday:  "6:00 AM - 7:30 AM",
		time.Friday:    "3:00 PM - 4:30 PM",
		time.Saturday:  "1:30 PM - 3:00 PM",
	}
)

// AbhijitMuhurtham is the same window every day.
const AbhijitMuhurtham = "11:45 AM - 12:30 PM"

// TimingsFor returns the static daily timings for a weekday.
func TimingsFor(weekday time.Weekday) DailyTimings {
	return DailyTimings{
		RahuKalam:        rahuKalam[weekday],
		Gulikai:          gulikai[weekday],
		Yamagandam:       yamagandam[weekday],
		AbhijitMuhurtham: AbhijitMuhurtham,
	}
}

// referenceLatitude is Chennai, where sunrise is taken as 06:00.
const referenceLatitude = 13.0

// ApproxSunrise shifts 06:00 by two minutes per degree of latitude away from
// Chennai. This is the only place the location affects output; the
// ephemeris formulas ignore it.
func ApproxSunrise(date time.Time, latitude float64) time.Time {
	base := time.Date(date.Year(), date.Month(), date.Day(), 6, 0, 0, 0, date.Location())
	minutes := (latitude - referenceLatitude) * 2
	return base.Add(time.Duration(math.Round(minutes * float64(time.Minute))))
}
