package panchang

import (
	"math"
	"time"
)

// LunarState is the derived lunar-calendar state for one instant.
// It is recomputed for every call and never cached.
type LunarState struct {
	JulianDay      float64 `json:"julian_day"`
	SunLongitude   float64 `json:"sun_longitude"`
	MoonLongitude  float64 `json:"moon_longitude"`
	TithiIndex     int     `json:"tithi_index"`
	TithiName      string  `json:"tithi"`
	Paksha         Paksha  `json:"paksha"`
	NakshatraIndex int     `json:"nakshatra_index"`
	NakshatraName  string  `json:"nakshatra"`
}

// Compute derives the full lunar state for t.
func Compute(t time.Time) LunarState {
	jd := JulianDay(t)
	sun := SunLongitude(jd)
	moon := MoonLongitude(jd)

	tithi := tithiIndex(sun, moon)
	nakshatra := nakshatraIndex(moon)

	return LunarState{
		JulianDay:      jd,
		SunLongitude:   sun,
		MoonLongitude:  moon,
		TithiIndex:     tithi,
		TithiName:      tithiNames[tithi],
		Paksha:         PakshaOf(tithi),
		NakshatraIndex: nakshatra,
		NakshatraName:  nakshatraNames[nakshatra],
	}
}

// Tithi returns the lunar day index [0, 29] and its name for t.
func Tithi(t time.Time) (int, string) {
	jd := JulianDay(t)
	i := tithiIndex(SunLongitude(jd), MoonLongitude(jd))
	return i, tithiNames[i]
}

// Nakshatra returns the lunar mansion index [0, 26] and its name for t.
func Nakshatra(t time.Time) (int, string) {
	i := nakshatraIndex(MoonLongitude(JulianDay(t)))
	return i, nakshatraNames[i]
}

// tithiIndex maps the Moon-Sun elongation onto 12 degree segments.
func tithiIndex(sun, moon float64) int {
	diff := NormalizeDegrees(moon - sun)
	return clampIndex(diff/TithiSpan, TithiCount)
}

// nakshatraIndex maps the Moon's longitude onto 13°20' segments.
func nakshatraIndex(moon float64) int {
	return clampIndex(NormalizeDegrees(moon)/NakshatraSpan, NakshatraCount)
}

// clampIndex floors x into [0, n-1]. Division can round a longitude just
// below 360 up to n.
func clampIndex(x float64, n int) int {
	i := int(math.Floor(x))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
