package panchang

// TithiCount is the number of tithis in a synodic month.
const TithiCount = 30

// NakshatraCount is the number of lunar mansions.
const NakshatraCount = 27

// Degrees spanned by one tithi and one nakshatra.
const (
	TithiSpan     = 360.0 / TithiCount
	NakshatraSpan = 360.0 / NakshatraCount
)

// Tithi indexes with a fixed meaning.
const (
	TithiPournami = 14
	TithiAmavasya = 29
)

// NakshatraKrittika is the index of the Krittika (Karthigai) nakshatra.
const NakshatraKrittika = 2

// Waxing fortnight is 0-14, waning fortnight 15-29.
var tithiNames = [TithiCount]string{
	"Prathamai", "Dvitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashti", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Pournami",
	"Prathamai", "Dvitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashti", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Amavasya",
}

var nakshatraNames = [NakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta",
	"Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// Paksha is a lunar fortnight.
type Paksha string

const (
	Shukla  Paksha = "shukla"  // waxing
	Krishna Paksha = "krishna" // waning
)

// TithiName returns the name of tithi index i. Out-of-range indexes are
// wrapped onto the table.
func TithiName(i int) string {
	return tithiNames[wrap(i, TithiCount)]
}

// NakshatraName returns the name of nakshatra index i. Out-of-range indexes
// are wrapped onto the table.
func NakshatraName(i int) string {
	return nakshatraNames[wrap(i, NakshatraCount)]
}

// PakshaOf returns the fortnight a tithi index belongs to.
func PakshaOf(tithi int) Paksha {
	if wrap(tithi, TithiCount) < 15 {
		return Shukla
	}
	return Krishna
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
