package calendar

import (
	"time"

	"github.com/zapponejosh/temple-calendar/internal/panchang"
)

// Observance is a category membership produced by the rule table for a day.
type Observance struct {
	Category     Category
	Name         string
	Timing       string
	FastingType  string
	TarpanamTime string
	DeepamTime   string
}

// rule matches a tithi/nakshatra pair and names the resulting observance.
type rule struct {
	category Category
	matches  func(tithi, nakshatra int) bool
	observe  func(date time.Time, tithi int) Observance
}

// Fixed ritual windows.
const (
	pradoshamTiming = "4:30 PM - 6:00 PM"
	ekadashiFasting = "Complete fast or fruits only"
	tarpanamWindow  = "5:30 AM - 7:00 AM"
	deepamTime      = "6:00 PM"
)

// rules is evaluated in order for every day. Categories are independent, so
// every matching rule contributes an observance.
var rules = []rule{
	{
		category: CategoryPradosham,
		matches:  tithiIn(12, 27),
		observe: func(date time.Time, _ int) Observance {
			return Observance{Name: pradoshamName(date.Weekday()), Timing: pradoshamTiming}
		},
	},
	{
		category: CategoryEkadashi,
		matches:  tithiIn(10, 25),
		observe: func(date time.Time, _ int) Observance {
			return Observance{Name: ekadashiName(date), FastingType: ekadashiFasting}
		},
	},
	{
		category: CategoryPournami,
		matches:  tithiIn(panchang.TithiPournami),
		observe: func(date time.Time, _ int) Observance {
			return Observance{Name: pournamiName(date.Month())}
		},
	},
	{
		category: CategoryAmavasya,
		matches:  tithiIn(panchang.TithiAmavasya),
		observe: func(time.Time, int) Observance {
			return Observance{Name: "Amavasya", TarpanamTime: tarpanamWindow}
		},
	},
	{
		category: CategoryChaturthi,
		matches:  tithiIn(3, 18),
		observe: func(_ time.Time, tithi int) Observance {
			if tithi == 3 {
				return Observance{Name: "Vinayaka Chaturthi"}
			}
			return Observance{Name: "Sankashti Chaturthi"}
		},
	},
	{
		category: CategoryShashti,
		matches:  tithiIn(5, 20),
		observe: func(date time.Time, _ int) Observance {
			if date.Month() == time.November {
				return Observance{Name: "Skanda Shashti"}
			}
			return Observance{Name: "Monthly Shashti"}
		},
	},
	{
		category: CategoryAshtami,
		matches:  tithiIn(7, 22),
		observe: func(time.Time, int) Observance {
			return Observance{Name: "Durga Ashtami"}
		},
	},
	{
		category: CategoryShivaratri,
		matches:  tithiIn(28),
		observe: func(date time.Time, _ int) Observance {
			if date.Month() == time.February {
				return Observance{Name: "Maha Shivaratri"}
			}
			return Observance{Name: "Masa Shivaratri"}
		},
	},
	{
		category: CategoryKarthigai,
		matches: func(_, nakshatra int) bool {
			return nakshatra == panchang.NakshatraKrittika
		},
		observe: func(time.Time, int) Observance {
			return Observance{Name: "Karthigai", DeepamTime: deepamTime}
		},
	},
}

// Observances returns every category the day qualifies for, in category
// order. An empty result is not an error.
func Observances(date time.Time, tithi, nakshatra int) []Observance {
	var out []Observance
	for _, r := range rules {
		if !r.matches(tithi, nakshatra) {
			continue
		}
		o := r.observe(date, tithi)
		o.Category = r.category
		out = append(out, o)
	}
	return out
}

func tithiIn(indexes ...int) func(tithi, nakshatra int) bool {
	return func(tithi, _ int) bool {
		for _, i := range indexes {
			if tithi == i {
				return true
			}
		}
		return false
	}
}

// -----------------------------------------------------------------
// Naming tables
// -----------------------------------------------------------------

func pradoshamName(weekday time.Weekday) string {
	switch weekday {
	case time.Saturday:
		return "Shani Pradosham"
	case time.Monday:
		return "Soma Pradosham"
	case time.Tuesday:
		return "Bhauma Pradosham"
	default:
		return "Pradosham"
	}
}

// ekadashiNames holds the first and second Ekadashi of each Gregorian month.
var ekadashiNames = map[time.Month][2]string{
	time.January:   {"Pausha Putrada/Vaikunta", "Shattila"},
	time.February:  {"Jaya/Bhaimi", "Vijaya"},
	time.March:     {"Amalaki", "Papamochani"},
	time.April:     {"Kamada", "Varuthini"},
	time.May:       {"Mohini", "Apara"},
	time.June:      {"Nirjala", "Yogini"},
	time.July:      {"Sayana/Devshayani", "Kamika"},
	time.August:    {"Pavitropana/Putrada", "Aja/Annada"},
	time.September: {"Parsva/Parivartini", "Indira"},
	time.October:   {"Papankusha", "Rama"},
	time.November:  {"Prabodhini/Devutthana", "Utpanna"},
	time.December:  {"Mokshada", "Saphala"},
}

// ekadashiName picks the first name for days 1-15 and the second after.
func ekadashiName(date time.Time) string {
	names, ok := ekadashiNames[date.Month()]
	if !ok {
		return "Ekadashi"
	}
	if date.Day() <= 15 {
		return names[0]
	}
	return names[1]
}

var pournamiNames = map[time.Month]string{
	time.January:   "Thai Pusam",
	time.February:  "Masi Magam",
	time.March:     "Panguni Uthiram",
	time.April:     "Chithirai Pournami",
	time.May:       "Vaikasi Visakam",
	time.July:      "Guru Purnima",
	time.August:    "Aadi Pooram",
	time.September: "Onam/Thiruvonam",
	time.October:   "Sharad Purnima",
	time.November:  "Karthika Deepam",
	time.December:  "Thiruvathira",
}

func pournamiName(month time.Month) string {
	if name, ok := pournamiNames[month]; ok {
		return name
	}
	return "Pournami"
}
