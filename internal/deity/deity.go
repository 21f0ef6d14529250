// Package deity identifies a temple's presiding deity from its name and
// maps it to the observances that temple keeps.
package deity

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
)

// ErrNoMatch is returned when no deity keyword appears in the name.
var ErrNoMatch = errors.New("no deity matched")

// Deity is a presiding-deity family.
type Deity string

const (
	Shiva   Deity = "shiva"
	Murugan Deity = "murugan"
	Amman   Deity = "amman"
	Vishnu  Deity = "vishnu"
	Ganesha Deity = "ganesha"
)

// Profile describes the festival pattern of temples for one deity.
type Profile struct {
	Deity            Deity               `json:"deity"`
	PrimaryName      string              `json:"primary_deity"`
	TamilName        string              `json:"tamil_name"`
	SpecialWeekday   *time.Weekday       `json:"special_weekday,omitempty"`
	MonthlyFestivals []calendar.Category `json:"monthly_festivals"`
	AnnualFestivals  []string            `json:"annual_festivals"`
	SpecialMonths    []string            `json:"special_months"`
	Keywords         []string            `json:"-"`
}

func weekday(d time.Weekday) *time.Weekday { return &d }

// profiles order breaks ties between equally long keyword hits.
var profiles = []Profile{
	{
		Deity:            Murugan,
		PrimaryName:      "Murugan",
		TamilName:        "முருகன்",
		SpecialWeekday:   weekday(time.Tuesday),
		MonthlyFestivals: []calendar.Category{calendar.CategoryShashti, calendar.CategoryKarthigai},
		AnnualFestivals:  []string{"thai_pusam", "vaikasi_visakam", "skanda_shashti", "panguni_uthiram"},
		SpecialMonths:    []string{"Thai", "Vaikasi", "Aippasi"},
		Keywords: []string{
			"murugan", "muruga", "subramanya", "subramania", "subramani",
			"karthikeya", "kartikeya", "dandayudhapani", "dandayuthapani",
			"palani", "thiruchendur", "kumara", "kumaran", "senthil", "saravana", "swaminatha",
		},
	},
	{
		Deity:            Ganesha,
		PrimaryName:      "Ganesha/Vinayagar",
		TamilName:        "விநாயகர்",
		MonthlyFestivals: []calendar.Category{calendar.CategoryChaturthi},
		AnnualFestivals:  []string{"vinayagar_chaturthi", "ganesh_jayanthi"},
		SpecialMonths:    []string{"Aavani"},
		Keywords: []string{
			"vinayagar", "vinayaka", "ganapathi", "ganapathy", "ganesh", "ganesha",
			"ganesa", "pillayar", "pillaiyar", "vigneswara", "vigneshwara",
		},
	},
	{
		Deity:            Amman,
		PrimaryName:      "Amman/Devi",
		TamilName:        "அம்மன்",
		SpecialWeekday:   weekday(time.Friday),
		MonthlyFestivals: []calendar.Category{calendar.CategoryPournami, calendar.CategoryAshtami},
		AnnualFestivals:  []string{"navaratri", "aadi_pooram", "aadi_fridays", "amman_thiruvizha"},
		SpecialMonths:    []string{"Aadi", "Purattasi"},
		Keywords: []string{
			"amman", "amma", "ambal", "ambigai", "mariamman", "kali", "kaali", "durga", "durgai",
			"meenakshi", "kamakshi", "visalakshi", "parvathi", "bhagavathi", "devi", "gomathi",
		},
	},
	{
		Deity:            Shiva,
		PrimaryName:      "Shiva",
		TamilName:        "சிவன்",
		SpecialWeekday:   weekday(time.Monday),
		MonthlyFestivals: []calendar.Category{calendar.CategoryPradosham, calendar.CategoryShivaratri},
		AnnualFestivals:  []string{"maha_shivaratri", "arudra_darshan", "panguni_uthiram", "thiruvathirai"},
		SpecialMonths:    []string{"Karthigai", "Margazhi"},
		Keywords: []string{
			"easwara", "eswara", "eshwar", "ishwar", "eswarar", "easwarar", "natha", "nathar", "nathan",
			"shiva", "siva", "shiv", "siv", "lingam", "linga", "swamy", "swami",
			"sankaranarayanar", "sankara",
		},
	},
	{
		Deity:            Vishnu,
		PrimaryName:      "Vishnu/Perumal",
		TamilName:        "பெருமாள்",
		SpecialWeekday:   weekday(time.Saturday),
		MonthlyFestivals: []calendar.Category{calendar.CategoryEkadashi},
		AnnualFestivals:  []string{"vaikunta_ekadashi", "rama_navami", "krishna_jayanthi", "purattasi_saturdays"},
		SpecialMonths:    []string{"Purattasi", "Margazhi"},
		Keywords: []string{
			"perumal", "vishnu", "visnu", "krishna", "krishnan", "rama", "raman", "ramar",
			"narayana", "narayanan", "ranganatha", "ranganathar", "venkatesa",
			"venkateswara", "srinivasa", "balaji", "varadaraja", "parthasarathy",
		},
	},
}

// Profiles returns every known deity profile.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// Lookup returns the profile for d.
func Lookup(d Deity) (Profile, bool) {
	for _, p := range profiles {
		if p.Deity == d {
			return p, true
		}
	}
	return Profile{}, false
}

// Classify matches a temple name against the deity keyword lists. The
// longest keyword found inside any word of the name decides, so
// "Ranganathaswamy" is Vishnu (ranganatha) even though it also contains
// the Shiva keyword "swamy".
func Classify(templeName string) (Profile, error) {
	words := Tokenize(templeName)

	best, bestLen := -1, 0
	for i, p := range profiles {
		for _, kw := range p.Keywords {
			if len(kw) <= bestLen {
				continue
			}
			for _, w := range words {
				if strings.Contains(w, kw) {
					best, bestLen = i, len(kw)
					break
				}
			}
		}
	}

	if best < 0 {
		return Profile{}, ErrNoMatch
	}
	return profiles[best], nil
}

// Tokenize lowercases a temple name and splits it into words, dropping
// punctuation and common filler words.
func Tokenize(name string) []string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	words := fields[:0]
	for _, f := range fields {
		if stopWords[f] {
			continue
		}
		words = append(words, f)
	}
	return words
}

var stopWords = map[string]bool{
	"sri": true, "shri": true, "arulmigu": true, "thiru": true,
	"temple": true, "kovil": true, "koil": true, "devasthanam": true,
	"the": true, "of": true, "and": true,
}

// Celebrates reports whether temples of profile p give category c special
// emphasis.
func (p Profile) Celebrates(c calendar.Category) bool {
	for _, m := range p.MonthlyFestivals {
		if m == c {
			return true
		}
	}
	return false
}

// Highlight returns the events from cal that the deity's temples emphasise,
// sorted by date.
func (p Profile) Highlight(cal *calendar.YearlyCalendar) []calendar.Event {
	out := []calendar.Event{}
	for _, c := range p.MonthlyFestivals {
		out = append(out, cal.Events[c]...)
	}
	calendar.SortEvents(out)
	return out
}
