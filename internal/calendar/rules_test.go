package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/temple-calendar/internal/panchang"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestObservances(t *testing.T) {
	// 2025-01-11 is a Saturday, 2025-01-13 a Monday, 2025-01-14 a Tuesday,
	// 2025-01-15 a Wednesday.
	tests := []struct {
		name      string
		date      time.Time
		tithi     int
		nakshatra int
		want      []Observance
	}{
		{
			name: "saturday pradosham", date: day(2025, time.January, 11), tithi: 12, nakshatra: 6,
			want: []Observance{{Category: CategoryPradosham, Name: "Shani Pradosham", Timing: pradoshamTiming}},
		},
		{
			name: "monday pradosham waning", date: day(2025, time.January, 13), tithi: 27, nakshatra: 6,
			want: []Observance{{Category: CategoryPradosham, Name: "Soma Pradosham", Timing: pradoshamTiming}},
		},
		{
			name: "tuesday pradosham", date: day(2025, time.January, 14), tithi: 12, nakshatra: 6,
			want: []Observance{{Category: CategoryPradosham, Name: "Bhauma Pradosham", Timing: pradoshamTiming}},
		},
		{
			name: "plain pradosham", date: day(2025, time.January, 15), tithi: 27, nakshatra: 6,
			want: []Observance{{Category: CategoryPradosham, Name: "Pradosham", Timing: pradoshamTiming}},
		},
		{
			name: "first ekadashi of month", date: day(2025, time.January, 15), tithi: 10, nakshatra: 6,
			want: []Observance{{Category: CategoryEkadashi, Name: "Pausha Putrada/Vaikunta", FastingType: ekadashiFasting}},
		},
		{
			name: "second ekadashi of month", date: day(2025, time.January, 16), tithi: 25, nakshatra: 6,
			want: []Observance{{Category: CategoryEkadashi, Name: "Shattila", FastingType: ekadashiFasting}},
		},
		{
			name: "pournami with special name", date: day(2025, time.April, 12), tithi: 14, nakshatra: 6,
			want: []Observance{{Category: CategoryPournami, Name: "Chithirai Pournami"}},
		},
		{
			name: "pournami without special name", date: day(2025, time.June, 10), tithi: 14, nakshatra: 6,
			want: []Observance{{Category: CategoryPournami, Name: "Pournami"}},
		},
		{
			name: "amavasya", date: day(2025, time.January, 28), tithi: 29, nakshatra: 6,
			want: []Observance{{Category: CategoryAmavasya, Name: "Amavasya", TarpanamTime: tarpanamWindow}},
		},
		{
			name: "vinayaka chaturthi", date: day(2025, time.January, 2), tithi: 3, nakshatra: 6,
			want: []Observance{{Category: CategoryChaturthi, Name: "Vinayaka Chaturthi"}},
		},
		{
			name: "sankashti chaturthi", date: day(2025, time.January, 18), tithi: 18, nakshatra: 6,
			want: []Observance{{Category: CategoryChaturthi, Name: "Sankashti Chaturthi"}},
		},
		{
			name: "skanda shashti in november", date: day(2025, time.November, 26), tithi: 5, nakshatra: 6,
			want: []Observance{{Category: CategoryShashti, Name: "Skanda Shashti"}},
		},
		{
			name: "monthly shashti", date: day(2025, time.October, 26), tithi: 20, nakshatra: 6,
			want: []Observance{{Category: CategoryShashti, Name: "Monthly Shashti"}},
		},
		{
			name: "ashtami", date: day(2025, time.March, 7), tithi: 22, nakshatra: 6,
			want: []Observance{{Category: CategoryAshtami, Name: "Durga Ashtami"}},
		},
		{
			name: "maha shivaratri", date: day(2025, time.February, 26), tithi: 28, nakshatra: 24,
			want: []Observance{{Category: CategoryShivaratri, Name: "Maha Shivaratri"}},
		},
		{
			name: "masa shivaratri", date: day(2025, time.March, 27), tithi: 28, nakshatra: 24,
			want: []Observance{{Category: CategoryShivaratri, Name: "Masa Shivaratri"}},
		},
		{
			name: "karthigai", date: day(2025, time.January, 7), tithi: 8, nakshatra: panchang.NakshatraKrittika,
			want: []Observance{{Category: CategoryKarthigai, Name: "Karthigai", DeepamTime: deepamTime}},
		},
		{
			name: "shivaratri and karthigai together", date: day(2025, time.February, 26), tithi: 28, nakshatra: panchang.NakshatraKrittika,
			want: []Observance{
				{Category: CategoryShivaratri, Name: "Maha Shivaratri"},
				{Category: CategoryKarthigai, Name: "Karthigai", DeepamTime: deepamTime},
			},
		},
		{
			name: "no observance", date: day(2025, time.January, 1), tithi: 1, nakshatra: 6,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Observances(tt.date, tt.tithi, tt.nakshatra))
		})
	}
}

func TestObservances_TotalOverAllIndexes(t *testing.T) {
	tithiCategories := map[int][]Category{
		3: {CategoryChaturthi}, 18: {CategoryChaturthi},
		5: {CategoryShashti}, 20: {CategoryShashti},
		7: {CategoryAshtami}, 22: {CategoryAshtami},
		10: {CategoryEkadashi}, 25: {CategoryEkadashi},
		12: {CategoryPradosham}, 27: {CategoryPradosham},
		14: {CategoryPournami},
		28: {CategoryShivaratri},
		29: {CategoryAmavasya},
	}

	d := day(2025, time.May, 20)
	for tithi := 0; tithi < panchang.TithiCount; tithi++ {
		for nakshatra := 0; nakshatra < panchang.NakshatraCount; nakshatra++ {
			var got []Category
			for _, o := range Observances(d, tithi, nakshatra) {
				require.NotEmpty(t, o.Name)
				got = append(got, o.Category)
			}

			want := tithiCategories[tithi]
			if nakshatra == panchang.NakshatraKrittika {
				want = append(append([]Category{}, want...), CategoryKarthigai)
			}
			assert.Equal(t, want, got, "tithi %d nakshatra %d", tithi, nakshatra)
		}
	}
}

func TestShaniPradoshamOnlyOnSaturday(t *testing.T) {
	start := day(2025, time.January, 5) // Sunday
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		for _, tithi := range []int{12, 27} {
			obs := Observances(d, tithi, 0)
			require.Len(t, obs, 1)
			if d.Weekday() == time.Saturday {
				assert.Equal(t, "Shani Pradosham", obs[0].Name)
			} else {
				assert.NotEqual(t, "Shani Pradosham", obs[0].Name, d.Weekday().String())
			}
		}
	}
}

func TestEkadashiNamesCoverEveryMonth(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		first := ekadashiName(day(2025, m, 15))
		second := ekadashiName(day(2025, m, 16))
		assert.NotEqual(t, "Ekadashi", first, m.String())
		assert.NotEqual(t, first, second, m.String())
	}
}

func TestPournamiName(t *testing.T) {
	assert.Equal(t, "Thai Pusam", pournamiName(time.January))
	assert.Equal(t, "Pournami", pournamiName(time.June))
	assert.Equal(t, "Karthika Deepam", pournamiName(time.November))
}

func TestTamilMonth(t *testing.T) {
	// Fixed offset: Gregorian month m maps to index (m+8) mod 12.
	assert.Equal(t, "Aippasi", TamilMonth(day(2025, time.January, 1)))
	assert.Equal(t, "Karthigai", TamilMonth(day(2025, time.February, 1)))
	assert.Equal(t, "Margazhi", TamilMonth(day(2025, time.March, 1)))
	assert.Equal(t, "Thai", TamilMonth(day(2025, time.April, 30)))
	assert.Equal(t, "Purattasi", TamilMonth(day(2025, time.December, 31)))
}

func TestTimingsFor(t *testing.T) {
	mon := TimingsFor(time.Monday)
	assert.Equal(t, "7:30 AM - 9:00 AM", mon.RahuKalam)
	assert.Equal(t, "1:30 PM - 3:00 PM", mon.Gulikai)
	assert.Equal(t, "10:30 AM - 12:00 PM", mon.Yamagandam)
	assert.Equal(t, AbhijitMuhurtham, mon.AbhijitMuhurtham)

	sun := TimingsFor(time.Sunday)
	assert.Equal(t, "4:30 PM - 6:00 PM", sun.RahuKalam)

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		tm := TimingsFor(wd)
		assert.NotEmpty(t, tm.RahuKalam)
		assert.NotEmpty(t, tm.Gulikai)
		assert.NotEmpty(t, tm.Yamagandam)
	}
}

func TestApproxSunrise(t *testing.T) {
	d := day(2025, time.January, 11)
	assert.Equal(t, "05:52", ApproxSunrise(d, 9.1688).Format("15:04"))
	assert.Equal(t, "06:00", ApproxSunrise(d, 13.0).Format("15:04"))
	assert.Equal(t, "06:04", ApproxSunrise(d, 15.0).Format("15:04"))
}
