package deity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Deity
	}{
		{"Arulmigu Subramanya Swamy Temple", Murugan},
		{"Swaminathaswamy Temple", Murugan},
		{"Sankarankovil Gomathi Ambal Temple", Amman},
		{"Meenakshi Amman Temple", Amman},
		{"Samayapuram Mariamman", Amman},
		{"Kapaleeswarar Temple", Shiva},
		{"Brihadeeswarar Temple", Shiva},
		{"Arulmigu Ramanathaswamy Temple", Shiva},
		{"Sri Ranganathaswamy Temple", Vishnu},
		{"Parthasarathy Perumal Kovil", Vishnu},
		{"Uchi Pillayar Kovil", Ganesha},
		{"SRI VINAYAGAR", Ganesha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Classify(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Deity)
		})
	}
}

func TestClassify_NoMatch(t *testing.T) {
	for _, name := range []string{"", "Sri Temple", "Thiruvannamalai"} {
		_, err := Classify(name)
		assert.ErrorIs(t, err, ErrNoMatch, name)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"sankarankovil", "gomathi", "ambal"}, Tokenize("Sankarankovil Gomathi-Ambal Temple"))
	assert.Equal(t, []string{"pillayar"}, Tokenize("Sri. Pillayar  Kovil"))
	assert.Empty(t, Tokenize("Arulmigu Temple"))
}

func TestLookup(t *testing.T) {
	p, ok := Lookup(Murugan)
	require.True(t, ok)
	require.NotNil(t, p.SpecialWeekday)
	assert.Equal(t, time.Tuesday, *p.SpecialWeekday)

	g, ok := Lookup(Ganesha)
	require.True(t, ok)
	assert.Nil(t, g.SpecialWeekday)

	_, ok = Lookup(Deity("ayyanar"))
	assert.False(t, ok)

	assert.Len(t, Profiles(), 5)
}

func TestCelebrates(t *testing.T) {
	shiva, _ := Lookup(Shiva)
	assert.True(t, shiva.Celebrates(calendar.CategoryPradosham))
	assert.True(t, shiva.Celebrates(calendar.CategoryShivaratri))
	assert.False(t, shiva.Celebrates(calendar.CategoryEkadashi))

	vishnu, _ := Lookup(Vishnu)
	assert.True(t, vishnu.Celebrates(calendar.CategoryEkadashi))
}

func TestHighlight(t *testing.T) {
	cal := calendar.Generate("Sankarankovil Gomathi Ambal Temple", calendar.Location{Latitude: 9.1688, Longitude: 77.4538}, 2025)
	amman, _ := Lookup(Amman)

	events := amman.Highlight(cal)
	assert.Len(t, events, len(cal.Events[calendar.CategoryPournami])+len(cal.Events[calendar.CategoryAshtami]))
	for i, e := range events {
		assert.True(t, amman.Celebrates(e.Category), e.Category)
		if i > 0 {
			assert.LessOrEqual(t, events[i-1].Date, e.Date)
		}
	}
}
