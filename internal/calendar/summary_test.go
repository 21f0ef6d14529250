package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	cal := Generate(testTemple, sankarankovil, 2025)
	s := Summarize(cal)

	assert.Equal(t, testTemple, s.Temple)
	assert.Equal(t, 2025, s.Year)
	assert.Equal(t, 365, s.TimingDays)
	assert.Equal(t, len(DefaultSpecialFestivals()), s.ByCategory[CategorySpecial])

	total := 0
	for c, n := range s.ByCategory {
		if c != CategorySpecial {
			assert.Equal(t, len(cal.Events[c]), n, string(c))
		}
		total += n
	}
	assert.Equal(t, total, s.TotalEvents)
	assert.Equal(t, cal.EventCount(), s.TotalEvents)
}

func TestMonth(t *testing.T) {
	cal := Generate(testTemple, sankarankovil, 2025)
	view := Month(cal, time.February)

	assert.Equal(t, "February", view.MonthName)
	require.NotEmpty(t, view.Events)
	for i, e := range view.Events {
		assert.Equal(t, "2025-02", e.Date[:7])
		if i > 0 {
			assert.LessOrEqual(t, view.Events[i-1].Date, e.Date)
		}
	}

	_, ok := findEvent(view.Events, "2025-02-26")
	assert.True(t, ok)

	require.Len(t, view.SpecialFestivals, 1)
	assert.Equal(t, "Maha Shivaratri", view.SpecialFestivals[0].Name)

	// Aadi Thapasu runs from July into August and shows in both.
	assert.Len(t, Month(cal, time.July).SpecialFestivals, 1)
	assert.Len(t, Month(cal, time.August).SpecialFestivals, 1)
	assert.Empty(t, Month(cal, time.March).SpecialFestivals)
}

func TestAllEvents(t *testing.T) {
	cal := Generate(testTemple, sankarankovil, 2025)
	all := cal.AllEvents()

	n := 0
	for _, c := range Categories() {
		n += len(cal.Events[c])
	}
	require.Len(t, all, n)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Date, all[i].Date)
	}
}

func TestSpecialFestival_DateRange(t *testing.T) {
	assert.Equal(t, "2025-10-25", SpecialFestival{Start: "2025-10-25"}.DateRange())
	assert.Equal(t, "2025-10-25", SpecialFestival{Start: "2025-10-25", End: "2025-10-25"}.DateRange())
	assert.Equal(t, "2025-09-21 to 2025-09-30", SpecialFestival{Start: "2025-09-21", End: "2025-09-30"}.DateRange())
}

func TestParseSpecialFestivals(t *testing.T) {
	data := []byte(`
festivals:
  - name: Navaratri
    start: "2025-09-21"
    end: "2025-09-30"
    description: Nine nights of Goddess worship
    type: Major Festival
  - name: Aippasi Thirukalyanam
    start: "2025-10-25"
    type: Annual Festival
`)

	festivals, err := ParseSpecialFestivals(data)
	require.NoError(t, err)
	require.Len(t, festivals, 2)
	assert.Equal(t, "Navaratri", festivals[0].Name)
	assert.Equal(t, "2025-09-30", festivals[0].End)
	assert.Empty(t, festivals[1].End)
}

func TestParseSpecialFestivals_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "festivals: [name: x"},
		{"missing name", "festivals:\n  - start: \"2025-01-01\"\n"},
		{"bad start", "festivals:\n  - name: X\n    start: tomorrow\n"},
		{"bad end", "festivals:\n  - name: X\n    start: \"2025-01-01\"\n    end: 2025/01/05\n"},
		{"end before start", "festivals:\n  - name: X\n    start: \"2025-01-05\"\n    end: \"2025-01-01\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpecialFestivals([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadSpecialFestivals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "festivals.yaml")
	require.NoError(t, os.WriteFile(path, []byte("festivals:\n  - name: Thai Theppam\n    start: \"2026-01-30\"\n"), 0o644))

	festivals, err := LoadSpecialFestivals(path)
	require.NoError(t, err)
	require.Len(t, festivals, 1)

	_, err = LoadSpecialFestivals(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultSpecialFestivals_IsCopy(t *testing.T) {
	a := DefaultSpecialFestivals()
	a[0].Name = "changed"
	assert.NotEqual(t, "changed", DefaultSpecialFestivals()[0].Name)
}

func TestLoadGenerator(t *testing.T) {
	g, err := LoadGenerator("")
	require.NoError(t, err)
	assert.Len(t, g.Generate(testTemple, sankarankovil, 2025).SpecialFestivals, len(DefaultSpecialFestivals()))

	path := filepath.Join(t.TempDir(), "festivals.yaml")
	require.NoError(t, os.WriteFile(path, []byte("festivals:\n  - name: Aadi Pooram\n    start: 2025-07-28\n"), 0o644))

	g, err = LoadGenerator(path)
	require.NoError(t, err)
	specials := g.Generate(testTemple, sankarankovil, 2025).SpecialFestivals
	require.Len(t, specials, 1)
	assert.Equal(t, "2025-07-28", specials[0].Start)

	_, err = LoadGenerator(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
