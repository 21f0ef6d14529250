package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
)

func printSummary(w io.Writer, s calendar.Summary) {
	fmt.Fprintf(w, "\n%s - %d\n", s.Temple, s.Year)
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "Total events: %d\n\nBy category:\n", s.TotalEvents)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range append(calendar.Categories(), calendar.CategorySpecial) {
		fmt.Fprintf(tw, "  %s\t%3d\n", categoryTitle(c), s.ByCategory[c])
	}
	tw.Flush()
}

func printMonth(w io.Writer, v calendar.MonthView) {
	fmt.Fprintf(w, "\n%s %d\n", strings.ToUpper(v.MonthName), v.Year)
	fmt.Fprintln(w, strings.Repeat("-", 60))

	if len(v.Events) == 0 && len(v.SpecialFestivals) == 0 {
		fmt.Fprintln(w, "  No events")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range v.Events {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", e.Date, e.Day[:3], e.Name, e.Tithi)
	}
	tw.Flush()

	for _, f := range v.SpecialFestivals {
		fmt.Fprintf(w, "  * %s: %s\n", f.DateRange(), f.Name)
	}
}

// categoryTitle renders "special_festivals" as "Special Festivals".
func categoryTitle(c calendar.Category) string {
	words := strings.Split(string(c), "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
