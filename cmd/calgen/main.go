// Command calgen computes temple festival calendars from the command line.
//
// Usage:
//
//	go run ./cmd/calgen -year 2025
//	go run ./cmd/calgen -years 2024,2025,2026 -format ics -out calendar_{year}.ics
//	go run ./cmd/calgen -temple "Arulmigu Kapaleeswarar Temple" -lat 13.0338 -lon 80.2696 -month 4
//	go run ./cmd/calgen -year 2025 -db data/temples.db
//
// The summary is printed to stdout, or to stderr when the calendar itself
// goes to stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
	"github.com/zapponejosh/temple-calendar/internal/config"
	"github.com/zapponejosh/temple-calendar/internal/database"
	"github.com/zapponejosh/temple-calendar/internal/deity"
	"github.com/zapponejosh/temple-calendar/internal/export"
	"github.com/zapponejosh/temple-calendar/internal/logger"
)

type options struct {
	temple    string
	lat, lon  float64
	years     []int
	out       string
	format    export.Format
	month     int
	dbPath    string
	festivals string
}

func main() {
	temple := flag.String("temple", config.DefaultTemple, "Temple name")
	lat := flag.Float64("lat", config.DefaultLatitude, "Latitude in degrees")
	lon := flag.Float64("lon", config.DefaultLongitude, "Longitude in degrees")
	year := flag.Int("year", time.Now().Year(), "Year to generate")
	years := flag.String("years", "", "Comma-separated years, overrides -year")
	out := flag.String("out", "", "Output file ({year} is replaced), - for stdout, empty for none")
	format := flag.String("format", "json", "Output format: json, ics or csv")
	month := flag.Int("month", 0, "Print the view of this month (1-12)")
	dbPath := flag.String("db", "", "Store calendars in this SQLite database")
	festivals := flag.String("festivals", "", "YAML file of curated special festivals")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(os.Stderr, level, "text")

	opts, err := parseOptions(*temple, *lat, *lon, *year, *years, *out, *format, *month, *dbPath, *festivals)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, log); err != nil {
		log.Error("calendar generation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func parseOptions(temple string, lat, lon float64, year int, years, out, format string, month int, dbPath, festivals string) (*options, error) {
	var errs []error

	opts := &options{
		temple:    strings.TrimSpace(temple),
		lat:       lat,
		lon:       lon,
		out:       out,
		month:     month,
		dbPath:    dbPath,
		festivals: festivals,
	}

	if opts.temple == "" {
		errs = append(errs, errors.New("-temple is required"))
	}
	if err := calendar.ValidateLocation(calendar.Location{Latitude: lat, Longitude: lon}); err != nil {
		errs = append(errs, err)
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		errs = append(errs, err)
	}
	opts.format = f

	if month < 0 || month > 12 {
		errs = append(errs, fmt.Errorf("-month must be 1-12, got %d", month))
	}

	opts.years, err = parseYears(year, years)
	if err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return opts, nil
}

// parseYears returns the -years list, or the single -year when it is empty.
func parseYears(year int, list string) ([]int, error) {
	if strings.TrimSpace(list) == "" {
		list = strconv.Itoa(year)
	}

	var years []int
	seen := map[int]bool{}
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", part)
		}
		if err := calendar.ValidateYear(y, 1900, 2100); err != nil {
			return nil, err
		}
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	if len(years) == 0 {
		return nil, errors.New("no years given")
	}
	return years, nil
}

func run(ctx context.Context, opts *options, log *slog.Logger) error {
	start := time.Now()
	loc := calendar.Location{Latitude: opts.lat, Longitude: opts.lon}

	gen, err := calendar.LoadGenerator(opts.festivals)
	if err != nil {
		return err
	}

	cals, err := gen.GenerateYears(ctx, opts.temple, loc, opts.years)
	if err != nil {
		return err
	}
	log.Debug("calendars generated",
		slog.Int("years", len(cals)),
		slog.Duration("duration", time.Since(start)),
	)

	report := io.Writer(os.Stdout)
	if opts.out == "-" {
		report = os.Stderr
	}

	for _, cal := range cals {
		if err := writeCalendar(opts, cal); err != nil {
			return err
		}
		printSummary(report, calendar.Summarize(cal))
		if opts.month > 0 {
			printMonth(report, calendar.Month(cal, time.Month(opts.month)))
		}
	}

	if opts.dbPath != "" {
		if err := store(ctx, opts, cals, log); err != nil {
			return err
		}
	}

	return nil
}

func writeCalendar(opts *options, cal *calendar.YearlyCalendar) error {
	switch opts.out {
	case "":
		return nil
	case "-":
		return export.Write(os.Stdout, opts.format, cal)
	}

	path := outputPath(opts.out, cal.Year, len(opts.years) > 1)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := export.Write(f, opts.format, cal); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Calendar %d exported to: %s\n", cal.Year, path)
	return nil
}

// outputPath substitutes {year} in pattern. Without the placeholder a
// multi-year run inserts _<year> before the extension so files don't clash.
func outputPath(pattern string, year int, multi bool) string {
	y := strconv.Itoa(year)
	if strings.Contains(pattern, "{year}") {
		return strings.ReplaceAll(pattern, "{year}", y)
	}
	if !multi {
		return pattern
	}
	ext := filepath.Ext(pattern)
	return strings.TrimSuffix(pattern, ext) + "_" + y + ext
}

// store saves the calendars under the temple named by -temple, registering
// it first if needed.
func store(ctx context.Context, opts *options, cals []*calendar.YearlyCalendar, log *slog.Logger) error {
	db, err := database.Open(database.DefaultConfig(opts.dbPath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	temple, err := db.GetTempleByName(ctx, opts.temple)
	if database.IsNotFound(err) {
		temple = &database.Temple{Name: opts.temple, Latitude: opts.lat, Longitude: opts.lon}
		if p, err := deity.Classify(opts.temple); err == nil {
			temple.Deity = string(p.Deity)
		}
		err = db.CreateTemple(ctx, temple)
	}
	if err != nil {
		return fmt.Errorf("resolve temple: %w", err)
	}

	for _, cal := range cals {
		rec, err := db.SaveCalendar(ctx, temple.ID, cal)
		if err != nil {
			return fmt.Errorf("save %d: %w", cal.Year, err)
		}
		log.Info("calendar stored",
			slog.String("temple_id", temple.ID),
			slog.Int("year", rec.Year),
			slog.Int("events", rec.EventCount),
		)
	}
	return nil
}
