// Command import loads a YAML temple registry into the SQLite database and
// optionally stores generated calendars for every temple.
//
// Usage:
//
//	go run ./cmd/import -file data/temples.yaml -db data/temples.db
//	go run ./cmd/import -file data/temples.yaml -db data/temples.db -years 2025,2026
//
// This tool:
// 1. Parses and validates the registry file
// 2. Creates/opens the SQLite database and runs migrations
// 3. Registers each temple, classifying its deity when none is given
// 4. Generates and saves calendars for the requested years
//
// The import is idempotent - temples already registered under the same name
// are skipped, and saved calendars are replaced.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
	"github.com/zapponejosh/temple-calendar/internal/database"
	"github.com/zapponejosh/temple-calendar/internal/deity"
	"github.com/zapponejosh/temple-calendar/internal/logger"
)

func main() {
	filePath := flag.String("file", "data/temples.yaml", "Path to temple registry YAML")
	dbPath := flag.String("db", "data/temples.db", "Path to SQLite database")
	years := flag.String("years", "", "Comma-separated years to generate for every temple")
	festivals := flag.String("festivals", "", "YAML file of curated special festivals")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(os.Stdout, level, "text")

	yearList, err := parseYears(*years)
	if err != nil {
		log.Error("invalid -years", slog.String("error", err.Error()))
		os.Exit(2)
	}

	if err := run(context.Background(), *filePath, *dbPath, *festivals, yearList, os.Stdout, log); err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("import complete")
}

// Registry is the on-disk temple list.
type Registry struct {
	Temples []RegistryEntry `yaml:"temples"`
}

// RegistryEntry is one temple in the registry file.
type RegistryEntry struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Deity     string  `yaml:"deity"`
	District  string  `yaml:"district"`
}

// ImportStats tracks import statistics.
type ImportStats struct {
	Temples      int
	Skipped      int
	Unclassified int
	Calendars    int
	Events       int
}

// parseRegistry decodes data and validates every entry, reporting all
// problems at once.
func parseRegistry(data []byte) ([]RegistryEntry, error) {
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	var errs []error
	seen := make(map[string]bool, len(reg.Temples))
	for i, t := range reg.Temples {
		name := strings.TrimSpace(t.Name)
		reg.Temples[i].Name = name

		if name == "" {
			errs = append(errs, fmt.Errorf("entry %d: name is required", i+1))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("entry %d: %q listed twice", i+1, name))
		}
		seen[name] = true

		if err := calendar.ValidateLocation(calendar.Location{Latitude: t.Latitude, Longitude: t.Longitude}); err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i+1, name, err))
		}
		if t.Deity != "" {
			if _, ok := deity.Lookup(deity.Deity(strings.ToLower(t.Deity))); !ok {
				errs = append(errs, fmt.Errorf("entry %d (%s): unknown deity %q", i+1, name, t.Deity))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return reg.Temples, nil
}

func parseYears(list string) ([]int, error) {
	var years []int
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
		years = append(years, y)
	}
	return years, nil
}

func run(ctx context.Context, filePath, dbPath, festivalsPath string, years []int, out io.Writer, log *slog.Logger) error {
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and validate the registry
	// =========================================================================
	log.Info("reading registry", slog.String("path", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}

	entries, err := parseRegistry(data)
	if err != nil {
		return err
	}
	log.Info("parsed registry", slog.Int("temples", len(entries)))

	gen, err := calendar.LoadGenerator(festivalsPath)
	if err != nil {
		return err
	}

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	log.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Register temples and store calendars
	// =========================================================================
	var stats ImportStats
	for _, entry := range entries {
		temple, err := registerTemple(ctx, db, entry, log, &stats)
		if err != nil {
			return err
		}
		if len(years) == 0 {
			continue
		}

		cals, err := gen.GenerateYears(ctx, temple.Name, temple.Location(), years)
		if err != nil {
			return fmt.Errorf("generate calendars for %s: %w", temple.Name, err)
		}
		for _, cal := range cals {
			rec, err := db.SaveCalendar(ctx, temple.ID, cal)
			if err != nil {
				return fmt.Errorf("save %d calendar for %s: %w", cal.Year, temple.Name, err)
			}
			stats.Calendars++
			stats.Events += rec.EventCount
		}
	}

	elapsed := time.Since(startTime)
	log.Info("import verified",
		slog.Int("temples", stats.Temples),
		slog.Int("calendars", stats.Calendars),
		slog.Duration("elapsed", elapsed),
	)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "=== Import Summary ===")
	fmt.Fprintf(out, "Temples imported:    %d\n", stats.Temples)
	fmt.Fprintf(out, "Already registered:  %d\n", stats.Skipped)
	fmt.Fprintf(out, "Deity unknown:       %d\n", stats.Unclassified)
	fmt.Fprintf(out, "Calendars saved:     %d\n", stats.Calendars)
	fmt.Fprintf(out, "Events stored:       %d\n", stats.Events)
	fmt.Fprintf(out, "Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// registerTemple creates the temple for entry, or returns the existing one
// when the name is already registered.
func registerTemple(ctx context.Context, db *database.DB, entry RegistryEntry, log *slog.Logger, stats *ImportStats) (*database.Temple, error) {
	temple := &database.Temple{
		Name:      entry.Name,
		Latitude:  entry.Latitude,
		Longitude: entry.Longitude,
		Deity:     strings.ToLower(entry.Deity),
		District:  entry.District,
	}

	if temple.Deity == "" {
		if p, err := deity.Classify(entry.Name); err == nil {
			temple.Deity = string(p.Deity)
		} else {
			stats.Unclassified++
			log.Debug("deity not recognised", slog.String("temple", entry.Name))
		}
	}

	err := db.CreateTemple(ctx, temple)
	if errors.Is(err, database.ErrDuplicate) {
		stats.Skipped++
		log.Debug("temple already registered", slog.String("temple", entry.Name))
		return db.GetTempleByName(ctx, entry.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("create temple %s: %w", entry.Name, err)
	}

	stats.Temples++
	log.Debug("temple registered",
		slog.String("temple", temple.Name),
		slog.String("id", temple.ID),
		slog.String("deity", temple.Deity),
	)
	return temple, nil
}
