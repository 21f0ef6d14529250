package calendar

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultSpecialFestivals is the curated list for Sankarankovil Gomathi Ambal
// Temple. Dates are maintained by hand each year.
var defaultSpecialFestivals = []SpecialFestival{
	{
		Name:        "Aadi Thapasu (10-day festival)",
		Start:       "2025-07-28",
		End:         "2025-08-08",
		Description: "Gomathi Amman's penance, main festival",
		Type:        "Major Annual Festival",
	},
	{
		Name:        "Panguni Brahmmotsavam",
		Start:       "2025-04-10",
		End:         "2025-04-20",
		Description: "10-day spring festival",
		Type:        "Major Annual Festival",
	},
	{
		Name:        "Aippasi Thirukalyanam",
		Start:       "2025-10-25",
		Description: "Divine wedding festival",
		Type:        "Annual Festival",
	},
	{
		Name:        "Thai Theppam (Float Festival)",
		Start:       "2025-01-25",
		Description: "Float festival in temple tank",
		Type:        "Annual Festival",
	},
	{
		Name:        "Maha Shivaratri",
		Start:       "2025-02-26",
		Description: "Great night of Shiva",
		Type:        "Major Festival",
	},
	{
		Name:        "Navaratri",
		Start:       "2025-09-21",
		End:         "2025-09-30",
		Description: "Nine nights of Goddess worship",
		Type:        "Major Festival",
	},
}

// DefaultSpecialFestivals returns a copy of the built-in curated list.
func DefaultSpecialFestivals() []SpecialFestival {
	out := make([]SpecialFestival, len(defaultSpecialFestivals))
	copy(out, defaultSpecialFestivals)
	return out
}

// specialFestivalFile is the on-disk YAML layout:
//
//	festivals:
//	  - name: Navaratri
//	    start: 2025-09-21
//	    end: 2025-09-30
//	    description: Nine nights of Goddess worship
//	    type: Major Festival
type specialFestivalFile struct {
	Festivals []SpecialFestival `yaml:"festivals"`
}

// LoadSpecialFestivals reads a curated festival list from a YAML file.
func LoadSpecialFestivals(path string) ([]SpecialFestival, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read special festivals: %w", err)
	}
	return ParseSpecialFestivals(data)
}

// ParseSpecialFestivals decodes and validates a YAML festival list.
func ParseSpecialFestivals(data []byte) ([]SpecialFestival, error) {
	var file specialFestivalFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse special festivals: %w", err)
	}

	var errs []error
	for i, f := range file.Festivals {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("festival %d: name is required", i))
		}
		start, err := ParseDateString(f.Start)
		if err != nil {
			errs = append(errs, fmt.Errorf("festival %d (%s): start: %w", i, f.Name, err))
			continue
		}
		if f.End == "" {
			continue
		}
		end, err := ParseDateString(f.End)
		if err != nil {
			errs = append(errs, fmt.Errorf("festival %d (%s): end: %w", i, f.Name, err))
			continue
		}
		if end.Before(start) {
			errs = append(errs, fmt.Errorf("festival %d (%s): end %s before start %s", i, f.Name, f.End, f.Start))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return file.Festivals, nil
}

// festivalsForYear keeps festivals that start or end in year.
func festivalsForYear(festivals []SpecialFestival, year int) []SpecialFestival {
	out := []SpecialFestival{}
	for _, f := range festivals {
		if inYear(f.Start, year) || inYear(f.End, year) {
			out = append(out, f)
		}
	}
	return out
}

func inYear(dateStr string, year int) bool {
	d, err := ParseDateString(dateStr)
	return err == nil && d.Year() == year
}

// LoadGenerator returns a Generator using the curated festivals in the YAML
// file at path, or the built-in list when path is empty.
func LoadGenerator(path string) (*Generator, error) {
	if path == "" {
		return NewGenerator(), nil
	}
	festivals, err := LoadSpecialFestivals(path)
	if err != nil {
		return nil, err
	}
	return NewGenerator(WithSpecialFestivals(festivals)), nil
}
