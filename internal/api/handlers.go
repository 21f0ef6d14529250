package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/temple-calendar/internal/calendar"
	"github.com/zapponejosh/temple-calendar/internal/config"
	"github.com/zapponejosh/temple-calendar/internal/database"
	"github.com/zapponejosh/temple-calendar/internal/deity"
	"github.com/zapponejosh/temple-calendar/internal/export"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db        *database.DB
	generator *calendar.Generator
	cfg       *config.Config
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, generator *calendar.Generator, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:        db,
		generator: generator,
		cfg:       cfg,
		logger:    logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// =============================================================================
// Calendar computation
// =============================================================================

// GetPanchang handles GET /api/v1/panchang/{date}?lat=&lon=
func (h *Handlers) GetPanchang(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	date, err := calendar.ParseDateString(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}
	if err := calendar.ValidateYear(date.Year(), h.cfg.MinYear, h.cfg.MaxYear); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	_, loc, err := h.locationFromQuery(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	WriteSuccess(w, calendar.Day(date, loc))
}

// GetCalendar handles GET /api/v1/calendar/{year}?label=&lat=&lon=
func (h *Handlers) GetCalendar(w http.ResponseWriter, r *http.Request) {
	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, cal)
}

// GetSummary handles GET /api/v1/calendar/{year}/summary
func (h *Handlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, calendar.Summarize(cal))
}

// GetMonth handles GET /api/v1/calendar/{year}/month/{month}
func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	monthStr := chi.URLParam(r, "month")
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		WriteBadRequest(w, fmt.Sprintf("Invalid month: %s. Use 1-12", monthStr))
		return
	}

	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, calendar.Month(cal, time.Month(month)))
}

// ExportCalendar handles GET /api/v1/calendar/{year}/export.{format}
func (h *Handlers) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		WriteBadRequest(w, "Unsupported export format. Use ics, csv or json")
		return
	}

	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(cal, format)))
	if err := export.Write(w, format, cal); err != nil {
		h.logger.Error("failed to export calendar",
			slog.String("format", string(format)),
			slog.Int("year", cal.Year),
			slog.Any("error", err))
	}
}

// ClassifyDeity handles GET /api/v1/deity?name=
func (h *Handlers) ClassifyDeity(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		WriteBadRequest(w, "name parameter is required")
		return
	}

	profile, err := deity.Classify(name)
	if errors.Is(err, deity.ErrNoMatch) {
		WriteNotFound(w, fmt.Sprintf("No deity recognised in %q", name))
		return
	}
	WriteSuccess(w, profile)
}

// calendarFromRequest generates the calendar addressed by the {year} path
// parameter and the optional label/lat/lon query. It writes the error
// response and returns false when the request is invalid.
func (h *Handlers) calendarFromRequest(w http.ResponseWriter, r *http.Request) (*calendar.YearlyCalendar, bool) {
	year, err := h.parseYear(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return nil, false
	}

	label, loc, err := h.locationFromQuery(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return nil, false
	}

	return h.generator.Generate(label, loc, year), true
}

func (h *Handlers) parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year: %s", s)
	}
	if err := calendar.ValidateYear(year, h.cfg.MinYear, h.cfg.MaxYear); err != nil {
		return 0, err
	}
	return year, nil
}

// locationFromQuery reads label, lat and lon, falling back to the configured
// default temple. lat and lon must be given together.
func (h *Handlers) locationFromQuery(r *http.Request) (string, calendar.Location, error) {
	q := r.URL.Query()

	label := strings.TrimSpace(q.Get("label"))
	if label == "" {
		label = h.cfg.DefaultTemple
	}

	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" && lonStr == "" {
		return label, h.cfg.DefaultLocation(), nil
	}
	if latStr == "" || lonStr == "" {
		return "", calendar.Location{}, errors.New("lat and lon must be given together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return "", calendar.Location{}, fmt.Errorf("invalid lat: %s", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return "", calendar.Location{}, fmt.Errorf("invalid lon: %s", lonStr)
	}

	loc := calendar.Location{Latitude: lat, Longitude: lon}
	if err := calendar.ValidateLocation(loc); err != nil {
		return "", calendar.Location{}, err
	}
	return label, loc, nil
}

// =============================================================================
// Temples
// =============================================================================

// CreateTempleRequest is the body of POST /api/v1/temples.
type CreateTempleRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Deity     string  `json:"deity,omitempty"`
	District  string  `json:"district,omitempty"`
}

// ListTemples handles GET /api/v1/temples
func (h *Handlers) ListTemples(w http.ResponseWriter, r *http.Request) {
	temples, err := h.db.ListTemples(r.Context())
	if err != nil {
		h.logger.Error("failed to list temples", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve temples")
		return
	}
	WriteSuccess(w, temples)
}

// CreateTemple handles POST /api/v1/temples. When no deity is given it is
// classified from the name.
func (h *Handlers) CreateTemple(w http.ResponseWriter, r *http.Request) {
	var req CreateTempleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteBadRequest(w, "name is required")
		return
	}
	loc := calendar.Location{Latitude: req.Latitude, Longitude: req.Longitude}
	if err := calendar.ValidateLocation(loc); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	if req.Deity == "" {
		if p, err := deity.Classify(req.Name); err == nil {
			req.Deity = string(p.Deity)
		}
	} else if _, ok := deity.Lookup(deity.Deity(req.Deity)); !ok {
		WriteBadRequest(w, fmt.Sprintf("Unknown deity: %s", req.Deity))
		return
	}

	temple := &database.Temple{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Deity:     req.Deity,
		District:  req.District,
	}
	if err := h.db.CreateTemple(r.Context(), temple); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			WriteConflict(w, fmt.Sprintf("Temple %q already exists", req.Name))
			return
		}
		h.logger.Error("failed to create temple", slog.Any("error", err))
		WriteInternalError(w, "Failed to create temple")
		return
	}

	h.logger.Info("temple created", slog.String("id", temple.ID), slog.String("name", temple.Name))
	WriteCreated(w, temple)
}

// GetTemple handles GET /api/v1/temples/{id}
func (h *Handlers) GetTemple(w http.ResponseWriter, r *http.Request) {
	temple, ok := h.templeFromPath(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, temple)
}

// DeleteTemple handles DELETE /api/v1/temples/{id}
func (h *Handlers) DeleteTemple(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteTemple(r.Context(), id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Temple not found")
			return
		}
		h.logger.Error("failed to delete temple", slog.String("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to delete temple")
		return
	}

	WriteSuccess(w, map[string]string{"deleted": id})
}

// GetTempleStats handles GET /api/v1/temples/{id}/stats
func (h *Handlers) GetTempleStats(w http.ResponseWriter, r *http.Request) {
	temple, ok := h.templeFromPath(w, r)
	if !ok {
		return
	}

	stats, err := h.db.GetCalendarStats(r.Context(), temple.ID)
	if err != nil {
		h.logger.Error("failed to get calendar stats", slog.String("id", temple.ID), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve stats")
		return
	}
	WriteSuccess(w, stats)
}

// GenerateTempleCalendar handles POST /api/v1/temples/{id}/calendars/{year}.
// It computes the calendar at the temple's location and stores it,
// replacing any earlier calendar for that year.
func (h *Handlers) GenerateTempleCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := h.parseYear(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	temple, ok := h.templeFromPath(w, r)
	if !ok {
		return
	}

	cal := h.generator.Generate(temple.Name, temple.Location(), year)
	rec, err := h.db.SaveCalendar(r.Context(), temple.ID, cal)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Temple not found")
			return
		}
		h.logger.Error("failed to save calendar",
			slog.String("id", temple.ID),
			slog.Int("year", year),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to save calendar")
		return
	}

	h.logger.Info("calendar generated",
		slog.String("temple", temple.Name),
		slog.Int("year", year),
		slog.Int("events", rec.EventCount))

	WriteCreated(w, map[string]any{
		"calendar": rec,
		"summary":  calendar.Summarize(cal),
	})
}

// GetTempleCalendar handles GET /api/v1/temples/{id}/calendars/{year}
func (h *Handlers) GetTempleCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := h.parseYear(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	payload, err := h.db.GetCalendarPayload(r.Context(), id, year)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("No calendar stored for %d", year))
			return
		}
		h.logger.Error("failed to get calendar", slog.String("id", id), slog.Int("year", year), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve calendar")
		return
	}
	WriteSuccess(w, payload)
}

// GetTempleEvents handles GET /api/v1/temples/{id}/events?start=&end=&category=
func (h *Handlers) GetTempleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startStr, endStr := q.Get("start"), q.Get("end")
	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, err := calendar.ParseDateString(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return
	}
	end, err := calendar.ParseDateString(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr))
		return
	}
	if start.After(end) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	category := q.Get("category")
	if category != "" {
		if _, err := calendar.ParseCategory(category); err != nil {
			WriteBadRequest(w, err.Error())
			return
		}
	}

	temple, ok := h.templeFromPath(w, r)
	if !ok {
		return
	}

	events, err := h.db.GetEventsByRange(r.Context(), temple.ID, calendar.FormatDate(start), calendar.FormatDate(end), category)
	if err != nil {
		h.logger.Error("failed to get events", slog.String("id", temple.ID), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve events")
		return
	}
	WriteSuccess(w, events)
}

// templeFromPath loads the temple named by the {id} path parameter. It
// writes the error response and returns false when it cannot.
func (h *Handlers) templeFromPath(w http.ResponseWriter, r *http.Request) (*database.Temple, bool) {
	id := chi.URLParam(r, "id")
	temple, err := h.db.GetTemple(r.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Temple not found")
			return nil, false
		}
		h.logger.Error("failed to get temple", slog.String("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve temple")
		return nil, false
	}
	return temple, true
}
