// Command apitest runs a smoke suite against a running festival calendar API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080
//	go run ./cmd/apitest -url http://localhost:8080 -key $API_KEY -v
//
// Without -key the temple registry write tests are skipped.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type Event struct {
	Date     string `json:"date"`
	Day      string `json:"day"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

type DayResponse struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Lunar struct {
		TithiIndex int    `json:"tithi_index"`
		Tithi      string `json:"tithi"`
		Nakshatra  string `json:"nakshatra"`
	} `json:"lunar"`
	Events []Event `json:"events"`
}

type SummaryResponse struct {
	Temple      string         `json:"temple"`
	Year        int            `json:"year"`
	TotalEvents int            `json:"total_events"`
	ByCategory  map[string]int `json:"by_category"`
	TimingDays  int            `json:"timing_days"`
}

type MonthResponse struct {
	MonthName        string  `json:"month_name"`
	Events           []Event `json:"events"`
	SpecialFestivals []struct {
		Name string `json:"name"`
	} `json:"special_festivals"`
}

type DeityResponse struct {
	Deity string `json:"deity"`
}

type TempleResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Deity string `json:"deity"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	out          io.Writer
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, out io.Writer, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		out:     out,
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Temple Festival Calendar API Test Suite")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "Base URL: %s\n", tr.baseURL)

	tr.testHealth()
	tr.testPanchang()
	tr.testCalendar()
	tr.testExports()
	tr.testDeity()
	tr.testEdgeCases()
	if tr.apiKey != "" {
		tr.testTempleLifecycle()
	} else {
		tr.printSection("Temple Registry")
		fmt.Fprintln(tr.out, "  (skipped, no -key given)")
	}

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testPanchang() {
	tr.printSection("Daily Panchang")

	testCases := []struct {
		date      string
		tithi     int
		wantEvent string
	}{
		{"2025-02-26", 28, "Maha Shivaratri"},
		{"2025-01-11", 12, "Shani Pradosham"},
		{"2025-01-13", 14, "Thai Pusam"},
		{"2025-01-28", 29, "Amavasya"},
	}

	for _, tc := range testCases {
		var day DayResponse
		if err := tr.getData("/api/v1/panchang/"+tc.date, &day); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		if day.Lunar.TithiIndex != tc.tithi {
			tr.recordError(tc.date, fmt.Sprintf("Expected tithi %d, got %d", tc.tithi, day.Lunar.TithiIndex))
			continue
		}
		if !hasEvent(day.Events, tc.wantEvent) {
			tr.recordError(tc.date, fmt.Sprintf("Expected event '%s', got %v", tc.wantEvent, eventNames(day.Events)))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s (%s): %s, %s", tc.date, day.Day, day.Lunar.Tithi, tc.wantEvent))

		if tr.verbose {
			fmt.Fprintf(tr.out, "    Nakshatra: %s\n", day.Lunar.Nakshatra)
		}
	}
}

func (tr *TestRunner) testCalendar() {
	tr.printSection("Yearly Calendar")

	var summary SummaryResponse
	if err := tr.getData("/api/v1/calendar/2025/summary", &summary); err != nil {
		tr.recordError("Summary", err.Error())
	} else if summary.TimingDays != 365 {
		tr.recordError("Summary", fmt.Sprintf("Expected 365 timing days, got %d", summary.TimingDays))
	} else {
		tr.recordSuccess(fmt.Sprintf("Summary 2025: %d events for %s", summary.TotalEvents, summary.Temple))
		if tr.verbose {
			for c, n := range summary.ByCategory {
				fmt.Fprintf(tr.out, "    %-18s %3d\n", c, n)
			}
		}
	}

	var leap SummaryResponse
	if err := tr.getData("/api/v1/calendar/2024/summary", &leap); err != nil {
		tr.recordError("Leap year", err.Error())
	} else if leap.TimingDays != 366 {
		tr.recordError("Leap year", fmt.Sprintf("Expected 366 timing days, got %d", leap.TimingDays))
	} else {
		tr.recordSuccess("Leap year 2024 has 366 timing days")
	}

	var month MonthResponse
	if err := tr.getData("/api/v1/calendar/2025/month/2", &month); err != nil {
		tr.recordError("Month view", err.Error())
	} else if !hasEvent(month.Events, "Maha Shivaratri") {
		tr.recordError("Month view", "February 2025 has no Maha Shivaratri")
	} else {
		tr.recordSuccess(fmt.Sprintf("%s 2025: %d events, %d special festivals",
			month.MonthName, len(month.Events), len(month.SpecialFestivals)))
	}
}

func (tr *TestRunner) testExports() {
	tr.printSection("Exports")

	testCases := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"ics", "text/calendar", "BEGIN:VCALENDAR"},
		{"csv", "text/csv", "date,day,category"},
		{"json", "application/json", `"daily_timings"`},
	}

	for _, tc := range testCases {
		resp, err := tr.do(http.MethodGet, "/api/v1/calendar/2025/export."+tc.format, nil, "")
		if err != nil {
			tr.recordError(tc.format, err.Error())
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			tr.recordError(tc.format, err.Error())
			continue
		}

		switch {
		case resp.StatusCode != http.StatusOK:
			tr.recordError(tc.format, fmt.Sprintf("HTTP %d", resp.StatusCode))
		case !strings.HasPrefix(resp.Header.Get("Content-Type"), tc.contentType):
			tr.recordError(tc.format, fmt.Sprintf("Content-Type %s", resp.Header.Get("Content-Type")))
		case !bytes.Contains(body, []byte(tc.contains)):
			tr.recordError(tc.format, fmt.Sprintf("Body missing %q", tc.contains))
		default:
			tr.recordSuccess(fmt.Sprintf("export.%s: %d bytes", tc.format, len(body)))
		}
	}
}

func (tr *TestRunner) testDeity() {
	tr.printSection("Deity Classification")

	testCases := []struct {
		name  string
		deity string
	}{
		{"Sankarankovil Gomathi Ambal Temple", "amman"},
		{"Arulmigu Kapaleeswarar Temple", "shiva"},
		{"Sri Ranganathaswamy Temple", "vishnu"},
		{"Palani Murugan Temple", "murugan"},
		{"Uchi Pillayar Temple", "ganesha"},
	}

	for _, tc := range testCases {
		var p DeityResponse
		if err := tr.getData("/api/v1/deity?name="+queryEscape(tc.name), &p); err != nil {
			tr.recordError(tc.name, err.Error())
			continue
		}
		if p.Deity == tc.deity {
			tr.recordSuccess(fmt.Sprintf("%s: %s", tc.name, p.Deity))
		} else {
			tr.recordError(tc.name, fmt.Sprintf("Expected %s, got %s", tc.deity, p.Deity))
		}
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	testCases := []struct {
		path   string
		status int
		desc   string
	}{
		{"/api/v1/panchang/invalid", http.StatusBadRequest, "Invalid date format rejected"},
		{"/api/v1/calendar/abcd", http.StatusBadRequest, "Non-numeric year rejected"},
		{"/api/v1/calendar/3000", http.StatusBadRequest, "Out-of-range year rejected"},
		{"/api/v1/calendar/2025/month/13", http.StatusBadRequest, "Month 13 rejected"},
		{"/api/v1/calendar/2025/export.pdf", http.StatusBadRequest, "Unknown export format rejected"},
		{"/api/v1/calendar/2025?lat=95&lon=77", http.StatusBadRequest, "Invalid latitude rejected"},
		{"/api/v1/deity?name=Thiruvannamalai", http.StatusNotFound, "Unrecognised deity is 404"},
		{"/api/v1/temples/does-not-exist", http.StatusNotFound, "Unknown temple is 404"},
	}

	for _, tc := range testCases {
		tr.expectStatus(http.MethodGet, tc.path, nil, "", tc.status, tc.desc)
	}

	tr.expectStatus(http.MethodPost, "/api/v1/temples", map[string]any{"name": "x"}, "", http.StatusUnauthorized, "Unauthenticated write rejected")
}

func (tr *TestRunner) testTempleLifecycle() {
	tr.printSection("Temple Registry")

	name := fmt.Sprintf("Smoke Test Meenakshi Amman Temple %d", time.Now().UnixNano())
	resp, err := tr.do(http.MethodPost, "/api/v1/temples", map[string]any{
		"name":      name,
		"latitude":  9.9195,
		"longitude": 78.1193,
	}, tr.apiKey)
	if err != nil {
		tr.recordError("Create temple", err.Error())
		return
	}

	var temple TempleResponse
	if err := decodeData(resp, &temple); err != nil {
		tr.recordError("Create temple", err.Error())
		return
	}
	if temple.Deity != "amman" {
		tr.recordError("Create temple", fmt.Sprintf("Expected deity amman, got %q", temple.Deity))
	} else {
		tr.recordSuccess(fmt.Sprintf("Created temple %s", temple.ID))
	}

	tr.expectStatus(http.MethodPost, "/api/v1/temples/"+temple.ID+"/calendars/2025", nil, tr.apiKey, http.StatusCreated, "Calendar 2025 stored")

	var events []Event
	if err := tr.getData("/api/v1/temples/"+temple.ID+"/events?start=2025-02-01&end=2025-02-28&category=shivaratri", &events); err != nil {
		tr.recordError("Stored events", err.Error())
	} else if !hasEvent(events, "Maha Shivaratri") {
		tr.recordError("Stored events", fmt.Sprintf("Expected Maha Shivaratri, got %v", eventNames(events)))
	} else {
		tr.recordSuccess(fmt.Sprintf("Stored February shivaratri events: %d", len(events)))
	}

	tr.expectStatus(http.MethodGet, "/api/v1/temples/"+temple.ID+"/calendars/2025", nil, "", http.StatusOK, "Stored calendar retrieved")
	tr.expectStatus(http.MethodDelete, "/api/v1/temples/"+temple.ID, nil, tr.apiKey, http.StatusOK, "Temple deleted")
	tr.expectStatus(http.MethodGet, "/api/v1/temples/"+temple.ID, nil, "", http.StatusNotFound, "Deleted temple is gone")
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) do(method, path string, body any, apiKey string) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal error: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	return tr.client.Do(req)
}

func (tr *TestRunner) getData(path string, target any) error {
	resp, err := tr.do(http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return decodeData(resp, target)
}

func (tr *TestRunner) expectStatus(method, path string, body any, apiKey string, status int, desc string) {
	resp, err := tr.do(method, path, body, apiKey)
	if err != nil {
		tr.recordError(desc, err.Error())
		return
	}
	resp.Body.Close()

	if resp.StatusCode == status {
		tr.recordSuccess(desc)
	} else {
		tr.recordError(desc, fmt.Sprintf("Expected HTTP %d, got %d", status, resp.StatusCode))
	}
}

// decodeData unwraps the response envelope into target and closes the body.
func decodeData(resp *http.Response, target any) error {
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, errMsg)
	}
	return json.Unmarshal(apiResp.Data, target)
}

func hasEvent(events []Event, name string) bool {
	for _, e := range events {
		if e.Name == name {
			return true
		}
	}
	return false
}

func eventNames(events []Event) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	return names
}

func queryEscape(s string) string {
	return strings.ReplaceAll(s, " ", "+")
}

func (tr *TestRunner) printSection(name string) {
	fmt.Fprintln(tr.out)
	fmt.Fprintf(tr.out, "--- %s ---\n", name)
	fmt.Fprintln(tr.out)
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Fprintf(tr.out, "  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Fprintf(tr.out, "  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Fprintln(tr.out)
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Summary")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "  Passed: %d\n", tr.successCount)
	fmt.Fprintf(tr.out, "  Failed: %d\n", tr.errorCount)
	fmt.Fprintln(tr.out)

	if tr.errorCount > 0 {
		fmt.Fprintln(tr.out, "Failures:")
		for _, err := range tr.errors {
			fmt.Fprintf(tr.out, "  • %s\n", err)
		}
		fmt.Fprintln(tr.out)
		fmt.Fprintf(tr.out, "Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}
	fmt.Fprintln(tr.out, "All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for write tests")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, os.Stdout, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
