package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/temple-calendar/internal/api"
	"github.com/zapponejosh/temple-calendar/internal/calendar"
	"github.com/zapponejosh/temple-calendar/internal/config"
	"github.com/zapponejosh/temple-calendar/internal/database"
)

const testAPIKey = "smoke-key-0123456789"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(database.DefaultConfig(":memory:"), log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Migrate(context.Background())
	require.NoError(t, err)

	cfg := &config.Config{
		Env:              config.EnvDevelopment,
		APIKey:           testAPIKey,
		CORSOrigins:      []string{"*"},
		DefaultTemple:    config.DefaultTemple,
		DefaultLatitude:  config.DefaultLatitude,
		DefaultLongitude: config.DefaultLongitude,
		MinYear:          1900,
		MaxYear:          2100,
	}

	srv := httptest.NewServer(api.SetupRoutes(api.NewHandlers(db, calendar.NewGenerator(), cfg, log), cfg, log))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunner_AllPass(t *testing.T) {
	srv := newServer(t)

	var out bytes.Buffer
	tr := NewTestRunner(srv.URL+"/", testAPIKey, &out, true)
	tr.Run()

	assert.Zero(t, tr.errorCount, out.String())
	assert.Greater(t, tr.successCount, 20)
	assert.Contains(t, out.String(), "All tests passed!")
	assert.Contains(t, out.String(), "Created temple")
}

func TestRunner_SkipsWritesWithoutKey(t *testing.T) {
	srv := newServer(t)

	var out bytes.Buffer
	tr := NewTestRunner(srv.URL, "", &out, false)
	tr.Run()

	assert.Zero(t, tr.errorCount, out.String())
	assert.Contains(t, out.String(), "skipped, no -key given")
}

func TestRunner_RecordsFailures(t *testing.T) {
	var out bytes.Buffer
	tr := NewTestRunner("http://127.0.0.1:1", "", &out, false)
	tr.testHealth()
	tr.printSummary()

	assert.Equal(t, 1, tr.errorCount)
	assert.Contains(t, out.String(), "Tests completed with 1 failure(s)")
}
