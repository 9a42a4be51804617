package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aanand-mishra/student-directory/internal/config"
	"github.com/aanand-mishra/student-directory/internal/dashboard"
	"github.com/aanand-mishra/student-directory/internal/directory"
	"github.com/aanand-mishra/student-directory/internal/view"
)

func TestOpenStorageDrivers(t *testing.T) {
	dir := t.TempDir()
	for _, driver := range []string{config.DriverSQLite, config.DriverBolt, config.DriverMemory} {
		t.Run(driver, func(t *testing.T) {
			cfg := &config.Config{Storage: config.Storage{
				Driver: driver,
				Path:   filepath.Join(dir, driver+".db"),
				Key:    "students",
			}}
			backend, err := openStorage(cfg)
			if err != nil {
				t.Fatalf("open %s: %v", driver, err)
			}
			defer backend.Close()

			if err := backend.Save(context.Background(), nil); err != nil {
				t.Fatalf("save: %v", err)
			}
		})
	}

	if _, err := openStorage(&config.Config{Storage: config.Storage{Driver: "csv"}}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

// TestDirectorySurvivesRestart drives the full stack through HTTP, then
// reopens the same SQLite file the way a restarted process would.
func TestDirectorySurvivesRestart(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "students.db"),
		Key:    "students",
	}}
	quiet := directory.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	boot := func() (http.Handler, func()) {
		backend, err := openStorage(cfg)
		if err != nil {
			t.Fatalf("open storage: %v", err)
		}
		store, err := directory.New(context.Background(), backend, quiet)
		if err != nil {
			t.Fatalf("new store: %v", err)
		}
		return newRouter(dashboard.New(store, 5)), func() { backend.Close() }
	}

	router, stop := boot()
	for _, name := range []string{"Asha", "Bilal", "Chen"} {
		body := `{"name":"` + name + `","email":"` + strings.ToLower(name) + `@school.edu","phone":"1234567890","gender":"Female","department":"Civil Engineering"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(body)))
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: %d %s", name, rec.Code, rec.Body)
		}
	}
	before := fetchListing(t, router)
	stop()

	router, stop = boot()
	defer stop()
	after := fetchListing(t, router)

	if len(after.Records) != 3 {
		t.Fatalf("expected 3 records after restart, got %d", len(after.Records))
	}
	for i := range before.Records {
		if before.Records[i] != after.Records[i] {
			t.Fatalf("record %d differs: %+v vs %+v", i, before.Records[i], after.Records[i])
		}
	}
	if after.Records[0].Name != "Chen" {
		t.Fatalf("expected newest first, got %s", after.Records[0].Name)
	}
}

func fetchListing(t *testing.T, h http.Handler) view.Result {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/view", nil))
	var res view.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	return res
}

func TestSetupLogger(t *testing.T) {
	for _, env := range []string{"dev", "staging", "prod", "other"} {
		if setupLogger(env) == nil {
			t.Fatalf("nil logger for %s", env)
		}
	}
	if setupLogger("prod").Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("prod logger must not log debug")
	}
}
