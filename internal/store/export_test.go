package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func newExportApp(t *testing.T, handler http.HandlerFunc) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewApp(Deps{
		Session:    staticSession{user: models.User{ID: "user-1"}},
		Clock:      clock.Fake(testNow),
		HTTPClient: srv.Client(),
		ExportURL:  srv.URL + constants.ExportPath,
	})
}

func TestDownloadICal(t *testing.T) {
	var got ExportRequest
	app := newExportApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != constants.ExportPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer token-user-1" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "text/calendar")
		w.Header().Set("Content-Disposition", "attachment; filename=habittracker-calendar.ics")
		w.Write([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))
	})

	dir := t.TempDir()
	res, err := app.Export.Download(context.Background(), constants.ExportICal, dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if got.UserID != "user-1" || got.Format != constants.ExportICal {
		t.Errorf("request body = %+v", got)
	}
	if res.Path != filepath.Join(dir, "habittracker-calendar.ics") {
		t.Errorf("path = %q", res.Path)
	}
	data, err := os.ReadFile(res.Path)
	if err != nil || string(data) != "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n" {
		t.Errorf("file = %q, %v", data, err)
	}
}

func TestDownloadGoogle(t *testing.T) {
	app := newExportApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))
	})

	dir := t.TempDir()
	res, err := app.Export.Download(context.Background(), constants.ExportGoogle, dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if res.ImportURL != constants.GoogleImportURL || res.Path != "" {
		t.Errorf("result = %+v", res)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Error("google export should not write a file")
	}
}

func TestDownloadErrors(t *testing.T) {
	app := newExportApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "calendar unavailable", http.StatusInternalServerError)
	})
	ctx := context.Background()

	if _, err := app.Export.Download(ctx, "outlook", t.TempDir()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("unknown format error = %v", err)
	}
	if _, err := app.Export.Download(ctx, constants.ExportICal, t.TempDir()); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if msg := app.Export.LastError(); msg != "Failed to download calendar: export endpoint returned 500: calendar unavailable" {
		t.Errorf("LastError() = %q", msg)
	}
}

func TestAttachmentName(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"attachment; filename=google-calendar.ics", "google-calendar.ics"},
		{`attachment; filename="my cal.ics"`, "my cal.ics"},
		{"attachment; filename=../../etc/passwd", "passwd"},
		{"", "calendar.ics"},
		{"attachment", "calendar.ics"},
	}
	for _, tt := range tests {
		if got := AttachmentName(tt.header); got != tt.want {
			t.Errorf("AttachmentName(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
