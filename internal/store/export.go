package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sallieha/HabitTrackerApp/internal/constants"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
)

const defaultExportFilename = "calendar.ics"

// ExportRequest is the body posted to the calendar export endpoint.
type ExportRequest struct {
	UserID string                 `json:"userId"`
	Format constants.ExportFormat `json:"format"`
}

// ExportResult says where the export went: a written .ics file, or the
// page to open for a Google Calendar import.
type ExportResult struct {
	Path      string
	ImportURL string
}

type ExportStore struct {
	state
	*env
	client *http.Client
	url    string
}

// Download asks the export endpoint for the user's calendar. An ical
// export is written into dir under the name the endpoint suggests.
func (s *ExportStore) Download(ctx context.Context, format constants.ExportFormat, dir string) (ExportResult, error) {
	s.beginFetch()
	res, err := s.download(ctx, format, dir)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return ExportResult{}, s.failLocked("download calendar", err, true)
	}
	s.status = StatusReady
	return res, nil
}

func (s *ExportStore) download(ctx context.Context, format constants.ExportFormat, dir string) (ExportResult, error) {
	if format != constants.ExportGoogle && format != constants.ExportICal {
		return ExportResult{}, fmt.Errorf("%w: unknown export format %q", apperrors.ErrInvalidInput, format)
	}
	sess, err := s.session.CurrentSession(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	if s.url == "" {
		return ExportResult{}, errors.New("no export URL configured")
	}

	body, err := json.Marshal(ExportRequest{UserID: sess.UserID, Format: format})
	if err != nil {
		return ExportResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return ExportResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := s.client.Do(req)
	if err != nil {
		return ExportResult{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ExportResult{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = "Failed to download calendar"
		}
		return ExportResult{}, fmt.Errorf("export endpoint returned %d: %s", resp.StatusCode, msg)
	}

	if format == constants.ExportGoogle {
		return ExportResult{ImportURL: constants.GoogleImportURL}, nil
	}

	path := filepath.Join(dir, AttachmentName(resp.Header.Get("Content-Disposition")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write calendar file: %w", err)
	}
	logger.Info("Calendar exported", "path", path)
	return ExportResult{Path: path}, nil
}

// AttachmentName extracts the filename from a Content-Disposition header,
// falling back to calendar.ics. Directory parts are stripped.
func AttachmentName(header string) string {
	name := ""
	if _, params, err := mime.ParseMediaType(header); err == nil {
		name = params["filename"]
	} else if _, after, ok := strings.Cut(header, "filename="); ok {
		name = strings.Trim(after, `"; `)
	}
	name = filepath.Base(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return defaultExportFilename
	}
	return name
}
