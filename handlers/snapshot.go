package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
)

// HandleQuoteSnapshotDownload returns the active quote as a snapshot file.
func HandleQuoteSnapshotDownload(s *services.Session) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := s.Encode()
		if err != nil {
			return respondError(e, err)
		}

		filename := services.DefaultFileName(time.Now(), ".json")
		e.Response.Header().Set("Content-Type", "application/json")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(data)
		return err
	}
}

// HandleQuoteSnapshotUpload replaces the active quote with the snapshot in
// the request body. A malformed body leaves the quote as it was.
func HandleQuoteSnapshotUpload(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body, err := io.ReadAll(io.LimitReader(e.Request.Body, maxSnapshotBytes+1))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Could not read request body")
		}
		if len(body) > maxSnapshotBytes {
			return ErrorToast(e, http.StatusRequestEntityTooLarge, "Quote file is too large")
		}

		if err := s.LoadSnapshot(body); err != nil {
			return respondError(e, err)
		}
		SetToast(e, "success", "Quote loaded")
		return respondQuote(e, s, cfg, http.StatusOK)
	}
}

// HandleQuoteSave writes the active quote into the snapshot directory. The
// optional "name" must be a plain file name; it defaults to today's name.
func HandleQuoteSave(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			name = services.DefaultFileName(time.Now(), ".json")
		}
		path, err := snapshotPath(cfg.Storage.SnapshotDir, name)
		if err != nil {
			return respondError(e, err)
		}

		if err := os.MkdirAll(cfg.Storage.SnapshotDir, 0o755); err != nil {
			return respondError(e, &services.IOError{Op: "write", Path: cfg.Storage.SnapshotDir, Err: err})
		}
		if err := s.SaveFile(path); err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Saved "+filepath.Base(path))
		return e.JSON(http.StatusOK, map[string]string{"file": filepath.Base(path)})
	}
}

// HandleQuoteOpen loads a snapshot file from the snapshot directory.
func HandleQuoteOpen(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return respondError(e, &services.ValidationError{Fields: map[string]string{"name": "file name is required"}})
		}
		path, err := snapshotPath(cfg.Storage.SnapshotDir, name)
		if err != nil {
			return respondError(e, err)
		}

		if err := s.LoadFile(path); err != nil {
			return respondError(e, err)
		}
		SetToast(e, "success", "Opened "+filepath.Base(path))
		return respondQuote(e, s, cfg, http.StatusOK)
	}
}

// snapshotPath resolves name inside dir. Only bare file names are accepted
// and ".json" is appended when missing.
func snapshotPath(dir, name string) (string, error) {
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", &services.ValidationError{Fields: map[string]string{"name": "must be a file name without directories"}}
	}
	if !strings.EqualFold(filepath.Ext(name), ".json") {
		name += ".json"
	}
	return filepath.Join(dir, name), nil
}
