package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/bnema/clipd/internal/adapter/http/validation"
	"github.com/bnema/clipd/internal/domain"
	"github.com/bnema/clipd/internal/infrastructure/logger"
)

// ClipService is the slice of the admission service the handlers need.
type ClipService interface {
	Submit(ctx context.Context, sourceURL, startSpec, endSpec string, cookie io.Reader) (*domain.Job, error)
	Status(ctx context.Context, id string) (*domain.Job, error)
	ArtifactPath(name string) string
}

type Handlers struct {
	clipSvc         ClipService
	maxCookieSizeKB int
}

func NewHandlers(clipSvc ClipService, maxCookieSizeKB int) *Handlers {
	return &Handlers{
		clipSvc:         clipSvc,
		maxCookieSizeKB: maxCookieSizeKB,
	}
}

type submitResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type statusResponse struct {
	Status   string `json:"status"`
	Download string `json:"download,omitempty"`
	Msg      string `json:"msg,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Download admits a clip request. Range and format errors reject the
// request synchronously; on success the job ID comes back immediately
// while the clip is produced in the background.
func (h *Handlers) Download() http.HandlerFunc {
	maxBody := int64(h.maxCookieSizeKB)*1024 + 64*1024

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)

		if err := r.ParseMultipartForm(maxBody); err != nil {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request too large"})
			return
		}

		sourceURL := r.FormValue("url")
		start := r.FormValue("start")
		end := r.FormValue("end")
		if sourceURL == "" || start == "" || end == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url, start and end are required"})
			return
		}

		var cookie io.Reader
		if file, _, err := r.FormFile("cookie"); err == nil {
			defer file.Close() //nolint:errcheck
			cookie = io.LimitReader(file, int64(h.maxCookieSizeKB)*1024)
		} else if !errors.Is(err, http.ErrMissingFile) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid cookie upload"})
			return
		}

		job, err := h.clipSvc.Submit(r.Context(), sourceURL, start, end, cookie)
		if err != nil {
			status, msg := admissionError(err)
			writeJSON(w, status, errorResponse{Error: msg})
			return
		}

		writeJSON(w, http.StatusOK, submitResponse{
			JobID:  job.ID,
			Status: string(domain.JobStatusProcessing),
		})
	}
}

// Status reports the job's lifecycle state. An unknown ID is reported as
// still processing: the store may simply not have seen the job yet.
func (h *Handlers) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		job, err := h.clipSvc.Status(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeJSON(w, http.StatusOK, statusResponse{Status: "processing"})
				return
			}
			logger.Error.Printf("status lookup for %s failed: %v", logger.SanitizeForLog(id), err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "status lookup failed"})
			return
		}

		switch job.Status {
		case domain.JobStatusDone:
			writeJSON(w, http.StatusOK, statusResponse{
				Status:   "finished",
				Download: fmt.Sprintf("/file/%s.%s", job.ID, job.OutputExt),
			})
		case domain.JobStatusError:
			writeJSON(w, http.StatusOK, statusResponse{Status: "error", Msg: job.ErrorMessage})
		default:
			writeJSON(w, http.StatusOK, statusResponse{Status: "processing"})
		}
	}
}

// File serves the produced artifact bytes.
func (h *Handlers) File() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if err := validation.ArtifactName(name); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid file name"})
			return
		}

		path := h.clipSvc.ArtifactPath(name)
		if _, err := os.Stat(path); err != nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "file not found or already cleaned up"})
			return
		}

		http.ServeFile(w, r, path)
	}
}

func (h *Handlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// admissionError maps validation failures to 400 and everything else to 500.
func admissionError(err error) (int, string) {
	for _, kind := range []error{
		domain.ErrInvalidTimeFormat,
		domain.ErrInvalidRange,
		domain.ErrClipTooLong,
		domain.ErrClipTooShort,
	} {
		if errors.Is(err, kind) {
			return http.StatusBadRequest, err.Error()
		}
	}
	return http.StatusInternalServerError, "failed to admit job"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
