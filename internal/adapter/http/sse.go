package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/clipd/internal/domain"
	"github.com/bnema/clipd/internal/service"
)

// SSEHandler streams job status transitions so clients can avoid polling
// GET /status. The stream ends once a terminal event has been delivered.
type SSEHandler struct {
	eventBus *service.EventBus
	clipSvc  ClipService
}

func NewSSEHandler(eventBus *service.EventBus, clipSvc ClipService) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clipSvc:  clipSvc,
	}
}

type sseStatus struct {
	Status string `json:"status"`
	Msg    string `json:"msg,omitempty"`
}

// sseWrite writes an SSE event, handling multi-line data correctly.
func sseWrite(w http.ResponseWriter, eventName string, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", eventName)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func sendStatus(w http.ResponseWriter, status, msg string) {
	payload, _ := json.Marshal(sseStatus{Status: status, Msg: msg})
	sseWrite(w, "status", string(payload))
}

// sendKeepAlive writes an SSE comment to keep the connection active.
func sendKeepAlive(w http.ResponseWriter) {
	_, _ = fmt.Fprint(w, ": keep-alive\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandler) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			http.Error(w, "missing job ID", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		job, err := h.clipSvc.Status(r.Context(), id)
		if err != nil {
			// Unknown IDs look the same as jobs not yet visible.
			job = &domain.Job{ID: id, Status: domain.JobStatusProcessing}
		}

		sendStatus(w, string(job.Status), job.ErrorMessage)
		if job.IsTerminal() {
			return
		}

		ch := h.eventBus.Subscribe(id)
		defer h.eventBus.Unsubscribe(id, ch)

		ctx := r.Context()
		keepAlive := time.NewTicker(15 * time.Second)
		defer keepAlive.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-keepAlive.C:
				sendKeepAlive(w)
			case event, ok := <-ch:
				if !ok {
					return
				}
				sendStatus(w, event.Status, event.Message)
				if event.Status == string(domain.JobStatusDone) || event.Status == string(domain.JobStatusError) {
					return
				}
			}
		}
	}
}
