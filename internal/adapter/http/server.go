package http

import (
	"net/http"

	"github.com/bnema/clipd/internal/adapter/http/middleware"
	"github.com/bnema/clipd/internal/service"
)

type Server struct {
	mux        *http.ServeMux
	handlers   *Handlers
	sseHandler *SSEHandler
}

func NewServer(clipSvc ClipService, eventBus *service.EventBus, maxCookieSizeKB int) *Server {
	mux := http.NewServeMux()
	handlers := NewHandlers(clipSvc, maxCookieSizeKB)
	sseHandler := NewSSEHandler(eventBus, clipSvc)

	s := &Server{
		mux:        mux,
		handlers:   handlers,
		sseHandler: sseHandler,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /download", s.handlers.Download())
	s.mux.HandleFunc("GET /status/{id}", s.handlers.Status())
	s.mux.HandleFunc("GET /file/{name}", s.handlers.File())
	s.mux.HandleFunc("GET /events/{id}", s.sseHandler.Events())
	s.mux.HandleFunc("GET /healthz", s.handlers.Health())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SecurityHeaders(s.mux).ServeHTTP(w, r)
}
