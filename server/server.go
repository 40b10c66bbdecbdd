// Package server exposes the tool surface over HTTP. Every tool is callable
// as POST /v1/tools/{service}/{method} with a JSON object body; the response
// is the method's output struct, or {"error": ...} with a mapped status.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/comfygraph/comfygraph/service/tool"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Server serves the tool surface.
type Server struct {
	addr       string
	dispatcher *tool.Dispatcher
	httpServer *http.Server
}

// New creates a server for the given dispatcher.
func New(addr string, dispatcher *tool.Dispatcher) *Server {
	s := &Server{addr: addr, dispatcher: dispatcher}
	router := mux.NewRouter()
	router.HandleFunc("/v1/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/v1/tools", s.handleListTools).Methods(http.MethodGet)
	router.HandleFunc("/v1/tools/{service}/{method}", s.handleDispatch).Methods(http.MethodPost)

	handler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(router)
	handler = handlers.LoggingHandler(os.Stdout, handler)
	handler = handlers.RecoveryHandler()(handler)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts serving and blocks until the server stops.
func (s *Server) ListenAndServe() error {
	slog.Info("listening", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"tools": s.dispatcher.Descriptors()})
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	service, method := vars["service"], vars["method"]

	args := map[string]interface{}{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
			slog.Error("Invalid JSON payload", "service", service, "method", method, "error", err)
			http.Error(w, errorToJSON(ErrInvalidJSON), http.StatusBadRequest)
			return
		}
	}

	output, err := s.dispatcher.Dispatch(r.Context(), service, method, args)
	if err != nil {
		slog.Error("Tool dispatch failed", "service", service, "method", method, "error", err)
		http.Error(w, errorToJSON(err), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal response", "error", err)
		http.Error(w, errorToJSON(err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
