package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abhisek/interviewq/internal/ratelimit"
)

func generateRoute(router *mux.Router, s *Server) {
	router.HandleFunc("/api/generate", generate(s)).Methods(http.MethodPost)
}

func healthRoute(router *mux.Router, s *Server) {
	router.HandleFunc("/healthz", health(s)).Methods(http.MethodGet)
}

func generate(s *Server) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		clientID := ratelimit.ClientID(r.Header.Get("X-Forwarded-For"))
		res := s.ctrl.HandleJSON(r.Context(), clientID, r.Body)
		s.writeJSON(rw, r, res.Status, res.Body())
	}
}

func health(s *Server) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		s.writeJSON(rw, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) writeJSON(rw http.ResponseWriter, r *http.Request, status int, body any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(body); err != nil {
		s.logger.Warn("write response",
			"request_id", RequestIDFrom(r.Context()),
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	}
}
