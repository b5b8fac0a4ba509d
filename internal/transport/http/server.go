// Package transporthttp exposes the safety pipeline over JSON HTTP. It is a
// thin layer: identity comes from the bearer credential, everything else is
// delegated to the service layer.
package transporthttp

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/tourist-safety-service/internal/auth"
	"github.com/teresa-solution/tourist-safety-service/internal/service"
)

type contextKey string

const principalKey contextKey = "principal"

// Server wires the HTTP routes to the service layer.
type Server struct {
	actions   *service.ActionService
	lifecycle *service.LifecycleService
	query     *service.QueryService
	recommend *service.RecommendationService
	verifier  auth.Verifier
}

func NewServer(actions *service.ActionService, lifecycle *service.LifecycleService, query *service.QueryService, recommend *service.RecommendationService, verifier auth.Verifier) *Server {
	return &Server{
		actions:   actions,
		lifecycle: lifecycle,
		query:     query,
		recommend: recommend,
		verifier:  verifier,
	}
}

// Router builds the API router.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(requestLogging)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.Handle("/alerts/emergency", s.requireAuth(http.HandlerFunc(s.handleEmergencyAlert))).Methods(http.MethodPost)
	api.Handle("/incidents", s.requireAuth(http.HandlerFunc(s.handleIncidentReport))).Methods(http.MethodPost)
	api.Handle("/checkins", s.requireAuth(http.HandlerFunc(s.handleCheckin))).Methods(http.MethodPost)

	api.HandleFunc("/alerts/{id}/acknowledge", s.handleAcknowledge).Methods(http.MethodPost)
	api.HandleFunc("/alerts/{id}/resolve", s.handleResolve).Methods(http.MethodPost)

	api.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	api.HandleFunc("/helplines", s.handleHelplines).Methods(http.MethodGet)
	api.HandleFunc("/recommendations", s.handleRecommendations).Methods(http.MethodPost)

	return router
}

// requireAuth resolves the bearer credential to a principal id and stores it
// on the request context. The tourist-facing endpoints answer 400 on any
// failure, matching the client contract.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.BearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusBadRequest, "Unauthorized")
			return
		}
		principal, err := s.verifier.Verify(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, principal)))
	})
}

// principal returns the verified principal id set by requireAuth.
func principal(r *http.Request) string {
	p, _ := r.Context().Value(principalKey).(string)
	return p
}

// optionalPrincipal resolves the credential when one is present; failures
// yield an anonymous caller rather than an error.
func (s *Server) optionalPrincipal(r *http.Request) string {
	token := auth.BearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return ""
	}
	p, err := s.verifier.Verify(r.Context(), token)
	if err != nil {
		return ""
	}
	return p
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	})
}
