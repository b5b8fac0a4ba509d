package transporthttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teresa-solution/tourist-safety-service/internal/fault"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the flat {"error": ...} body the client contract uses.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// clientMessage renders a domain error for the client. Location failures
// carry the guidance to reach emergency services directly instead of
// retrying silently.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, fault.ErrLocationPermission):
		return "Location permission denied. Please call emergency services directly."
	case errors.Is(err, fault.ErrLocationTimeout):
		return "Could not determine your location in time. Please call emergency services directly."
	case errors.Is(err, fault.ErrLocationUnavailable):
		return "Location unavailable. Please call emergency services directly."
	case errors.Is(err, fault.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, fault.ErrNotFound):
		return "Not found"
	case fault.IsPersistence(err):
		return "Internal storage failure"
	default:
		return err.Error()
	}
}

// lifecycleStatus maps lifecycle and lookup errors to proper status codes
// for the admin endpoints.
func lifecycleStatus(err error) int {
	switch {
	case errors.Is(err, fault.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, fault.ErrInvalidTransition), errors.Is(err, fault.ErrAlreadyResolved):
		return http.StatusConflict
	case fault.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
