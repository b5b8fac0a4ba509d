package transporthttp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/tourist-safety-service/internal/location"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
	"github.com/teresa-solution/tourist-safety-service/internal/service"
)

type emergencyAlertRequest struct {
	LocationLat  *float64 `json:"location_lat"`
	LocationLng  *float64 `json:"location_lng"`
	LocationName string   `json:"location_name"`
	AlertType    string   `json:"alert_type"`
	Description  string   `json:"description"`
}

type notificationsSent struct {
	Police            bool `json:"police"`
	EmergencyContacts int  `json:"emergency_contacts"`
	LocationShared    bool `json:"location_shared"`
}

type emergencyAlertResponse struct {
	Success           bool              `json:"success"`
	AlertID           string            `json:"alert_id"`
	Message           string            `json:"message"`
	NotificationsSent notificationsSent `json:"notifications_sent"`
}

// sensorFor wraps client-asserted coordinates for the acquisition adapter.
// A client that could not obtain a position sends no coordinates, which
// surfaces as a permission refusal.
func sensorFor(lat, lng *float64, name string) location.Sensor {
	if lat == nil || lng == nil {
		return location.DeniedSensor{}
	}
	return location.StaticSensor{Coord: model.Coordinate{Lat: *lat, Lng: *lng, Name: name}}
}

func (s *Server) handleEmergencyAlert(w http.ResponseWriter, r *http.Request) {
	var req emergencyAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	alert, result, err := s.actions.TriggerPanic(r.Context(), principal(r),
		sensorFor(req.LocationLat, req.LocationLng, req.LocationName), req.AlertType, req.Description)
	if err != nil {
		log.Error().Err(err).Str("principal_id", principal(r)).Msg("Emergency alert failed")
		writeError(w, http.StatusBadRequest, clientMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, emergencyAlertResponse{
		Success: true,
		AlertID: alert.ID.String(),
		Message: "Emergency alert sent successfully",
		NotificationsSent: notificationsSent{
			Police:            result.PoliceNotified,
			EmergencyContacts: result.ContactsNotified,
			LocationShared:    true,
		},
	})
}

type incidentRequest struct {
	LocationLat  *float64 `json:"location_lat"`
	LocationLng  *float64 `json:"location_lng"`
	LocationName string   `json:"location_name"`
	IncidentType string   `json:"incident_type"`
	Description  string   `json:"description"`
	Severity     string   `json:"severity"`
}

func (s *Server) handleIncidentReport(w http.ResponseWriter, r *http.Request) {
	var req incidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	report, err := s.actions.ReportIncident(r.Context(), principal(r),
		sensorFor(req.LocationLat, req.LocationLng, req.LocationName),
		service.IncidentInput{
			IncidentType: req.IncidentType,
			Description:  req.Description,
			Severity:     req.Severity,
		})
	if err != nil {
		log.Error().Err(err).Str("principal_id", principal(r)).Msg("Incident report failed")
		writeError(w, http.StatusBadRequest, clientMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "report_id": report.ID.String()})
}

type checkinRequest struct {
	LocationLat  *float64 `json:"location_lat"`
	LocationLng  *float64 `json:"location_lng"`
	LocationName string   `json:"location_name"`
	Message      string   `json:"message"`
}

func (s *Server) handleCheckin(w http.ResponseWriter, r *http.Request) {
	var req checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Coordinate is optional for check-ins: absent coordinates mean no
	// sensor at all, not a denied one.
	var sensor location.Sensor
	if req.LocationLat != nil && req.LocationLng != nil {
		sensor = location.StaticSensor{Coord: model.Coordinate{
			Lat: *req.LocationLat, Lng: *req.LocationLng, Name: req.LocationName,
		}}
	}

	checkin, err := s.actions.CheckInSafe(r.Context(), principal(r), sensor, req.Message)
	if err != nil {
		log.Error().Err(err).Str("principal_id", principal(r)).Msg("Safety check-in failed")
		writeError(w, http.StatusBadRequest, clientMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "checkin_id": checkin.ID.String()})
}

func (s *Server) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	alertID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	alert, err := s.lifecycle.Acknowledge(r.Context(), alertID)
	if err != nil {
		log.Error().Err(err).Str("alert_id", alertID.String()).Msg("Acknowledge failed")
		writeError(w, lifecycleStatus(err), clientMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

type resolveRequest struct {
	ResolvedAt string `json:"resolved_at"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	alertID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	resolvedAt := time.Now()
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.ResolvedAt != "" {
		t, err := time.Parse(time.RFC3339, req.ResolvedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "resolved_at must be RFC3339")
			return
		}
		resolvedAt = t
	}

	alert, err := s.lifecycle.Resolve(r.Context(), alertID, resolvedAt)
	if err != nil {
		log.Error().Err(err).Str("alert_id", alertID.String()).Msg("Resolve failed")
		writeError(w, lifecycleStatus(err), clientMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := service.EventQuery{
		Kind:   model.EventKind(q.Get("kind")),
		Status: q.Get("status"),
	}

	if raw := q.Get("tourist_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid tourist_id")
			return
		}
		query.TouristID = &id
	}
	if raw := q.Get("severity"); raw != "" {
		sev := model.ParseSeverity(raw)
		if sev == "" {
			writeError(w, http.StatusBadRequest, "invalid severity")
			return
		}
		query.Severity = sev
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "from must be RFC3339")
			return
		}
		query.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "to must be RFC3339")
			return
		}
		query.To = &t
	}

	records, err := s.query.Events(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Msg("Event query failed")
		writeError(w, http.StatusInternalServerError, clientMessage(err))
		return
	}
	if records == nil {
		records = []service.EventRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": records})
}

func (s *Server) handleHelplines(w http.ResponseWriter, r *http.Request) {
	lines, err := s.query.Helplines(r.Context(), r.URL.Query().Get("category"), r.URL.Query().Get("region"))
	if err != nil {
		log.Error().Err(err).Msg("Helpline query failed")
		writeError(w, http.StatusInternalServerError, clientMessage(err))
		return
	}
	if lines == nil {
		lines = []model.Helpline{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"helplines": lines})
}

type recommendationsRequest struct {
	Location *struct {
		Lat  float64 `json:"lat"`
		Lng  float64 `json:"lng"`
		Name string  `json:"name"`
	} `json:"location"`
	Category string `json:"category"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Credential is optional here; a verified principal only enriches logs.
	if p := s.optionalPrincipal(r); p != "" {
		log.Debug().Str("principal_id", p).Msg("Recommendations requested")
	}

	var loc *model.Coordinate
	if req.Location != nil {
		loc = &model.Coordinate{Lat: req.Location.Lat, Lng: req.Location.Lng, Name: req.Location.Name}
	}

	rec, err := s.recommend.Recommend(r.Context(), loc, req.Category)
	if err != nil {
		log.Error().Err(err).Msg("Recommendations failed")
		writeError(w, http.StatusBadRequest, clientMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
