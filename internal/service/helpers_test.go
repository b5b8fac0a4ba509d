package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teresa-solution/tourist-safety-service/internal/fault"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
	"github.com/teresa-solution/tourist-safety-service/internal/store"
)

// memStore is an in-memory stand-in for the repository, mirroring its
// constraint behavior: unique principal ids and unique (alert, channel)
// outcome pairs.
type memStore struct {
	mu        sync.Mutex
	profiles  map[uuid.UUID]*model.TouristProfile
	byPrin    map[string]uuid.UUID
	contacts  map[uuid.UUID][]model.EmergencyContact
	alerts    map[uuid.UUID]*model.PanicAlert
	incidents map[uuid.UUID]*model.IncidentReport
	checkins  map[uuid.UUID]*model.SafetyCheckin
	outcomes  map[uuid.UUID]map[string]model.NotificationOutcome
	helplines []model.Helpline
	tips      []model.SafetyTip
	zones     []model.SafeZone
}

func newMemStore() *memStore {
	return &memStore{
		profiles:  make(map[uuid.UUID]*model.TouristProfile),
		byPrin:    make(map[string]uuid.UUID),
		contacts:  make(map[uuid.UUID][]model.EmergencyContact),
		alerts:    make(map[uuid.UUID]*model.PanicAlert),
		incidents: make(map[uuid.UUID]*model.IncidentReport),
		checkins:  make(map[uuid.UUID]*model.SafetyCheckin),
		outcomes:  make(map[uuid.UUID]map[string]model.NotificationOutcome),
	}
}

func (m *memStore) CreateProfile(_ context.Context, p *model.TouristProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byPrin[p.PrincipalID]; exists {
		return fault.ErrConflict
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.profiles[p.ID] = &cp
	m.byPrin[p.PrincipalID] = p.ID
	return nil
}

func (m *memStore) GetProfileByPrincipal(_ context.Context, principalID string) (*model.TouristProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byPrin[principalID]
	if !ok {
		return nil, nil
	}
	cp := *m.profiles[id]
	return &cp, nil
}

func (m *memStore) GetProfileByID(_ context.Context, id uuid.UUID) (*model.TouristProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) ListEmergencyContacts(_ context.Context, touristID uuid.UUID) ([]model.EmergencyContact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.EmergencyContact(nil), m.contacts[touristID]...), nil
}

func (m *memStore) addContact(touristID uuid.UUID, name, phone string, primary bool) model.EmergencyContact {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := model.EmergencyContact{
		ID:        uuid.New(),
		TouristID: touristID,
		Name:      name,
		Phone:     phone,
		IsPrimary: primary,
		CreatedAt: time.Now(),
	}
	// Primary first, stored order after, as the repository query orders.
	if primary {
		m.contacts[touristID] = append([]model.EmergencyContact{c}, m.contacts[touristID]...)
	} else {
		m.contacts[touristID] = append(m.contacts[touristID], c)
	}
	return c
}

func (m *memStore) CreateAlert(_ context.Context, a *model.PanicAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.New()
	a.Status = model.AlertActive
	a.CreatedAt = time.Now()
	cp := *a
	m.alerts[a.ID] = &cp
	return nil
}

func (m *memStore) GetAlertByID(_ context.Context, id uuid.UUID) (*model.PanicAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alerts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) AcknowledgeAlert(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alerts[id]
	if !ok || a.Status != model.AlertActive {
		return 0, nil
	}
	a.Status = model.AlertAcknowledged
	return 1, nil
}

func (m *memStore) ResolveAlert(_ context.Context, id uuid.UUID, resolvedAt time.Time, responseTime time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alerts[id]
	if !ok || a.Status == model.AlertResolved {
		return 0, nil
	}
	a.Status = model.AlertResolved
	a.ResolvedAt = &resolvedAt
	a.ResponseTime = responseTime
	return 1, nil
}

func (m *memStore) CreateIncident(_ context.Context, inc *model.IncidentReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inc.ID = uuid.New()
	inc.Status = model.IncidentReported
	inc.CreatedAt = time.Now()
	inc.UpdatedAt = inc.CreatedAt
	cp := *inc
	m.incidents[inc.ID] = &cp
	return nil
}

func (m *memStore) CreateCheckin(_ context.Context, c *model.SafetyCheckin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.New()
	c.Status = model.CheckinSafe
	c.CreatedAt = time.Now()
	cp := *c
	m.checkins[c.ID] = &cp
	return nil
}

func (m *memStore) ExistingOutcomes(_ context.Context, alertID uuid.UUID) (map[string]model.NotificationOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]model.NotificationOutcome, len(m.outcomes[alertID]))
	for k, v := range m.outcomes[alertID] {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) InsertOutcome(_ context.Context, o *model.NotificationOutcome) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.CreatedAt = time.Now()
	if m.outcomes[o.AlertID] == nil {
		m.outcomes[o.AlertID] = make(map[string]model.NotificationOutcome)
	}
	if _, exists := m.outcomes[o.AlertID][o.ChannelID]; exists {
		return false, nil
	}
	m.outcomes[o.AlertID][o.ChannelID] = *o
	return true, nil
}

func matchesFilter(touristID uuid.UUID, status string, createdAt time.Time, f store.EventFilter) bool {
	if f.TouristID != nil && *f.TouristID != touristID {
		return false
	}
	if f.Status != "" && f.Status != status {
		return false
	}
	if f.From != nil && createdAt.Before(*f.From) {
		return false
	}
	if f.To != nil && createdAt.After(*f.To) {
		return false
	}
	return true
}

func (m *memStore) ListAlerts(_ context.Context, f store.EventFilter) ([]model.PanicAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PanicAlert
	for _, a := range m.alerts {
		if matchesFilter(a.TouristID, string(a.Status), a.CreatedAt, f) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memStore) ListIncidents(_ context.Context, f store.EventFilter) ([]model.IncidentReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.IncidentReport
	for _, inc := range m.incidents {
		if f.Severity != "" && inc.Severity != f.Severity {
			continue
		}
		if matchesFilter(inc.TouristID, inc.Status, inc.CreatedAt, f) {
			out = append(out, *inc)
		}
	}
	return out, nil
}

func (m *memStore) ListCheckins(_ context.Context, f store.EventFilter) ([]model.SafetyCheckin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SafetyCheckin
	for _, c := range m.checkins {
		if matchesFilter(c.TouristID, c.Status, c.CreatedAt, f) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStore) ListHelplines(_ context.Context, category, region string) ([]model.Helpline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Helpline
	for _, h := range m.helplines {
		if category != "" && h.Category != category {
			continue
		}
		if region != "" && h.Region != region {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (m *memStore) ListSafetyTips(_ context.Context, category string, limit int) ([]model.SafetyTip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SafetyTip
	for _, t := range m.tips {
		if category != "" && t.Category != category {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) ListSafeZones(_ context.Context) ([]model.SafeZone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.SafeZone(nil), m.zones...), nil
}

// seedProfile inserts a profile directly and returns it.
func (m *memStore) seedProfile(principalID string) *model.TouristProfile {
	p := &model.TouristProfile{
		PrincipalID: principalID,
		FullName:    "Asha Verma",
		Country:     "India",
		Phone:       "+911234567890",
		SafetyScore: model.DefaultSafetyScore,
	}
	_ = m.CreateProfile(context.Background(), p)
	return p
}
