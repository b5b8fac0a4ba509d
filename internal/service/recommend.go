package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/teresa-solution/tourist-safety-service/internal/fault"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
)

const maxRecommendedTips = 10

// ReferenceStore is the read surface for safety reference data.
type ReferenceStore interface {
	ListSafetyTips(ctx context.Context, category string, limit int) ([]model.SafetyTip, error)
	ListSafeZones(ctx context.Context) ([]model.SafeZone, error)
}

// AIRecommendations are the contextual guidance lists surfaced alongside
// tips. The scoring model producing them lives outside this service; these
// are the stored defaults it falls back to.
type AIRecommendations struct {
	ImmediateActions []string `json:"immediate_actions"`
	AreaSpecific     []string `json:"area_specific"`
	SafetyScoreTips  []string `json:"safety_score_tips"`
}

// Recommendations is the safety recommendations response payload.
type Recommendations struct {
	Tips              []model.SafetyTip `json:"tips"`
	NearbySafeZones   []model.SafeZone  `json:"nearby_safe_zones"`
	AIRecommendations AIRecommendations `json:"ai_recommendations"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

// RecommendationService assembles safety tips, nearby safe zones, and
// contextual guidance for a location.
type RecommendationService struct {
	store ReferenceStore
}

func NewRecommendationService(store ReferenceStore) *RecommendationService {
	return &RecommendationService{store: store}
}

// Recommend returns active tips (highest priority first), safe zones ordered
// by distance when a location is given, and the contextual guidance lists.
func (s *RecommendationService) Recommend(ctx context.Context, loc *model.Coordinate, category string) (*Recommendations, error) {
	tips, err := s.store.ListSafetyTips(ctx, category, maxRecommendedTips)
	if err != nil {
		return nil, fault.Persistence("tip listing", err)
	}

	var zones []model.SafeZone
	if loc != nil {
		zones, err = s.store.ListSafeZones(ctx)
		if err != nil {
			return nil, fault.Persistence("safe zone listing", err)
		}
		sort.SliceStable(zones, func(i, j int) bool {
			return haversineMeters(*loc, zones[i].Location) < haversineMeters(*loc, zones[j].Location)
		})
	}

	rec := &Recommendations{
		Tips:            tips,
		NearbySafeZones: zones,
		AIRecommendations: AIRecommendations{
			ImmediateActions: []string{
				"Keep your phone charged at all times",
				"Share your live location with emergency contacts",
				"Stay in well-lit, populated areas after dark",
			},
			AreaSpecific: areaGuidance(loc),
			SafetyScoreTips: []string{
				"Enable location tracking for better emergency response",
				"Add at least 2 emergency contacts",
				"Complete your trip itinerary for AI-powered route monitoring",
			},
		},
		GeneratedAt: time.Now().UTC(),
	}
	if rec.Tips == nil {
		rec.Tips = []model.SafetyTip{}
	}
	if rec.NearbySafeZones == nil {
		rec.NearbySafeZones = []model.SafeZone{}
	}
	return rec, nil
}

func areaGuidance(loc *model.Coordinate) []string {
	if loc == nil {
		return []string{}
	}
	area := loc.Name
	if area == "" {
		area = "your current area"
	}
	return []string{
		fmt.Sprintf("You are in %s", area),
		"Check local weather conditions regularly",
		"Be aware of cultural sensitivities in this region",
	}
}

const earthRadiusMeters = 6371000

// haversineMeters computes the great-circle distance between two points.
func haversineMeters(a, b model.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
