package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Techmo404/SafeRoad-Backend/config"
	"github.com/Techmo404/SafeRoad-Backend/models"
)

const tomtomFlowBaseURL = "https://api.tomtom.com/traffic/services/4/flowSegmentData/absolute/10/json"

// Expected speed limits (km/h) per road type, used both to sanity-clamp the
// reported speed and to approximate the jam factor when TomTom omits it.
var roadLimits = map[string]float64{
	"MOTORWAY":    120,
	"TRUNK":       100,
	"PRIMARY":     80,
	"SECONDARY":   60,
	"TERTIARY":    50,
	"RESIDENTIAL": 30,
	"SERVICE":     20,
	"LOCAL":       25,
	"UNKNOWN":     50,
}

const defaultRoadLimit = 50.0

// TrafficService fetches flow data from TomTom and normalizes it into a
// TrafficReport, with a short redis cache keyed by rounded coordinates.
type TrafficService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *CacheService
}

func NewTrafficService(cfg config.ProvidersConfig, cache *CacheService) *TrafficService {
	return &TrafficService{
		apiKey:     cfg.TomTomAPIKey,
		baseURL:    tomtomFlowBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
	}
}

type flowSegmentEnvelope struct {
	FlowSegmentData *flowSegment `json:"flowSegmentData"`
}

type flowSegment struct {
	CurrentSpeed  *float64 `json:"currentSpeed"`
	FreeFlowSpeed *float64 `json:"freeFlowSpeed"`
	RoadType      *string  `json:"roadType"`
	JamFactor     *float64 `json:"jamFactor"`
	Confidence    *float64 `json:"confidence"`
}

func (s *TrafficService) GetTraffic(ctx context.Context, lat, lng float64) (*models.TrafficReport, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: TOMTOM_API_KEY not configured", ErrProviderUnavailable)
	}

	cacheKey := ProviderKey("traffic", lat, lng)
	var cached models.TrafficReport
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached.Source != "" {
		return &cached, nil
	}

	params := url.Values{}
	params.Set("point", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("unit", "KMPH")
	params.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tomtom returned %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var envelope flowSegmentEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decode traffic response: %v", ErrProviderUnavailable, err)
	}
	if envelope.FlowSegmentData == nil {
		return nil, fmt.Errorf("%w: tomtom response missing flowSegmentData", ErrProviderUnavailable)
	}

	report := normalizeFlow(envelope.FlowSegmentData)

	if err := s.cache.Set(ctx, cacheKey, report, TrafficCacheTTL); err != nil {
		log.Printf("traffic cache set failed: %v", err)
	}

	return report, nil
}

// normalizeFlow converts a raw flow segment into a TrafficReport: clamps
// implausible speeds to the road-type limit and approximates the jam factor
// from speed/limit when the provider omits it.
func normalizeFlow(segment *flowSegment) *models.TrafficReport {
	roadType := "UNKNOWN"
	if segment.RoadType != nil && *segment.RoadType != "" {
		roadType = strings.ToUpper(*segment.RoadType)
	}
	limit := expectedLimit(roadType)

	speed := segment.CurrentSpeed
	if speed != nil && *speed > limit {
		clamped := limit
		speed = &clamped
	}

	jam := segment.JamFactor
	if jam == nil && speed != nil && limit > 0 {
		approx := math.Round((1-*speed/limit)*10*100) / 100
		jam = &approx
	}

	return &models.TrafficReport{
		Speed:      speed,
		FreeSpeed:  &limit,
		RoadType:   roadType,
		JamFactor:  jam,
		Confidence: segment.Confidence,
		Status:     flowStatus(jam),
		Source:     "tomtom",
	}
}

func expectedLimit(roadType string) float64 {
	if limit, ok := roadLimits[roadType]; ok {
		return limit
	}
	return defaultRoadLimit
}

func flowStatus(jam *float64) string {
	switch {
	case jam != nil && *jam > 7:
		return "heavy congestion"
	case jam != nil && *jam > 4:
		return "moderate traffic"
	default:
		return "free flow"
	}
}
