package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Techmo404/SafeRoad-Backend/config"
)

const tomtomIncidentsBaseURL = "https://api.tomtom.com/traffic/services/5/incidentDetails"

// IncidentService fetches traffic incidents around a point from TomTom. The
// response is passed through untouched; incidents are informational only and
// never feed scoring or training.
type IncidentService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewIncidentService(cfg config.ProvidersConfig) *IncidentService {
	return &IncidentService{
		apiKey:     cfg.TomTomAPIKey,
		baseURL:    tomtomIncidentsBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetIncidents returns incident details in a 0.1 degree bounding box
// centered on the given point.
func (s *IncidentService) GetIncidents(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: TOMTOM_API_KEY not configured", ErrProviderUnavailable)
	}

	params := url.Values{}
	params.Set("bbox", fmt.Sprintf("%f,%f,%f,%f", lng-0.1, lat-0.1, lng+0.1, lat+0.1))
	params.Set("fields", "id,geometry,properties,type,severity")
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
		return nil, fmt.Errorf("%w: tomtom incidents returned %d", ErrProviderUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read incidents response: %v", ErrProviderUnavailable, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: incidents response is not valid JSON", ErrProviderUnavailable)
	}

	return json.RawMessage(body), nil
}
