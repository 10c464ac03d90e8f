package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/Techmo404/SafeRoad-Backend/config"
	"github.com/Techmo404/SafeRoad-Backend/models"
)

// ErrProviderUnavailable wraps any failure to fetch or decode an external
// provider response. Callers degrade to neutral scoring instead of failing.
var ErrProviderUnavailable = errors.New("provider unavailable")

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherService fetches current conditions from OpenWeather, with a short
// redis cache keyed by rounded coordinates.
type WeatherService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *CacheService
}

func NewWeatherService(cfg config.ProvidersConfig, cache *CacheService) *WeatherService {
	return &WeatherService{
		apiKey:     cfg.WeatherAPIKey,
		baseURL:    openWeatherBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
	}
}

func (s *WeatherService) GetWeather(ctx context.Context, lat, lng float64) (*models.WeatherReport, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: WEATHER_API_KEY not configured", ErrProviderUnavailable)
	}

	cacheKey := ProviderKey("weather", lat, lng)
	var cached models.WeatherReport
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached.Main != nil {
		return &cached, nil
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lng))
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")

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
		return nil, fmt.Errorf("%w: openweather returned %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var report models.WeatherReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("%w: decode weather response: %v", ErrProviderUnavailable, err)
	}

	if err := s.cache.Set(ctx, cacheKey, &report, WeatherCacheTTL); err != nil {
		log.Printf("weather cache set failed: %v", err)
	}

	return &report, nil
}
