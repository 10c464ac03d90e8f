package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Techmo404/SafeRoad-Backend/config"

	"github.com/redis/go-redis/v9"
)

// AlertsChannel carries published risk alerts to websocket subscribers.
const AlertsChannel = "saferoad:alerts"

// Provider cache TTLs. Weather moves slowly; traffic flow is volatile.
const (
	WeatherCacheTTL = 5 * time.Minute
	TrafficCacheTTL = 60 * time.Second
)

// CacheService wraps redis for provider-response caching and alert pub/sub.
// All operations degrade to no-ops when redis is unavailable.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(cfg config.RedisConfig) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Retry to cover slow container startup
	var lastErr error
	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client}, nil
		}
		log.Printf("Redis ping attempt %d/10 failed: %v", i+1, lastErr)
		time.Sleep(2 * time.Second)
	}

	return &CacheService{client: nil}, fmt.Errorf("redis ping failed after 10 attempts: %w", lastErr)
}

// ProviderKey builds a cache key for a provider response at rounded
// coordinates, so nearby requests within ~100m share an entry.
func ProviderKey(provider string, lat, lng float64) string {
	return fmt.Sprintf("%s:%.3f:%.3f", provider, lat, lng)
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if s == nil || s.client == nil {
		return redis.Nil
	}
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// PublishAlert pushes a risk alert onto the live alerts channel.
func (s *CacheService) PublishAlert(ctx context.Context, message interface{}) error {
	if s == nil || s.client == nil {
		return nil
	}
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, AlertsChannel, data).Err()
}

// SubscribeAlerts returns the pub/sub subscription for the alerts channel.
func (s *CacheService) SubscribeAlerts(ctx context.Context) *redis.PubSub {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Subscribe(ctx, AlertsChannel)
}

func (s *CacheService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
