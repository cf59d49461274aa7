package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/emergency-microservice/internal/config"
	"github.com/emergency-microservice/internal/domain"
	"github.com/emergency-microservice/internal/domain/repository"
	"github.com/emergency-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"

	retryBaseDelay = 500 * time.Millisecond
)

type client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	searchRadius int
	maxRetries   int
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// geocodeResponse - ответ Geocoding API
type geocodeResponse struct {
	Status       string          `json:"status"`
	Results      []geocodeResult `json:"results"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

type geocodeResult struct {
	Geometry         domain.Geometry `json:"geometry"`
	FormattedAddress string          `json:"formatted_address,omitempty"`
}

// placesResponse - ответ Places Nearby Search API
type placesResponse struct {
	Status       string               `json:"status"`
	Results      []domain.PlaceResult `json:"results"`
	ErrorMessage string               `json:"error_message,omitempty"`
}

// directionsResponse - ответ Directions API
type directionsResponse struct {
	Status       string         `json:"status"`
	Routes       []domain.Route `json:"routes"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// NewGoogleMapsClient создает клиент Google Maps API с кешированием
// успешных ответов каждой операции под её собственным ключом.
func NewGoogleMapsClient(
	cfg *config.GoogleConfig,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) repository.MapsRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		searchRadius: cfg.SearchRadius,
		maxRetries:   cfg.MaxRetries,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Geocode преобразует адрес в координаты через Geocoding API
func (c *client) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	cacheKey := fmt.Sprintf("geocode:%s", address)

	var cached domain.Location
	if c.fromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	reqURL := fmt.Sprintf("%s/geocode/json?address=%s&key=%s",
		c.baseURL, url.QueryEscape(address), c.apiKey)

	var resp geocodeResponse
	if err := c.doJSON(ctx, reqURL, &resp); err != nil {
		c.logger.Error("Geocoding request failed", zap.String("address", address), zap.Error(err))
		return nil, errors.ErrProviderUnavailable
	}

	if resp.Status != statusOK || len(resp.Results) == 0 {
		c.logger.Error("Geocoding API returned non-OK status",
			zap.String("address", address),
			zap.String("status", resp.Status),
			zap.String("error_message", resp.ErrorMessage))
		return nil, errors.ErrProviderUnavailable
	}

	location := resp.Results[0].Geometry.Location
	c.toCache(ctx, cacheKey, location)

	c.logger.Debug("Address geocoded",
		zap.String("address", address),
		zap.Float64("lat", location.Lat),
		zap.Float64("lng", location.Lng))

	return &location, nil
}

// FindNearbyHospitals ищет больницы в радиусе вокруг точки.
// ZERO_RESULTS - не ошибка, возвращается пустой список.
func (c *client) FindNearbyHospitals(ctx context.Context, location domain.Location) ([]domain.PlaceResult, error) {
	cacheKey := fmt.Sprintf("hospitals:%.4f:%.4f", location.Lat, location.Lng)

	var cached []domain.PlaceResult
	if c.fromCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	reqURL := fmt.Sprintf("%s/place/nearbysearch/json?location=%f,%f&radius=%d&type=hospital&key=%s",
		c.baseURL, location.Lat, location.Lng, c.searchRadius, c.apiKey)

	var resp placesResponse
	if err := c.doJSON(ctx, reqURL, &resp); err != nil {
		c.logger.Error("Places request failed", zap.Error(err))
		return nil, errors.ErrProviderUnavailable
	}

	if resp.Status != statusOK && resp.Status != statusZeroResults {
		c.logger.Error("Places API returned non-OK status",
			zap.String("status", resp.Status),
			zap.String("error_message", resp.ErrorMessage))
		return nil, errors.ErrProviderUnavailable
	}

	results := resp.Results
	if results == nil {
		results = []domain.PlaceResult{}
	}
	c.toCache(ctx, cacheKey, results)

	c.logger.Debug("Nearby hospitals found",
		zap.Float64("lat", location.Lat),
		zap.Float64("lng", location.Lng),
		zap.Int("count", len(results)))

	return results, nil
}

// GetDirections строит маршрут от точки до места по его place_id
func (c *client) GetDirections(ctx context.Context, origin domain.Location, destinationID string) (*domain.Route, error) {
	cacheKey := fmt.Sprintf("directions:%.4f:%.4f:%s", origin.Lat, origin.Lng, destinationID)

	var cached domain.Route
	if c.fromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	reqURL := fmt.Sprintf("%s/directions/json?origin=%f,%f&destination=place_id:%s&key=%s",
		c.baseURL, origin.Lat, origin.Lng, url.QueryEscape(destinationID), c.apiKey)

	var resp directionsResponse
	if err := c.doJSON(ctx, reqURL, &resp); err != nil {
		c.logger.Error("Directions request failed", zap.String("destination_id", destinationID), zap.Error(err))
		return nil, errors.ErrProviderUnavailable
	}

	if resp.Status != statusOK || len(resp.Routes) == 0 {
		c.logger.Error("Directions API returned non-OK status",
			zap.String("destination_id", destinationID),
			zap.String("status", resp.Status),
			zap.String("error_message", resp.ErrorMessage))
		return nil, errors.ErrProviderUnavailable
	}

	route := resp.Routes[0]
	c.toCache(ctx, cacheKey, route)

	return &route, nil
}

// doJSON выполняет GET с ограниченным числом повторов и экспоненциальной
// задержкой. По умолчанию maxRetries=0 - поведение без повторов.
func (c *client) doJSON(ctx context.Context, reqURL string, out interface{}) error {
	var lastErr error

	for attempt := 0; ; attempt++ {
		lastErr = c.doOnce(ctx, reqURL, out)
		if lastErr == nil {
			return nil
		}

		if attempt >= c.maxRetries {
			return lastErr
		}

		delay := time.Duration(1<<attempt) * retryBaseDelay
		c.logger.Warn("Provider request failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(lastErr))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (c *client) doOnce(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("google maps API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// fromCache возвращает true при попадании. Ошибки кеша логируются и
// трактуются как промах - кеш никогда не валит запрос.
func (c *client) fromCache(ctx context.Context, key string, out interface{}) bool {
	data, err := c.cacheRepo.Get(ctx, key)
	if err != nil || data == nil {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

func (c *client) toCache(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Failed to marshal value for cache", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.cacheRepo.Set(ctx, key, data, c.cacheTTL); err != nil {
		c.logger.Warn("Failed to cache provider response", zap.String("key", key), zap.Error(err))
	}
}
