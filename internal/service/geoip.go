package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kebabkartan/backend/internal/types"
)

// Country-wide default view over Sweden. Geolocation only refines it; any
// lookup failure falls back here without surfacing an error.
const (
	DefaultLatitude  = 62.0
	DefaultLongitude = 15.0
	DefaultZoom      = 5
	CityZoom         = 11
)

// DefaultView returns the country-wide map viewport.
func DefaultView() types.GeoResponse {
	return types.GeoResponse{
		Latitude:  DefaultLatitude,
		Longitude: DefaultLongitude,
		Zoom:      DefaultZoom,
	}
}

// GeoIPService resolves a client IP to an approximate map viewport through
// an external provider, with responses cached in redis for a day.
type GeoIPService struct {
	apiURL string
	redis  *redis.Client
	client *http.Client
}

func NewGeoIPService(apiURL string, redisClient *redis.Client) *GeoIPService {
	return &GeoIPService{
		apiURL: apiURL,
		redis:  redisClient,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type geoProviderResponse struct {
	Status string  `json:"status"`
	City   string  `json:"city"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Lookup is best effort: provider or cache trouble yields the default view
// and a nil error.
func (s *GeoIPService) Lookup(ctx context.Context, ip string) types.GeoResponse {
	if s.apiURL == "" || ip == "" {
		return DefaultView()
	}

	cacheKey := "geoip:" + ip
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var resp types.GeoResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp
			}
		}
	}

	resp, err := s.fetch(ctx, ip)
	if err != nil {
		log.Printf("[GeoIPService] Lookup failed for %s: %v", ip, err)
		return DefaultView()
	}

	if s.redis != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, 24*time.Hour).Err(); err != nil {
				log.Printf("[GeoIPService] Failed to cache lookup for %s: %v", ip, err)
			}
		}
	}
	return resp
}

func (s *GeoIPService) fetch(ctx context.Context, ip string) (types.GeoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"/"+ip, nil)
	if err != nil {
		return types.GeoResponse{}, err
	}

	httpResp, err := s.client.Do(req)
	if err != nil {
		return types.GeoResponse{}, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		return types.GeoResponse{}, fmt.Errorf("provider returned status %d", httpResp.StatusCode)
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return types.GeoResponse{}, err
	}

	var provider geoProviderResponse
	if err := json.Unmarshal(body, &provider); err != nil {
		return types.GeoResponse{}, err
	}
	if provider.Status != "success" {
		return types.GeoResponse{}, fmt.Errorf("provider status %q", provider.Status)
	}

	return types.GeoResponse{
		Latitude:  provider.Lat,
		Longitude: provider.Lon,
		Zoom:      CityZoom,
		City:      provider.City,
	}, nil
}
