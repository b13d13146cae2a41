// Package geocoding resolves place names to coordinates with the Nominatim
// search API.
package geocoding

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tourist-guide/internal/common/cache"
	"tourist-guide/internal/common/errors"
	commonhttp "tourist-guide/internal/common/http"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/common/metrics"
	"tourist-guide/internal/models"

	"golang.org/x/time/rate"
)

const collaborator = "geocoding"

type Config struct {
	BaseURL string
	// MinInterval spaces consecutive upstream requests. Nominatim's usage
	// policy allows one request per second.
	MinInterval time.Duration
	CacheTTL    time.Duration
}

// Client is safe for concurrent use. The limiter is shared by every request
// made through the same client.
type Client struct {
	config  Config
	http    *commonhttp.Client
	cache   cache.Cache
	limiter *rate.Limiter
	logger  logger.Logger
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func New(cfg Config, httpClient *commonhttp.Client, c cache.Cache, log logger.Logger) *Client {
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &Client{
		config:  cfg,
		http:    httpClient,
		cache:   c,
		limiter: rate.NewLimiter(limit, 1),
		logger:  log.Named(collaborator),
	}
}

// Resolve returns the coordinates of the best Nominatim match. Errors wrap
// ErrPlaceNotFound when the search is empty and ErrGeocodingUnavailable for
// anything else.
func (c *Client) Resolve(ctx context.Context, placeName string) (models.Coordinates, error) {
	key := "geocode:" + strings.ToLower(strings.TrimSpace(placeName))

	var coords models.Coordinates
	if cache.GetJSON(ctx, c.cache, collaborator, key, &coords) {
		c.logger.Debug("Using cached coordinates", map[string]interface{}{"place": placeName})
		return coords, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: throttle %q: %w", errors.ErrGeocodingUnavailable, placeName, err)
	}

	query := url.Values{
		"q":              {placeName},
		"format":         {"json"},
		"limit":          {"1"},
		"addressdetails": {"0"},
	}

	start := time.Now()
	var results []searchResult
	err := c.http.GetJSON(ctx, strings.TrimRight(c.config.BaseURL, "/")+"/search", query, &results)
	metrics.CollaboratorDuration.WithLabelValues(collaborator).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CollaboratorCalls.WithLabelValues(collaborator, metrics.StatusError).Inc()
		c.logger.Error("Geocoding request failed", map[string]interface{}{
			"place": placeName,
			"error": err.Error(),
		})
		return models.Coordinates{}, fmt.Errorf("%w: geocode %q: %w", errors.ErrGeocodingUnavailable, placeName, err)
	}
	metrics.CollaboratorCalls.WithLabelValues(collaborator, metrics.StatusSuccess).Inc()

	if len(results) == 0 {
		c.logger.Info("No geocoding result", map[string]interface{}{"place": placeName})
		return models.Coordinates{}, fmt.Errorf("%w: %q", errors.ErrPlaceNotFound, placeName)
	}

	coords, err = parseCoordinates(results[0])
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: geocode %q: %w", errors.ErrGeocodingUnavailable, placeName, err)
	}

	cache.SetJSON(ctx, c.cache, key, coords, c.config.CacheTTL)
	c.logger.Info("Found coordinates", map[string]interface{}{
		"place": placeName,
		"match": results[0].DisplayName,
		"lat":   coords.Lat,
		"lon":   coords.Lon,
	})
	return coords, nil
}

func parseCoordinates(r searchResult) (models.Coordinates, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("invalid latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("invalid longitude %q: %w", r.Lon, err)
	}
	coords := models.Coordinates{Lat: lat, Lon: lon}
	if err := coords.Validate(); err != nil {
		return models.Coordinates{}, err
	}
	return coords, nil
}
