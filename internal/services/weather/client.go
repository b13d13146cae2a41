// Package weather fetches current conditions from the Open-Meteo forecast
// API.
package weather

import (
	"context"
	"fmt"
	"math"
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
)

const collaborator = "weather"

type Config struct {
	BaseURL  string
	CacheTTL time.Duration
}

type Client struct {
	config Config
	http   *commonhttp.Client
	cache  cache.Cache
	logger logger.Logger
}

type forecastResponse struct {
	Current struct {
		Temperature2m *float64 `json:"temperature_2m"`
	} `json:"current"`
	Hourly struct {
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

func New(cfg Config, httpClient *commonhttp.Client, c cache.Cache, log logger.Logger) *Client {
	if c == nil {
		c = cache.Nop{}
	}
	return &Client{
		config: cfg,
		http:   httpClient,
		cache:  c,
		logger: log.Named(collaborator),
	}
}

// Current returns the temperature now and the mean precipitation
// probability over today's hourly forecast. Errors wrap ErrWeatherUnavailable.
func (c *Client) Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	key := fmt.Sprintf("weather:%.3f,%.3f", lat, lon)

	var snapshot models.WeatherSnapshot
	if cache.GetJSON(ctx, c.cache, collaborator, key, &snapshot) {
		return snapshot, nil
	}

	query := url.Values{
		"latitude":      {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":     {strconv.FormatFloat(lon, 'f', -1, 64)},
		"current":       {"temperature_2m,precipitation"},
		"hourly":        {"precipitation_probability"},
		"timezone":      {"auto"},
		"forecast_days": {"1"},
	}

	start := time.Now()
	var resp forecastResponse
	err := c.http.GetJSON(ctx, strings.TrimRight(c.config.BaseURL, "/")+"/v1/forecast", query, &resp)
	metrics.CollaboratorDuration.WithLabelValues(collaborator).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CollaboratorCalls.WithLabelValues(collaborator, metrics.StatusError).Inc()
		c.logger.Error("Weather request failed", map[string]interface{}{
			"lat":   lat,
			"lon":   lon,
			"error": err.Error(),
		})
		return models.WeatherSnapshot{}, fmt.Errorf("%w: forecast (%f, %f): %w", errors.ErrWeatherUnavailable, lat, lon, err)
	}
	metrics.CollaboratorCalls.WithLabelValues(collaborator, metrics.StatusSuccess).Inc()

	snapshot = toSnapshot(resp)
	cache.SetJSON(ctx, c.cache, key, snapshot, c.config.CacheTTL)
	return snapshot, nil
}

func toSnapshot(resp forecastResponse) models.WeatherSnapshot {
	var snapshot models.WeatherSnapshot

	if t := resp.Current.Temperature2m; t != nil {
		rounded := math.Round(*t*10) / 10
		snapshot.TemperatureC = &rounded
	}

	var sum float64
	var n int
	for _, p := range resp.Hourly.PrecipitationProbability {
		if p == nil {
			continue
		}
		sum += *p
		n++
	}
	mean := 0
	if n > 0 {
		mean = int(math.Round(sum / float64(n)))
	}
	if mean < 0 {
		mean = 0
	}
	if mean > 100 {
		mean = 100
	}
	snapshot.PrecipitationProbabilityPct = &mean
	return snapshot
}
