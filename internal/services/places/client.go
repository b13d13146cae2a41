// Package places finds tourist attractions around a point with the
// Overpass API.
package places

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"tourist-guide/internal/common/cache"
	"tourist-guide/internal/common/errors"
	commonhttp "tourist-guide/internal/common/http"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/common/metrics"
	"tourist-guide/internal/models"
)

const (
	collaborator     = "places"
	defaultMaxPlaces = 5
)

type Config struct {
	BaseURL   string
	MaxPlaces int
	CacheTTL  time.Duration
}

type Client struct {
	config Config
	http   *commonhttp.Client
	cache  cache.Cache
	logger logger.Logger
}

type overpassResponse struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *center           `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// selectors are the OSM features queried, as element type and tag filter.
var selectors = []struct {
	element string
	filter  string
}{
	{"node", `["tourism"="attraction"]`},
	{"node", `["tourism"="museum"]`},
	{"node", `["tourism"="viewpoint"]`},
	{"node", `["tourism"="theme_park"]`},
	{"node", `["historic"="monument"]`},
	{"node", `["historic"="castle"]`},
	{"node", `["leisure"="park"]`},
	{"way", `["tourism"="attraction"]`},
	{"way", `["tourism"="museum"]`},
	{"way", `["leisure"="park"]`},
	{"way", `["historic"="monument"]`},
}

// nameTags are tried in order when picking a display name.
var nameTags = []string{"name:en", "name", "int_name", "official_name"}

func New(cfg Config, httpClient *commonhttp.Client, c cache.Cache, log logger.Logger) *Client {
	if cfg.MaxPlaces <= 0 {
		cfg.MaxPlaces = defaultMaxPlaces
	}
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

// Nearby returns up to MaxPlaces attractions within radiusMeters. An empty
// list is a valid answer. Errors wrap ErrPlacesUnavailable.
func (c *Client) Nearby(ctx context.Context, lat, lon float64, radiusMeters int) ([]models.Place, error) {
	key := fmt.Sprintf("places:%.3f,%.3f:%d", lat, lon, radiusMeters)

	var places []models.Place
	if cache.GetJSON(ctx, c.cache, collaborator, key, &places) {
		return places, nil
	}

	start := time.Now()
	var resp overpassResponse
	err := c.http.PostFormJSON(ctx, c.config.BaseURL, url.Values{"data": {BuildQuery(lat, lon, radiusMeters)}}, &resp)
	metrics.CollaboratorDuration.WithLabelValues(collaborator).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CollaboratorCalls.WithLabelValues(collaborator, metrics.StatusError).Inc()
		c.logger.Error("Overpass request failed", map[string]interface{}{
			"lat":   lat,
			"lon":   lon,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: overpass (%f, %f): %w", errors.ErrPlacesUnavailable, lat, lon, err)
	}
	metrics.CollaboratorCalls.WithLabelValues(collaborator, metrics.StatusSuccess).Inc()

	places = c.extract(resp.Elements)
	if len(places) == 0 {
		c.logger.Warn("No tourist attractions found", map[string]interface{}{"lat": lat, "lon": lon})
	}

	cache.SetJSON(ctx, c.cache, key, places, c.config.CacheTTL)
	return places, nil
}

// BuildQuery renders the Overpass QL query for the attraction selectors.
func BuildQuery(lat, lon float64, radiusMeters int) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, s := range selectors {
		fmt.Fprintf(&b, "  %s%s(around:%d,%f,%f);\n", s.element, s.filter, radiusMeters, lat, lon)
	}
	b.WriteString(");\nout tags center;")
	return b.String()
}

// extract keeps named, Latin-script, de-duplicated elements with a position,
// in response order.
func (c *Client) extract(elements []element) []models.Place {
	places := make([]models.Place, 0, c.config.MaxPlaces)
	seen := make(map[string]struct{})

	for _, el := range elements {
		name := englishName(el.Tags)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		if !isLatinText(name) {
			c.logger.Debug("Skipping non-Latin name", map[string]interface{}{"name": name})
			continue
		}

		lat, lon, ok := el.position()
		if !ok {
			continue
		}

		category, kind := classify(el.Tags)
		places = append(places, models.Place{
			Name: name,
			Lat:  lat,
			Lon:  lon,
			Type: category,
			Kind: kind,
		})
		seen[name] = struct{}{}

		if len(places) >= c.config.MaxPlaces {
			break
		}
	}
	return places
}

// position uses the node coordinates, or the center Overpass computes for
// ways.
func (e element) position() (float64, float64, bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lat, *e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

func englishName(tags map[string]string) string {
	for _, key := range nameTags {
		if v := strings.TrimSpace(tags[key]); v != "" {
			return v
		}
	}
	return ""
}

// isLatinText reports whether at least half of the letters are ASCII.
func isLatinText(s string) bool {
	var ascii, letters int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r < unicode.MaxASCII {
			ascii++
		}
	}
	return letters > 0 && ascii*2 >= letters
}

// classify maps OSM tags to the place category and raw feature value.
func classify(tags map[string]string) (string, string) {
	for _, category := range []string{models.PlaceTypeTourism, models.PlaceTypeHistoric, models.PlaceTypeLeisure} {
		if v := tags[category]; v != "" {
			return category, v
		}
	}
	return models.PlaceTypeAttraction, models.PlaceTypeAttraction
}
