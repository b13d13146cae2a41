// Package orchestrator answers a parsed query: it geocodes the location,
// fans out to the weather and places collaborators according to intent and
// composes a single narrative response.
package orchestrator

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"tourist-guide/internal/common/errors"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/common/metrics"
	"tourist-guide/internal/models"
	"tourist-guide/internal/parser"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ==========================
// Collaborator contracts
// ==========================

// Geocoder fails with errors wrapping ErrPlaceNotFound or
// ErrGeocodingUnavailable.
type Geocoder interface {
	Resolve(ctx context.Context, placeName string) (models.Coordinates, error)
}

// WeatherProvider fails with errors wrapping ErrWeatherUnavailable.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error)
}

// PlacesProvider fails with errors wrapping ErrPlacesUnavailable.
type PlacesProvider interface {
	Nearby(ctx context.Context, lat, lon float64, radiusMeters int) ([]models.Place, error)
}

// QueryParser turns raw text into a ParsedQuery.
type QueryParser interface {
	Parse(text string) parser.ParsedQuery
}

type Dependencies struct {
	Parser   QueryParser
	Geocoder Geocoder
	Weather  WeatherProvider
	Places   PlacesProvider
}

type Config struct {
	PlacesRadius        int
	MaxSuggestions      int
	CollaboratorTimeout time.Duration
}

// ==========================
// Orchestrator
// ==========================

const (
	noLocationMessage = "I couldn't identify a location in your query. Please mention a city or place you'd like to know about. " +
		"For example: 'What's the weather in Paris?' or 'Places to visit in Tokyo'"

	outcomeSuccess = "success"
	outcomePartial = "partial"
)

// Orchestrator holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	config   Config
	parser   QueryParser
	geocoder Geocoder
	weather  WeatherProvider
	places   PlacesProvider
	logger   logger.Logger
}

func New(cfg Config, deps Dependencies, log logger.Logger) *Orchestrator {
	if cfg.PlacesRadius <= 0 {
		cfg.PlacesRadius = 10000
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = 3
	}
	if cfg.CollaboratorTimeout <= 0 {
		cfg.CollaboratorTimeout = 15 * time.Second
	}
	return &Orchestrator{
		config:   cfg,
		parser:   deps.Parser,
		geocoder: deps.Geocoder,
		weather:  deps.Weather,
		places:   deps.Places,
		logger:   log.Named("orchestrator"),
	}
}

// Answer parses text and processes the result.
func (o *Orchestrator) Answer(ctx context.Context, text string) (*models.ComposedResponse, error) {
	if o.parser == nil {
		return nil, errors.NewInternalError(stderrors.New("orchestrator has no parser"))
	}
	return o.Process(ctx, o.parser.Parse(text))
}

// Process runs the state machine for one parsed query. The response is never
// nil. A non-nil error is always a *errors.StandardError and the response
// then carries Success=false with the same code and message. Partial
// sub-lookup failures are not errors: the response succeeds and carries
// PARTIAL_SUB_LOOKUP_FAILURE as its error code.
func (o *Orchestrator) Process(ctx context.Context, pq parser.ParsedQuery) (*models.ComposedResponse, error) {
	requestID := uuid.NewString()
	log := o.logger.With(map[string]interface{}{"requestId": requestID})

	resp, stdErr := o.process(ctx, pq, log)
	resp.RequestID = requestID

	var err error
	if stdErr != nil {
		err = stdErr
	}

	outcome := Outcome(resp, err)
	metrics.QueriesTotal.WithLabelValues(outcome).Inc()
	log.Info("Query answered", map[string]interface{}{
		"outcome": outcome,
		"success": resp.Success,
	})
	return resp, err
}

// Outcome labels a result for metrics: success, partial, or the lowercase
// failure code.
func Outcome(resp *models.ComposedResponse, err error) string {
	if err != nil {
		return strings.ToLower(string(errors.CodeOf(err)))
	}
	if resp != nil && resp.ErrorCode == string(errors.ErrCodePartialSubLookupFailure) {
		return outcomePartial
	}
	return outcomeSuccess
}

func (o *Orchestrator) process(ctx context.Context, pq parser.ParsedQuery, log logger.Logger) (*models.ComposedResponse, *errors.StandardError) {
	if !pq.HasLocation() {
		log.Info("No location in query", map[string]interface{}{"query": pq.OriginalText})
		return failure(errors.NewNoLocationError(noLocationMessage))
	}
	loc := pq.Location

	if err := ctx.Err(); err != nil {
		return failure(errors.NewCancelledError(err))
	}

	coords, stdErr := o.geocode(ctx, loc, log)
	if stdErr != nil {
		return failure(stdErr)
	}
	log.Info("Location geocoded", map[string]interface{}{
		"location": loc.Name,
		"lat":      coords.Lat,
		"lon":      coords.Lon,
	})

	results := o.gather(ctx, pq.Intent, coords, log)

	resp := &models.ComposedResponse{
		PlaceName:   loc.Name,
		Coordinates: &coords,
		Places:      []models.Place{},
	}

	if ctx.Err() != nil && !results.anySucceeded() {
		stdErr := errors.NewCancelledError(ctx.Err())
		resp.Message = stdErr.Message
		resp.ErrorCode = string(stdErr.Code)
		return resp, stdErr
	}

	c := composition{
		location:       loc.Name,
		correctionNote: correctionNote(pq),
	}
	if results.weatherErr == nil && results.weather != nil {
		resp.Weather = results.weather
		c.weatherText = weatherText(loc.Name, *results.weather)
	}
	if results.placesErr == nil && results.placesRequested {
		resp.Places = results.places
		c.placesText = placesText(loc.Name, results.places)
		c.placesFound = len(results.places)
	}

	resp.Success = true
	resp.Message = c.message()
	if results.anyFailed() {
		resp.ErrorCode = string(errors.ErrCodePartialSubLookupFailure)
	}
	return resp, nil
}

// geocode gates the whole pipeline: no sub-lookup starts before it returns.
func (o *Orchestrator) geocode(ctx context.Context, loc *parser.ResolvedLocation, log logger.Logger) (models.Coordinates, *errors.StandardError) {
	callCtx, cancel := context.WithTimeout(ctx, o.config.CollaboratorTimeout)
	defer cancel()

	coords, err := o.geocoder.Resolve(callCtx, loc.Name)
	if err == nil {
		return coords, nil
	}

	fields := map[string]interface{}{"location": loc.Name, "error": err.Error()}
	switch {
	case ctx.Err() != nil:
		log.Info("Query cancelled during geocoding", fields)
		return models.Coordinates{}, errors.NewCancelledError(ctx.Err())

	case stderrors.Is(err, errors.ErrPlaceNotFound):
		log.Info("Location not found", fields)
		suggestions := loc.Suggestions
		if len(suggestions) > o.config.MaxSuggestions {
			suggestions = suggestions[:o.config.MaxSuggestions]
		}
		if len(suggestions) > 0 {
			msg := fmt.Sprintf("I couldn't find '%s'. Did you mean: %s? Please try again with the correct spelling.",
				loc.Name, strings.Join(suggestions, ", "))
			return models.Coordinates{}, errors.NewPlaceNotFoundWithSuggestionsError(loc.Name, suggestions, msg, err)
		}
		msg := fmt.Sprintf("I couldn't find a place called '%s'. Please check the spelling or try a different location.", loc.Name)
		return models.Coordinates{}, errors.NewPlaceNotFoundError(loc.Name, msg, err)

	case stderrors.Is(err, errors.ErrGeocodingUnavailable), stderrors.Is(err, context.DeadlineExceeded):
		log.Warn("Geocoding unavailable", fields)
		msg := fmt.Sprintf("I couldn't locate '%s' at the moment. Please try again later.", loc.Name)
		return models.Coordinates{}, errors.NewGeocodingUnavailableError(loc.Name, msg, err)

	default:
		log.Error("Unexpected geocoding failure", fields)
		return models.Coordinates{}, errors.NewInternalError(err)
	}
}

// subResults keeps each sub-lookup in its own fields so the composition
// order never depends on which call returned first.
type subResults struct {
	weatherRequested bool
	weather          *models.WeatherSnapshot
	weatherErr       error

	placesRequested bool
	places          []models.Place
	placesErr       error
}

func (r subResults) anySucceeded() bool {
	return (r.weatherRequested && r.weatherErr == nil) || (r.placesRequested && r.placesErr == nil)
}

func (r subResults) anyFailed() bool {
	return (r.weatherRequested && r.weatherErr != nil) || (r.placesRequested && r.placesErr != nil)
}

// gather runs the requested sub-lookups concurrently. Failures are recorded
// per lookup and never returned to the group, so one failing lookup does not
// cancel the other.
func (o *Orchestrator) gather(ctx context.Context, intent parser.IntentFlags, coords models.Coordinates, log logger.Logger) subResults {
	res := subResults{
		weatherRequested: intent.WantsWeather,
		placesRequested:  intent.WantsPlaces,
	}

	g, gctx := errgroup.WithContext(ctx)

	if res.weatherRequested {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, o.config.CollaboratorTimeout)
			defer cancel()

			snapshot, err := o.weather.Current(callCtx, coords.Lat, coords.Lon)
			if err != nil {
				res.weatherErr = err
				log.Warn("Weather lookup failed", map[string]interface{}{
					"code":  string(errors.ErrCodeWeatherUnavailable),
					"error": err.Error(),
				})
				return nil
			}
			res.weather = &snapshot
			return nil
		})
	}

	if res.placesRequested {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, o.config.CollaboratorTimeout)
			defer cancel()

			places, err := o.places.Nearby(callCtx, coords.Lat, coords.Lon, o.config.PlacesRadius)
			if err != nil {
				res.placesErr = err
				log.Warn("Places lookup failed", map[string]interface{}{
					"code":  string(errors.ErrCodePlacesUnavailable),
					"error": err.Error(),
				})
				return nil
			}
			if places == nil {
				places = []models.Place{}
			}
			res.places = places
			return nil
		})
	}

	_ = g.Wait()
	return res
}

func failure(stdErr *errors.StandardError) (*models.ComposedResponse, *errors.StandardError) {
	resp := &models.ComposedResponse{
		Success:   false,
		Message:   stdErr.Message,
		Places:    []models.Place{},
		ErrorCode: string(stdErr.Code),
	}
	if s, ok := stdErr.Metadata["suggestions"].([]string); ok {
		resp.Suggestions = s
	}
	return resp, stdErr
}
