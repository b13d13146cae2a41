// Package app assembles the query pipeline from configuration. The HTTP
// server, the Zeebe workers and the CLI all build on it.
package app

import (
	"context"
	"fmt"

	"tourist-guide/internal/common/cache"
	"tourist-guide/internal/common/config"
	"tourist-guide/internal/common/database"
	commonhttp "tourist-guide/internal/common/http"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/gazetteer"
	"tourist-guide/internal/orchestrator"
	"tourist-guide/internal/parser"
	"tourist-guide/internal/services/geocoding"
	"tourist-guide/internal/services/places"
	"tourist-guide/internal/services/weather"
)

type App struct {
	Config       *config.Config
	Logger       logger.Logger
	Cache        cache.Cache
	Parser       *parser.Parser
	Orchestrator *orchestrator.Orchestrator

	redis *database.RedisClient
}

// New wires the cache, the collaborator clients, the gazetteer, the parser
// and the orchestrator. It does not touch the network.
func New(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		a.redis = database.NewRedis(cfg.Cache.Redis)
		a.Cache = cache.NewRedis(a.redis.Client, cfg.Cache.Redis.KeyPrefix, log.Named("cache"))
	case config.CacheBackendMemory, "":
		a.Cache = cache.NewMemory(config.GetMinutes(cfg.Cache.WeatherTTL), config.GetMinutes(cfg.Cache.CleanupEvery))
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	httpClient := commonhttp.NewClient(config.GetDuration(cfg.APIs.Timeout), cfg.APIs.UserAgent)

	geocoder := geocoding.New(geocoding.Config{
		BaseURL:     cfg.APIs.Nominatim.BaseURL,
		MinInterval: config.GetDuration(cfg.APIs.Nominatim.MinInterval),
		CacheTTL:    config.GetMinutes(cfg.Cache.GeocodingTTL),
	}, httpClient, a.Cache, log)

	weatherClient := weather.New(weather.Config{
		BaseURL:  cfg.APIs.OpenMeteo.BaseURL,
		CacheTTL: config.GetMinutes(cfg.Cache.WeatherTTL),
	}, httpClient, a.Cache, log)

	placesClient := places.New(places.Config{
		BaseURL:   cfg.APIs.Overpass.BaseURL,
		MaxPlaces: cfg.Guide.MaxPlaces,
		CacheTTL:  config.GetMinutes(cfg.Cache.PlacesTTL),
	}, httpClient, a.Cache, log)

	gaz := gazetteer.Default(
		gazetteer.WithThresholds(cfg.Guide.AutoCorrectAt, cfg.Guide.SuggestionCutoff),
		gazetteer.WithMaxSuggestions(cfg.Guide.MaxSuggestions),
	)
	a.Parser = parser.New(gaz, log)

	a.Orchestrator = orchestrator.New(orchestrator.Config{
		PlacesRadius:        cfg.Guide.PlacesRadius,
		MaxSuggestions:      cfg.Guide.MaxSuggestions,
		CollaboratorTimeout: config.GetDuration(cfg.Guide.CollaboratorTimeout),
	}, orchestrator.Dependencies{
		Parser:   a.Parser,
		Geocoder: geocoder,
		Weather:  weatherClient,
		Places:   placesClient,
	}, log)

	log.Info("Query pipeline ready", map[string]interface{}{
		"cacheBackend": cfg.Cache.Backend,
		"gazetteer":    gaz.Len(),
	})
	return a, nil
}

// PingCache checks the shared cache. The in-process cache is always ready.
func (a *App) PingCache(ctx context.Context) error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Ping(ctx)
}

func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}
