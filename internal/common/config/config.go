package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig               `mapstructure:"app"`
	Server  ServerConfig            `mapstructure:"server"`
	Camunda CamundaConfig           `mapstructure:"camunda"`
	Workers map[string]WorkerConfig `mapstructure:"workers"`
	Cache   CacheConfig             `mapstructure:"cache"`
	APIs    APIsConfig              `mapstructure:"apis"`
	Guide   GuideConfig             `mapstructure:"guide"`
	Logging LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig controls the HTTP API and the probe/metrics endpoints.
type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	RequestTimeout  int    `mapstructure:"request_timeout"`  // milliseconds, pipeline deadline per API call
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// CacheConfig selects the collaborator cache backend and its TTLs.
type CacheConfig struct {
	Backend      string      `mapstructure:"backend"`
	Redis        RedisConfig `mapstructure:"redis"`
	GeocodingTTL int         `mapstructure:"geocoding_ttl"` // minutes
	WeatherTTL   int         `mapstructure:"weather_ttl"`   // minutes
	PlacesTTL    int         `mapstructure:"places_ttl"`    // minutes
	CleanupEvery int         `mapstructure:"cleanup_every"` // minutes, memory backend only
}

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// APIsConfig holds the public collaborator endpoints.
type APIsConfig struct {
	UserAgent string `mapstructure:"user_agent"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds, per collaborator call

	Nominatim struct {
		BaseURL     string `mapstructure:"base_url"`
		MinInterval int    `mapstructure:"min_interval"` // milliseconds between requests
	} `mapstructure:"nominatim"`

	OpenMeteo struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"open_meteo"`

	Overpass struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"overpass"`
}

// GuideConfig tunes location resolution and answer composition.
type GuideConfig struct {
	PlacesRadius        int     `mapstructure:"places_radius"` // meters
	MaxPlaces           int     `mapstructure:"max_places"`
	MaxSuggestions      int     `mapstructure:"max_suggestions"`
	AutoCorrectAt       float64 `mapstructure:"auto_correct_threshold"`
	SuggestionCutoff    float64 `mapstructure:"suggestion_cutoff"`
	CollaboratorTimeout int     `mapstructure:"collaborator_timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// RedisURL renders the redis address for log lines.
func (r RedisConfig) RedisURL() string {
	return fmt.Sprintf("redis://%s/%d", r.Address, r.DB)
}
