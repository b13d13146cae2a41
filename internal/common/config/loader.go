package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on
// top, then applies environment overrides, defaults and validation.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setViperDefaults(v)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setViperDefaults registers every leaf key so AutomaticEnv can override
// keys that are absent from the yaml files.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tourist-guide")
	v.SetDefault("app.environment", "development")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("camunda.enabled", false)
	v.SetDefault("camunda.broker_address", "localhost:26500")
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("apis.user_agent", "")
	v.SetDefault("apis.nominatim.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("apis.open_meteo.base_url", "https://api.open-meteo.com")
	v.SetDefault("apis.overpass.base_url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory to the go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "$") {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal && expanded != "" {
			v.Set(key, expanded)
		}
	}
}

// requestTimeoutMargin leaves room to write the response before the server
// write deadline closes the connection.
func requestTimeoutMargin(writeTimeout int) int {
	if writeTimeout > 10000 {
		return 2000
	}
	return writeTimeout / 5
}

// applyDefaults fills the numeric knobs that yaml commonly leaves out.
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = cfg.Server.WriteTimeout - requestTimeoutMargin(cfg.Server.WriteTimeout)
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheBackendMemory
	}
	if cfg.Cache.GeocodingTTL == 0 {
		cfg.Cache.GeocodingTTL = 1440
	}
	if cfg.Cache.WeatherTTL == 0 {
		cfg.Cache.WeatherTTL = 10
	}
	if cfg.Cache.PlacesTTL == 0 {
		cfg.Cache.PlacesTTL = 60
	}
	if cfg.Cache.CleanupEvery == 0 {
		cfg.Cache.CleanupEvery = 10
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = "tourist-guide:"
	}

	if cfg.APIs.UserAgent == "" {
		cfg.APIs.UserAgent = "TouristGuide/1.0"
	}
	if cfg.APIs.Timeout == 0 {
		cfg.APIs.Timeout = 10000
	}
	if cfg.APIs.Nominatim.MinInterval == 0 {
		cfg.APIs.Nominatim.MinInterval = 1000
	}

	if cfg.Guide.PlacesRadius == 0 {
		cfg.Guide.PlacesRadius = 10000
	}
	if cfg.Guide.MaxPlaces == 0 {
		cfg.Guide.MaxPlaces = 5
	}
	if cfg.Guide.MaxSuggestions == 0 {
		cfg.Guide.MaxSuggestions = 3
	}
	if cfg.Guide.AutoCorrectAt == 0 {
		cfg.Guide.AutoCorrectAt = 0.80
	}
	if cfg.Guide.SuggestionCutoff == 0 {
		cfg.Guide.SuggestionCutoff = 0.6
	}
	if cfg.Guide.CollaboratorTimeout == 0 {
		cfg.Guide.CollaboratorTimeout = 15000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Camunda.Enabled && cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required when camunda is enabled")
	}

	if cfg.Server.RequestTimeout >= cfg.Server.WriteTimeout {
		return fmt.Errorf("server.request_timeout (%dms) must be below server.write_timeout (%dms)",
			cfg.Server.RequestTimeout, cfg.Server.WriteTimeout)
	}

	switch cfg.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.Cache.Redis.Address == "" {
			return fmt.Errorf("cache.redis.address is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend must be %q or %q, got %q", CacheBackendMemory, CacheBackendRedis, cfg.Cache.Backend)
	}

	if cfg.APIs.Nominatim.BaseURL == "" || cfg.APIs.OpenMeteo.BaseURL == "" || cfg.APIs.Overpass.BaseURL == "" {
		return fmt.Errorf("apis.nominatim, apis.open_meteo and apis.overpass base_url are required")
	}

	if cfg.Guide.SuggestionCutoff > cfg.Guide.AutoCorrectAt {
		return fmt.Errorf("guide.suggestion_cutoff (%.2f) must not exceed guide.auto_correct_threshold (%.2f)",
			cfg.Guide.SuggestionCutoff, cfg.Guide.AutoCorrectAt)
	}
	if cfg.Guide.AutoCorrectAt > 1 {
		return fmt.Errorf("guide.auto_correct_threshold must be within [0,1]")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetMinutes converts minutes from config to time.Duration.
func GetMinutes(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults.
func GetWorkerConfig(cfg *Config, taskType string) WorkerConfig {
	if worker, exists := cfg.Workers[taskType]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

func IsWorkerEnabled(cfg *Config, taskType string) bool {
	if worker, exists := cfg.Workers[taskType]; exists {
		return worker.Enabled
	}
	return true
}
