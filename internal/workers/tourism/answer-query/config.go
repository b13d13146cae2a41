package answerquery

import "time"

type Config struct {
	// Timeout bounds one job end to end, geocoding and sub-lookups included.
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 45 * time.Second,
	}
}
