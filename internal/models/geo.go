package models

import "fmt"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks the point is inside the valid latitude/longitude range.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90,90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180,180]", c.Lon)
	}
	return nil
}

// Place categories reported by the places collaborator.
const (
	PlaceTypeTourism    = "tourism"
	PlaceTypeHistoric   = "historic"
	PlaceTypeLeisure    = "leisure"
	PlaceTypeAttraction = "attraction"
)

// Place is a point of interest near a resolved location.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Type string  `json:"type"`
	// Kind is the raw OSM tag value (museum, park, castle...).
	Kind string `json:"kind,omitempty"`
}

// WeatherSnapshot holds current conditions. Either reading may be unknown.
type WeatherSnapshot struct {
	TemperatureC                *float64 `json:"temp"`
	PrecipitationProbabilityPct *int     `json:"precipitation"`
}
