package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinates_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Coordinates
		wantErr bool
	}{
		{"paris", Coordinates{Lat: 48.8566, Lon: 2.3522}, false},
		{"poles and antimeridian", Coordinates{Lat: -90, Lon: 180}, false},
		{"lat too high", Coordinates{Lat: 90.1, Lon: 0}, true},
		{"lon too low", Coordinates{Lat: 0, Lon: -180.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComposedResponse_FlatJSON(t *testing.T) {
	temp := 24.5
	precip := 20
	resp := ComposedResponse{
		Success:     true,
		Message:     "The weather in Paris is pleasant",
		PlaceName:   "Paris",
		Coordinates: &Coordinates{Lat: 48.85, Lon: 2.35},
		Places:      []Place{{Name: "Louvre", Lat: 48.86, Lon: 2.33, Type: PlaceTypeTourism}},
		Weather:     &WeatherSnapshot{TemperatureC: &temp, PrecipitationProbabilityPct: &precip},
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &flat))

	assert.Equal(t, true, flat["success"])
	assert.Equal(t, "Paris", flat["place_name"])
	assert.Equal(t, map[string]interface{}{"lat": 48.85, "lon": 2.35}, flat["coordinates"])
	assert.Equal(t, map[string]interface{}{"temp": 24.5, "precipitation": float64(20)}, flat["weather"])
	place := flat["places"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Louvre", place["name"])
	assert.Equal(t, "tourism", place["type"])
	assert.NotContains(t, flat, "error_code")
}

func TestComposedResponse_FailureShape(t *testing.T) {
	resp := ComposedResponse{Success: false, Message: "no location", ErrorCode: "NO_LOCATION"}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"no location","places":null,"weather":null,"error_code":"NO_LOCATION"}`, string(raw))

	vars := resp.ToVariables()
	assert.Equal(t, []Place{}, vars["places"])
	assert.Equal(t, "NO_LOCATION", vars["error_code"])
	assert.NotContains(t, vars, "coordinates")
}
