package models

// ComposedResponse is the flat answer returned to every surface.
type ComposedResponse struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	PlaceName   string           `json:"place_name,omitempty"`
	Coordinates *Coordinates     `json:"coordinates,omitempty"`
	Places      []Place          `json:"places"`
	Weather     *WeatherSnapshot `json:"weather"`
	ErrorCode   string           `json:"error_code,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
	RequestID   string           `json:"request_id,omitempty"`
}

// ToVariables renders the response as Zeebe job variables.
func (r *ComposedResponse) ToVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"success": r.Success,
		"message": r.Message,
		"places":  r.Places,
		"weather": r.Weather,
	}
	if r.Places == nil {
		vars["places"] = []Place{}
	}
	if r.PlaceName != "" {
		vars["place_name"] = r.PlaceName
	}
	if r.Coordinates != nil {
		vars["coordinates"] = r.Coordinates
	}
	if r.ErrorCode != "" {
		vars["error_code"] = r.ErrorCode
	}
	if len(r.Suggestions) > 0 {
		vars["suggestions"] = r.Suggestions
	}
	if r.RequestID != "" {
		vars["request_id"] = r.RequestID
	}
	return vars
}
