package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tourist-guide/internal/models"
	"tourist-guide/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig points every collaborator at baseURL.
func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	body := fmt.Sprintf(`
apis:
  nominatim:
    base_url: %[1]s
  open_meteo:
    base_url: %[1]s
  overpass:
    base_url: %[1]s/interpreter
`, baseURL)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd_JSON(t *testing.T) {
	cfgPath := writeConfig(t, "http://127.0.0.1:1")

	out, err := run(t, "parse", "--config", cfgPath, "What's", "the", "weather", "in", "Banglore?")
	require.NoError(t, err)

	var pq parser.ParsedQuery
	require.NoError(t, json.Unmarshal([]byte(out), &pq))
	require.NotNil(t, pq.Location)
	assert.Equal(t, "Bangalore", pq.Location.Name)
	assert.True(t, pq.Intent.WantsWeather)
}

func TestParseCmd_Text(t *testing.T) {
	cfgPath := writeConfig(t, "http://127.0.0.1:1")

	out, err := run(t, "parse", "-c", cfgPath, "-f", "text", "what is the weather")
	require.NoError(t, err)

	assert.Equal(t, "location: none\nweather: true\nplaces: false\n", out)
}

func TestRootCmd_RejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "parse", "--format", "yaml", "Paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format")
}

func TestAskCmd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"41.9028","lon":"12.4964"}]`))
	})
	mux.HandleFunc("/interpreter", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"elements":[{"type":"node","lat":41.89,"lon":12.49,"tags":{"historic":"monument","name":"Colosseum"}}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	cfgPath := writeConfig(t, server.URL)

	out, err := run(t, "ask", "--config", cfgPath, "places to visit in Rome")
	require.NoError(t, err)

	var resp models.ComposedResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Rome", resp.PlaceName)
	require.Len(t, resp.Places, 1)
	assert.Equal(t, "Colosseum", resp.Places[0].Name)
}

func TestAskCmd_GeocodingDownExitsNonZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	cfgPath := writeConfig(t, server.URL)

	out, err := run(t, "ask", "-c", cfgPath, "-f", "text", "Rome")

	require.Error(t, err)
	assert.NotEmpty(t, out)
}
