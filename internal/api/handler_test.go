package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tourist-guide/internal/common/errors"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/gazetteer"
	"tourist-guide/internal/models"
	"tourist-guide/internal/parser"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnswerer struct{ mock.Mock }

func (m *mockAnswerer) Answer(ctx context.Context, text string) (*models.ComposedResponse, error) {
	args := m.Called(ctx, text)
	resp, _ := args.Get(0).(*models.ComposedResponse)
	return resp, args.Error(1)
}

func newTestRouter(t *testing.T, answerer QueryAnswerer, checks map[string]ReadinessCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewTestLogger(t)
	h := NewHandler(answerer, parser.New(gazetteer.Default(), log), nil, time.Second, log)
	return NewRouter(h, checks, log)
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestQuery_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		resp       *models.ComposedResponse
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			resp:       &models.ComposedResponse{Success: true, Message: "Welcome to Rome!", PlaceName: "Rome"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "partial sub-lookup failure is a success",
			resp:       &models.ComposedResponse{Success: true, Message: "...", ErrorCode: string(errors.ErrCodePartialSubLookupFailure)},
			wantStatus: http.StatusOK,
			wantCode:   string(errors.ErrCodePartialSubLookupFailure),
		},
		{
			name:       "place not found is an answer",
			resp:       &models.ComposedResponse{Success: false, ErrorCode: string(errors.ErrCodePlaceNotFound)},
			err:        errors.NewPlaceNotFoundError("Atlantis", "not found", nil),
			wantStatus: http.StatusOK,
			wantCode:   string(errors.ErrCodePlaceNotFound),
		},
		{
			name:       "geocoding unavailable",
			resp:       &models.ComposedResponse{Success: false, ErrorCode: string(errors.ErrCodeGeocodingUnavailable)},
			err:        errors.NewGeocodingUnavailableError("Rome", "down", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   string(errors.ErrCodeGeocodingUnavailable),
		},
		{
			name:       "nil response",
			err:        stderrors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   string(errors.ErrCodeInternal),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answerer := &mockAnswerer{}
			answerer.On("Answer", mock.Anything, "places in Rome").Return(tt.resp, tt.err)
			router := newTestRouter(t, answerer, nil)

			w := post(router, "/api/tourism/query", `{"query":" places in Rome "}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body models.ComposedResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.ErrorCode)
			answerer.AssertExpectations(t)
		})
	}
}

func TestQuery_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"query":`},
		{"missing query", `{"question":"Rome"}`},
		{"blank query", `{"query":"   "}`},
		{"too long", `{"query":"` + strings.Repeat("a", 501) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answerer := &mockAnswerer{}
			router := newTestRouter(t, answerer, nil)

			w := post(router, "/api/tourism/query", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), string(errors.ErrCodeInputValidationFailed))
			answerer.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything)
		})
	}
}

func TestParse(t *testing.T) {
	router := newTestRouter(t, &mockAnswerer{}, nil)

	w := post(router, "/api/tourism/parse", `{"query":"What's the weather in Banglore?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var pq parser.ParsedQuery
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pq))
	require.NotNil(t, pq.Location)
	assert.Equal(t, "Bangalore", pq.Location.Name)
	assert.True(t, pq.Location.WasCorrected)
	assert.True(t, pq.Intent.WantsWeather)
}

func TestProbes(t *testing.T) {
	healthy := newTestRouter(t, &mockAnswerer{}, map[string]ReadinessCheck{
		"cache": func(context.Context) error { return nil },
	})
	broken := newTestRouter(t, &mockAnswerer{}, map[string]ReadinessCheck{
		"cache": func(context.Context) error { return stderrors.New("redis ping failed") },
	})

	for _, tt := range []struct {
		name   string
		router *gin.Engine
		path   string
		want   int
	}{
		{"health", healthy, "/health", http.StatusOK},
		{"ready", healthy, "/ready", http.StatusOK},
		{"not ready", broken, "/ready", http.StatusServiceUnavailable},
		{"health ignores readiness", broken, "/health", http.StatusOK},
		{"metrics", healthy, "/metrics", http.StatusOK},
	} {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusFor(nil))
	assert.Equal(t, http.StatusOK, StatusFor(errors.NewNoLocationError("none")))
	assert.Equal(t, http.StatusRequestTimeout, StatusFor(errors.NewCancelledError(context.Canceled)))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.NewInternalError(nil)))
}
