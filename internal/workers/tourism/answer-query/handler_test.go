package answerquery

import (
	"context"
	"testing"
	"time"

	"tourist-guide/internal/common/errors"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockAnswerer struct{ mock.Mock }

func (m *mockAnswerer) Answer(ctx context.Context, text string) (*models.ComposedResponse, error) {
	args := m.Called(ctx, text)
	resp, _ := args.Get(0).(*models.ComposedResponse)
	return resp, args.Error(1)
}

func createTestHandler(t *testing.T, answerer QueryAnswerer) *Handler {
	return NewHandler(&Config{Timeout: time.Second}, answerer, nil, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	answerer := &mockAnswerer{}
	want := &models.ComposedResponse{
		Success:     true,
		Message:     "The weather in Paris is pleasant - currently 21.0°C",
		PlaceName:   "Paris",
		Coordinates: &models.Coordinates{Lat: 48.85, Lon: 2.35},
	}
	answerer.On("Answer", mock.Anything, "weather in Paris").Return(want, nil)

	h := createTestHandler(t, answerer)
	got, err := h.Execute(context.Background(), &Input{Query: "  weather in Paris "})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	answerer.AssertExpectations(t)
}

func TestHandler_Execute_DomainFailure(t *testing.T) {
	answerer := &mockAnswerer{}
	stdErr := errors.NewPlaceNotFoundWithSuggestionsError("Parsi", []string{"Paris"}, "not found", nil)
	answerer.On("Answer", mock.Anything, "Parsi").Return(&models.ComposedResponse{
		Success:     false,
		ErrorCode:   string(stdErr.Code),
		Suggestions: []string{"Paris"},
	}, stdErr)

	h := createTestHandler(t, answerer)
	resp, err := h.Execute(context.Background(), &Input{Query: "Parsi"})

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePlaceNotFoundWithSuggestions, errors.CodeOf(err))
	assert.False(t, resp.Success)

	bpmnErr := errors.ConvertToBPMNError(stdErr)
	assert.Equal(t, 0, bpmnErr.Retries)
	assert.Equal(t, []string{"Paris"}, bpmnErr.ErrorVariables["suggestions"])
}

func TestHandler_Execute_BlankQuery(t *testing.T) {
	answerer := &mockAnswerer{}
	h := createTestHandler(t, answerer)

	_, err := h.Execute(context.Background(), &Input{Query: "   "})

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, errors.CodeOf(err))
	answerer.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything)
}

// ==========================
// Input Validation Tests
// ==========================

func TestHandler_DecodeInput(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantQuery string
		wantErr   bool
	}{
		{"valid", `{"query":"places in Rome"}`, "places in Rome", false},
		{"extra process variables", `{"query":"Tokyo","requestId":"r-1","userId":7}`, "Tokyo", false},
		{"missing query", `{"question":"Tokyo"}`, "", true},
		{"empty query", `{"query":""}`, "", true},
		{"wrong type", `{"query":12}`, "", true},
		{"malformed json", `{"query":`, "", true},
	}

	h := createTestHandler(t, &mockAnswerer{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := h.decodeInput(tt.variables)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInputValidationFailed, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, input.Query)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, 45*time.Second, LoadConfig().Timeout)
}
