// Package api exposes the query pipeline over HTTP.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"tourist-guide/internal/common/errors"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/common/observability"
	"tourist-guide/internal/models"
	"tourist-guide/internal/orchestrator"
	"tourist-guide/internal/parser"

	"github.com/gin-gonic/gin"
)

const surface = "http"

type QueryAnswerer interface {
	Answer(ctx context.Context, text string) (*models.ComposedResponse, error)
}

type QueryParser interface {
	Parse(text string) parser.ParsedQuery
}

type Handler struct {
	answerer       QueryAnswerer
	parser         QueryParser
	obs            *observability.Observability
	requestTimeout time.Duration
	logger         logger.Logger
}

func NewHandler(answerer QueryAnswerer, p QueryParser, obs *observability.Observability, requestTimeout time.Duration, log logger.Logger) *Handler {
	return &Handler{
		answerer:       answerer,
		parser:         p,
		obs:            obs,
		requestTimeout: requestTimeout,
		logger:         log.Named("api"),
	}
}

type queryRequest struct {
	Query string `json:"query" binding:"required,max=500"`
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// Query answers POST /api/tourism/query with the flat composed response.
func (h *Handler) Query(c *gin.Context) {
	start := time.Now()

	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	resp, err := h.answerer.Answer(ctx, query)
	h.obs.RecordQuery(ctx, surface, orchestrator.Outcome(resp, err), time.Since(start))

	if resp == nil {
		resp = &models.ComposedResponse{
			Success:   false,
			Message:   errors.NewInternalError(err).Message,
			Places:    []models.Place{},
			ErrorCode: string(errors.ErrCodeInternal),
		}
	}
	c.JSON(StatusFor(err), resp)
}

// Parse answers POST /api/tourism/parse with the ParsedQuery only.
func (h *Handler) Parse(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.parser.Parse(query))
}

func (h *Handler) bindQuery(c *gin.Context) (string, bool) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("rejected request body", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusBadRequest, errorResponse{
			Message:   "invalid request: query is required and must be at most 500 characters",
			ErrorCode: string(errors.ErrCodeInputValidationFailed),
		})
		return "", false
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Message:   "invalid request: query must not be blank",
			ErrorCode: string(errors.ErrCodeInputValidationFailed),
		})
		return "", false
	}
	return query, true
}

// StatusFor maps a pipeline result to an HTTP status. Terminal domain
// failures are answers, so they are 200 like successes.
func StatusFor(err error) int {
	switch errors.CodeOf(err) {
	case "", errors.ErrCodeNoLocation, errors.ErrCodePlaceNotFound, errors.ErrCodePlaceNotFoundWithSuggestions:
		return http.StatusOK
	case errors.ErrCodeGeocodingUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeInputValidationFailed:
		return http.StatusBadRequest
	case errors.ErrCodeCancelled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
