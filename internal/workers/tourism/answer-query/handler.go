package answerquery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tourist-guide/internal/common/errors"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/common/metrics"
	"tourist-guide/internal/common/observability"
	"tourist-guide/internal/common/validation"
	"tourist-guide/internal/models"
	"tourist-guide/internal/orchestrator"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "answer-tourism-query"
	surface  = "zeebe"
)

// QueryAnswerer runs the full pipeline for one question.
type QueryAnswerer interface {
	Answer(ctx context.Context, text string) (*models.ComposedResponse, error)
}

type Handler struct {
	config       *Config
	answerer     QueryAnswerer
	schema       *validation.Schema
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, answerer QueryAnswerer, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		answerer:     answerer,
		schema:       validation.MustCompile(inputSchema),
		obs:          obs,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	input, err := h.decodeInput(job.Variables)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, input)
	h.obs.RecordQuery(ctx, surface, orchestrator.Outcome(output, err), time.Since(start))
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

// Execute answers the query. Terminal domain failures come back as a
// *errors.StandardError; partial sub-lookup failures do not.
func (h *Handler) Execute(ctx context.Context, input *Input) (*models.ComposedResponse, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInputValidationFailedError("query: must not be blank")
	}
	return h.answerer.Answer(ctx, query)
}

func (h *Handler) decodeInput(variables string) (*Input, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &doc); err != nil {
		return nil, errors.NewInputValidationFailedError(fmt.Sprintf("parse input: %v", err))
	}
	if result := h.schema.Validate(doc); !result.Valid {
		return nil, errors.NewInputValidationFailedError(result.Error())
	}

	query, _ := doc["query"].(string)
	return &Input{Query: query}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *models.ComposedResponse) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromMap(output.ToVariables())
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err.Error()})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err.Error()})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":    job.Key,
		"errorCode": output.ErrorCode,
	})
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.CodeOf(err))).Inc()
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}
