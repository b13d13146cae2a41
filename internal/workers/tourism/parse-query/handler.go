package parsequery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tourist-guide/internal/common/errors"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/common/metrics"
	"tourist-guide/internal/common/validation"
	"tourist-guide/internal/parser"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "parse-tourism-query"

type QueryParser interface {
	Parse(text string) parser.ParsedQuery
}

// Handler only parses; it makes no network calls.
type Handler struct {
	config       *Config
	parser       QueryParser
	schema       *validation.Schema
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, p QueryParser, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		parser:       p,
		schema:       validation.MustCompile(inputSchema),
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(job.Variables), &doc); err != nil {
		h.failJob(client, job, errors.NewInputValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}
	if result := h.schema.Validate(doc); !result.Valid {
		h.failJob(client, job, errors.NewInputValidationFailedError(result.Error()))
		return
	}
	query, _ := doc["query"].(string)

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &Input{Query: query})
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelledError(err)
	}
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInputValidationFailedError("query: must not be blank")
	}

	pq := h.parser.Parse(query)
	return &Output{
		ParsedQuery: pq,
		HasLocation: pq.HasLocation(),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err.Error()})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err.Error()})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.CodeOf(err))).Inc()
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}
