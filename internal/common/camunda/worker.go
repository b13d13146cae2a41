package camunda

import (
	"time"

	"tourist-guide/internal/common/config"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every worker package. Handlers complete or
// fail the job themselves.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// StartWorker opens a job worker for taskType. It returns nil when the
// worker is disabled in configuration.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler.Handle)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}

// Instrument tracks active jobs and job duration for taskType.
func Instrument(taskType string, handle worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		start := time.Now()
		defer func() {
			active.Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
		}()
		handle(client, job)
	}
}
