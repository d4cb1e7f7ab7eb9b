package jobs

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReconciliationSchedule runs the reconciliation every five minutes.
const DefaultReconciliationSchedule = "0 */5 * * * *"

// StatisticsRecomputer is the use case the reconciliation job drives.
type StatisticsRecomputer interface {
	Handle(ctx context.Context, cmd commands.RecomputeCourierStatisticsCommand) (int, error)
}

// StatisticsReconciliationJob periodically rebuilds courier statistics from order
// history and corrects couriers whose stored values drifted.
type StatisticsReconciliationJob struct {
	handler  StatisticsRecomputer
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewStatisticsReconciliationJob creates the job. schedule is a six-field cron
// expression (seconds first); an empty one falls back to DefaultReconciliationSchedule.
func NewStatisticsReconciliationJob(
	handler StatisticsRecomputer,
	schedule string,
	logger *zap.Logger,
) *StatisticsReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconciliationSchedule
	}
	return &StatisticsReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "statistics_reconciliation_job")),
	}
}

// Start registers the run on the schedule and starts the scheduler.
func (j *StatisticsReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("statistics reconciliation job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs a single reconciliation pass.
func (j *StatisticsReconciliationJob) Run() {
	ctx := context.Background()

	corrected, err := j.handler.Handle(ctx, commands.NewRecomputeCourierStatisticsCommand())
	metrics.RecordStatisticsCorrections(corrected)
	if err != nil {
		j.logger.Error("statistics reconciliation failed", zap.Error(err), zap.Int("corrected", corrected))
		return
	}

	if corrected > 0 {
		j.logger.Warn("courier statistics corrected", zap.Int("corrected", corrected))
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *StatisticsReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("statistics reconciliation job stopped")
}
