package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	statisticsReconciliationJob *StatisticsReconciliationJob
}

// NewJobManager creates a job manager with the reconciliation job on the given schedule.
func NewJobManager(recomputer StatisticsRecomputer, reconcileSchedule string, logger *zap.Logger) *JobManager {
	return &JobManager{
		statisticsReconciliationJob: NewStatisticsReconciliationJob(recomputer, reconcileSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.statisticsReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start statistics reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statisticsReconciliationJob.Stop()
}
