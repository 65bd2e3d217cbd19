// Package jobs runs the scheduled background work of the API.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jordanlanch/leaddesk/pkg/logger"
)

// Disabled is the schedule value that turns a job off.
const Disabled = "off"

// CronManager manages scheduled jobs
type CronManager struct {
	cron     *cron.Cron
	snapshot *PipelineSnapshot
	log      logger.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(snapshot *PipelineSnapshot, log logger.Logger) *CronManager {
	if log == nil {
		log = logger.Discard()
	}
	return &CronManager{
		cron:     cron.New(),
		snapshot: snapshot,
		log:      log,
	}
}

// SetupJobs registers the pipeline snapshot under schedule, which is any
// expression robfig/cron accepts ("*/5 * * * *", "@every 5m", ...).
func (cm *CronManager) SetupJobs(schedule string) error {
	if schedule == "" || schedule == Disabled {
		cm.log.Info("pipeline snapshot job disabled")
		return nil
	}

	_, err := cm.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := cm.snapshot.Run(ctx); err != nil {
			cm.log.Error("pipeline snapshot failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	cm.log.Info("cron jobs configured", "pipeline_snapshot", schedule)
	return nil
}

// Jobs reports how many jobs are scheduled.
func (cm *CronManager) Jobs() int {
	return len(cm.cron.Entries())
}

// Start starts the cron scheduler
func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop stops the scheduler and waits for a running job to return.
func (cm *CronManager) Stop() {
	<-cm.cron.Stop().Done()
}
