package jobs

import (
	"context"
	"fmt"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/logger"
	"github.com/jordanlanch/leaddesk/pkg/query"
)

// PipelineRecorder receives the per-status totals of a snapshot.
type PipelineRecorder interface {
	SetPipeline(status string, count int, value float64)
}

// PipelineSource aggregates leads by status.
type PipelineSource interface {
	AggregateByStatus(ctx context.Context, cond query.Cond) ([]domain.StatusStat, error)
}

// PipelineSnapshot publishes the lead count and value of every pipeline
// status across all leads.
type PipelineSnapshot struct {
	store    PipelineSource
	recorder PipelineRecorder
	log      logger.Logger
}

// NewPipelineSnapshot creates the snapshot job.
func NewPipelineSnapshot(store PipelineSource, recorder PipelineRecorder, log logger.Logger) *PipelineSnapshot {
	if log == nil {
		log = logger.Discard()
	}
	return &PipelineSnapshot{store: store, recorder: recorder, log: log}
}

// Run takes one snapshot. Statuses without leads are reported as zero so a
// drained stage does not keep its last value.
func (p *PipelineSnapshot) Run(ctx context.Context) error {
	rows, err := p.store.AggregateByStatus(ctx, nil)
	if err != nil {
		return fmt.Errorf("aggregating pipeline: %w", err)
	}

	byStatus := make(map[domain.Status]domain.StatusStat, len(rows))
	total := 0
	for _, r := range rows {
		byStatus[r.Status] = r
		total += r.Count
	}
	for _, st := range domain.Statuses {
		r := byStatus[st]
		p.recorder.SetPipeline(string(st), r.Count, r.TotalValue)
	}

	p.log.Debug("pipeline snapshot taken", "leads", total)
	return nil
}
