package jobs

import (
	"context"
	"log/slog"

	"github.com/roomie-hub/roomie-hub/internal/application/query"
)

// StatsDigestJob periodically logs marketplace-wide counters. Cheap
// observability for deployments that do not scrape /metrics.
type StatsDigestJob struct {
	stats  *query.GetStatsHandler
	logger *slog.Logger
}

// NewStatsDigestJob creates the job.
func NewStatsDigestJob(stats *query.GetStatsHandler, logger *slog.Logger) *StatsDigestJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsDigestJob{stats: stats, logger: logger}
}

// Name implements scheduler.Job.
func (j *StatsDigestJob) Name() string { return "stats-digest" }

// Run implements scheduler.Job.
func (j *StatsDigestJob) Run(ctx context.Context) error {
	dto, err := j.stats.Handle(ctx, query.GetStatsQuery{})
	if err != nil {
		return err
	}

	j.logger.Info("marketplace stats",
		"active_profiles", dto.ActiveProfiles,
		"rooms_offered", dto.RoomsOffered,
	)
	return nil
}
