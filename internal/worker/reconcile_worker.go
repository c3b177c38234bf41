package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/observability/metrics"
	"github.com/pazorg/candidatetrack/internal/pipeline"
	"github.com/pazorg/candidatetrack/internal/reliability/retry"
)

// ReconcileWorker periodically audits the two state tracks. The system-owned
// status and the admin-owned pipeline stage are maintained independently and
// legitimately diverge for a while; this worker surfaces candidates whose
// stage lags their status so recruiters can catch them, and publishes the
// count as a gauge. It never mutates records.
type ReconcileWorker struct {
	repo     domain.CandidateRepository
	logger   *slog.Logger
	interval time.Duration
	retryCfg *retry.Config
}

// NewReconcileWorker creates a new reconcile worker
func NewReconcileWorker(repo domain.CandidateRepository, logger *slog.Logger, interval time.Duration) *ReconcileWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileWorker{
		repo:     repo,
		logger:   logger,
		interval: interval,
		retryCfg: retry.DefaultConfig(),
	}
}

// Start begins the reconcile loop. Runs until ctx is cancelled.
func (w *ReconcileWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("reconcile worker started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reconcile worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce performs one audit pass. The list read is the only operation that
// can fail; it is retried with backoff since nobody is waiting on it.
func (w *ReconcileWorker) runOnce(ctx context.Context) {
	candidates, err := retry.Do(ctx, w.retryCfg, w.logger, "list candidates", func(ctx context.Context) ([]*domain.Candidate, error) {
		return w.repo.List(ctx)
	})
	if err != nil {
		w.logger.Error("reconcile pass failed",
			slog.String("error", err.Error()),
		)
		return
	}

	divergences := pipeline.Reconcile(candidates)
	metrics.SetStateDivergence(len(divergences))

	for _, d := range divergences {
		w.logger.Warn("state divergence detected",
			slog.String("candidate_id", d.CandidateID),
			slog.String("status", d.Status),
			slog.String("stage", string(d.Stage)),
			slog.String("detail", d.Detail),
		)
	}

	w.logger.Info("reconcile pass complete",
		slog.Int("candidates", len(candidates)),
		slog.Int("divergences", len(divergences)),
	)
}
