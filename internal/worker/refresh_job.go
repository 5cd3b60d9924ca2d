package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/BlueprintCost_Go/internal/logger"
)

// Reloader rebuilds the in-memory dataset
type Reloader interface {
	Reload(ctx context.Context) error
}

// RefreshJob re-reads the catalog and price sources on a schedule
type RefreshJob struct {
	Service Reloader
	// Budget bounds one refresh; DefaultRefreshJobBudget when zero
	Budget time.Duration
}

// Process runs one reload under its own request id
func (j *RefreshJob) Process(ctx context.Context) error {
	budget := j.Budget
	if budget <= 0 {
		budget = DefaultRefreshJobBudget
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())
	log := logger.FromContext(ctx)

	start := time.Now()
	log.Debug(LogMsgRefreshStarted)
	if err := j.Service.Reload(ctx); err != nil {
		log.Warn(LogMsgRefreshFailed, "error", err)
		return fmt.Errorf("%s: %w", ErrMsgRefreshFailed, err)
	}
	log.Info(LogMsgRefreshFinished, slog.Duration(logger.AttrKeyDuration, time.Since(start)))
	return nil
}
