package bootstrap

import (
	"log/slog"
	"time"

	"github.com/osse101/BlueprintCost_Go/internal/scheduler"
	"github.com/osse101/BlueprintCost_Go/internal/worker"
)

const refreshJobName = "dataset_refresh"

// Refresher owns the pool and scheduler behind periodic dataset reloads
type Refresher struct {
	pool  *worker.Pool
	sched *scheduler.Scheduler
}

// StartRefresher schedules svc.Reload every interval. It returns nil when
// interval is not positive.
func StartRefresher(svc worker.Reloader, interval time.Duration) *Refresher {
	if interval <= 0 {
		return nil
	}

	// One worker and one queue slot: reloads never overlap or pile up
	pool := worker.NewPool(1, 1)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(refreshJobName, interval, &worker.RefreshJob{Service: svc})

	slog.Info(LogMsgRefreshScheduled, "interval", interval)
	return &Refresher{pool: pool, sched: sched}
}

// Stop halts the schedule and cancels a reload in progress. Safe on nil.
func (r *Refresher) Stop() {
	if r == nil {
		return
	}
	r.sched.Stop()
	r.pool.Stop()
}
