package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/BlueprintCost_Go/internal/worker"
)

// LogMsgTickSkipped is logged when a tick finds the previous run still queued
const LogMsgTickSkipped = "Scheduled job skipped, previous run still queued"

// Scheduler feeds a worker pool from one ticker per registered job
type Scheduler struct {
	pool   *worker.Pool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler feeding pool
func New(pool *worker.Pool) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{pool: pool, ctx: ctx, cancel: cancel}
}

// Schedule runs job every interval, first one interval from now. A tick is
// dropped when the pool queue is full so slow jobs never pile up.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go s.loop(name, interval, job)
}

func (s *Scheduler) loop(name string, interval time.Duration, job worker.Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if !s.pool.TryEnqueue(job) {
				slog.Warn(LogMsgTickSkipped, "job", name, "interval", interval)
			}
		}
	}
}

// Stop ends every ticker and waits for them. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
