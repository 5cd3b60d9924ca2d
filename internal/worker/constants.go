package worker

import "time"

// DefaultRefreshJobBudget bounds one scheduled reload
const DefaultRefreshJobBudget = 2 * time.Minute

// Log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgRefreshStarted  = "Scheduled dataset refresh started"
	LogMsgRefreshFinished = "Scheduled dataset refresh finished"
	LogMsgRefreshFailed   = "Scheduled dataset refresh failed"

	ErrMsgRefreshFailed = "scheduled refresh failed"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
	TestWaitTimeout      = time.Second
)
