package worker

import "time"

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, dropping job"
)

// Log messages - wheel stats job
const (
	LogMsgWheelStatsRefreshed = "Wheel stats refreshed"
)

// Default pool and schedule sizing
const (
	DefaultWorkerCount        = 1
	DefaultQueueSize          = 4
	DefaultStatsRefreshPeriod = time.Minute
	StatsJobTimeout           = 10 * time.Second
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
