package bootstrap

import (
	"log/slog"

	"github.com/osse101/SpinWheel_Go/internal/scheduler"
	"github.com/osse101/SpinWheel_Go/internal/worker"
)

// InitializeBackgroundJobs starts the worker pool and schedules the periodic wheel stats refresh.
func InitializeBackgroundJobs(wheels worker.WheelLister) (*worker.Pool, *scheduler.Scheduler) {
	pool := worker.NewPool(worker.DefaultWorkerCount, worker.DefaultQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(JobNameWheelStats, worker.DefaultStatsRefreshPeriod, worker.NewWheelStatsJob(wheels))

	slog.Info(LogMsgBackgroundJobsStarted, "workers", worker.DefaultWorkerCount)
	return pool, sched
}
