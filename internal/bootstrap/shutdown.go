package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/SpinWheel_Go/internal/database"
	"github.com/osse101/SpinWheel_Go/internal/live"
	"github.com/osse101/SpinWheel_Go/internal/scheduler"
	"github.com/osse101/SpinWheel_Go/internal/server"
	"github.com/osse101/SpinWheel_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server     *server.Server
	Scheduler  *scheduler.Scheduler
	WorkerPool *worker.Pool
	Hub        *live.Hub
	DBPool     database.Pool
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests, finish in-flight spins)
// 2. Scheduler and worker pool
// 3. Live hub (close client feeds)
// 4. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil || components.WorkerPool != nil {
		slog.Info(LogMsgStoppingBackgroundJobs)
		if components.Scheduler != nil {
			components.Scheduler.Stop()
		}
		if components.WorkerPool != nil {
			components.WorkerPool.Stop()
		}
	}

	if components.Hub != nil {
		slog.Info(LogMsgStoppingLiveHub)
		components.Hub.Stop()
	}

	if components.DBPool != nil {
		slog.Info(LogMsgClosingDatabase)
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
