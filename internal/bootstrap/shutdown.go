package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/BlueprintCost_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server    *server.Server
	Refresher *Refresher
	Storage   *Storage
}

// GracefulShutdown stops the HTTP server first so no request is in flight,
// then stops scheduled reloads and releases storage. Errors are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Refresher != nil {
		slog.Info(LogMsgStoppingRefresher)
		components.Refresher.Stop()
	}

	if components.Storage != nil {
		slog.Info(LogMsgClosingStorage)
		if err := components.Storage.Close(); err != nil {
			slog.Error(LogMsgStorageCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
