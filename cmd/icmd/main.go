// icmd is the compositor-side IPC control-plane daemon: it listens on
// a Unix domain socket, dispatches the wire protocol, and mirrors the
// buffer registry into a scene graph every output frame.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/helixml/icm/pkg/config"
	"github.com/helixml/icm/pkg/scene"
	"github.com/helixml/icm/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load config", "err", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Diagnostics.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The real scene graph (wlroots' scene_buffer in the compositor
	// this protocol was extracted from) lives on the host side of the
	// process boundary and is out of this daemon's scope; a deployment
	// embedding a real compositor replaces host with its own
	// scene.Host binding before calling server.New.
	host := scene.NewHeadlessHost()

	path := cfg.Socket.Resolve()
	srv := server.New(cfg, logger, host)

	configDir := cfg.Reload.Resolve()
	if watcher, err := config.NewFileWatcher(configDir); err != nil {
		logger.Warn("config hot-reload disabled", "err", err)
	} else {
		watcher.Start(ctx)
		srv.WatchConfig(watcher.Events())
		logger.Info("watching config dir for screen-effect and decoration reloads", "dir", configDir)
	}

	logger.Info("starting icmd", "socket", path)

	if err := srv.Run(ctx, path); err != nil && err != context.Canceled {
		logger.Error("icmd exited with error", "err", err)
		os.Exit(1)
	}

	logger.Info("icmd shutdown complete")
}
