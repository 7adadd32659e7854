package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nebula-protocol-be/internal/api/http"
	"nebula-protocol-be/internal/archive"
	"nebula-protocol-be/internal/config"
	"nebula-protocol-be/internal/content"
	"nebula-protocol-be/internal/logger"
	"nebula-protocol-be/internal/service"
	"nebula-protocol-be/internal/state"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)
	defer zap.L().Sync()

	// 对局归档
	store, err := archive.Open(cfg.ArchivePath, cfg.ArchiveCacheSize)
	if err != nil {
		zap.L().Fatal("打开对局归档失败", zap.String("path", cfg.ArchivePath), zap.Error(err))
	}
	defer store.Close()

	registry := content.NewRegistry()

	lobbySvc := service.NewLobbyService(
		registry,
		service.LobbyOptions{
			Machine: service.MachineOptions{
				TickInterval:   time.Duration(cfg.TickIntervalMs) * time.Millisecond,
				BroadcastEvery: cfg.BroadcastEvery,
				Recorder:       store,
			},
			Seed:        cfg.Seed,
			IdleTimeout: time.Duration(cfg.LobbyIdleTimeoutSec) * time.Second,
			MaxLobbies:  cfg.MaxLobbies,
		},
	)
	defer lobbySvc.Close()

	// 组装应用状态
	appState := state.NewAppState(cfg, registry, lobbySvc, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// 启动服务器
	g.Go(func() error {
		return http.RunServer(gctx, appState)
	})
	g.Go(func() error {
		return lobbySvc.RunCleanup(gctx)
	})

	zap.L().Info(
		"服务已启动",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("maps", len(registry.ListMaps())),
	)

	if err := g.Wait(); err != nil {
		zap.L().Error("服务异常退出", zap.Error(err))
	}

	zap.L().Info("服务已停止")
}
