package http

import (
	"context"
	"fmt"
	"time"

	"nebula-protocol-be/internal/api/http/websocket"
	"nebula-protocol-be/internal/state"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

func NewApp(appState *state.AppState) *iris.Application {
	app := iris.Default()

	if dir := appState.Cfg.StaticDir; dir != "" {
		app.HandleDir(
			"/",
			iris.Dir(dir),
			iris.DirOptions{
				IndexName: "index.html",
				SPA:       true,
				Compress:  true,
			},
		)
	}

	api := app.Party("/api/v1")

	api.Post("/lobbies/create", CreateLobby(appState))
	api.Get("/lobbies", ListLobbies(appState))
	api.Get("/lobbies/{code:string}", GetLobby(appState))
	api.Get("/lobbies/{code:string}/qrcode", LobbyQRCode(appState))

	api.Get("/maps", ListMaps(appState))
	api.Get("/maps/{id:string}", GetMap(appState))
	api.Get("/mods/schema", ModSchema())

	api.Get("/matches", ListMatches(appState))
	api.Get("/matches/{id:string}", GetMatch(appState))

	api.Get("/ws/join", websocket.JoinLobby(appState))

	return app
}

// RunServer 监听直到 ctx 结束，随后优雅关闭
func RunServer(ctx context.Context, appState *state.AppState) error {
	app := NewApp(appState)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
		defer cancel()

		zap.L().Info("正在关闭HTTP服务")
		if err := app.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("关闭HTTP服务失败", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(
		"%s:%d",
		appState.Cfg.Host,
		appState.Cfg.Port,
	)

	return app.Listen(
		addr,
		iris.WithoutInterruptHandler,
		iris.WithoutServerError(iris.ErrServerClosed),
	)
}
