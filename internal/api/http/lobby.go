package http

import (
	"errors"
	"fmt"
	"net/url"

	"nebula-protocol-be/internal/service"
	"nebula-protocol-be/internal/service/dto"
	"nebula-protocol-be/internal/state"

	"github.com/kataras/iris/v12"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const QRCODE_SIZE = 256

func CreateLobby(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.CreateLobbyRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": service.ErrInvalidRequest.Error(),
			})
			return
		}

		resp, err := appState.LobbySvc.CreateLobby(req)
		if err != nil {
			ctx.StatusCode(statusOf(err))
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(resp)
	}
}

func ListLobbies(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		ctx.JSON(appState.LobbySvc.List())
	}
}

func GetLobby(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		sum, err := appState.LobbySvc.Lookup(ctx.Params().Get("code"))
		if err != nil {
			ctx.StatusCode(statusOf(err))
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(sum)
	}
}

// LobbyQRCode 返回加入链接的二维码 PNG
func LobbyQRCode(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		sum, err := appState.LobbySvc.Lookup(ctx.Params().Get("code"))
		if err != nil {
			ctx.StatusCode(statusOf(err))
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		png, err := qrcode.Encode(joinURL(appState, ctx, sum.Code), qrcode.Medium, QRCODE_SIZE)
		if err != nil {
			zap.L().Error("生成二维码失败", zap.String("lobby_code", sum.Code), zap.Error(err))
			ctx.StatusCode(iris.StatusInternalServerError)
			return
		}

		ctx.ContentType("image/png")
		ctx.Write(png)
	}
}

// 未配置 public_url 时按请求的 Host 拼出加入链接
func joinURL(appState *state.AppState, ctx iris.Context, code string) string {
	base := appState.Cfg.PublicURL
	if base == "" {
		scheme := "http"
		if ctx.Request().TLS != nil {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, ctx.Host())
	}

	return fmt.Sprintf("%s/?join=%s", base, url.QueryEscape(code))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrLobbyNotFound):
		return iris.StatusNotFound
	case errors.Is(err, service.ErrTooManyLobbies), errors.Is(err, service.ErrLobbyBusy):
		return iris.StatusServiceUnavailable
	case errors.Is(err, service.ErrLobbyFull), errors.Is(err, service.ErrLobbyClosed):
		return iris.StatusConflict
	case errors.Is(err, service.ErrForbidden):
		return iris.StatusForbidden
	}
	return iris.StatusBadRequest
}
