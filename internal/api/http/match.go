package http

import (
	"errors"

	"nebula-protocol-be/internal/archive"
	"nebula-protocol-be/internal/state"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

const (
	DEFAULT_MATCH_LIMIT = 20
	MAX_MATCH_LIMIT     = 100
)

func ListMatches(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		limit := ctx.URLParamIntDefault("limit", DEFAULT_MATCH_LIMIT)
		if limit <= 0 || limit > MAX_MATCH_LIMIT {
			limit = DEFAULT_MATCH_LIMIT
		}

		list, err := appState.Archive.List(limit)
		if err != nil {
			zap.L().Error("读取对局记录失败", zap.Error(err))
			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{
				"error": "读取对局记录失败",
			})
			return
		}

		ctx.JSON(list)
	}
}

func GetMatch(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		rec, err := appState.Archive.Get(ctx.Params().Get("id"))
		if err != nil {
			if errors.Is(err, archive.ErrMatchNotFound) {
				ctx.StatusCode(iris.StatusNotFound)
			} else {
				zap.L().Error("读取对局记录失败", zap.Error(err))
				ctx.StatusCode(iris.StatusInternalServerError)
			}
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(rec)
	}
}
