package http

import (
	"sync"

	"nebula-protocol-be/internal/content"
	"nebula-protocol-be/internal/state"

	"github.com/invopop/jsonschema"
	"github.com/kataras/iris/v12"
)

type mapSummary struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Theme       content.MapTheme `json:"theme"`
}

func ListMaps(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		maps := appState.Registry.ListMaps()

		list := make([]mapSummary, 0, len(maps))
		for _, m := range maps {
			list = append(list, mapSummary{
				ID:          m.ID,
				Name:        m.Name,
				Description: m.Description,
				Theme:       m.Theme,
			})
		}

		ctx.JSON(list)
	}
}

func GetMap(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		m, ok := appState.Registry.GetMap(ctx.Params().Get("id"))
		if !ok {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{
				"error": "地图不存在",
			})
			return
		}

		ctx.JSON(m)
	}
}

// ModSchema 返回 LOAD_MOD 负载的 JSON Schema，供外部模组生成器校验
func ModSchema() iris.Handler {
	return func(ctx iris.Context) {
		ctx.JSON(modSchema())
	}
}

var modSchema = sync.OnceValue(func() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.Reflect(new(content.ModPackage))
	schema.Title = "Nebula Protocol Mod Package"
	schema.Description = "Roles and tasks merged into the lobby registry by LOAD_MOD"

	return schema
})
