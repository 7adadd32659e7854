package state

import (
	"nebula-protocol-be/internal/archive"
	"nebula-protocol-be/internal/config"
	"nebula-protocol-be/internal/content"
	"nebula-protocol-be/internal/service"
)

type AppState struct {
	Cfg      *config.AppConfig
	Registry *content.Registry
	LobbySvc *service.LobbyService
	Archive  *archive.Store
}

func NewAppState(
	cfg *config.AppConfig,
	registry *content.Registry,
	lobbySvc *service.LobbyService,
	store *archive.Store,
) *AppState {
	return &AppState{
		Cfg:      cfg,
		Registry: registry,
		LobbySvc: lobbySvc,
		Archive:  store,
	}
}
