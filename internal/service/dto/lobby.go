package dto

import "nebula-protocol-be/internal/service/game"

type CreateLobbyRequest struct {
	LobbyName string             `json:"lobbyName"`
	MapID     string             `json:"mapId"`
	Settings  game.SettingsPatch `json:"settings"`
	game.Profile
}

type CreateLobbyResponse struct {
	LobbyCode string `json:"lobbyCode"`
	HostID    string `json:"hostId"`
}

// LobbySummary 供房间列表使用
type LobbySummary struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	MapID      string     `json:"mapId"`
	Region     string     `json:"region"`
	Phase      game.Phase `json:"phase"`
	HostName   string     `json:"hostName"`
	Players    int        `json:"players"`
	Connected  int        `json:"connected"`
	MaxPlayers int        `json:"maxPlayers"`
	IsPrivate  bool       `json:"isPrivate"`
}

type JoinLobbyResponse struct {
	LobbyCode string `json:"lobbyCode"`
	PlayerID  string `json:"playerId"`
	Reconnect bool   `json:"reconnect"`
}

type GameOverResponse struct {
	MatchID   string `json:"matchId,omitempty"`
	Winner    string `json:"winner"`
	EndReason string `json:"endReason"`
}
