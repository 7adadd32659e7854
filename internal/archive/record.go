package archive

import (
	"time"

	"nebula-protocol-be/internal/content"
	"nebula-protocol-be/internal/service/game"
)

type MatchPlayer struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Color      string       `json:"color"`
	RoleID     string       `json:"roleId"`
	Team       content.Team `json:"team"`
	IsDead     bool         `json:"isDead"`
	TasksDone  int          `json:"tasksDone"`
	TasksTotal int          `json:"tasksTotal"`
}

// MatchRecord 是一局结束后的存档
type MatchRecord struct {
	ID        string        `json:"id"`
	LobbyCode string        `json:"lobbyCode"`
	LobbyName string        `json:"lobbyName"`
	MapID     string        `json:"mapId"`
	Winner    content.Team  `json:"winner"`
	EndReason string        `json:"endReason"`
	StartedAt time.Time     `json:"startedAt"`
	EndedAt   time.Time     `json:"endedAt"`
	Players   []MatchPlayer `json:"players"`
}

// NewMatchRecord 从已结束的对局状态生成存档，ID 按时间有序
func NewMatchRecord(s *game.GameState, startedAt, endedAt time.Time) MatchRecord {
	rec := MatchRecord{
		ID:        game.GenID(),
		LobbyCode: s.LobbyCode,
		LobbyName: s.Settings.LobbyName,
		MapID:     s.ActiveMapID,
		Winner:    s.Winner,
		EndReason: s.EndReason,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Players:   make([]MatchPlayer, 0, len(s.Players)),
	}

	for _, p := range s.Players {
		done, total := p.TaskProgress()
		rec.Players = append(rec.Players, MatchPlayer{
			ID:         p.ID,
			Name:       p.Name,
			Color:      p.Color,
			RoleID:     p.RoleID,
			Team:       s.TeamOf(p),
			IsDead:     p.IsDead,
			TasksDone:  done,
			TasksTotal: total,
		})
	}

	return rec
}
