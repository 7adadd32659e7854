package game

import "nebula-protocol-be/internal/content"

type TaskCounts struct {
	Short   int `json:"short"`
	Long    int `json:"long"`
	Complex int `json:"complex"`
}

func (c TaskCounts) Total() int {
	return max(c.Short, 0) + max(c.Long, 0) + max(c.Complex, 0)
}

type RoleSetting struct {
	ID      string  `json:"id"`
	Enabled bool    `json:"enabled"`
	Chance  float64 `json:"chance"` // 0-100
	Count   int     `json:"count"`
}

type GameSettings struct {
	LobbyName     string `json:"lobbyName"`
	MaxPlayers    int    `json:"maxPlayers"`
	ImpostorCount int    `json:"impostorCount"`
	MapID         string `json:"mapId"`
	Region        string `json:"region"`
	IsPrivate     bool   `json:"isPrivate"`

	PlayerSpeed      float64    `json:"playerSpeed"`
	VisionMultiplier float64    `json:"visionMultiplier"`
	DiscussionTime   float64    `json:"discussionTime"`
	VotingTime       float64    `json:"votingTime"`
	KillCooldown     float64    `json:"killCooldown"`
	ConfirmEjects    bool       `json:"confirmEjects"`
	TaskCounts       TaskCounts `json:"taskCounts"`

	RoleSettings map[string]RoleSetting `json:"roleSettings"`
}

func (gs GameSettings) clone() GameSettings {
	roles := make(map[string]RoleSetting, len(gs.RoleSettings))
	for k, v := range gs.RoleSettings {
		roles[k] = v
	}
	gs.RoleSettings = roles
	return gs
}

func DefaultSettings() GameSettings {
	return GameSettings{
		LobbyName:     "Command Center",
		MaxPlayers:    10,
		ImpostorCount: 2,
		MapID:         content.DEFAULT_MAP_ID,
		Region:        "Automatic",

		PlayerSpeed:      7,
		VisionMultiplier: 1.0,
		DiscussionTime:   15,
		VotingTime:       30,
		KillCooldown:     25,
		ConfirmEjects:    true,
		TaskCounts:       TaskCounts{Short: 2, Long: 1, Complex: 1},

		RoleSettings: map[string]RoleSetting{
			content.ROLE_ENGINEER:  {ID: content.ROLE_ENGINEER, Enabled: true, Chance: 100, Count: 1},
			content.ROLE_MEDIC:     {ID: content.ROLE_MEDIC, Enabled: true, Chance: 50, Count: 1},
			content.ROLE_DETECTIVE: {ID: content.ROLE_DETECTIVE, Enabled: true, Chance: 50, Count: 1},
			content.ROLE_PHANTOM:   {ID: content.ROLE_PHANTOM, Enabled: true, Chance: 50, Count: 1},
		},
	}
}

// SettingsPatch 是设置的部分更新，nil 字段保持原值。
// RoleSettings 按角色 ID 合并。
type SettingsPatch struct {
	LobbyName     *string `json:"lobbyName,omitempty"`
	MaxPlayers    *int    `json:"maxPlayers,omitempty"`
	ImpostorCount *int    `json:"impostorCount,omitempty"`
	MapID         *string `json:"mapId,omitempty"`
	Region        *string `json:"region,omitempty"`
	IsPrivate     *bool   `json:"isPrivate,omitempty"`

	PlayerSpeed      *float64    `json:"playerSpeed,omitempty"`
	VisionMultiplier *float64    `json:"visionMultiplier,omitempty"`
	DiscussionTime   *float64    `json:"discussionTime,omitempty"`
	VotingTime       *float64    `json:"votingTime,omitempty"`
	KillCooldown     *float64    `json:"killCooldown,omitempty"`
	ConfirmEjects    *bool       `json:"confirmEjects,omitempty"`
	TaskCounts       *TaskCounts `json:"taskCounts,omitempty"`

	RoleSettings map[string]RoleSetting `json:"roleSettings,omitempty"`
}

func (p SettingsPatch) apply(gs GameSettings) GameSettings {
	gs = gs.clone()

	setIf(&gs.LobbyName, p.LobbyName)
	setIf(&gs.MaxPlayers, p.MaxPlayers)
	setIf(&gs.ImpostorCount, p.ImpostorCount)
	setIf(&gs.MapID, p.MapID)
	setIf(&gs.Region, p.Region)
	setIf(&gs.IsPrivate, p.IsPrivate)
	setIf(&gs.PlayerSpeed, p.PlayerSpeed)
	setIf(&gs.VisionMultiplier, p.VisionMultiplier)
	setIf(&gs.DiscussionTime, p.DiscussionTime)
	setIf(&gs.VotingTime, p.VotingTime)
	setIf(&gs.KillCooldown, p.KillCooldown)
	setIf(&gs.ConfirmEjects, p.ConfirmEjects)
	setIf(&gs.TaskCounts, p.TaskCounts)

	for id, rs := range p.RoleSettings {
		if rs.ID == "" {
			rs.ID = id
		}
		rs.Chance = min(max(rs.Chance, 0), 100)
		rs.Count = max(rs.Count, 0)
		gs.RoleSettings[id] = rs
	}

	return gs.clamp()
}

// clamp 倒计时与数量不能为负，否则计时会越过零点
func (gs GameSettings) clamp() GameSettings {
	gs.MaxPlayers = max(gs.MaxPlayers, 1)
	gs.ImpostorCount = max(gs.ImpostorCount, 0)

	gs.PlayerSpeed = max(gs.PlayerSpeed, 0)
	gs.VisionMultiplier = max(gs.VisionMultiplier, 0)
	gs.DiscussionTime = max(gs.DiscussionTime, 0)
	gs.VotingTime = max(gs.VotingTime, 0)
	gs.KillCooldown = max(gs.KillCooldown, 0)

	gs.TaskCounts.Short = max(gs.TaskCounts.Short, 0)
	gs.TaskCounts.Long = max(gs.TaskCounts.Long, 0)
	gs.TaskCounts.Complex = max(gs.TaskCounts.Complex, 0)

	return gs
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
