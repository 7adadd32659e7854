package game

import (
	"fmt"
	"strings"

	"nebula-protocol-be/internal/content"
)

func (e *Engine) setLobbyMode(s *GameState, a SetLobbyMode) *GameState {
	if s.Phase != PHASE_LOBBY || a.Mode == "" || a.Mode == s.LobbyMode {
		return s
	}

	next := s.Clone()
	next.LobbyMode = a.Mode
	return next
}

func (e *Engine) newPlayer(id string, profile Profile, taken []Player, isHost bool) Player {
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = fmt.Sprintf("Operative %d", len(taken)+1)
	}

	color := profile.Color
	if color == "" {
		color = freeColor(taken)
	}

	hat := profile.HatID
	if !content.IsHat(hat) {
		hat = content.DEFAULT_HAT
	}
	skin := profile.SkinID
	if !content.IsSkin(skin) {
		skin = content.DEFAULT_SKIN
	}

	return Player{
		ID:                    id,
		Name:                  name,
		Color:                 color,
		HatID:                 hat,
		SkinID:                skin,
		Direction:             DIR_RIGHT,
		RoleID:                content.ROLE_TECHNICIAN,
		Tasks:                 []TaskInstance{},
		EmergencyMeetingsLeft: EMERGENCY_MEETINGS_PER_GAME,
		IsHost:                isHost,
	}
}

// 第一个未被占用的颜色，全部占用时按人数轮换
func freeColor(players []Player) string {
	used := make(map[string]bool, len(players))
	for _, p := range players {
		used[p.Color] = true
	}
	for _, c := range content.Colors {
		if !used[c] {
			return c
		}
	}
	return content.Colors[len(players)%len(content.Colors)]
}

func (e *Engine) createLobby(s *GameState, a CreateLobby) *GameState {
	if s.Phase != PHASE_LOBBY {
		return s
	}

	settings := a.Settings.apply(DefaultSettings())
	if name := strings.TrimSpace(a.Name); name != "" {
		settings.LobbyName = name
	}
	if a.MapID != "" {
		settings.MapID = a.MapID
	}
	if _, ok := e.registry.GetMap(settings.MapID); !ok {
		settings.MapID = e.registry.DefaultMapID()
	}

	next := s.Clone()
	next.Phase = PHASE_LOBBY
	next.LobbyMode = LOBBY_ROOM
	next.LobbyCode = e.rand.code(LOBBY_CODE_LENGTH)
	next.Settings = settings

	host := e.newPlayer(e.newID(), a.Profile, nil, true)
	next.Players = []Player{host}
	next.MyPlayerID = host.ID
	e.loadMap(next, settings.MapID)

	next.MeetingTimer = 0
	next.ReportedBodyID = ""
	next.Votes = map[string]string{}
	next.ChatMessages = []ChatMessage{}
	next.LastEjection = nil
	next.Systems = StableSystems(0)
	next.ActiveSabotage = ""
	next.EmergencyCooldown = 0
	next.Winner = ""
	next.EndReason = ""
	next.Logs = []string{"Lobby created."}

	return next
}

// joinLobby 校验房间码与人数上限。指定了 PlayerID 且该玩家已存在时视为重复投递，不做修改。
func (e *Engine) joinLobby(s *GameState, a JoinLobby) *GameState {
	if s.Phase != PHASE_LOBBY || s.LobbyCode == "" {
		return s
	}
	if NormalizeCode(a.Code) != s.LobbyCode {
		return s
	}
	if s.Settings.MaxPlayers > 0 && len(s.Players) >= s.Settings.MaxPlayers {
		return s
	}
	if a.PlayerID != "" && s.PlayerIndex(a.PlayerID) >= 0 {
		return s
	}

	id := a.PlayerID
	if id == "" {
		id = e.newID()
	}

	next := s.Clone()
	p := e.newPlayer(id, a.Profile, next.Players, false)
	p.Position = e.spawnPoint(next)
	next.Players = append(next.Players, p)
	next.LobbyMode = LOBBY_ROOM
	if next.MyPlayerID == "" {
		next.MyPlayerID = id
	}
	next.appendLog(fmt.Sprintf("%s joined.", p.Name))

	return next
}

// leaveLobby 只在大厅阶段移除玩家，对局中离开的玩家保留在名单中以便重连
func (e *Engine) leaveLobby(s *GameState, a LeaveLobby) *GameState {
	if s.Phase != PHASE_LOBBY {
		return s
	}

	idx := s.PlayerIndex(a.PlayerID)
	if idx < 0 {
		return s
	}

	next := s.Clone()
	left := next.Players[idx]
	next.Players = append(next.Players[:idx], next.Players[idx+1:]...)

	if left.IsHost && len(next.Players) > 0 {
		next.Players[0].IsHost = true
		next.appendLog(fmt.Sprintf("%s is now the host.", next.Players[0].Name))
	}
	if next.MyPlayerID == left.ID {
		next.MyPlayerID = ""
	}
	next.appendLog(fmt.Sprintf("%s left.", left.Name))

	return next
}

func (e *Engine) updateSettings(s *GameState, a UpdateSettings) *GameState {
	if s.Phase != PHASE_LOBBY {
		return s
	}

	next := s.Clone()
	next.Settings = a.Patch.apply(s.Settings)

	if next.Settings.MapID != s.ActiveMapID {
		if _, ok := e.registry.GetMap(next.Settings.MapID); !ok {
			next.Settings.MapID = s.ActiveMapID
		} else {
			e.loadMap(next, next.Settings.MapID)
		}
	}

	return next
}

func (e *Engine) updateCosmetics(s *GameState, a UpdateCosmetics) *GameState {
	if s.Phase != PHASE_LOBBY {
		return s
	}

	idx := s.PlayerIndex(a.PlayerID)
	if idx < 0 {
		return s
	}

	next := s.Clone()
	p := &next.Players[idx]
	if a.Color != nil && *a.Color != "" {
		p.Color = *a.Color
	}
	if a.HatID != nil && content.IsHat(*a.HatID) {
		p.HatID = *a.HatID
	}
	if a.SkinID != nil && content.IsSkin(*a.SkinID) {
		p.SkinID = *a.SkinID
	}

	return next
}

func (e *Engine) setReady(s *GameState, a SetReady) *GameState {
	if s.Phase != PHASE_LOBBY {
		return s
	}

	idx := s.PlayerIndex(a.PlayerID)
	if idx < 0 || s.Players[idx].IsReady == a.IsReady {
		return s
	}

	next := s.Clone()
	next.Players[idx].IsReady = a.IsReady
	return next
}

func (e *Engine) kickPlayer(s *GameState, a KickPlayer) *GameState {
	if s.Phase != PHASE_LOBBY {
		return s
	}

	idx := s.PlayerIndex(a.TargetID)
	if idx < 0 || s.Players[idx].IsHost {
		return s
	}

	next := s.Clone()
	kicked := next.Players[idx]
	next.Players = append(next.Players[:idx], next.Players[idx+1:]...)
	if next.MyPlayerID == kicked.ID {
		next.MyPlayerID = ""
	}
	next.appendLog(fmt.Sprintf("%s was removed from the lobby.", kicked.Name))

	return next
}

func (e *Engine) setMap(s *GameState, a SetMap) *GameState {
	if s.Phase != PHASE_LOBBY {
		return s
	}
	if _, ok := e.registry.GetMap(a.MapID); !ok {
		return s
	}

	next := s.Clone()
	e.loadMap(next, a.MapID)
	return next
}

// returnToLobby 清空本局数据，保留名单、设置与已加载的模组
func (e *Engine) returnToLobby(s *GameState) *GameState {
	if s.Phase == PHASE_LOBBY {
		return s
	}

	next := s.Clone()
	next.Phase = PHASE_LOBBY
	next.LobbyMode = LOBBY_ROOM
	next.MeetingTimer = 0
	next.ReportedBodyID = ""
	next.Votes = map[string]string{}
	next.ChatMessages = []ChatMessage{}
	next.LastEjection = nil
	next.Systems = StableSystems(0)
	next.ActiveSabotage = ""
	next.EmergencyCooldown = 0
	next.Winner = ""
	next.EndReason = ""

	m := e.registry.MapOrDefault(next.ActiveMapID)
	next.Map = m.Objects

	for i := range next.Players {
		p := &next.Players[i]
		p.Position = m.SpawnPoint
		p.Velocity = content.Vec2{}
		p.IsMoving = false
		p.RoleID = content.ROLE_TECHNICIAN
		p.IsDead = false
		p.BodyReported = false
		p.IsInVent = false
		p.VentID = ""
		p.Tasks = []TaskInstance{}
		p.ActiveTask = ""
		p.HasVoted = false
		p.IsReady = false
		p.KillTimer = 0
		p.EmergencyMeetingsLeft = EMERGENCY_MEETINGS_PER_GAME
	}

	next.appendLog("Returned to lobby.")
	return next
}
