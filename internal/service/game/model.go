package game

import "nebula-protocol-be/internal/content"

// 游戏顶层阶段
type Phase string

const (
	PHASE_LOBBY   Phase = "LOBBY"
	PHASE_PLAYING Phase = "PLAYING"
	PHASE_MEETING Phase = "MEETING"
	PHASE_ENDED   Phase = "ENDED"
)

// 大厅阶段下的子状态，仅供界面使用
type LobbyMode string

const (
	LOBBY_MAIN_MENU  LobbyMode = "MAIN_MENU"
	LOBBY_HOST_SETUP LobbyMode = "HOST_SETUP"
	LOBBY_BROWSER    LobbyMode = "BROWSER"
	LOBBY_JOIN_CODE  LobbyMode = "JOIN_CODE"
	LOBBY_ROOM       LobbyMode = "LOBBY"
	LOBBY_CUSTOMIZE  LobbyMode = "CUSTOMIZE"
)

const (
	DIR_LEFT  = "left"
	DIR_RIGHT = "right"
)

// 投票时表示弃票
const VOTE_SKIP = "skip"

// 紧急按钮召开会议时 ReportedBodyID 的取值
const REPORT_EMERGENCY = "emergency_button"

type TaskInstance struct {
	ID        string       `json:"id"`
	TaskID    string       `json:"taskId"`
	Completed bool         `json:"completed"`
	Location  content.Vec2 `json:"location"`
}

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	HatID  string `json:"hatId"`
	SkinID string `json:"skinId"`

	Position  content.Vec2 `json:"position"`
	Velocity  content.Vec2 `json:"velocity"`
	Direction string       `json:"direction"`
	IsMoving  bool         `json:"isMoving"`

	RoleID string `json:"roleId"`
	IsDead bool   `json:"isDead"`
	// 尸体已被报告或已在会议后清理
	BodyReported bool `json:"bodyReported,omitempty"`

	IsInVent bool   `json:"isInVent"`
	VentID   string `json:"ventId,omitempty"`

	Tasks      []TaskInstance `json:"tasks"`
	ActiveTask string         `json:"activeTask,omitempty"`

	HasVoted              bool    `json:"hasVoted"`
	KillTimer             float64 `json:"killTimer"`
	EmergencyMeetingsLeft int     `json:"emergencyMeetingsLeft"`

	IsHost  bool `json:"isHost"`
	IsReady bool `json:"isReady"`
}

func (p Player) clone() Player {
	if p.Tasks != nil {
		p.Tasks = append([]TaskInstance(nil), p.Tasks...)
	}
	return p
}

// 已完成任务数与总数
func (p Player) TaskProgress() (done, total int) {
	for _, t := range p.Tasks {
		if t.Completed {
			done++
		}
	}
	return done, len(p.Tasks)
}

type ChatMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
	Color      string `json:"color"`
}

type ModRegistry struct {
	Roles map[string]content.RoleDefinition `json:"roles"`
	Tasks map[string]content.TaskDefinition `json:"tasks"`
	// 已加载的模组 ID，按加载顺序
	Loaded []string `json:"loaded,omitempty"`
}

func (m ModRegistry) clone() ModRegistry {
	out := ModRegistry{
		Roles: make(map[string]content.RoleDefinition, len(m.Roles)),
		Tasks: make(map[string]content.TaskDefinition, len(m.Tasks)),
	}

	for k, v := range m.Roles {
		out.Roles[k] = v
	}
	for k, v := range m.Tasks {
		out.Tasks[k] = v
	}
	if m.Loaded != nil {
		out.Loaded = append([]string(nil), m.Loaded...)
	}

	return out
}

// 放逐结果，ConfirmEjects 关闭时不公开角色
type Ejection struct {
	PlayerID string       `json:"playerId,omitempty"`
	Name     string       `json:"name,omitempty"`
	RoleID   string       `json:"roleId,omitempty"`
	Team     content.Team `json:"team,omitempty"`
}

type GameState struct {
	Phase     Phase     `json:"phase"`
	LobbyMode LobbyMode `json:"lobbyMode"`
	LobbyCode string    `json:"lobbyCode"`

	Players    []Player `json:"players"`
	MyPlayerID string   `json:"myPlayerId"`

	MeetingTimer   float64           `json:"meetingTimer"`
	ReportedBodyID string            `json:"deadBodyReported,omitempty"`
	Votes          map[string]string `json:"votes"`
	ChatMessages   []ChatMessage     `json:"chatMessages"`
	LastEjection   *Ejection         `json:"lastEjection,omitempty"`

	ModRegistry ModRegistry `json:"modRegistry"`

	ActiveMapID string              `json:"activeMapId"`
	Map         []content.MapObject `json:"map"`

	Settings GameSettings `json:"settings"`
	Logs     []string     `json:"logs"`

	Systems           SystemState  `json:"systems"`
	ActiveSabotage    SabotageType `json:"activeSabotage,omitempty"`
	EmergencyCooldown float64      `json:"emergencyCooldown"`

	Winner    content.Team `json:"winner,omitempty"`
	EndReason string       `json:"endReason,omitempty"`
}

// Clone 深拷贝整个状态，转换函数只在副本上修改
func (s *GameState) Clone() *GameState {
	out := *s

	out.Players = make([]Player, 0, len(s.Players))
	for _, p := range s.Players {
		out.Players = append(out.Players, p.clone())
	}

	out.Votes = make(map[string]string, len(s.Votes))
	for k, v := range s.Votes {
		out.Votes[k] = v
	}

	if s.ChatMessages != nil {
		out.ChatMessages = append([]ChatMessage(nil), s.ChatMessages...)
	}
	if s.Logs != nil {
		out.Logs = append([]string(nil), s.Logs...)
	}
	if s.LastEjection != nil {
		e := *s.LastEjection
		out.LastEjection = &e
	}

	out.Map = make([]content.MapObject, 0, len(s.Map))
	for _, o := range s.Map {
		out.Map = append(out.Map, o.Clone())
	}

	out.ModRegistry = s.ModRegistry.clone()
	out.Settings = s.Settings.clone()
	out.Systems = s.Systems.clone()

	return &out
}

func (s *GameState) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *GameState) FindPlayer(id string) (Player, bool) {
	if i := s.PlayerIndex(id); i >= 0 {
		return s.Players[i], true
	}
	return Player{}, false
}

func (s *GameState) FindObject(id string) (content.MapObject, bool) {
	if i := s.objectIndex(id); i >= 0 {
		return s.Map[i], true
	}
	return content.MapObject{}, false
}

func (s *GameState) objectIndex(id string) int {
	for i := range s.Map {
		if s.Map[i].ID == id {
			return i
		}
	}
	return -1
}

// RoleOf 查找玩家角色定义，未知角色按基础船员处理
func (s *GameState) RoleOf(p Player) content.RoleDefinition {
	if r, ok := s.ModRegistry.Roles[p.RoleID]; ok {
		return r
	}
	return content.RoleDefinition{ID: p.RoleID, Team: content.TEAM_INITIATIVE, VisionRadius: 1}
}

func (s *GameState) TeamOf(p Player) content.Team {
	return s.RoleOf(p).Team
}

// AliveCounts 返回存活的船员数与内鬼数，中立角色计入船员
func (s *GameState) AliveCounts() (crew, impostors int) {
	for _, p := range s.Players {
		if p.IsDead {
			continue
		}
		if s.TeamOf(p) == content.TEAM_GLITCH {
			impostors++
		} else {
			crew++
		}
	}
	return crew, impostors
}

func (s *GameState) Host() (Player, bool) {
	for _, p := range s.Players {
		if p.IsHost {
			return p, true
		}
	}
	return Player{}, false
}

func (s *GameState) appendLog(line string) {
	s.Logs = append(s.Logs, line)
	if len(s.Logs) > MAX_LOG_LINES {
		s.Logs = s.Logs[len(s.Logs)-MAX_LOG_LINES:]
	}
}
