package game

import "nebula-protocol-be/internal/content"

// 动作类型
const (
	ACT_SET_LOBBY_MODE         = "SET_LOBBY_MODE"
	ACT_CREATE_LOBBY           = "CREATE_LOBBY"
	ACT_JOIN_LOBBY             = "JOIN_LOBBY"
	ACT_LEAVE_LOBBY            = "LEAVE_LOBBY"
	ACT_UPDATE_SETTINGS        = "UPDATE_SETTINGS"
	ACT_UPDATE_COSMETICS       = "UPDATE_COSMETICS"
	ACT_SET_READY              = "SET_READY"
	ACT_KICK_PLAYER            = "KICK_PLAYER"
	ACT_SET_MAP                = "SET_MAP"
	ACT_START_GAME             = "START_GAME"
	ACT_RETURN_TO_LOBBY        = "RETURN_TO_LOBBY"
	ACT_MOVE_PLAYER            = "MOVE_PLAYER"
	ACT_KILL_PLAYER            = "KILL_PLAYER"
	ACT_REPORT_BODY            = "REPORT_BODY"
	ACT_CALL_EMERGENCY_MEETING = "CALL_EMERGENCY_MEETING"
	ACT_VOTE                   = "VOTE"
	ACT_END_MEETING            = "END_MEETING"
	ACT_SEND_CHAT              = "SEND_CHAT"
	ACT_LOAD_MOD               = "LOAD_MOD"
	ACT_OPEN_TASK              = "OPEN_TASK"
	ACT_CLOSE_TASK             = "CLOSE_TASK"
	ACT_COMPLETE_TASK          = "COMPLETE_TASK"
	ACT_TOGGLE_DOOR            = "TOGGLE_DOOR"
	ACT_SABOTAGE_DOORS         = "SABOTAGE_DOORS"
	ACT_ENTER_VENT             = "ENTER_VENT"
	ACT_EXIT_VENT              = "EXIT_VENT"
	ACT_TRIGGER_SABOTAGE       = "TRIGGER_SABOTAGE"
	ACT_FIX_SABOTAGE           = "FIX_SABOTAGE"
	ACT_TICK                   = "TICK"
	ACT_SYNC_STATE             = "SYNC_STATE"
	ACT_REQUEST_STATE          = "REQUEST_STATE"
)

// Action 是状态机唯一的输入
type Action interface {
	ActionType() string
}

type Profile struct {
	Name   string `json:"playerName"`
	Color  string `json:"color"`
	HatID  string `json:"hatId,omitempty"`
	SkinID string `json:"skinId,omitempty"`
}

type SetLobbyMode struct {
	Mode LobbyMode `json:"mode"`
}

// CreateLobby 的房主资料与其它字段平铺在同一层
type CreateLobby struct {
	Name string `json:"name"`
	// 为空或未知时使用默认地图
	MapID    string        `json:"mapId,omitempty"`
	Settings SettingsPatch `json:"settings"`
	Profile
}

// JoinLobby 的 PlayerID 为空时由引擎生成
type JoinLobby struct {
	Code     string `json:"code"`
	PlayerID string `json:"playerId,omitempty"`
	Profile
}

type LeaveLobby struct {
	PlayerID string `json:"playerId"`
}

type UpdateSettings struct {
	Patch SettingsPatch `json:"settings"`
}

type UpdateCosmetics struct {
	PlayerID string  `json:"playerId"`
	Color    *string `json:"color,omitempty"`
	HatID    *string `json:"hatId,omitempty"`
	SkinID   *string `json:"skinId,omitempty"`
}

type SetReady struct {
	PlayerID string `json:"playerId"`
	IsReady  bool   `json:"isReady"`
}

type KickPlayer struct {
	TargetID string `json:"targetId"`
}

type SetMap struct {
	MapID string `json:"mapId"`
}

type StartGame struct{}

type ReturnToLobby struct{}

type MovePlayer struct {
	PlayerID  string       `json:"id"`
	Position  content.Vec2 `json:"position"`
	Direction string       `json:"direction"`
	IsMoving  bool         `json:"isMoving"`
}

type KillPlayer struct {
	KillerID string `json:"killerId"`
	TargetID string `json:"targetId"`
}

type ReportBody struct {
	ReporterID string `json:"reporterId"`
	BodyID     string `json:"bodyId"`
}

type CallEmergencyMeeting struct {
	PlayerID string `json:"playerId"`
}

// Vote 的 TargetID 为玩家 ID 或 VOTE_SKIP
type Vote struct {
	VoterID  string `json:"voterId"`
	TargetID string `json:"targetId"`
}

// EndMeeting 的 EjectedID 为空表示无人被放逐
type EndMeeting struct {
	EjectedID string `json:"ejectedId"`
}

type SendChat struct {
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type LoadMod struct {
	Package content.ModPackage `json:"package"`
}

type OpenTask struct {
	PlayerID       string `json:"playerId"`
	TaskInstanceID string `json:"taskInstanceId"`
}

type CloseTask struct {
	PlayerID string `json:"playerId"`
}

type CompleteTask struct {
	PlayerID       string `json:"playerId"`
	TaskInstanceID string `json:"taskInstanceId"`
}

type ToggleDoor struct {
	DoorID string `json:"doorId"`
}

type SabotageDoors struct {
	DoorIDs []string `json:"doorIds"`
}

type EnterVent struct {
	PlayerID string `json:"playerId"`
	VentID   string `json:"ventId"`
}

type ExitVent struct {
	PlayerID string `json:"playerId"`
}

type TriggerSabotage struct {
	Type SabotageType `json:"type"`
}

type FixSabotage struct {
	Type      SabotageType `json:"type"`
	StationID string       `json:"stationId,omitempty"`
}

// Tick 的 Dt 单位为毫秒
type Tick struct {
	Dt float64 `json:"dt"`
}

type SyncState struct {
	State *GameState `json:"state"`
}

type RequestState struct{}

func (SetLobbyMode) ActionType() string         { return ACT_SET_LOBBY_MODE }
func (CreateLobby) ActionType() string          { return ACT_CREATE_LOBBY }
func (JoinLobby) ActionType() string            { return ACT_JOIN_LOBBY }
func (LeaveLobby) ActionType() string           { return ACT_LEAVE_LOBBY }
func (UpdateSettings) ActionType() string       { return ACT_UPDATE_SETTINGS }
func (UpdateCosmetics) ActionType() string      { return ACT_UPDATE_COSMETICS }
func (SetReady) ActionType() string             { return ACT_SET_READY }
func (KickPlayer) ActionType() string           { return ACT_KICK_PLAYER }
func (SetMap) ActionType() string               { return ACT_SET_MAP }
func (StartGame) ActionType() string            { return ACT_START_GAME }
func (ReturnToLobby) ActionType() string        { return ACT_RETURN_TO_LOBBY }
func (MovePlayer) ActionType() string           { return ACT_MOVE_PLAYER }
func (KillPlayer) ActionType() string           { return ACT_KILL_PLAYER }
func (ReportBody) ActionType() string           { return ACT_REPORT_BODY }
func (CallEmergencyMeeting) ActionType() string { return ACT_CALL_EMERGENCY_MEETING }
func (Vote) ActionType() string                 { return ACT_VOTE }
func (EndMeeting) ActionType() string           { return ACT_END_MEETING }
func (SendChat) ActionType() string             { return ACT_SEND_CHAT }
func (LoadMod) ActionType() string              { return ACT_LOAD_MOD }
func (OpenTask) ActionType() string             { return ACT_OPEN_TASK }
func (CloseTask) ActionType() string            { return ACT_CLOSE_TASK }
func (CompleteTask) ActionType() string         { return ACT_COMPLETE_TASK }
func (ToggleDoor) ActionType() string           { return ACT_TOGGLE_DOOR }
func (SabotageDoors) ActionType() string        { return ACT_SABOTAGE_DOORS }
func (EnterVent) ActionType() string            { return ACT_ENTER_VENT }
func (ExitVent) ActionType() string             { return ACT_EXIT_VENT }
func (TriggerSabotage) ActionType() string      { return ACT_TRIGGER_SABOTAGE }
func (FixSabotage) ActionType() string          { return ACT_FIX_SABOTAGE }
func (Tick) ActionType() string                 { return ACT_TICK }
func (SyncState) ActionType() string            { return ACT_SYNC_STATE }
func (RequestState) ActionType() string         { return ACT_REQUEST_STATE }
