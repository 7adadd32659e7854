package game

import "nebula-protocol-be/internal/content"

// Engine 持有纯转换函数所需的外部依赖：地图目录、随机源与 ID 生成器。
// Reduce 不做任何 I/O，也不读取时钟。
type Engine struct {
	registry *content.Registry
	rand     *Rand
	newID    func() string
}

type Option func(*Engine)

// WithSeed 固定随机种子，相同的动作序列得到相同的结果
func WithSeed(seed uint32) Option {
	return func(e *Engine) {
		e.rand = NewRand(seed)
	}
}

// WithIDSource 替换玩家与聊天消息的 ID 生成器
func WithIDSource(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

func WithRegistry(r *content.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry: content.NewRegistry(),
		rand:     NewRand(0),
		newID:    genShortID,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) Registry() *content.Registry {
	return e.registry
}

// InitialState 返回进入主菜单时的状态：默认设置、基础定义、默认地图
func (e *Engine) InitialState() *GameState {
	settings := DefaultSettings()
	m := e.registry.MapOrDefault(settings.MapID)

	return &GameState{
		Phase:     PHASE_LOBBY,
		LobbyMode: LOBBY_MAIN_MENU,
		Players:   []Player{},
		Votes:     map[string]string{},
		ModRegistry: ModRegistry{
			Roles: content.BaseRoles(),
			Tasks: content.BaseTasks(),
		},
		ActiveMapID: m.ID,
		Map:         m.Objects,
		Settings:    settings,
		Logs:        []string{},
		Systems:     StableSystems(0),
	}
}

// Reduce 把一个动作应用到状态上。
// 前置条件不满足时原样返回同一个指针，调用方可以据此判断状态是否发生变化；
// 否则返回修改过的深拷贝，传入的状态不会被修改。
func (e *Engine) Reduce(s *GameState, a Action) *GameState {
	if s == nil || a == nil {
		return s
	}

	switch act := a.(type) {
	case SetLobbyMode:
		return e.setLobbyMode(s, act)
	case CreateLobby:
		return e.createLobby(s, act)
	case JoinLobby:
		return e.joinLobby(s, act)
	case LeaveLobby:
		return e.leaveLobby(s, act)
	case UpdateSettings:
		return e.updateSettings(s, act)
	case UpdateCosmetics:
		return e.updateCosmetics(s, act)
	case SetReady:
		return e.setReady(s, act)
	case KickPlayer:
		return e.kickPlayer(s, act)
	case SetMap:
		return e.setMap(s, act)
	case StartGame:
		return e.startGame(s)
	case ReturnToLobby:
		return e.returnToLobby(s)
	case MovePlayer:
		return e.movePlayer(s, act)
	case KillPlayer:
		return e.killPlayer(s, act)
	case ReportBody:
		return e.reportBody(s, act)
	case CallEmergencyMeeting:
		return e.callEmergencyMeeting(s, act)
	case Vote:
		return e.vote(s, act)
	case EndMeeting:
		return e.endMeeting(s, act)
	case SendChat:
		return e.sendChat(s, act)
	case LoadMod:
		return e.loadMod(s, act)
	case OpenTask:
		return e.openTask(s, act)
	case CloseTask:
		return e.closeTask(s, act)
	case CompleteTask:
		return e.completeTask(s, act)
	case ToggleDoor:
		return e.toggleDoor(s, act)
	case SabotageDoors:
		return e.sabotageDoors(s, act)
	case EnterVent:
		return e.enterVent(s, act)
	case ExitVent:
		return e.exitVent(s, act)
	case TriggerSabotage:
		return e.triggerSabotage(s, act)
	case FixSabotage:
		return e.fixSabotage(s, act)
	case Tick:
		return e.tick(s, act)
	case SyncState:
		if act.State == nil {
			return s
		}
		return act.State.Clone()
	case RequestState:
		return s
	}

	return s
}

// 从目录中装载地图，同时把所有玩家移到出生点
func (e *Engine) loadMap(s *GameState, mapID string) {
	m := e.registry.MapOrDefault(mapID)

	s.ActiveMapID = m.ID
	s.Settings.MapID = m.ID
	s.Map = m.Objects

	for i := range s.Players {
		s.Players[i].Position = m.SpawnPoint
	}
}

func (e *Engine) spawnPoint(s *GameState) content.Vec2 {
	return e.registry.MapOrDefault(s.ActiveMapID).SpawnPoint
}
