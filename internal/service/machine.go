package service

import (
	"sync/atomic"
	"time"

	"nebula-protocol-be/internal/archive"
	"nebula-protocol-be/internal/service/dto"
	"nebula-protocol-be/internal/service/game"

	"go.uber.org/zap"
)

const (
	DEFAULT_TICK_INTERVAL   = 50 * time.Millisecond
	DEFAULT_BROADCAST_EVERY = 2

	REQ_CHANNEL_SIZE  = 64
	RESP_CHANNEL_SIZE = 64
)

// MatchRecorder 接收结束的对局
type MatchRecorder interface {
	Record(rec archive.MatchRecord) error
}

// Request 是发往 LobbyMachine 的唯一消息类型。
// Join 与 Leave 由连接层直接构造，其余请求携带客户端发来的动作。
type Request struct {
	SenderID string
	Action   game.ActionWrapper

	Join  *JoinRequest
	Leave *LeaveRequest
}

type JoinRequest struct {
	Code string
	// 非空且玩家仍在名单中时视为重连
	PlayerID string
	Profile  game.Profile
	RespCh   chan ResponseWrapper
	ResultCh chan JoinResult
}

type JoinResult struct {
	PlayerID string
	Err      error
}

type LeaveRequest struct {
	PlayerID string
	RespCh   chan ResponseWrapper
}

type MachineOptions struct {
	TickInterval   time.Duration
	BroadcastEvery int
	Recorder       MatchRecorder
}

// LobbyMachine 在单个协程内串行处理一个房间的所有请求与计时
type LobbyMachine struct {
	ctx    *LobbyContext
	engine *game.Engine
	opts   MachineOptions

	reqCh  chan Request
	doneCh chan struct{}

	ticks     int
	startedAt time.Time
	lastTick  time.Time

	summary    atomic.Pointer[dto.LobbySummary]
	lastActive atomic.Int64
}

func NewLobbyMachine(engine *game.Engine, state *game.GameState, opts MachineOptions) *LobbyMachine {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DEFAULT_TICK_INTERVAL
	}
	if opts.BroadcastEvery <= 0 {
		opts.BroadcastEvery = DEFAULT_BROADCAST_EVERY
	}

	lm := &LobbyMachine{
		ctx: &LobbyContext{
			Code:  state.LobbyCode,
			State: state,
			Conns: make(map[string]chan ResponseWrapper),
		},
		engine: engine,
		opts:   opts,
		reqCh:  make(chan Request, REQ_CHANNEL_SIZE),
		doneCh: make(chan struct{}),
	}

	lm.touch()
	lm.publishSummary()

	return lm
}

func (lm *LobbyMachine) Code() string {
	return lm.ctx.Code
}

func (lm *LobbyMachine) GetReqCh() chan<- Request {
	return lm.reqCh
}

func (lm *LobbyMachine) Summary() dto.LobbySummary {
	return *lm.summary.Load()
}

func (lm *LobbyMachine) LastActive() time.Time {
	return time.Unix(0, lm.lastActive.Load())
}

// Stop 通知事件循环退出，只能调用一次
func (lm *LobbyMachine) Stop() {
	close(lm.doneCh)
}

func (lm *LobbyMachine) Start() {
	ticker := time.NewTicker(lm.opts.TickInterval)
	defer ticker.Stop()

	lm.lastTick = time.Now()

	for {
		select {
		case req := <-lm.reqCh:
			lm.handle(req)

		case now := <-ticker.C:
			dt := float64(now.Sub(lm.lastTick)) / float64(time.Millisecond)
			lm.lastTick = now
			lm.advance(dt)

		case <-lm.doneCh:
			zap.L().Info(
				"收到退出信号，结束房间状态机",
				zap.String("lobby_code", lm.ctx.Code),
			)

			for pid := range lm.ctx.Conns {
				lm.ctx.Detach(pid)
			}
			return
		}
	}
}

func (lm *LobbyMachine) handle(req Request) {
	switch {
	case req.Join != nil:
		lm.handleJoin(req.Join)
	case req.Leave != nil:
		lm.handleLeave(req.Leave)
	default:
		lm.handleAction(req.SenderID, req.Action)
	}
}

func (lm *LobbyMachine) handleJoin(req *JoinRequest) {
	state := lm.ctx.State

	reply := func(res JoinResult) {
		select {
		case req.ResultCh <- res:
		default:
		}
	}

	if game.NormalizeCode(req.Code) != lm.ctx.Code {
		reply(JoinResult{Err: ErrLobbyNotFound})
		return
	}

	// 重连：替换旧连接，旧的写协程会因通道关闭而退出
	if req.PlayerID != "" && state.PlayerIndex(req.PlayerID) >= 0 {
		if old, ok := lm.ctx.Conns[req.PlayerID]; ok && old != req.RespCh {
			delete(lm.ctx.Conns, req.PlayerID)
			close(old)
		}
		lm.attach(req.PlayerID, req.RespCh, true)
		reply(JoinResult{PlayerID: req.PlayerID})

		zap.L().Info(
			"玩家重新连接",
			zap.String("lobby_code", lm.ctx.Code),
			zap.String("player_id", req.PlayerID),
		)
		return
	}

	if state.Phase != game.PHASE_LOBBY {
		reply(JoinResult{Err: ErrLobbyClosed})
		return
	}
	if state.Settings.MaxPlayers > 0 && len(state.Players) >= state.Settings.MaxPlayers {
		reply(JoinResult{Err: ErrLobbyFull})
		return
	}

	next := lm.engine.Reduce(state, game.JoinLobby{Code: lm.ctx.Code, Profile: req.Profile})
	if next == state {
		reply(JoinResult{Err: ErrInvalidRequest})
		return
	}
	joiner := next.Players[len(next.Players)-1]

	lm.commit(next, false)
	lm.attach(joiner.ID, req.RespCh, false)
	reply(JoinResult{PlayerID: joiner.ID})

	zap.L().Info(
		"玩家加入房间",
		zap.String("lobby_code", lm.ctx.Code),
		zap.String("player_id", joiner.ID),
		zap.String("player_name", joiner.Name),
	)
}

func (lm *LobbyMachine) attach(playerID string, respCh chan ResponseWrapper, reconnect bool) {
	lm.ctx.Conns[playerID] = respCh
	lm.touch()

	lm.ctx.UnicastResp(playerID, WrapResponse(RESP_JOIN_LOBBY, dto.JoinLobbyResponse{
		LobbyCode: lm.ctx.Code,
		PlayerID:  playerID,
		Reconnect: reconnect,
	}))
	lm.ctx.BroadcastSnapshot()
	lm.publishSummary()
}

// handleLeave 大厅中离开会移出名单，对局中只断开连接，玩家留在场上等待重连
func (lm *LobbyMachine) handleLeave(req *LeaveRequest) {
	ch, ok := lm.ctx.Conns[req.PlayerID]
	if !ok || ch != req.RespCh {
		return
	}

	lm.ctx.Detach(req.PlayerID)
	lm.touch()

	if lm.ctx.State.Phase == game.PHASE_LOBBY {
		next := lm.engine.Reduce(lm.ctx.State, game.LeaveLobby{PlayerID: req.PlayerID})
		lm.commit(next, true)
	}
	lm.publishSummary()

	zap.L().Info(
		"玩家断开连接",
		zap.String("lobby_code", lm.ctx.Code),
		zap.String("player_id", req.PlayerID),
	)
}

func (lm *LobbyMachine) handleAction(senderID string, w game.ActionWrapper) {
	a, err := game.UnwrapAction(w)
	if err != nil {
		lm.ctx.UnicastResp(senderID, WrapErrResponse(ErrInvalidRequest.Error()))
		return
	}

	if _, ok := a.(game.RequestState); ok {
		lm.ctx.UnicastSnapshot(senderID)
		return
	}

	a, err = authorize(lm.ctx.State, senderID, a, time.Now())
	if err != nil {
		zap.L().Debug(
			"拒绝客户端动作",
			zap.String("lobby_code", lm.ctx.Code),
			zap.String("player_id", senderID),
			zap.String("action_type", w.Type),
			zap.Error(err),
		)
		lm.ctx.UnicastResp(senderID, WrapErrResponse(err.Error()))
		return
	}

	lm.touch()
	lm.commit(lm.engine.Reduce(lm.ctx.State, a), true)
}

// advance 只在对局与会议阶段推进时间
func (lm *LobbyMachine) advance(dt float64) {
	phase := lm.ctx.State.Phase
	if phase != game.PHASE_PLAYING && phase != game.PHASE_MEETING {
		return
	}

	lm.ticks++
	lm.commit(lm.engine.Reduce(lm.ctx.State, game.Tick{Dt: dt}), false)
}

// commit 采用新状态并处理阶段切换带来的副作用。
// urgent 为 true 或阶段变化时立即广播，否则按 BroadcastEvery 节流。
func (lm *LobbyMachine) commit(next *game.GameState, urgent bool) {
	prev := lm.ctx.State
	if next == prev {
		return
	}
	lm.ctx.State = next

	if prev.Phase == game.PHASE_LOBBY && next.Phase == game.PHASE_PLAYING {
		lm.startedAt = time.Now()
		zap.L().Info(
			"对局开始",
			zap.String("lobby_code", lm.ctx.Code),
			zap.Int("players", len(next.Players)),
		)
	}

	if next.Phase == game.PHASE_MEETING && (next.MeetingTimer <= 0 || next.AllVoted()) {
		lm.resolveMeeting()
		return
	}

	if prev.Phase != game.PHASE_ENDED && next.Phase == game.PHASE_ENDED {
		lm.finishRound()
	}

	lm.ctx.dropRemoved()

	if urgent || prev.Phase != next.Phase || lm.ticks%lm.opts.BroadcastEvery == 0 {
		lm.ctx.BroadcastSnapshot()
	}

	lm.publishSummary()
}

// resolveMeeting 计票并结束会议，计票结果先于新快照发出
func (lm *LobbyMachine) resolveMeeting() {
	res := game.Tally(lm.ctx.State)
	lm.ctx.BroadcastResp(WrapResponse(RESP_MEETING_RESULT, res))

	next := lm.engine.Reduce(lm.ctx.State, game.EndMeeting{EjectedID: res.EjectedID})
	if next == lm.ctx.State {
		next = lm.engine.Reduce(lm.ctx.State, game.EndMeeting{})
	}

	lm.commit(next, true)
}

func (lm *LobbyMachine) finishRound() {
	state := lm.ctx.State

	over := dto.GameOverResponse{
		Winner:    string(state.Winner),
		EndReason: state.EndReason,
	}

	if lm.opts.Recorder != nil {
		rec := archive.NewMatchRecord(state, lm.startedAt, time.Now())
		if err := lm.opts.Recorder.Record(rec); err != nil {
			zap.L().Error(
				"保存对局记录失败",
				zap.String("lobby_code", lm.ctx.Code),
				zap.Error(err),
			)
		} else {
			over.MatchID = rec.ID
		}
	}

	zap.L().Info(
		"对局结束",
		zap.String("lobby_code", lm.ctx.Code),
		zap.String("winner", over.Winner),
		zap.String("end_reason", over.EndReason),
	)

	lm.ctx.BroadcastResp(WrapResponse(RESP_GAME_OVER, over))
}

func (lm *LobbyMachine) touch() {
	lm.lastActive.Store(time.Now().UnixNano())
}

func (lm *LobbyMachine) publishSummary() {
	s := lm.ctx.State

	sum := dto.LobbySummary{
		Code:       lm.ctx.Code,
		Name:       s.Settings.LobbyName,
		MapID:      s.ActiveMapID,
		Region:     s.Settings.Region,
		Phase:      s.Phase,
		Players:    len(s.Players),
		Connected:  len(lm.ctx.Conns),
		MaxPlayers: s.Settings.MaxPlayers,
		IsPrivate:  s.Settings.IsPrivate,
	}
	if host, ok := s.Host(); ok {
		sum.HostName = host.Name
	}

	lm.summary.Store(&sum)
}
