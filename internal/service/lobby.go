package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"nebula-protocol-be/internal/content"
	"nebula-protocol-be/internal/service/dto"
	"nebula-protocol-be/internal/service/game"

	"go.uber.org/zap"
)

const (
	DEFAULT_IDLE_TIMEOUT     = 10 * time.Minute
	DEFAULT_CLEANUP_INTERVAL = time.Minute

	JOIN_TIMEOUT = 3 * time.Second

	// 房间码碰撞时的重试次数
	maxCodeAttempts = 8
)

type LobbyOptions struct {
	Machine MachineOptions
	// 非零时每个房间使用 Seed+序号 作为随机种子，便于复现
	Seed            uint32
	IdleTimeout     time.Duration
	CleanupInterval time.Duration
	MaxLobbies      int
}

// LobbyService 管理所有房间的状态机，按房间码索引
type LobbyService struct {
	mu      sync.RWMutex
	lobbies map[string]*LobbyMachine
	created uint32

	registry *content.Registry
	opts     LobbyOptions
}

func NewLobbyService(registry *content.Registry, opts LobbyOptions) *LobbyService {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DEFAULT_IDLE_TIMEOUT
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = DEFAULT_CLEANUP_INTERVAL
	}

	return &LobbyService{
		lobbies:  make(map[string]*LobbyMachine),
		registry: registry,
		opts:     opts,
	}
}

func (ls *LobbyService) Registry() *content.Registry {
	return ls.registry
}

// RunCleanup 定期清理空置或长时间无人在线的房间，直到 ctx 结束
func (ls *LobbyService) RunCleanup(ctx context.Context) error {
	ticker := time.NewTicker(ls.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			ls.sweep(now)
		}
	}
}

func (ls *LobbyService) sweep(now time.Time) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	for code, lm := range ls.lobbies {
		sum := lm.Summary()

		idle := sum.Connected == 0 && now.Sub(lm.LastActive()) > ls.opts.IdleTimeout
		if sum.Players > 0 && !idle {
			continue
		}

		zap.S().Infof("房间 %s 已空置，开始清理", code)

		delete(ls.lobbies, code)
		lm.Stop()
	}
}

// Close 停止所有房间
func (ls *LobbyService) Close() {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	for code, lm := range ls.lobbies {
		delete(ls.lobbies, code)
		lm.Stop()
	}
}

func (ls *LobbyService) newEngine() *game.Engine {
	opts := []game.Option{game.WithRegistry(ls.registry)}
	if ls.opts.Seed != 0 {
		opts = append(opts, game.WithSeed(ls.opts.Seed+ls.created))
	}
	return game.NewEngine(opts...)
}

// CreateLobby 创建房间并启动其状态机，房主在随后的 WebSocket 连接中以 HostID 重连
func (ls *LobbyService) CreateLobby(req dto.CreateLobbyRequest) (dto.CreateLobbyResponse, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.opts.MaxLobbies > 0 && len(ls.lobbies) >= ls.opts.MaxLobbies {
		return dto.CreateLobbyResponse{}, ErrTooManyLobbies
	}

	if req.MapID != "" {
		if _, ok := ls.registry.GetMap(req.MapID); !ok {
			return dto.CreateLobbyResponse{}, fmt.Errorf("未知地图 %s: %w", req.MapID, ErrInvalidRequest)
		}
	}

	engine := ls.newEngine()
	ls.created++

	create := game.CreateLobby{
		Name:     req.LobbyName,
		Settings: req.Settings,
		Profile:  req.Profile,
		MapID:    req.MapID,
	}

	var state *game.GameState
	for range maxCodeAttempts {
		s := engine.Reduce(engine.InitialState(), create)
		if _, taken := ls.lobbies[s.LobbyCode]; !taken {
			state = s
			break
		}
	}
	if state == nil {
		return dto.CreateLobbyResponse{}, fmt.Errorf("生成房间码失败: %w", ErrLobbyBusy)
	}

	lm := NewLobbyMachine(engine, state, ls.opts.Machine)
	ls.lobbies[state.LobbyCode] = lm

	go lm.Start()

	zap.S().Infof("房间 %s 由 %s 创建", state.LobbyCode, state.Players[0].Name)

	return dto.CreateLobbyResponse{
		LobbyCode: state.LobbyCode,
		HostID:    state.MyPlayerID,
	}, nil
}

func (ls *LobbyService) lookup(code string) (*LobbyMachine, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	lm, ok := ls.lobbies[game.NormalizeCode(code)]
	return lm, ok
}

// Join 把连接交给房间状态机，返回请求通道与玩家 ID。
// playerID 非空且仍在名单中时为重连，否则作为新玩家加入（仅大厅阶段）。
func (ls *LobbyService) Join(
	code, playerID string,
	profile game.Profile,
	respCh chan ResponseWrapper,
) (chan<- Request, string, error) {
	lm, ok := ls.lookup(code)
	if !ok {
		return nil, "", ErrLobbyNotFound
	}

	resultCh := make(chan JoinResult, 1)
	req := Request{
		Join: &JoinRequest{
			Code:     code,
			PlayerID: playerID,
			Profile:  profile,
			RespCh:   respCh,
			ResultCh: resultCh,
		},
	}

	timeout := time.NewTimer(JOIN_TIMEOUT)
	defer timeout.Stop()

	select {
	case lm.reqCh <- req:
	case <-lm.doneCh:
		return nil, "", ErrLobbyClosed
	case <-timeout.C:
		return nil, "", ErrLobbyBusy
	}

	select {
	case res := <-resultCh:
		if res.Err != nil {
			return nil, "", res.Err
		}
		return lm.GetReqCh(), res.PlayerID, nil
	case <-lm.doneCh:
		return nil, "", ErrLobbyClosed
	case <-timeout.C:
		return nil, "", ErrLobbyBusy
	}
}

func (ls *LobbyService) Lookup(code string) (dto.LobbySummary, error) {
	lm, ok := ls.lookup(code)
	if !ok {
		return dto.LobbySummary{}, ErrLobbyNotFound
	}
	return lm.Summary(), nil
}

// List 返回公开房间，按房间码排序
func (ls *LobbyService) List() []dto.LobbySummary {
	ls.mu.RLock()
	list := make([]dto.LobbySummary, 0, len(ls.lobbies))
	for _, lm := range ls.lobbies {
		if sum := lm.Summary(); !sum.IsPrivate {
			list = append(list, sum)
		}
	}
	ls.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Code < list[j].Code
	})

	return list
}
