package service

import (
	"nebula-protocol-be/internal/service/game"

	"go.uber.org/zap"
)

// LobbyContext 保存一个房间的权威状态与在线连接，只由所属的 LobbyMachine 协程访问
type LobbyContext struct {
	Code  string
	State *game.GameState
	// 玩家 ID 到响应通道，离线玩家不在其中
	Conns map[string]chan ResponseWrapper
}

func (lc *LobbyContext) BroadcastResp(resp ResponseWrapper) {
	for pid := range lc.Conns {
		lc.UnicastResp(pid, resp)
	}
}

// BroadcastSnapshot 给每个在线玩家发送各自视角的快照
func (lc *LobbyContext) BroadcastSnapshot() {
	for pid := range lc.Conns {
		lc.UnicastSnapshot(pid)
	}
}

func (lc *LobbyContext) UnicastSnapshot(playerID string) {
	lc.UnicastResp(playerID, WrapResponse(RESP_SNAPSHOT, ViewFor(lc.State, playerID)))
}

func (lc *LobbyContext) UnicastResp(playerID string, resp ResponseWrapper) {
	ch, ok := lc.Conns[playerID]
	if !ok {
		zap.L().Debug(
			"玩家不在线，跳过单播",
			zap.String("lobby_code", lc.Code),
			zap.String("player_id", playerID),
		)
		return
	}

	select {
	case ch <- resp:
	default:
		zap.L().Warn(
			"发送响应失败：玩家响应通道已满",
			zap.String("lobby_code", lc.Code),
			zap.String("player_id", playerID),
			zap.String("resp_type", resp.RespType),
		)
	}
}

// Detach 断开玩家的连接：发送退出响应后关闭通道
func (lc *LobbyContext) Detach(playerID string) {
	ch, ok := lc.Conns[playerID]
	if !ok {
		return
	}

	lc.UnicastResp(playerID, WrapResponse(RESP_EXIT_LOBBY, nil))
	delete(lc.Conns, playerID)
	close(ch)
}

// dropRemoved 断开已不在玩家名单中的连接（被踢出或已离开）
func (lc *LobbyContext) dropRemoved() {
	for pid := range lc.Conns {
		if lc.State.PlayerIndex(pid) < 0 {
			lc.Detach(pid)
		}
	}
}
