package service

import (
	"fmt"
	"math"
	"time"

	"nebula-protocol-be/internal/content"
	"nebula-protocol-be/internal/physics"
	"nebula-protocol-be/internal/service/game"
)

const (
	// 服务端判定距离比客户端略宽，容忍网络延迟带来的位置误差
	KILL_RANGE     = 90.0
	INTERACT_RANGE = 120.0

	// 单次移动请求允许的最大位移
	MAX_MOVE_STEP = 64.0
)

// authorize 在动作进入状态机之前做服务端校验，并把需要服务端决定的字段填好。
// 玩家只能以自己的身份行动，房主专属操作只接受房主发起。
func authorize(s *game.GameState, senderID string, a game.Action, now time.Time) (game.Action, error) {
	sender, ok := s.FindPlayer(senderID)
	if !ok {
		return nil, fmt.Errorf("未知玩家 %s: %w", senderID, ErrForbidden)
	}

	switch act := a.(type) {
	case game.Tick, game.SyncState, game.CreateLobby, game.JoinLobby, game.EndMeeting:
		return nil, fmt.Errorf("客户端不能发送 %s: %w", a.ActionType(), ErrForbidden)

	case game.SetLobbyMode, game.UpdateSettings, game.KickPlayer, game.SetMap,
		game.StartGame, game.ReturnToLobby, game.LoadMod:
		if !sender.IsHost {
			return nil, fmt.Errorf("%s 仅限房主: %w", a.ActionType(), ErrForbidden)
		}
		return a, nil

	case game.LeaveLobby:
		return a, requireSelf(senderID, act.PlayerID)

	case game.UpdateCosmetics:
		return a, requireSelf(senderID, act.PlayerID)

	case game.SetReady:
		return a, requireSelf(senderID, act.PlayerID)

	case game.MovePlayer:
		if err := requireSelf(senderID, act.PlayerID); err != nil {
			return nil, err
		}
		act.Position = resolveMove(s, sender.Position, act.Position)
		return act, nil

	case game.KillPlayer:
		if err := requireSelf(senderID, act.KillerID); err != nil {
			return nil, err
		}
		target, ok := s.FindPlayer(act.TargetID)
		if !ok || dist(sender.Position, target.Position) > KILL_RANGE {
			return nil, fmt.Errorf("目标不在击杀范围内: %w", ErrForbidden)
		}
		return a, nil

	case game.ReportBody:
		return a, requireSelf(senderID, act.ReporterID)

	case game.CallEmergencyMeeting:
		if err := requireSelf(senderID, act.PlayerID); err != nil {
			return nil, err
		}
		if !nearEmergencyButton(s, sender.Position) {
			return nil, fmt.Errorf("离紧急按钮太远: %w", ErrForbidden)
		}
		return a, nil

	case game.Vote:
		return a, requireSelf(senderID, act.VoterID)

	case game.SendChat:
		act.SenderID = senderID
		act.Timestamp = now.UnixMilli()
		return act, nil

	case game.OpenTask:
		return a, requireSelf(senderID, act.PlayerID)

	case game.CloseTask:
		return a, requireSelf(senderID, act.PlayerID)

	case game.CompleteTask:
		return a, requireSelf(senderID, act.PlayerID)

	case game.EnterVent:
		if err := requireSelf(senderID, act.PlayerID); err != nil {
			return nil, err
		}
		// 已在管道内时由状态机检查连通性
		if !sender.IsInVent {
			vent, ok := s.FindObject(act.VentID)
			if !ok || dist(sender.Position, vent.Center()) > INTERACT_RANGE {
				return nil, fmt.Errorf("离管道太远: %w", ErrForbidden)
			}
		}
		return a, nil

	case game.ExitVent:
		return a, requireSelf(senderID, act.PlayerID)

	case game.TriggerSabotage, game.SabotageDoors:
		if sender.IsDead || s.TeamOf(sender) != content.TEAM_GLITCH {
			return nil, fmt.Errorf("只有存活的内鬼可以破坏: %w", ErrForbidden)
		}
		return a, nil

	case game.FixSabotage:
		if act.StationID == "" {
			return nil, fmt.Errorf("修理必须指定修理点: %w", ErrInvalidRequest)
		}
		station, ok := s.FindObject(act.StationID)
		if !ok || dist(sender.Position, station.Center()) > INTERACT_RANGE {
			return nil, fmt.Errorf("离修理点太远: %w", ErrForbidden)
		}
		if sender.IsDead {
			return nil, fmt.Errorf("死亡玩家不能修理: %w", ErrForbidden)
		}
		return a, nil

	case game.ToggleDoor:
		if sender.IsDead {
			return nil, fmt.Errorf("死亡玩家不能操作门: %w", ErrForbidden)
		}
		return a, nil

	case game.RequestState:
		return a, nil
	}

	return nil, fmt.Errorf("不支持的动作 %s: %w", a.ActionType(), ErrInvalidRequest)
}

func requireSelf(senderID, actorID string) error {
	if senderID != actorID {
		return fmt.Errorf("不能以 %s 的身份行动: %w", actorID, ErrForbidden)
	}
	return nil
}

// resolveMove 以服务端记录的位置为起点重新计算位移，限制步长后做碰撞处理
func resolveMove(s *game.GameState, from, to content.Vec2) content.Vec2 {
	delta := content.Vec2{X: to.X - from.X, Y: to.Y - from.Y}

	if l := math.Hypot(delta.X, delta.Y); l > MAX_MOVE_STEP {
		delta.X *= MAX_MOVE_STEP / l
		delta.Y *= MAX_MOVE_STEP / l
	}

	return physics.ResolveMovement(from, delta, s.Map)
}

// 地图上没有紧急按钮时不限制位置
func nearEmergencyButton(s *game.GameState, pos content.Vec2) bool {
	found := false

	for _, o := range s.Map {
		if o.Type != content.OBJ_SYSTEM || o.TaskType != content.SYSTEM_EMERGENCY_BUTTON {
			continue
		}
		found = true
		if dist(pos, o.Center()) <= INTERACT_RANGE {
			return true
		}
	}

	return !found
}

func dist(a, b content.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
