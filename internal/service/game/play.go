package game

import (
	"slices"

	"nebula-protocol-be/internal/content"
)

// alivePlayer 返回存活玩家的下标，不存在或已死亡时返回 -1
func (s *GameState) alivePlayer(id string) int {
	idx := s.PlayerIndex(id)
	if idx < 0 || s.Players[idx].IsDead {
		return -1
	}
	return idx
}

// movePlayer 直接采用调用方给出的位置，碰撞已在调用方处理
func (e *Engine) movePlayer(s *GameState, a MovePlayer) *GameState {
	if s.Phase != PHASE_LOBBY && s.Phase != PHASE_PLAYING {
		return s
	}

	idx := s.alivePlayer(a.PlayerID)
	if idx < 0 || s.Players[idx].IsInVent {
		return s
	}

	next := s.Clone()
	p := &next.Players[idx]
	p.Velocity = content.Vec2{X: a.Position.X - p.Position.X, Y: a.Position.Y - p.Position.Y}
	p.Position = a.Position
	p.IsMoving = a.IsMoving
	if a.Direction == DIR_LEFT || a.Direction == DIR_RIGHT {
		p.Direction = a.Direction
	}

	return next
}

// killPlayer 不检查距离。内鬼之间不能互相击杀。
func (e *Engine) killPlayer(s *GameState, a KillPlayer) *GameState {
	if s.Phase != PHASE_PLAYING || a.KillerID == a.TargetID {
		return s
	}

	ki := s.alivePlayer(a.KillerID)
	ti := s.alivePlayer(a.TargetID)
	if ki < 0 || ti < 0 {
		return s
	}

	killer := s.Players[ki]
	role := s.RoleOf(killer)
	if !role.CanKill || killer.IsInVent || killer.KillTimer > 0 {
		return s
	}
	if role.Team == content.TEAM_GLITCH && s.TeamOf(s.Players[ti]) == content.TEAM_GLITCH {
		return s
	}

	next := s.Clone()
	next.Players[ki].KillTimer = next.Settings.KillCooldown

	target := &next.Players[ti]
	target.IsDead = true
	target.IsMoving = false
	target.Velocity = content.Vec2{}
	target.ActiveTask = ""
	target.IsInVent = false
	target.VentID = ""

	next.appendLog("OPERATIVE DOWN.")

	if crew, imps := next.AliveCounts(); imps >= crew {
		next.finish(content.TEAM_GLITCH, END_CREW_ELIMINATED)
	} else {
		// 剩余未完成的任务可能都属于死者
		next.checkTaskWin()
	}

	return next
}

// ventsLinked 通风管道图是无向的，任一端登记了对方即视为相连
func ventsLinked(a, b content.MapObject) bool {
	return slices.Contains(a.ConnectedVents, b.ID) || slices.Contains(b.ConnectedVents, a.ID)
}

// enterVent 既用于进入管道，也用于在管道内移动到相邻的管道
func (e *Engine) enterVent(s *GameState, a EnterVent) *GameState {
	if s.Phase != PHASE_PLAYING {
		return s
	}

	idx := s.alivePlayer(a.PlayerID)
	if idx < 0 {
		return s
	}
	p := s.Players[idx]
	if !s.RoleOf(p).CanVent {
		return s
	}

	target, ok := s.FindObject(a.VentID)
	if !ok || target.Type != content.OBJ_VENT {
		return s
	}

	if p.IsInVent {
		current, ok := s.FindObject(p.VentID)
		if !ok || current.ID == target.ID || !ventsLinked(current, target) {
			return s
		}
	}

	next := s.Clone()
	np := &next.Players[idx]
	np.IsInVent = true
	np.VentID = target.ID
	np.Position = target.Center()
	np.Velocity = content.Vec2{}
	np.IsMoving = false
	np.ActiveTask = ""

	return next
}

func (e *Engine) exitVent(s *GameState, a ExitVent) *GameState {
	if s.Phase != PHASE_PLAYING {
		return s
	}

	idx := s.alivePlayer(a.PlayerID)
	if idx < 0 || !s.Players[idx].IsInVent {
		return s
	}

	next := s.Clone()
	next.Players[idx].IsInVent = false
	next.Players[idx].VentID = ""
	return next
}

// toggleDoor 被锁定的门不能手动开关
func (e *Engine) toggleDoor(s *GameState, a ToggleDoor) *GameState {
	if s.Phase != PHASE_LOBBY && s.Phase != PHASE_PLAYING {
		return s
	}

	idx := s.objectIndex(a.DoorID)
	if idx < 0 || s.Map[idx].Type != content.OBJ_DOOR || s.Map[idx].IsLocked {
		return s
	}

	next := s.Clone()
	next.Map[idx].IsOpen = !next.Map[idx].IsOpen
	return next
}

// sabotageDoors 关闭并锁住指定的门，不受全局破坏冷却限制
func (e *Engine) sabotageDoors(s *GameState, a SabotageDoors) *GameState {
	if s.Phase != PHASE_PLAYING || len(a.DoorIDs) == 0 {
		return s
	}

	var hits []int
	for i, obj := range s.Map {
		if obj.Type == content.OBJ_DOOR && slices.Contains(a.DoorIDs, obj.ID) {
			hits = append(hits, i)
		}
	}
	if len(hits) == 0 {
		return s
	}

	next := s.Clone()
	for _, i := range hits {
		next.Map[i].IsOpen = false
		next.Map[i].IsLocked = true
		next.Map[i].LockedUntil = DOOR_LOCK_SECONDS
	}
	next.appendLog("DOORS SEALED.")

	return next
}

// 会议开始时所有门强制解锁并打开
func (s *GameState) releaseDoors() {
	for i := range s.Map {
		if s.Map[i].Type == content.OBJ_DOOR {
			s.Map[i].IsOpen = true
			s.Map[i].IsLocked = false
			s.Map[i].LockedUntil = 0
		}
	}
}
