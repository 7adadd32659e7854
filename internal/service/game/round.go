package game

import (
	"fmt"

	"nebula-protocol-be/internal/content"
)

// ImpostorCount 开局内鬼数量，不超过总人数的一半
func ImpostorCount(configured, players int) int {
	return max(0, min(configured, players/2))
}

func (e *Engine) startGame(s *GameState) *GameState {
	if s.Phase != PHASE_LOBBY || s.LobbyCode == "" || len(s.Players) == 0 {
		return s
	}

	next := s.Clone()
	m := e.registry.MapOrDefault(next.ActiveMapID)
	next.ActiveMapID = m.ID
	next.Map = m.Objects

	e.assignRoles(next)

	var locations []content.MapObject
	for _, obj := range next.Map {
		if obj.Type == content.OBJ_TASK_LOCATION {
			locations = append(locations, obj)
		}
	}

	for i := range next.Players {
		p := &next.Players[i]
		role := next.RoleOf(*p)

		p.Tasks = []TaskInstance{}
		if role.Team == content.TEAM_INITIATIVE {
			p.Tasks = e.sampleTasks(p.ID, locations, next.Settings.TaskCounts.Total())
		}

		p.Position = content.Vec2{
			X: m.SpawnPoint.X + e.rand.Float64()*SPAWN_JITTER - SPAWN_JITTER/2,
			Y: m.SpawnPoint.Y,
		}
		p.Velocity = content.Vec2{}
		p.IsMoving = false
		p.IsDead = false
		p.BodyReported = false
		p.IsInVent = false
		p.VentID = ""
		p.ActiveTask = ""
		p.HasVoted = false
		p.EmergencyMeetingsLeft = EMERGENCY_MEETINGS_PER_GAME

		p.KillTimer = 0
		if role.CanKill {
			p.KillTimer = INITIAL_KILL_TIMER
		}
	}

	next.Phase = PHASE_PLAYING
	next.MeetingTimer = 0
	next.ReportedBodyID = ""
	next.Votes = map[string]string{}
	next.ChatMessages = []ChatMessage{}
	next.LastEjection = nil
	next.Systems = StableSystems(SABOTAGE_GRACE_ROUND_START)
	next.ActiveSabotage = ""
	next.EmergencyCooldown = EMERGENCY_COOLDOWN
	next.Winner = ""
	next.EndReason = ""
	next.appendLog("MISSION START.")

	return next
}

// assignRoles 洗牌后前 N 名成为内鬼，其余按优先级逐个尝试特殊船员角色
func (e *Engine) assignRoles(s *GameState) {
	order := make([]int, len(s.Players))
	for i := range order {
		order[i] = i
	}
	e.rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	impostors := ImpostorCount(s.Settings.ImpostorCount, len(s.Players))
	assigned := make(map[string]int)

	for slot, idx := range order {
		p := &s.Players[idx]

		if slot < impostors {
			p.RoleID = e.rollRole(s, content.SecondaryImpostorPriority, assigned, content.ROLE_SABOTEUR)
		} else {
			p.RoleID = e.rollRole(s, content.SpecialCrewPriority, assigned, content.ROLE_TECHNICIAN)
		}
		assigned[p.RoleID]++
	}
}

// rollRole 按顺序对每个启用的角色做一次独立的概率判定，第一个命中的角色胜出
func (e *Engine) rollRole(s *GameState, priority []string, assigned map[string]int, fallback string) string {
	for _, id := range priority {
		rs, ok := s.Settings.RoleSettings[id]
		if !ok || !rs.Enabled {
			continue
		}
		if _, ok := s.ModRegistry.Roles[id]; !ok {
			continue
		}
		if rs.Count > 0 && assigned[id] >= rs.Count {
			continue
		}
		if e.rand.Chance(rs.Chance) {
			return id
		}
	}
	return fallback
}

// sampleTasks 从任务点中不放回地抽取，位置按值复制
func (e *Engine) sampleTasks(playerID string, locations []content.MapObject, want int) []TaskInstance {
	n := min(want, len(locations))
	if n <= 0 {
		return []TaskInstance{}
	}

	pool := append([]content.MapObject(nil), locations...)
	e.rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	tasks := make([]TaskInstance, 0, n)
	for i, loc := range pool[:n] {
		taskID := loc.TaskType
		if taskID == "" {
			taskID = content.DEFAULT_TASK_ID
		}
		tasks = append(tasks, TaskInstance{
			ID:       fmt.Sprintf("t_%s_%d", playerID, i),
			TaskID:   taskID,
			Location: content.Vec2{X: loc.X, Y: loc.Y},
		})
	}

	return tasks
}
