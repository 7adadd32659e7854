package game

import "nebula-protocol-be/internal/content"

// tick 推进所有倒计时，dt 单位为毫秒。
// 会议中只推进会议计时，其余倒计时（包括反应堆与氧气）冻结。
func (e *Engine) tick(s *GameState, a Tick) *GameState {
	if a.Dt <= 0 {
		return s
	}
	dt := a.Dt / 1000

	switch s.Phase {
	case PHASE_MEETING:
		if s.MeetingTimer <= 0 {
			return s
		}
		next := s.Clone()
		next.MeetingTimer = decay(next.MeetingTimer, dt)
		return next
	case PHASE_PLAYING:
	default:
		return s
	}

	next := s.Clone()

	for i := range next.Map {
		d := &next.Map[i]
		if d.Type != content.OBJ_DOOR || !d.IsLocked {
			continue
		}
		d.LockedUntil = decay(d.LockedUntil, dt)
		if d.LockedUntil == 0 {
			d.IsLocked = false
			d.IsOpen = true
		}
	}

	for i := range next.Players {
		next.Players[i].KillTimer = decay(next.Players[i].KillTimer, dt)
	}

	next.Systems.GlobalSabotageCooldown = decay(next.Systems.GlobalSabotageCooldown, dt)
	next.EmergencyCooldown = decay(next.EmergencyCooldown, dt)

	meltdown := false
	for _, t := range []SabotageType{SABOTAGE_REACTOR, SABOTAGE_OXYGEN} {
		c := next.Systems.critical(t)
		if !c.Active() {
			continue
		}
		*c.Timer = decay(*c.Timer, dt)
		if *c.Timer == 0 {
			meltdown = true
		}
	}

	if meltdown {
		next.finish(content.TEAM_GLITCH, END_MELTDOWN)
	}

	return next
}
