package game

import (
	"fmt"

	"nebula-protocol-be/internal/content"
)

// 对局结束原因
const (
	END_CREW_ELIMINATED   = "CREW_ELIMINATED"
	END_IMPOSTORS_EJECTED = "IMPOSTORS_EJECTED"
	END_TASKS_COMPLETE    = "TASKS_COMPLETE"
	END_MELTDOWN          = "MELTDOWN"
)

func (s *GameState) finish(winner content.Team, reason string) {
	s.Phase = PHASE_ENDED
	s.Winner = winner
	s.EndReason = reason
	s.MeetingTimer = 0

	for i := range s.Players {
		s.Players[i].IsMoving = false
		s.Players[i].ActiveTask = ""
	}

	s.appendLog(fmt.Sprintf("GAME OVER: %s (%s)", winner, reason))
}

// checkWin 内鬼全部出局则船员胜；内鬼人数不少于船员则内鬼胜
func (s *GameState) checkWin() bool {
	crew, imps := s.AliveCounts()

	switch {
	case imps == 0:
		s.finish(content.TEAM_INITIATIVE, END_IMPOSTORS_EJECTED)
	case imps >= crew:
		s.finish(content.TEAM_GLITCH, END_CREW_ELIMINATED)
	default:
		return false
	}

	return true
}

// startMeeting 两种入口共用。反应堆与氧气不会被清除，会议期间倒计时冻结。
func (s *GameState) startMeeting(reportedID string) {
	s.Phase = PHASE_MEETING
	s.MeetingTimer = s.Settings.DiscussionTime + s.Settings.VotingTime
	s.ReportedBodyID = reportedID
	s.Votes = map[string]string{}
	s.ChatMessages = []ChatMessage{}
	s.LastEjection = nil

	for i := range s.Players {
		p := &s.Players[i]
		p.HasVoted = false
		p.IsInVent = false
		p.VentID = ""
		p.ActiveTask = ""
		p.IsMoving = false
		p.Velocity = content.Vec2{}
	}

	s.Systems.restoreNonCritical()
	s.Systems.GlobalSabotageCooldown = SABOTAGE_GRACE_MEETING
	s.refreshActiveSabotage()
	s.releaseDoors()
}

func (e *Engine) reportBody(s *GameState, a ReportBody) *GameState {
	if s.Phase != PHASE_PLAYING || a.ReporterID == a.BodyID {
		return s
	}

	ri := s.alivePlayer(a.ReporterID)
	bi := s.PlayerIndex(a.BodyID)
	if ri < 0 || bi < 0 || s.Players[ri].IsInVent {
		return s
	}

	body := s.Players[bi]
	if !body.IsDead || body.BodyReported {
		return s
	}
	if distance(s.Players[ri].Position, body.Position) > REPORT_RANGE {
		return s
	}

	next := s.Clone()
	next.Players[bi].BodyReported = true
	next.startMeeting(body.ID)
	next.appendLog(fmt.Sprintf("BODY REPORTED BY %s.", next.Players[ri].Name))

	return next
}

// callEmergencyMeeting 反应堆或氧气告急时不能拍紧急按钮
func (e *Engine) callEmergencyMeeting(s *GameState, a CallEmergencyMeeting) *GameState {
	if s.Phase != PHASE_PLAYING || s.Systems.LifeCritical() || s.EmergencyCooldown > 0 {
		return s
	}

	idx := s.alivePlayer(a.PlayerID)
	if idx < 0 {
		return s
	}
	caller := s.Players[idx]
	if caller.EmergencyMeetingsLeft <= 0 || caller.IsInVent {
		return s
	}

	next := s.Clone()
	next.Players[idx].EmergencyMeetingsLeft--
	next.startMeeting(REPORT_EMERGENCY)
	next.appendLog(fmt.Sprintf("EMERGENCY MEETING CALLED BY %s.", caller.Name))

	return next
}

// vote 允许改票，目标必须是存活玩家或弃票
func (e *Engine) vote(s *GameState, a Vote) *GameState {
	if s.Phase != PHASE_MEETING {
		return s
	}

	vi := s.alivePlayer(a.VoterID)
	if vi < 0 {
		return s
	}
	if a.TargetID != VOTE_SKIP && s.alivePlayer(a.TargetID) < 0 {
		return s
	}
	if prev, ok := s.Votes[a.VoterID]; ok && prev == a.TargetID {
		return s
	}

	next := s.Clone()
	next.Votes[a.VoterID] = a.TargetID
	next.Players[vi].HasVoted = true

	return next
}

// endMeeting 只负责执行放逐结果，票数统计见 Tally
func (e *Engine) endMeeting(s *GameState, a EndMeeting) *GameState {
	if s.Phase != PHASE_MEETING {
		return s
	}

	ejectedID := a.EjectedID
	if ejectedID == VOTE_SKIP {
		ejectedID = ""
	}
	ei := -1
	if ejectedID != "" {
		if ei = s.alivePlayer(ejectedID); ei < 0 {
			return s
		}
	}

	next := s.Clone()
	next.LastEjection = &Ejection{}

	if ei >= 0 {
		p := &next.Players[ei]
		p.IsDead = true
		next.LastEjection.PlayerID = p.ID
		next.LastEjection.Name = p.Name
		if next.Settings.ConfirmEjects {
			role := next.RoleOf(*p)
			next.LastEjection.RoleID = role.ID
			next.LastEjection.Team = role.Team
		}
		next.appendLog(fmt.Sprintf("%s was ejected.", p.Name))
	} else {
		next.appendLog("No one was ejected.")
	}

	spawn := e.spawnPoint(next)
	for i := range next.Players {
		p := &next.Players[i]
		if p.IsDead {
			p.BodyReported = true
		}
		p.Position = spawn
		p.Velocity = content.Vec2{}
		p.IsMoving = false
		p.HasVoted = false
		p.IsInVent = false
		p.VentID = ""
		p.ActiveTask = ""

		p.KillTimer = 0
		if next.RoleOf(*p).CanKill {
			p.KillTimer = next.Settings.KillCooldown
		}
	}

	next.Phase = PHASE_PLAYING
	next.MeetingTimer = 0
	next.ReportedBodyID = ""
	next.Votes = map[string]string{}
	next.Systems.GlobalSabotageCooldown = SABOTAGE_GRACE_AFTER_VOTE
	next.EmergencyCooldown = EMERGENCY_COOLDOWN

	if !next.checkWin() {
		next.checkTaskWin()
	}

	return next
}
