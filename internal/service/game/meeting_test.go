package game

import (
	"testing"

	"nebula-protocol-be/internal/content"
)

func TestEmergencyMeeting_QuotaAndCooldown(t *testing.T) {
	e := newTestEngine(31)
	s := newLobby(t, e, 5, SettingsPatch{ImpostorCount: intPtr(1)})
	s = e.Reduce(s, StartGame{})

	caller := byTeam(s, content.TEAM_INITIATIVE)[0]
	if got := e.Reduce(s, CallEmergencyMeeting{PlayerID: caller.ID}); got != s {
		t.Fatalf("button must be on cooldown at round start")
	}

	s = tickFor(e, s, EMERGENCY_COOLDOWN)
	s = e.Reduce(s, CallEmergencyMeeting{PlayerID: caller.ID})
	if s.Phase != PHASE_MEETING || s.ReportedBodyID != REPORT_EMERGENCY {
		t.Fatalf("meeting did not start")
	}
	if p := mustPlayer(t, s, caller.ID); p.EmergencyMeetingsLeft != 0 {
		t.Fatalf("quota not consumed, left=%d", p.EmergencyMeetingsLeft)
	}
	if s.MeetingTimer != s.Settings.DiscussionTime+s.Settings.VotingTime {
		t.Fatalf("unexpected meeting timer %v", s.MeetingTimer)
	}

	s = e.Reduce(s, EndMeeting{})
	s = tickFor(e, s, EMERGENCY_COOLDOWN)
	if got := e.Reduce(s, CallEmergencyMeeting{PlayerID: caller.ID}); got != s {
		t.Fatalf("second call by the same player must be rejected")
	}

	other := byTeam(s, content.TEAM_INITIATIVE)[1]
	if next := e.Reduce(s, CallEmergencyMeeting{PlayerID: other.ID}); next.Phase != PHASE_MEETING {
		t.Fatalf("another player with quota should be able to call")
	}
}

func TestMeetingEntry_ResetsTransientState(t *testing.T) {
	e := newTestEngine(32)
	s := startRound(t, e, 6, 2)

	imp := byTeam(s, content.TEAM_GLITCH)[0]
	s = e.Reduce(s, TriggerSabotage{Type: SABOTAGE_LIGHTS})
	s = e.Reduce(s, SabotageDoors{DoorIDs: []string{"d_s"}})
	s = e.Reduce(s, EnterVent{PlayerID: imp.ID, VentID: "v_quart"})
	s = e.Reduce(s, SendChat{SenderID: imp.ID, Text: "before"})

	s = e.Reduce(s, CallEmergencyMeeting{PlayerID: byTeam(s, content.TEAM_INITIATIVE)[0].ID})
	if s.Phase != PHASE_MEETING {
		t.Fatalf("meeting did not start")
	}

	if s.Systems.Lights.Active || s.ActiveSabotage != "" {
		t.Fatalf("lights must be restored on meeting entry")
	}
	if d, _ := s.FindObject("d_s"); d.IsLocked || !d.IsOpen {
		t.Fatalf("doors must be released on meeting entry")
	}
	if p := mustPlayer(t, s, imp.ID); p.IsInVent {
		t.Fatalf("players are pulled out of vents")
	}
	if len(s.ChatMessages) != 0 || s.Systems.GlobalSabotageCooldown != SABOTAGE_GRACE_MEETING {
		t.Fatalf("chat/cooldown not reset")
	}
}

func TestReportBody_Rules(t *testing.T) {
	e := newTestEngine(33)
	s := startRound(t, e, 6, 2)

	imp := byTeam(s, content.TEAM_GLITCH)[0]
	crew := byTeam(s, content.TEAM_INITIATIVE)

	if got := e.Reduce(s, ReportBody{ReporterID: crew[1].ID, BodyID: crew[0].ID}); got != s {
		t.Fatalf("living players cannot be reported")
	}

	s = e.Reduce(s, KillPlayer{KillerID: imp.ID, TargetID: crew[0].ID})

	far := e.Reduce(s, MovePlayer{PlayerID: crew[1].ID, Position: content.Vec2{X: 0, Y: 0}})
	if got := e.Reduce(far, ReportBody{ReporterID: crew[1].ID, BodyID: crew[0].ID}); got != far {
		t.Fatalf("reports out of range must be rejected")
	}
	if got := e.Reduce(s, ReportBody{ReporterID: crew[0].ID, BodyID: crew[0].ID}); got != s {
		t.Fatalf("the dead cannot report")
	}

	s = e.Reduce(s, ReportBody{ReporterID: crew[1].ID, BodyID: crew[0].ID})
	if s.Phase != PHASE_MEETING || s.ReportedBodyID != crew[0].ID {
		t.Fatalf("report did not start a meeting")
	}

	s = e.Reduce(s, EndMeeting{})
	if got := e.Reduce(s, ReportBody{ReporterID: crew[2].ID, BodyID: crew[0].ID}); got != s {
		t.Fatalf("a body can only be reported once")
	}
}

func TestVote_Rules(t *testing.T) {
	e := newTestEngine(34)
	s := startRound(t, e, 6, 2)

	imp := byTeam(s, content.TEAM_GLITCH)[0]
	crew := byTeam(s, content.TEAM_INITIATIVE)
	s = e.Reduce(s, KillPlayer{KillerID: imp.ID, TargetID: crew[0].ID})
	s = e.Reduce(s, ReportBody{ReporterID: crew[1].ID, BodyID: crew[0].ID})

	if got := e.Reduce(s, Vote{VoterID: crew[0].ID, TargetID: imp.ID}); got != s {
		t.Fatalf("the dead cannot vote")
	}
	if got := e.Reduce(s, Vote{VoterID: crew[1].ID, TargetID: crew[0].ID}); got != s {
		t.Fatalf("dead players cannot be voted for")
	}

	s = e.Reduce(s, Vote{VoterID: crew[1].ID, TargetID: VOTE_SKIP})
	s = e.Reduce(s, Vote{VoterID: crew[1].ID, TargetID: imp.ID})
	if s.Votes[crew[1].ID] != imp.ID || !mustPlayer(t, s, crew[1].ID).HasVoted {
		t.Fatalf("vote overwrite not recorded")
	}
	if got := e.Reduce(s, Vote{VoterID: crew[1].ID, TargetID: imp.ID}); got != s {
		t.Fatalf("repeating the same vote changes nothing")
	}
}

func TestEndMeeting_WinCondition(t *testing.T) {
	// a 名存活船员、b 名存活内鬼
	cases := []struct {
		crew, imps int
		ended      bool
		winner     content.Team
	}{
		{3, 1, false, ""},
		{2, 1, false, ""},
		{1, 1, true, content.TEAM_GLITCH},
		{1, 2, true, content.TEAM_GLITCH},
		{3, 0, true, content.TEAM_INITIATIVE},
		{4, 2, false, ""},
		{2, 2, true, content.TEAM_GLITCH},
	}

	for _, tc := range cases {
		s := meetingWith(tc.crew, tc.imps)
		e := newTestEngine(35)

		s = e.Reduce(s, EndMeeting{})
		if got := s.Phase == PHASE_ENDED; got != tc.ended {
			t.Fatalf("crew=%d imps=%d: want ended=%v, got phase %s", tc.crew, tc.imps, tc.ended, s.Phase)
		}
		if s.Winner != tc.winner {
			t.Fatalf("crew=%d imps=%d: want winner %q, got %q", tc.crew, tc.imps, tc.winner, s.Winner)
		}
	}
}

// meetingWith 直接构造一个会议中的状态
func meetingWith(crew, imps int) *GameState {
	e := newTestEngine(1)
	s := e.InitialState()
	s.Phase = PHASE_MEETING
	s.LobbyCode = "ABCDEF"

	for i := range crew {
		s.Players = append(s.Players, Player{ID: "c" + string(rune('a'+i)), RoleID: content.ROLE_TECHNICIAN})
	}
	for i := range imps {
		s.Players = append(s.Players, Player{ID: "g" + string(rune('a'+i)), RoleID: content.ROLE_SABOTEUR})
	}

	return s
}

func TestEndMeeting_AppliesEjection(t *testing.T) {
	e := newTestEngine(36)
	s := meetingWith(3, 2)
	s.Players = append(s.Players, Player{ID: "dead", RoleID: content.ROLE_TECHNICIAN, IsDead: true})

	next := e.Reduce(s, EndMeeting{EjectedID: "ga"})
	if next.Phase != PHASE_PLAYING {
		t.Fatalf("3 crew vs 1 impostor should continue")
	}
	if !mustPlayer(t, next, "ga").IsDead {
		t.Fatalf("ejected player should be dead")
	}
	if !mustPlayer(t, next, "dead").BodyReported {
		t.Fatalf("bodies are cleared after a meeting")
	}
	if next.LastEjection == nil || next.LastEjection.Team != content.TEAM_GLITCH {
		t.Fatalf("ejected role should be revealed: %+v", next.LastEjection)
	}
	if p := mustPlayer(t, next, "gb"); p.KillTimer != next.Settings.KillCooldown {
		t.Fatalf("kill cooldown not restored, got %v", p.KillTimer)
	}
	if p := mustPlayer(t, next, "ca"); p.KillTimer != 0 {
		t.Fatalf("crew should have no kill timer")
	}

	s.Settings.ConfirmEjects = false
	hidden := e.Reduce(s, EndMeeting{EjectedID: "ga"})
	if hidden.LastEjection.RoleID != "" || hidden.LastEjection.Team != "" {
		t.Fatalf("role must stay hidden without confirmEjects")
	}

	if got := e.Reduce(s, EndMeeting{EjectedID: "dead"}); got != s {
		t.Fatalf("dead players cannot be ejected")
	}
}

func TestTally(t *testing.T) {
	s := meetingWith(3, 2)
	s.Players = append(s.Players, Player{ID: "dead", RoleID: content.ROLE_TECHNICIAN, IsDead: true})

	cases := []struct {
		name  string
		votes map[string]string
		eject string
		tie   bool
	}{
		{"plurality", map[string]string{"ca": "ga", "cb": "ga", "cc": "gb", "ga": "ca"}, "ga", false},
		{"tie", map[string]string{"ca": "ga", "cb": "gb"}, "", true},
		{"skip on top", map[string]string{"ca": VOTE_SKIP, "cb": VOTE_SKIP, "cc": "ga"}, "", false},
		{"skip ties player", map[string]string{"ca": VOTE_SKIP, "cb": "ga"}, "", true},
		{"dead voters ignored", map[string]string{"dead": "cb", "ca": "ga"}, "ga", false},
		{"dead target abstains", map[string]string{"ca": "dead", "cb": "dead", "cc": "ga"}, "ga", false},
		{"no votes", map[string]string{}, "", false},
	}

	for _, tc := range cases {
		s.Votes = tc.votes
		res := Tally(s)
		if res.EjectedID != tc.eject || res.Tie != tc.tie {
			t.Fatalf("%s: want eject=%q tie=%v, got %+v", tc.name, tc.eject, tc.tie, res)
		}
	}
}
