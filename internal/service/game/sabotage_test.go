package game

import (
	"encoding/json"
	"strings"
	"testing"

	"nebula-protocol-be/internal/content"
)

func TestTriggerSabotage_Throttle(t *testing.T) {
	e := newTestEngine(21)
	s := startRound(t, e, 6, 2)

	s = e.Reduce(s, TriggerSabotage{Type: SABOTAGE_LIGHTS})
	if s.ActiveSabotage != SABOTAGE_LIGHTS || !s.Systems.Lights.Active {
		t.Fatalf("lights sabotage not applied")
	}
	if s.Systems.GlobalSabotageCooldown != SABOTAGE_COOLDOWN {
		t.Fatalf("want cooldown %v, got %v", SABOTAGE_COOLDOWN, s.Systems.GlobalSabotageCooldown)
	}

	if got := e.Reduce(s, TriggerSabotage{Type: SABOTAGE_REACTOR}); got != s {
		t.Fatalf("second trigger inside the window must be ignored")
	}

	s = tickFor(e, s, SABOTAGE_COOLDOWN)
	s = e.Reduce(s, TriggerSabotage{Type: SABOTAGE_REACTOR})
	if s.ActiveSabotage != SABOTAGE_REACTOR {
		t.Fatalf("trigger after the window should succeed")
	}

	// 两个通道同时生效时，修好最近的那个后回退到仍在生效的通道
	s = e.Reduce(s, FixSabotage{Type: SABOTAGE_REACTOR})
	s = e.Reduce(s, FixSabotage{Type: SABOTAGE_REACTOR})
	if s.ActiveSabotage != SABOTAGE_LIGHTS {
		t.Fatalf("want lights to remain active, got %q", s.ActiveSabotage)
	}
	s = e.Reduce(s, FixSabotage{Type: SABOTAGE_LIGHTS})
	if s.ActiveSabotage != "" || len(s.Systems.ActiveChannels()) != 0 {
		t.Fatalf("all channels should be stable")
	}
}

func TestTriggerSabotage_DoorsAndDuplicates(t *testing.T) {
	e := newTestEngine(22)
	s := startRound(t, e, 4, 1)

	if got := e.Reduce(s, TriggerSabotage{Type: SABOTAGE_DOORS}); got != s {
		t.Fatalf("doors go through SABOTAGE_DOORS")
	}
	if got := e.Reduce(s, TriggerSabotage{Type: "WARP_CORE"}); got != s {
		t.Fatalf("unknown channels must be ignored")
	}
}

func TestFixSabotage_TwoFixRule(t *testing.T) {
	for _, typ := range []SabotageType{SABOTAGE_REACTOR, SABOTAGE_OXYGEN} {
		e := newTestEngine(23)
		s := startRound(t, e, 4, 1)
		s = e.Reduce(s, TriggerSabotage{Type: typ})

		s = e.Reduce(s, FixSabotage{Type: typ})
		c := s.Systems.critical(typ)
		if c.FixedCount != 1 || !c.Active() {
			t.Fatalf("%s: one fix must leave the channel active", typ)
		}

		s = tickFor(e, s, 1)
		if *s.Systems.critical(typ).Timer >= MELTDOWN_SECONDS {
			t.Fatalf("%s: countdown should keep running after one fix", typ)
		}

		s = e.Reduce(s, FixSabotage{Type: typ})
		c = s.Systems.critical(typ)
		if c.FixedCount != 2 || c.Timer != nil {
			t.Fatalf("%s: second fix must clear the channel, got %+v", typ, c)
		}

		if got := e.Reduce(s, FixSabotage{Type: typ}); got != s {
			t.Fatalf("%s: third fix must be a no-op", typ)
		}
	}
}

func TestFixSabotage_StationsCountOnce(t *testing.T) {
	e := newTestEngine(24)
	s := startRound(t, e, 4, 1)
	s = e.Reduce(s, TriggerSabotage{Type: SABOTAGE_REACTOR})

	s = e.Reduce(s, FixSabotage{Type: SABOTAGE_REACTOR, StationID: "sys_reac_1"})
	if got := e.Reduce(s, FixSabotage{Type: SABOTAGE_REACTOR, StationID: "sys_reac_1"}); got != s {
		t.Fatalf("the same station cannot count twice")
	}
	if got := e.Reduce(s, FixSabotage{Type: SABOTAGE_REACTOR, StationID: "sys_oxy_1"}); got != s {
		t.Fatalf("an oxygen station cannot repair the reactor")
	}

	s = e.Reduce(s, FixSabotage{Type: SABOTAGE_REACTOR, StationID: "sys_reac_2"})
	if s.Systems.Reactor.Active() {
		t.Fatalf("two distinct stations should clear the reactor")
	}
}

func TestMeltdown_EndsRound(t *testing.T) {
	e := newTestEngine(25)
	s := startRound(t, e, 6, 2)
	s = e.Reduce(s, TriggerSabotage{Type: SABOTAGE_REACTOR})

	// 59.9 秒后仍在进行
	for range 1198 {
		s = e.Reduce(s, Tick{Dt: 50})
	}
	if s.Phase != PHASE_PLAYING {
		t.Fatalf("round ended early, timer=%v", *s.Systems.Reactor.Timer)
	}

	s = e.Reduce(s, Tick{Dt: 200})
	if s.Phase != PHASE_ENDED || s.Winner != content.TEAM_GLITCH || s.EndReason != END_MELTDOWN {
		t.Fatalf("want meltdown loss, got phase=%s winner=%s reason=%s", s.Phase, s.Winner, s.EndReason)
	}

	if got := e.Reduce(s, Tick{Dt: 50}); got != s {
		t.Fatalf("ticks after the round ended must be ignored")
	}
}

func TestMeltdown_AvertedByTwoFixes(t *testing.T) {
	e := newTestEngine(26)
	s := startRound(t, e, 6, 2)
	s = e.Reduce(s, TriggerSabotage{Type: SABOTAGE_OXYGEN})

	s = tickFor(e, s, 30)
	s = e.Reduce(s, FixSabotage{Type: SABOTAGE_OXYGEN, StationID: "sys_oxy_1"})
	s = tickFor(e, s, 20)
	s = e.Reduce(s, FixSabotage{Type: SABOTAGE_OXYGEN, StationID: "sys_oxy_2"})
	s = tickFor(e, s, 30)

	if s.Phase != PHASE_PLAYING || s.Systems.Oxygen.Timer != nil {
		t.Fatalf("fixed oxygen should not end the round")
	}
}

func TestMeeting_DoesNotClearLifeCriticalSabotage(t *testing.T) {
	e := newTestEngine(27)
	s := startRound(t, e, 6, 2)

	imp := byTeam(s, content.TEAM_GLITCH)[0]
	crew := byTeam(s, content.TEAM_INITIATIVE)

	s = e.Reduce(s, KillPlayer{KillerID: imp.ID, TargetID: crew[0].ID})
	s = e.Reduce(s, TriggerSabotage{Type: SABOTAGE_REACTOR})
	s = tickFor(e, s, 5)
	before := *s.Systems.Reactor.Timer

	if got := e.Reduce(s, CallEmergencyMeeting{PlayerID: crew[1].ID}); got != s {
		t.Fatalf("emergency meeting must be blocked during a meltdown")
	}

	s = e.Reduce(s, ReportBody{ReporterID: crew[1].ID, BodyID: crew[0].ID})
	if s.Phase != PHASE_MEETING {
		t.Fatalf("body report should start a meeting")
	}
	if !s.Systems.Reactor.Active() || s.ActiveSabotage != SABOTAGE_REACTOR {
		t.Fatalf("meeting must not clear the reactor")
	}

	s = tickFor(e, s, 10)
	if *s.Systems.Reactor.Timer != before {
		t.Fatalf("meltdown must be frozen during a meeting: %v -> %v", before, *s.Systems.Reactor.Timer)
	}
}

func TestSystems_WireNames(t *testing.T) {
	e := newTestEngine(27)
	s := startRound(t, e, 4, 1)
	s = e.Reduce(s, TriggerSabotage{Type: SABOTAGE_OXYGEN})

	data, err := json.Marshal(s.Systems)
	if err != nil {
		t.Fatalf("marshal systems: %v", err)
	}
	raw := string(data)
	if !strings.Contains(raw, `"meltdownTimer":null`) || !strings.Contains(raw, `"depletionTimer":`+"60") {
		t.Fatalf("unexpected wire form %s", raw)
	}

	var back SystemState
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal systems: %v", err)
	}
	if !back.Oxygen.Active() || back.Reactor.Active() {
		t.Fatalf("channels lost on decode: %+v", back)
	}

	// 克隆后修改计时不影响原状态
	next := s.Clone()
	*next.Systems.critical(SABOTAGE_OXYGEN).Timer = 1
	if *s.Systems.Oxygen.Timer != MELTDOWN_SECONDS {
		t.Fatalf("clone shares the oxygen timer")
	}
}
