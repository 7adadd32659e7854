package game

import (
	"encoding/json"
	"fmt"
	"testing"

	"nebula-protocol-be/internal/content"
)

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic("Failed to marshal: " + err.Error())
	}

	return data
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
}

func newTestEngine(seed uint32) *Engine {
	return NewEngine(WithSeed(seed), WithIDSource(seqIDs()))
}

// newLobby 创建房间并加入 n-1 名玩家，房主为 p1
func newLobby(t *testing.T, e *Engine, n int, patch SettingsPatch) *GameState {
	t.Helper()

	s := e.Reduce(e.InitialState(), CreateLobby{
		Name:     "test",
		Settings: patch,
		Profile:  Profile{Name: "host"},
	})
	if s.LobbyCode == "" {
		t.Fatalf("lobby was not created")
	}

	for i := 1; i < n; i++ {
		s = e.Reduce(s, JoinLobby{Code: s.LobbyCode, Profile: Profile{Name: fmt.Sprintf("guest%d", i)}})
	}
	if len(s.Players) != n {
		t.Fatalf("want %d players in lobby, got %d", n, len(s.Players))
	}

	return s
}

func intPtr(v int) *int { return &v }

// startRound 开局并耗尽开局的击杀冷却、破坏宽限与紧急按钮冷却
func startRound(t *testing.T, e *Engine, n, impostors int) *GameState {
	t.Helper()

	s := newLobby(t, e, n, SettingsPatch{ImpostorCount: intPtr(impostors)})
	s = e.Reduce(s, StartGame{})
	if s.Phase != PHASE_PLAYING {
		t.Fatalf("round did not start, phase=%s", s.Phase)
	}

	return tickFor(e, s, SABOTAGE_GRACE_ROUND_START)
}

// tickFor 以 50ms 为步长推进 seconds 秒
func tickFor(e *Engine, s *GameState, seconds float64) *GameState {
	steps := int(seconds*20 + 0.5)
	for range steps {
		s = e.Reduce(s, Tick{Dt: 50})
	}
	return s
}

func byTeam(s *GameState, team content.Team) []Player {
	var out []Player
	for _, p := range s.Players {
		if s.TeamOf(p) == team {
			out = append(out, p)
		}
	}
	return out
}

func mustPlayer(t *testing.T, s *GameState, id string) Player {
	t.Helper()

	p, ok := s.FindPlayer(id)
	if !ok {
		t.Fatalf("player %s not found", id)
	}
	return p
}
