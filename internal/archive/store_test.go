package archive

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"nebula-protocol-be/internal/content"
	"nebula-protocol-be/internal/service/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := Open(filepath.Join(t.TempDir(), "archive.db"), 4)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return st
}

func endedState() *game.GameState {
	s := game.NewEngine(game.WithSeed(1)).InitialState()
	s.Phase = game.PHASE_ENDED
	s.LobbyCode = "QWERTY"
	s.Winner = content.TEAM_GLITCH
	s.EndReason = game.END_MELTDOWN
	s.Players = []game.Player{
		{ID: "a", Name: "Ana", RoleID: content.ROLE_SABOTEUR},
		{ID: "b", Name: "Bo", RoleID: content.ROLE_TECHNICIAN, IsDead: true, Tasks: []game.TaskInstance{
			{ID: "t_b_0", Completed: true},
			{ID: "t_b_1"},
		}},
	}
	return s
}

func TestNewMatchRecord(t *testing.T) {
	start := time.Unix(1000, 0)
	rec := NewMatchRecord(endedState(), start, start.Add(time.Minute))

	if rec.ID == "" || rec.LobbyCode != "QWERTY" || rec.Winner != content.TEAM_GLITCH {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Players[0].Team != content.TEAM_GLITCH {
		t.Fatalf("team not resolved from role")
	}
	if p := rec.Players[1]; p.TasksDone != 1 || p.TasksTotal != 2 || !p.IsDead {
		t.Fatalf("player summary wrong: %+v", p)
	}
}

func TestStore_RecordGetList(t *testing.T) {
	st := openTestStore(t)

	var ids []string
	for i := range 6 {
		rec := NewMatchRecord(endedState(), time.Unix(int64(i), 0), time.Unix(int64(i)+60, 0))
		if err := st.Record(rec); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		ids = append(ids, rec.ID)
	}

	// 缓存容量为 4，最早的记录需要从数据库读取
	got, err := st.Get(ids[0])
	if err != nil || got.ID != ids[0] || len(got.Players) != 2 {
		t.Fatalf("get oldest: %v %+v", err, got)
	}

	list, err := st.List(3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != ids[5] || list[2].ID != ids[3] {
		t.Fatalf("want newest first, got %d records", len(list))
	}

	all, err := st.List(0)
	if err != nil || len(all) != 6 {
		t.Fatalf("list all: %v, %d records", err, len(all))
	}

	if _, err := st.Get("missing"); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("want ErrMatchNotFound, got %v", err)
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	st, err := Open(path, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec := NewMatchRecord(endedState(), time.Unix(0, 0), time.Unix(60, 0))
	if err := st.Record(rec); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st, err = Open(path, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	if got, err := st.Get(rec.ID); err != nil || got.EndReason != game.END_MELTDOWN {
		t.Fatalf("record lost after reopen: %v %+v", err, got)
	}
}
