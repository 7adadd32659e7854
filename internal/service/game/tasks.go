package game

import (
	"strings"
	"unicode/utf8"

	"nebula-protocol-be/internal/content"
)

func (p Player) taskIndex(instanceID string) int {
	for i := range p.Tasks {
		if p.Tasks[i].ID == instanceID {
			return i
		}
	}
	return -1
}

func (e *Engine) openTask(s *GameState, a OpenTask) *GameState {
	if s.Phase != PHASE_PLAYING {
		return s
	}

	idx := s.alivePlayer(a.PlayerID)
	if idx < 0 || s.Players[idx].IsInVent {
		return s
	}
	p := s.Players[idx]
	ti := p.taskIndex(a.TaskInstanceID)
	if ti < 0 || p.Tasks[ti].Completed || p.ActiveTask == a.TaskInstanceID {
		return s
	}

	next := s.Clone()
	next.Players[idx].ActiveTask = a.TaskInstanceID
	return next
}

func (e *Engine) closeTask(s *GameState, a CloseTask) *GameState {
	idx := s.PlayerIndex(a.PlayerID)
	if idx < 0 || s.Players[idx].ActiveTask == "" {
		return s
	}

	next := s.Clone()
	next.Players[idx].ActiveTask = ""
	return next
}

func (e *Engine) completeTask(s *GameState, a CompleteTask) *GameState {
	if s.Phase != PHASE_PLAYING {
		return s
	}

	idx := s.alivePlayer(a.PlayerID)
	if idx < 0 {
		return s
	}
	ti := s.Players[idx].taskIndex(a.TaskInstanceID)
	if ti < 0 || s.Players[idx].Tasks[ti].Completed {
		return s
	}

	next := s.Clone()
	p := &next.Players[idx]
	p.Tasks[ti].Completed = true
	if p.ActiveTask == a.TaskInstanceID {
		p.ActiveTask = ""
	}

	next.checkTaskWin()

	return next
}

// CrewTaskProgress 统计船员阵营的任务进度。
// 死亡玩家无法再做任务，只计入其已完成的部分。
func (s *GameState) CrewTaskProgress() (done, total int) {
	for _, p := range s.Players {
		if s.TeamOf(p) != content.TEAM_INITIATIVE {
			continue
		}
		d, t := p.TaskProgress()
		if p.IsDead {
			t = d
		}
		done += d
		total += t
	}
	return done, total
}

// checkTaskWin 船员任务全部完成则船员胜
func (s *GameState) checkTaskWin() bool {
	if s.Phase == PHASE_ENDED {
		return false
	}
	if done, total := s.CrewTaskProgress(); total == 0 || done < total {
		return false
	}

	s.finish(content.TEAM_INITIATIVE, END_TASKS_COMPLETE)
	return true
}

// sendChat 会议中只有存活玩家可以发言
func (e *Engine) sendChat(s *GameState, a SendChat) *GameState {
	senderID := a.SenderID
	if senderID == "" {
		senderID = s.MyPlayerID
	}

	idx := s.PlayerIndex(senderID)
	if idx < 0 {
		return s
	}
	sender := s.Players[idx]
	if s.Phase == PHASE_MEETING && sender.IsDead {
		return s
	}

	text := strings.TrimSpace(a.Text)
	if text == "" {
		return s
	}
	if utf8.RuneCountInString(text) > MAX_CHAT_TEXT {
		text = string([]rune(text)[:MAX_CHAT_TEXT])
	}

	next := s.Clone()
	next.ChatMessages = append(next.ChatMessages, ChatMessage{
		ID:         e.newID(),
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Text:       text,
		Timestamp:  a.Timestamp,
		Color:      sender.Color,
	})
	if len(next.ChatMessages) > MAX_CHAT_LINES {
		next.ChatMessages = next.ChatMessages[len(next.ChatMessages)-MAX_CHAT_LINES:]
	}

	return next
}
