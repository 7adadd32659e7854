package service

import (
	"nebula-protocol-be/internal/content"
	"nebula-protocol-be/internal/service/game"
)

// ViewFor 生成发给某个玩家的快照，隐藏其不应知道的信息：
// 其他玩家的角色、任务与击杀冷却（这些都会暴露阵营）。
// 内鬼能看到同伙的角色，对局结束后全部公开。
func ViewFor(s *game.GameState, viewerID string) *game.GameState {
	view := s.Clone()
	view.MyPlayerID = viewerID

	if s.Phase == game.PHASE_ENDED {
		return view
	}

	viewerTeam := content.TEAM_INITIATIVE
	if viewer, ok := s.FindPlayer(viewerID); ok {
		viewerTeam = s.TeamOf(viewer)
	}

	for i := range view.Players {
		p := &view.Players[i]
		if p.ID == viewerID {
			continue
		}

		if viewerTeam == content.TEAM_GLITCH && s.TeamOf(s.Players[i]) == content.TEAM_GLITCH {
			continue
		}

		p.RoleID = ""
		p.Tasks = nil
		p.ActiveTask = ""
		p.KillTimer = 0
	}

	return view
}
