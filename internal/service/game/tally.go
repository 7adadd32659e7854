package game

import "sort"

type TallyResult struct {
	// 目标（玩家 ID 或 skip）到票数
	Counts    map[string]int `json:"counts"`
	Abstained int            `json:"abstained"`
	// 为空表示无人被放逐
	EjectedID string `json:"ejectedId,omitempty"`
	Tie       bool   `json:"tie"`
}

// Tally 统计当前会议的投票。
// 只计存活玩家的票，投给已死亡或不存在玩家的票视为弃权；
// 得票最多者唯一且不是 skip 时才放逐，平票或 skip 领先都不放逐。
func Tally(s *GameState) TallyResult {
	res := TallyResult{Counts: map[string]int{}}

	for voter, target := range s.Votes {
		if s.alivePlayer(voter) < 0 {
			continue
		}
		if target != VOTE_SKIP && s.alivePlayer(target) < 0 {
			res.Abstained++
			continue
		}
		res.Counts[target]++
	}

	targets := make([]string, 0, len(res.Counts))
	for t := range res.Counts {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool {
		if res.Counts[targets[i]] != res.Counts[targets[j]] {
			return res.Counts[targets[i]] > res.Counts[targets[j]]
		}
		return targets[i] < targets[j]
	})

	if len(targets) == 0 {
		return res
	}
	if len(targets) > 1 && res.Counts[targets[0]] == res.Counts[targets[1]] {
		res.Tie = true
		return res
	}
	if targets[0] != VOTE_SKIP {
		res.EjectedID = targets[0]
	}

	return res
}

// AllVoted 所有存活玩家都已投票
func (s *GameState) AllVoted() bool {
	alive := 0
	for _, p := range s.Players {
		if p.IsDead {
			continue
		}
		alive++
		if !p.HasVoted {
			return false
		}
	}
	return alive > 0
}
