package game

import (
	"fmt"
	"slices"

	"nebula-protocol-be/internal/content"
)

// triggerSabotage 受全局冷却限制，同一冷却窗口内只能触发一次。
// 门的破坏走 SabotageDoors，这里不处理。
func (e *Engine) triggerSabotage(s *GameState, a TriggerSabotage) *GameState {
	if s.Phase != PHASE_PLAYING || !slices.Contains(channelOrder, a.Type) {
		return s
	}
	if s.Systems.GlobalSabotageCooldown > 0 || s.Systems.IsActive(a.Type) {
		return s
	}

	next := s.Clone()
	if c := next.Systems.critical(a.Type); c != nil {
		c.Timer = floatPtr(MELTDOWN_SECONDS)
		c.FixedCount = 0
		c.FixedStations = nil
	} else {
		next.Systems.toggle(a.Type).Active = true
	}

	next.Systems.GlobalSabotageCooldown = SABOTAGE_COOLDOWN
	next.ActiveSabotage = a.Type
	next.appendLog(fmt.Sprintf("SABOTAGE DETECTED: %s", a.Type))

	return next
}

// fixSabotage 灯光与通讯一次修复即恢复；反应堆与氧气需要两次修复，
// 指定了修理点时同一修理点只计一次
func (e *Engine) fixSabotage(s *GameState, a FixSabotage) *GameState {
	if s.Phase != PHASE_PLAYING || !s.Systems.IsActive(a.Type) {
		return s
	}

	if a.StationID != "" {
		station, ok := s.FindObject(a.StationID)
		if !ok || station.Type != content.OBJ_SYSTEM || stationChannel(station.TaskType) != a.Type {
			return s
		}
		if c := s.Systems.critical(a.Type); c != nil && slices.Contains(c.FixedStations, a.StationID) {
			return s
		}
	}

	next := s.Clone()
	cleared := false

	if c := next.Systems.critical(a.Type); c != nil {
		c.FixedCount++
		if a.StationID != "" {
			c.FixedStations = append(c.FixedStations, a.StationID)
		}
		if c.FixedCount >= CRITICAL_FIXES_REQUIRED {
			c.Timer = nil
			cleared = true
		}
	} else {
		next.Systems.toggle(a.Type).Active = false
		cleared = true
	}

	if cleared {
		next.refreshActiveSabotage()
		next.appendLog("SYSTEM RESTORED.")
	}

	return next
}

// refreshActiveSabotage 保留最近触发且仍在生效的通道，否则回退到任一生效通道
func (s *GameState) refreshActiveSabotage() {
	if s.ActiveSabotage != "" && s.Systems.IsActive(s.ActiveSabotage) {
		return
	}

	s.ActiveSabotage = ""
	if active := s.Systems.ActiveChannels(); len(active) > 0 {
		s.ActiveSabotage = active[0]
	}
}
