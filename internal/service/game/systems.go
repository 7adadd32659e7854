package game

import "nebula-protocol-be/internal/content"

// 破坏通道
type SabotageType string

const (
	SABOTAGE_LIGHTS  SabotageType = "LIGHTS"
	SABOTAGE_REACTOR SabotageType = "REACTOR"
	SABOTAGE_COMMS   SabotageType = "COMMS"
	SABOTAGE_OXYGEN  SabotageType = "OXYGEN"
	SABOTAGE_DOORS   SabotageType = "DOORS"
)

// 可由 TriggerSabotage 触发的通道，顺序同时决定 ActiveSabotage 的回退顺序
var channelOrder = []SabotageType{
	SABOTAGE_REACTOR,
	SABOTAGE_OXYGEN,
	SABOTAGE_LIGHTS,
	SABOTAGE_COMMS,
}

// 开关型通道：灯光、通讯。Active 为 true 表示处于被破坏状态
type ToggleChannel struct {
	Active bool `json:"active"`
}

// 致命通道：反应堆、氧气。Timer 为 nil 表示稳定。
// 两个通道在线上的计时字段名不同，字段布局与 CriticalChannel 一致，可以直接转换。
type CriticalChannel struct {
	Timer      *float64
	FixedCount int
	// 已参与修理的修理点，同一修理点不能重复计数
	FixedStations []string
}

func (c CriticalChannel) Active() bool {
	return c.Timer != nil
}

func (c CriticalChannel) clone() CriticalChannel {
	if c.Timer != nil {
		t := *c.Timer
		c.Timer = &t
	}
	if c.FixedStations != nil {
		c.FixedStations = append([]string(nil), c.FixedStations...)
	}
	return c
}

type ReactorChannel struct {
	Timer         *float64 `json:"meltdownTimer"`
	FixedCount    int      `json:"fixedCount"`
	FixedStations []string `json:"fixedStations,omitempty"`
}

func (c ReactorChannel) Active() bool { return c.Timer != nil }

type OxygenChannel struct {
	Timer         *float64 `json:"depletionTimer"`
	FixedCount    int      `json:"fixedCount"`
	FixedStations []string `json:"fixedStations,omitempty"`
}

func (c OxygenChannel) Active() bool { return c.Timer != nil }

type SystemState struct {
	Lights  ToggleChannel  `json:"lights"`
	Comms   ToggleChannel  `json:"comms"`
	Reactor ReactorChannel `json:"reactor"`
	Oxygen  OxygenChannel  `json:"oxygen"`

	GlobalSabotageCooldown float64 `json:"globalSabotageCooldown"`
}

func (ss SystemState) clone() SystemState {
	ss.Reactor = ReactorChannel(CriticalChannel(ss.Reactor).clone())
	ss.Oxygen = OxygenChannel(CriticalChannel(ss.Oxygen).clone())
	return ss
}

// StableSystems 返回所有通道均稳定的系统状态
func StableSystems(cooldown float64) SystemState {
	return SystemState{GlobalSabotageCooldown: cooldown}
}

func (ss SystemState) IsActive(t SabotageType) bool {
	switch t {
	case SABOTAGE_LIGHTS:
		return ss.Lights.Active
	case SABOTAGE_COMMS:
		return ss.Comms.Active
	case SABOTAGE_REACTOR:
		return ss.Reactor.Active()
	case SABOTAGE_OXYGEN:
		return ss.Oxygen.Active()
	}
	return false
}

// ActiveChannels 列出当前所有处于破坏状态的通道
func (ss SystemState) ActiveChannels() []SabotageType {
	var out []SabotageType
	for _, t := range channelOrder {
		if ss.IsActive(t) {
			out = append(out, t)
		}
	}
	return out
}

// LifeCritical 反应堆或氧气正在倒计时
func (ss SystemState) LifeCritical() bool {
	return ss.Reactor.Active() || ss.Oxygen.Active()
}

func (ss *SystemState) critical(t SabotageType) *CriticalChannel {
	switch t {
	case SABOTAGE_REACTOR:
		return (*CriticalChannel)(&ss.Reactor)
	case SABOTAGE_OXYGEN:
		return (*CriticalChannel)(&ss.Oxygen)
	}
	return nil
}

func (ss *SystemState) toggle(t SabotageType) *ToggleChannel {
	switch t {
	case SABOTAGE_LIGHTS:
		return &ss.Lights
	case SABOTAGE_COMMS:
		return &ss.Comms
	}
	return nil
}

// 会议开始时强制恢复灯光与通讯，致命通道保持不变
func (ss *SystemState) restoreNonCritical() {
	ss.Lights.Active = false
	ss.Comms.Active = false
}

// 修理点 taskType 到通道的映射
func stationChannel(taskType string) SabotageType {
	switch taskType {
	case content.SYSTEM_FIX_LIGHTS:
		return SABOTAGE_LIGHTS
	case content.SYSTEM_FIX_COMMS:
		return SABOTAGE_COMMS
	case content.SYSTEM_FIX_REACTOR:
		return SABOTAGE_REACTOR
	case content.SYSTEM_FIX_OXYGEN:
		return SABOTAGE_OXYGEN
	}
	return ""
}

func floatPtr(v float64) *float64 {
	return &v
}
