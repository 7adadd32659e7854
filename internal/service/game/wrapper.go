package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownAction = errors.New("unknown action type")

// ActionWrapper 是动作在线路上的形式：{type, payload}。
// Remote 只是传输层打的标记，状态机不会读取它。
type ActionWrapper struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Remote  bool            `json:"remote,omitempty"`
}

type decodeFunc func(raw json.RawMessage) (Action, error)

func decodeAs[T Action](raw json.RawMessage) (Action, error) {
	var a T
	if len(raw) == 0 || string(raw) == "null" {
		return a, nil
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return a, nil
}

// 以下几个动作的 payload 直接是数据本身，而不是包了一层的对象
var decoders = map[string]decodeFunc{
	ACT_SET_LOBBY_MODE: func(raw json.RawMessage) (Action, error) {
		var mode LobbyMode
		if err := json.Unmarshal(raw, &mode); err != nil {
			return nil, err
		}
		return SetLobbyMode{Mode: mode}, nil
	},
	ACT_UPDATE_SETTINGS: func(raw json.RawMessage) (Action, error) {
		var patch SettingsPatch
		if err := json.Unmarshal(raw, &patch); err != nil {
			return nil, err
		}
		return UpdateSettings{Patch: patch}, nil
	},
	ACT_LOAD_MOD: func(raw json.RawMessage) (Action, error) {
		var a LoadMod
		if err := json.Unmarshal(raw, &a.Package); err != nil {
			return nil, err
		}
		return a, nil
	},
	ACT_SYNC_STATE: func(raw json.RawMessage) (Action, error) {
		var st GameState
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, err
		}
		return SyncState{State: &st}, nil
	},

	ACT_CREATE_LOBBY:           decodeAs[CreateLobby],
	ACT_JOIN_LOBBY:             decodeAs[JoinLobby],
	ACT_LEAVE_LOBBY:            decodeAs[LeaveLobby],
	ACT_UPDATE_COSMETICS:       decodeAs[UpdateCosmetics],
	ACT_SET_READY:              decodeAs[SetReady],
	ACT_KICK_PLAYER:            decodeAs[KickPlayer],
	ACT_SET_MAP:                decodeAs[SetMap],
	ACT_START_GAME:             decodeAs[StartGame],
	ACT_RETURN_TO_LOBBY:        decodeAs[ReturnToLobby],
	ACT_MOVE_PLAYER:            decodeAs[MovePlayer],
	ACT_KILL_PLAYER:            decodeAs[KillPlayer],
	ACT_REPORT_BODY:            decodeAs[ReportBody],
	ACT_CALL_EMERGENCY_MEETING: decodeAs[CallEmergencyMeeting],
	ACT_VOTE:                   decodeAs[Vote],
	ACT_END_MEETING:            decodeAs[EndMeeting],
	ACT_SEND_CHAT:              decodeAs[SendChat],
	ACT_OPEN_TASK:              decodeAs[OpenTask],
	ACT_CLOSE_TASK:             decodeAs[CloseTask],
	ACT_COMPLETE_TASK:          decodeAs[CompleteTask],
	ACT_TOGGLE_DOOR:            decodeAs[ToggleDoor],
	ACT_SABOTAGE_DOORS:         decodeAs[SabotageDoors],
	ACT_ENTER_VENT:             decodeAs[EnterVent],
	ACT_EXIT_VENT:              decodeAs[ExitVent],
	ACT_TRIGGER_SABOTAGE:       decodeAs[TriggerSabotage],
	ACT_FIX_SABOTAGE:           decodeAs[FixSabotage],
	ACT_TICK:                   decodeAs[Tick],
	ACT_REQUEST_STATE:          decodeAs[RequestState],
}

// UnwrapAction 把线路上的动作解码为具体类型
func UnwrapAction(w ActionWrapper) (Action, error) {
	decode, ok := decoders[w.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, w.Type)
	}

	a, err := decode(w.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", w.Type, err)
	}

	return a, nil
}

// WrapAction 把动作编码为线路形式
func WrapAction(a Action) (ActionWrapper, error) {
	var payload any = a

	switch v := a.(type) {
	case SetLobbyMode:
		payload = v.Mode
	case UpdateSettings:
		payload = v.Patch
	case LoadMod:
		payload = v.Package
	case SyncState:
		payload = v.State
	case StartGame, ReturnToLobby, RequestState:
		return ActionWrapper{Type: a.ActionType()}, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return ActionWrapper{}, fmt.Errorf("encode %s payload: %w", a.ActionType(), err)
	}

	return ActionWrapper{Type: a.ActionType(), Payload: raw}, nil
}
