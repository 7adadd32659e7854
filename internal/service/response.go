package service

// 响应类型
const (
	RESP_ERROR = "Error"

	RESP_JOIN_LOBBY     = "JoinLobby"
	RESP_SNAPSHOT       = "Snapshot"
	RESP_MEETING_RESULT = "MeetingResult"
	RESP_GAME_OVER      = "GameOver"
	RESP_EXIT_LOBBY     = "ExitLobby"
)

type ResponseWrapper struct {
	RespType string `json:"response_type"`
	Data     any    `json:"data"`
	ErrMsg   string `json:"error_message,omitempty"`
}

func WrapResponse(respType string, data any) ResponseWrapper {
	return ResponseWrapper{
		RespType: respType,
		Data:     data,
	}
}

func WrapErrResponse(errMsg string) ResponseWrapper {
	return ResponseWrapper{
		RespType: RESP_ERROR,
		ErrMsg:   errMsg,
	}
}
