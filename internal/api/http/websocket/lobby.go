package websocket

import (
	"encoding/json"
	"errors"
	"time"

	"nebula-protocol-be/internal/service"
	"nebula-protocol-be/internal/service/game"
	"nebula-protocol-be/internal/state"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

var errNotJoin = errors.New("首次请求必须是 JOIN_LOBBY")

// readJoin 读取并解析首条消息，它必须是 JOIN_LOBBY
func readJoin(conn *websocket.Conn) (game.JoinLobby, error) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return game.JoinLobby{}, err
	}

	var wrapper game.ActionWrapper
	if err := json.Unmarshal(msg, &wrapper); err != nil {
		return game.JoinLobby{}, err
	}

	a, err := game.UnwrapAction(wrapper)
	if err != nil {
		return game.JoinLobby{}, err
	}

	join, ok := a.(game.JoinLobby)
	if !ok {
		return game.JoinLobby{}, errNotJoin
	}

	return join, nil
}

func writeResp(conn *websocket.Conn, codec Codec, resp service.ResponseWrapper) error {
	data, err := codec.Encode(resp)
	if err != nil {
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
	return conn.WriteMessage(codec.MessageType(), data)
}

// JoinLobby 处理 /ws/join：首条消息加入房间，之后的消息都作为动作转发给房间状态机
func JoinLobby(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		codec := CodecByName(ctx.URLParamDefault("codec", CODEC_JSON))

		conn, err := upgrade(ctx.ResponseWriter(), ctx.Request())
		if err != nil {
			zap.L().Error("升级到WebSocket失败", zap.Error(err))
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		defer conn.Close()

		clientIP := ctx.RemoteAddr()

		join, err := readJoin(conn)
		if err != nil {
			zap.L().Error(
				"读取首次请求失败",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			writeResp(conn, codec, service.WrapErrResponse(service.ErrInvalidRequest.Error()))
			return
		}

		respCh := make(chan service.ResponseWrapper, service.RESP_CHANNEL_SIZE)

		reqCh, playerID, err := appState.LobbySvc.Join(join.Code, join.PlayerID, join.Profile, respCh)
		if err != nil {
			zap.L().Warn(
				"加入房间失败",
				zap.String("client_ip", clientIP),
				zap.String("lobby_code", join.Code),
				zap.Error(err),
			)
			writeResp(conn, codec, service.WrapErrResponse(err.Error()))
			return
		}

		zap.L().Info(
			"玩家成功加入房间",
			zap.String("client_ip", clientIP),
			zap.String("lobby_code", join.Code),
			zap.String("player_id", playerID),
			zap.String("codec", codec.Name()),
		)

		localCh := make(chan service.ResponseWrapper, 8)

		// 写协程的退出信号与退出完成信号
		writeDoneCh := make(chan struct{})
		writerExitedCh := make(chan struct{})

		go func() {
			defer close(writerExitedCh)

			ticker := time.NewTicker(HEARTBEAT_INTERVAL)
			defer ticker.Stop()

			for {
				select {
				case <-writeDoneCh:
					return

				case <-ticker.C:
					conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						zap.L().Error(
							"发送心跳失败",
							zap.String("client_ip", clientIP),
							zap.Error(err),
						)
						return
					}

				case resp := <-localCh:
					if err := writeResp(conn, codec, resp); err != nil {
						return
					}

				case resp, ok := <-respCh:
					// 通道被房间关闭：被踢出、被新连接顶替或房间已清理
					if !ok {
						zap.L().Info(
							"响应通道已关闭，退出写协程",
							zap.String("player_id", playerID),
						)
						conn.WriteControl(
							websocket.CloseMessage,
							websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
							time.Now().Add(WRITE_TIMEOUT),
						)
						return
					}

					if err := writeResp(conn, codec, resp); err != nil {
						zap.L().Error(
							"发送消息失败",
							zap.String("client_ip", clientIP),
							zap.Error(err),
						)
						return
					}
				}
			}
		}()

		// 读循环（主协程）
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure,
					websocket.CloseAbnormalClosure,
				) {
					zap.L().Error(
						"读取消息失败",
						zap.String("client_ip", clientIP),
						zap.Error(err),
					)
				}
				break
			}
			extendDeadline(conn)

			var wrapper game.ActionWrapper
			if err := json.Unmarshal(msg, &wrapper); err != nil {
				zap.L().Debug(
					"解析消息失败",
					zap.String("player_id", playerID),
					zap.Error(err),
				)
				trySend(localCh, service.WrapErrResponse(service.ErrInvalidRequest.Error()))
				continue
			}

			select {
			case reqCh <- service.Request{SenderID: playerID, Action: wrapper}:
			default:
				zap.L().Warn(
					"发送请求到房间状态机失败：请求通道已满",
					zap.String("player_id", playerID),
				)
				trySend(localCh, service.WrapErrResponse(service.ErrLobbyBusy.Error()))
			}
		}

		// 先停掉写协程，之后由主协程等待房间关闭响应通道
		close(writeDoneCh)
		<-writerExitedCh

		zap.L().Info(
			"客户端连接断开，发送退出请求",
			zap.String("client_ip", clientIP),
			zap.String("player_id", playerID),
		)

		leave := service.Request{Leave: &service.LeaveRequest{PlayerID: playerID, RespCh: respCh}}

		if !sendLeave(reqCh, leave, EXIT_TIMEOUT) {
			zap.L().Warn(
				"发送退出请求超时，房间未响应",
				zap.String("player_id", playerID),
			)
			return
		}

		timeout := time.After(EXIT_TIMEOUT)
		for {
			select {
			case _, ok := <-respCh:
				if ok {
					continue
				}
				zap.L().Info("玩家退出完成", zap.String("player_id", playerID))
				return
			case <-timeout:
				zap.L().Warn("等待退出确认超时，强制退出", zap.String("player_id", playerID))
				return
			}
		}
	}
}

// sendLeave 退出请求不能丢，否则房间会一直保留这条连接
func sendLeave(reqCh chan<- service.Request, leave service.Request, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case reqCh <- leave:
		return true
	case <-timer.C:
		return false
	}
}

// respCh 只由房间关闭，读协程的错误提示走单独的 localCh
func trySend(ch chan service.ResponseWrapper, resp service.ResponseWrapper) {
	select {
	case ch <- resp:
	default:
	}
}
