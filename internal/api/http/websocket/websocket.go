package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	HEARTBEAT_INTERVAL = 30 * time.Second
	// 超过该时间未收到任何消息或 pong 即断开
	HEARTBEAT_TIMEOUT = 45 * time.Second
	WRITE_TIMEOUT     = 5 * time.Second
	// 等待房间确认退出的时间
	EXIT_TIMEOUT = 3 * time.Second

	// 模组包可能较大
	MAX_MESSAGE_SIZE = 256 * 1024
)

var upgrader = websocket.Upgrader{
	// NOTE: 暂时允许所有来源
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   4096,
	EnableCompression: true,
}

// upgrade 升级连接并设置读限制与心跳
func upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	conn.SetReadLimit(MAX_MESSAGE_SIZE)
	extendDeadline(conn)
	conn.SetPongHandler(func(string) error {
		extendDeadline(conn)
		return nil
	})

	return conn, nil
}

func extendDeadline(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
}
