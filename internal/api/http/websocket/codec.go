package websocket

import (
	"bytes"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	CODEC_JSON    = "json"
	CODEC_MSGPACK = "msgpack"
)

// Codec 决定服务端推送的编码方式，客户端请求始终为 JSON 文本帧
type Codec interface {
	Name() string
	MessageType() int
	Encode(v any) ([]byte, error)
}

func CodecByName(name string) Codec {
	if name == CODEC_MSGPACK {
		return msgpackCodec{}
	}
	return jsonCodec{}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return CODEC_JSON }

func (jsonCodec) MessageType() int { return websocket.TextMessage }

func (jsonCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// msgpackCodec 复用 json 标签，字段名与 JSON 编码一致
type msgpackCodec struct{}

func (msgpackCodec) Name() string { return CODEC_MSGPACK }

func (msgpackCodec) MessageType() int { return websocket.BinaryMessage }

func (msgpackCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
