package dto

import "github.com/gorilla/websocket"

// ActionRequest 客户端提交的一个动作，HTTP 和 websocket 共用
type ActionRequest struct {
	Type    string                 `json:"type" binding:"required"`
	Payload map[string]interface{} `json:"payload"`
}

// ActionPayload 各类动作 payload 的并集，按 json tag 从 map 解码
type ActionPayload struct {
	Gems        map[string]int `json:"gems"`
	Level       int            `json:"level"`
	CardID      int            `json:"cardID"`
	Index       int            `json:"index"`
	NobleID     int            `json:"nobleID"`
	PlayerNames []string       `json:"playerNames"`
	DebugMode   bool           `json:"debugMode"`
}

// ServerMessage 服务端推送：sync 带快照，error 带错误码
type ServerMessage struct {
	Type    string      `json:"type"`
	RoomID  string      `json:"roomID,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

const (
	MessageTypeSync  = "sync"
	MessageTypeError = "error"
)

type ConnInterface interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type RealConn struct {
	*websocket.Conn
}

func (r *RealConn) WriteMessage(messageType int, data []byte) error {
	return r.Conn.WriteMessage(messageType, data)
}

func (r *RealConn) Close() error {
	return r.Conn.Close()
}
