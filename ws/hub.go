package ws

import (
	"encoding/json"
	"sync"

	"gem-game/dto"
	"gem-game/engine"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// PlayerConn 房间里的一个连接，写操作串行化
type PlayerConn struct {
	ID   string
	Conn dto.ConnInterface

	mu sync.Mutex
}

func (pc *PlayerConn) write(data []byte) error {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.Conn.WriteMessage(websocket.TextMessage, data)
}

// Hub 按房间管理所有 websocket 连接
type Hub struct {
	mu     sync.Mutex
	rooms  map[string][]*PlayerConn
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{rooms: make(map[string][]*PlayerConn), logger: logger}
}

// Join 把连接加入房间
func (h *Hub) Join(roomID string, conn dto.ConnInterface) *PlayerConn {
	pc := &PlayerConn{ID: uuid.New().String(), Conn: conn}
	h.mu.Lock()
	h.rooms[roomID] = append(h.rooms[roomID], pc)
	h.mu.Unlock()
	return pc
}

// Leave 玩家断开连接后，从房间中移除该连接
func (h *Hub) Leave(roomID string, pc *PlayerConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(roomID, pc)
}

func (h *Hub) removeLocked(roomID string, pc *PlayerConn) {
	list := h.rooms[roomID]
	for i, c := range list {
		if c == pc {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(h.rooms, roomID)
		return
	}
	h.rooms[roomID] = list
}

func (h *Hub) ConnCount(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}

func (h *Hub) conns(roomID string) []*PlayerConn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*PlayerConn(nil), h.rooms[roomID]...)
}

// 构建一条统一格式的消息
func buildMessage(msg dto.ServerMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		data, _ = json.Marshal(dto.ServerMessage{Type: dto.MessageTypeError, Code: "INTERNAL", Message: err.Error()})
	}
	return data
}

func syncMessage(roomID string, snap engine.Snapshot) []byte {
	return buildMessage(dto.ServerMessage{Type: dto.MessageTypeSync, RoomID: roomID, Data: snap})
}

// Broadcast 广播快照给房间内所有连接，发送失败的连接会被关闭并移除
func (h *Hub) Broadcast(roomID string, snap engine.Snapshot) {
	msg := syncMessage(roomID, snap)
	for _, pc := range h.conns(roomID) {
		if err := pc.write(msg); err != nil {
			h.logger.Warn("广播失败，移除连接", zap.String("roomID", roomID), zap.String("conn", pc.ID), zap.Error(err))
			_ = pc.Conn.Close()
			h.Leave(roomID, pc)
		}
	}
}

// Send 只发给一个连接
func (h *Hub) Send(pc *PlayerConn, msg dto.ServerMessage) error {
	return pc.write(buildMessage(msg))
}

// CloseRoom 关闭房间内的所有连接
func (h *Hub) CloseRoom(roomID string) {
	h.mu.Lock()
	list := h.rooms[roomID]
	delete(h.rooms, roomID)
	h.mu.Unlock()

	for _, pc := range list {
		_ = pc.Conn.Close()
	}
}
