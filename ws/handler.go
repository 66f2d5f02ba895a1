package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gem-game/dto"
	"gem-game/engine"
	"gem-game/service"
	"gem-game/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// RoomService websocket 需要的房间操作
type RoomService interface {
	Snapshot(roomID string) (engine.Snapshot, error)
	Apply(ctx context.Context, roomID string, action service.Action) (engine.Snapshot, error)
}

type TokenParser interface {
	ParseAccessToken(tokenStr string) (*utils.Claims, error)
}

// ReadWriteConn 读写接口，真实连接和测试用的假连接都实现它
type ReadWriteConn interface {
	dto.ConnInterface
	ReadMessage() (messageType int, p []byte, err error)
}

type Handler struct {
	hub      *Hub
	rooms    RoomService
	tokens   TokenParser
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, rooms RoomService, tokens TokenParser, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		hub:    hub,
		rooms:  rooms,
		tokens: tokens,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket WebSocket 主入口（处理每个连接）
func (h *Handler) HandleWebSocket(c *gin.Context) {
	roomID := c.Query("roomID")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: "缺少 roomID"})
		return
	}
	claims, err := h.tokens.ParseAccessToken(c.Query("token"))
	if err != nil || claims.RoomID != roomID {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "未授权"})
		return
	}
	// 只检查房间是否存在，推送的快照在加入房间之后再取
	if _, err := h.rooms.Snapshot(roomID); err != nil {
		code, status := service.ErrorCode(err)
		c.JSON(status, dto.ErrorResponse{Code: code, Message: err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket 升级失败", zap.String("roomID", roomID), zap.Error(err))
		return
	}
	defer conn.Close()

	h.serve(c.Request.Context(), &dto.RealConn{Conn: conn}, roomID)
}

// serve 加入房间、推送当前快照，然后循环处理客户端发来的动作；
// 先加入再取快照，期间发生的动作会通过广播补上
func (h *Handler) serve(ctx context.Context, conn ReadWriteConn, roomID string) {
	pc := h.hub.Join(roomID, conn)
	defer h.hub.Leave(roomID, pc)
	logger := h.logger.With(zap.String("roomID", roomID), zap.String("conn", pc.ID))
	logger.Info("连接加入房间", zap.Int("conns", h.hub.ConnCount(roomID)))

	snap, err := h.rooms.Snapshot(roomID)
	if err != nil {
		code, _ := service.ErrorCode(err)
		if sendErr := h.hub.Send(pc, dto.ServerMessage{Type: dto.MessageTypeError, RoomID: roomID, Code: code, Message: err.Error()}); sendErr != nil {
			logger.Warn("发送错误消息失败", zap.Error(sendErr))
		}
		return
	}
	if err := h.hub.Send(pc, dto.ServerMessage{Type: dto.MessageTypeSync, RoomID: roomID, Data: snap}); err != nil {
		logger.Warn("发送初始快照失败", zap.Error(err))
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				logger.Debug("读取消息失败", zap.Error(err))
			}
			break
		}
		if err := h.handleMessage(ctx, roomID, msg); err != nil {
			code, _ := service.ErrorCode(err)
			if sendErr := h.hub.Send(pc, dto.ServerMessage{Type: dto.MessageTypeError, RoomID: roomID, Code: code, Message: err.Error()}); sendErr != nil {
				logger.Warn("发送错误消息失败", zap.Error(sendErr))
				break
			}
		}
	}
	logger.Info("连接离开房间")
}

// handleMessage 成功的动作由 RoomService 广播，这里只返回错误
func (h *Handler) handleMessage(ctx context.Context, roomID string, msg []byte) error {
	var req dto.ActionRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return fmt.Errorf("%w: 消息解析失败: %v", service.ErrBadAction, err)
	}
	action, err := service.ParseAction(req)
	if err != nil {
		return err
	}
	_, err = h.rooms.Apply(ctx, roomID, action)
	return err
}
