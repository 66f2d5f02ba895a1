package controller

import (
	"context"
	"net/http"

	"gem-game/dto"
	"gem-game/engine"
	"gem-game/entities"
	"gem-game/service"
	"gem-game/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoomService 控制器需要的房间操作
type RoomService interface {
	CreateRoom(ctx context.Context, names []string, debugMode bool) (entities.RoomInfo, engine.Snapshot, error)
	ListRooms() []dto.RoomSummary
	Snapshot(roomID string) (engine.Snapshot, error)
	Apply(ctx context.Context, roomID string, action service.Action) (engine.Snapshot, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

type RoomController struct {
	rooms  RoomService
	tokens *utils.TokenIssuer
	logger *zap.Logger
}

func NewRoomController(rooms RoomService, tokens *utils.TokenIssuer, logger *zap.Logger) *RoomController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomController{rooms: rooms, tokens: tokens, logger: logger}
}

func (rc *RoomController) fail(c *gin.Context, err error) {
	code, status := service.ErrorCode(err)
	if status >= http.StatusInternalServerError {
		rc.logger.Error("请求处理失败", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, dto.ErrorResponse{Code: code, Message: err.Error()})
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: "缺少必要字段: " + err.Error()})
		return
	}

	info, _, err := rc.rooms.CreateRoom(c.Request.Context(), req.PlayerNames, req.DebugMode)
	if err != nil {
		rc.fail(c, err)
		return
	}
	access, err := rc.tokens.GenerateAccessToken(info.RoomID)
	if err != nil {
		rc.fail(c, err)
		return
	}
	refresh, err := rc.tokens.GenerateRefreshToken(info.RoomID)
	if err != nil {
		rc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间创建成功",
		"data": dto.CreateRoomResponse{
			RoomID:       info.RoomID,
			AccessToken:  access,
			RefreshToken: refresh,
		},
	})
}

func (rc *RoomController) GetRoomList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "获取成功",
		"status_code": http.StatusOK,
		"data":        dto.GetRoomList{Rooms: rc.rooms.ListRooms()},
	})
}

func (rc *RoomController) GetRoomInfo(c *gin.Context) {
	snap, err := rc.rooms.Snapshot(c.Param("roomID"))
	if err != nil {
		rc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        snap,
	})
}

func (rc *RoomController) ApplyAction(c *gin.Context) {
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_ACTION", Message: "缺少必要字段: " + err.Error()})
		return
	}
	action, err := service.ParseAction(req)
	if err != nil {
		rc.fail(c, err)
		return
	}
	snap, err := rc.rooms.Apply(c.Request.Context(), c.Param("roomID"), action)
	if err != nil {
		rc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        snap,
	})
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.rooms.DeleteRoom(c.Request.Context(), c.Param("roomID")); err != nil {
		rc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间删除成功",
	})
}
