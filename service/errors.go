package service

import (
	"errors"
	"net/http"

	"gem-game/engine"
)

var (
	ErrRoomNotFound  = errors.New("房间不存在")
	ErrBadAction     = errors.New("动作格式错误")
	ErrDebugDisabled = errors.New("服务端未开启 debug 模式")
)

type errorCode struct {
	err    error
	code   string
	status int
}

// 有包装关系的错误要排在被包装的前面
var errorCodes = []errorCode{
	{engine.ErrReservationLimitReached, "RESERVATION_LIMIT_REACHED", http.StatusConflict},
	{engine.ErrCapExceeded, "CAP_EXCEEDED", http.StatusConflict},
	{engine.ErrInvalidSelection, "INVALID_SELECTION", http.StatusConflict},
	{engine.ErrInsufficientResources, "INSUFFICIENT_RESOURCES", http.StatusConflict},
	{engine.ErrInvalidIndex, "INVALID_INDEX", http.StatusConflict},
	{engine.ErrCardNotAvailable, "CARD_NOT_AVAILABLE", http.StatusConflict},
	{engine.ErrNobleNotAvailable, "NOBLE_NOT_AVAILABLE", http.StatusConflict},
	{engine.ErrNobleNotEligible, "NOBLE_NOT_ELIGIBLE", http.StatusConflict},
	{engine.ErrActionAlreadyTaken, "ACTION_ALREADY_TAKEN", http.StatusConflict},
	{engine.ErrGameOver, "GAME_OVER", http.StatusConflict},
	{engine.ErrInvalidPlayerCount, "INVALID_PLAYER_COUNT", http.StatusBadRequest},
	{engine.ErrNotInitialized, "NOT_INITIALIZED", http.StatusConflict},
	{ErrBadAction, "BAD_ACTION", http.StatusBadRequest},
	{ErrDebugDisabled, "DEBUG_DISABLED", http.StatusForbidden},
	{ErrRoomNotFound, "ROOM_NOT_FOUND", http.StatusNotFound},
}

// ErrorCode 把错误映射成稳定的错误码和 HTTP 状态码
func ErrorCode(err error) (string, int) {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code, ec.status
		}
	}
	return "INTERNAL", http.StatusInternalServerError
}
