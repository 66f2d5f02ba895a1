package dto

import (
	"time"

	"gem-game/entities"
)

type CreateRoomRequest struct {
	PlayerNames []string `json:"playerNames" binding:"required,min=2,max=4,dive,required"`
	DebugMode   bool     `json:"debugMode"`
}

type CreateRoomResponse struct {
	RoomID       string `json:"roomID"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// RoomSummary 房间列表中的一项
type RoomSummary struct {
	RoomID        string              `json:"roomID"`
	GameStatus    entities.RoomStatus `json:"gameStatus"`
	PlayerNames   []string            `json:"playerNames"`
	CurrentPlayer int                 `json:"currentPlayer"`
	DebugMode     bool                `json:"debugMode"`
	Online        int                 `json:"online"` // 已连接的 websocket 数
	CreatedAt     time.Time           `json:"createdAt"`
}

type GetRoomList struct {
	Rooms []RoomSummary `json:"rooms"`
}

// ErrorResponse Code 为稳定的错误码，Message 给人看
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
