package entities

import (
	"encoding/json"
	"time"
)

type RoomInfo struct {
	RoomID      string     `json:"roomID"`
	GameStatus  RoomStatus `json:"gameStatus"`
	MaxPlayers  int        `json:"maxPlayers"`
	PlayerNames []string   `json:"playerNames"`
	DebugMode   bool       `json:"debugMode"`
	Seed        uint64     `json:"seed"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type RoomStatus string

const (
	RoomStatusPlaying RoomStatus = "playing" // 游戏进行中
	RoomStatusEnd     RoomStatus = "end"     // 已决出胜者
)

// LastAction 玩家最近一次成功的操作
type LastAction struct {
	Action   string          `json:"action"` // take_gems / buy_card / reserve_card ...
	PlayerID int             `json:"playerID"`
	Payload  json.RawMessage `json:"payload"`
	At       time.Time       `json:"at"`
}

// GameResult 一局结束后的归档记录
type GameResult struct {
	RoomID     string    `json:"roomID"`
	Winner     int       `json:"winner"`
	WinnerName string    `json:"winnerName"`
	Scores     []int     `json:"scores"`
	Players    []string  `json:"players"`
	Rounds     int       `json:"rounds"`
	DebugMode  bool      `json:"debugMode"`
	FinishedAt time.Time `json:"finishedAt"`
}
