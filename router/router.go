package router

import (
	"gem-game/controller"
	"gem-game/middleware"
	"gem-game/ws"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Rooms     *controller.RoomController
	Auth      *controller.AuthController
	WebSocket *ws.Handler
	Tokens    middleware.TokenParser
}

func InitRouter(r *gin.Engine, h Handlers) {
	auth := middleware.AuthMiddleware(h.Tokens)

	// 房间接口路由
	api := r.Group("/room")
	{
		api.POST("/create", h.Rooms.CreateRoom)
		api.GET("/list", h.Rooms.GetRoomList)
		api.GET("/:roomID", h.Rooms.GetRoomInfo)
		api.POST("/:roomID/action", auth, h.Rooms.ApplyAction)
		api.DELETE("/:roomID", auth, h.Rooms.DeleteRoom)
	}

	r.POST("/auth/refresh", h.Auth.Refresh)

	// WebSocket 路由，token 放在 query 里
	r.GET("/ws", h.WebSocket.HandleWebSocket)
}
