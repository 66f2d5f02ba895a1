package middleware

import (
	"net/http"
	"strings"

	"gem-game/dto"
	"gem-game/utils"

	"github.com/gin-gonic/gin"
)

type TokenParser interface {
	ParseAccessToken(tokenStr string) (*utils.Claims, error)
}

const ContextRoomID = "roomID"

// AuthMiddleware 校验 Bearer token，且 token 必须属于路径中的房间
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "未授权"})
			return
		}
		claims, err := tokens.ParseAccessToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token 无效或已过期"})
			return
		}
		if roomID := c.Param("roomID"); roomID != "" && roomID != claims.RoomID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token 不属于该房间"})
			return
		}
		c.Set(ContextRoomID, claims.RoomID)
		c.Next()
	}
}
