package controller

import (
	"net/http"

	"gem-game/dto"
	"gem-game/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	tokens *utils.TokenIssuer
}

func NewAuthController(tokens *utils.TokenIssuer) *AuthController {
	return &AuthController{tokens: tokens}
}

// Refresh 用 refresh token 换新的 access token
func (ac *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: "缺少 refreshToken"})
		return
	}
	claims, err := ac.tokens.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "refresh token 无效或已过期"})
		return
	}
	access, err := ac.tokens.GenerateAccessToken(claims.RoomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        dto.RefreshResponse{AccessToken: access},
	})
}
