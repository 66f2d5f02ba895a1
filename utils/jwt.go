package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	accessIssuer  = "gem-access"
	refreshIssuer = "gem-refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims 房间主持人的令牌，一个令牌只对一个房间有效
type Claims struct {
	RoomID string `json:"room_id"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (t *TokenIssuer) GenerateAccessToken(roomID string) (string, error) {
	return t.sign(roomID, accessIssuer, t.accessTTL, t.accessSecret)
}

func (t *TokenIssuer) GenerateRefreshToken(roomID string) (string, error) {
	return t.sign(roomID, refreshIssuer, t.refreshTTL, t.refreshSecret)
}

func (t *TokenIssuer) ParseAccessToken(tokenStr string) (*Claims, error) {
	return t.parse(tokenStr, accessIssuer, t.accessSecret)
}

func (t *TokenIssuer) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return t.parse(tokenStr, refreshIssuer, t.refreshSecret)
}

func (t *TokenIssuer) sign(roomID, issuer string, ttl time.Duration, secret []byte) (string, error) {
	now := t.now()
	claims := Claims{
		RoomID: roomID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("签发 token 失败: %w", err)
	}
	return signed, nil
}

func (t *TokenIssuer) parse(tokenStr, issuer string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("签名算法不支持: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Issuer != issuer || claims.RoomID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
