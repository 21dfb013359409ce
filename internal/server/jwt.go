package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"platformer/pkg/core"
)

// Token 签名者
const tokenIssuer = "platformer-server"

var ErrInvalidToken = errors.New("会话令牌无效")

// Claims 会话令牌内容
type Claims struct {
	PlayerID uint32 `json:"player_id"`
	jwt.RegisteredClaims
}

// TokenIssuer 签发与校验重连用的会话令牌
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer secret 来自配置（JWT_SECRET）
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate 为玩家签发令牌
func (t *TokenIssuer) Generate(playerID core.PlayerID) (string, error) {
	now := t.now()
	claims := Claims{
		PlayerID: uint32(playerID),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprintf("player-%d", playerID),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify 校验令牌并返回玩家 ID
func (t *TokenIssuer) Verify(tokenString string) (core.PlayerID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(t.now))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.PlayerID == 0 {
		return 0, ErrInvalidToken
	}
	return core.PlayerID(claims.PlayerID), nil
}
