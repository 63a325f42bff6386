// Package token 负责签发和校验客户端身份令牌。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager 负责签发和校验客户端令牌
type JWTManager struct {
	secretKey []byte        // 签名密钥
	tokenDur  time.Duration // 令牌有效期
	nowFunc   func() time.Time
}

// ClientClaims 标识一个浏览器，不携带用户信息；
// 该浏览器上的登录用户从其会话标记中读取。
type ClientClaims struct {
	ClientID string `json:"clientId"`
	jwt.RegisteredClaims
}

// NewJWTManager 创建 JWTManager
// secret: 签名密钥；expireDays: 令牌有效天数
func NewJWTManager(secret string, expireDays int) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secret),
		tokenDur:  time.Duration(expireDays) * 24 * time.Hour,
		nowFunc:   time.Now,
	}
}

// Lifetime 返回令牌有效期
func (m *JWTManager) Lifetime() time.Duration {
	return m.tokenDur
}

// GenerateToken 为 clientID 生成令牌
func (m *JWTManager) GenerateToken(clientID string) (string, error) {
	now := m.nowFunc()
	claims := ClientClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDur)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken 解析并校验令牌，返回 claims。
// 签名错误、已过期或缺少 clientId 的令牌都会被拒绝。
func (m *JWTManager) VerifyToken(tokenString string) (*ClientClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ClientClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	}, jwt.WithTimeFunc(m.nowFunc))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ClientClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ClientID == "" {
		return nil, errors.New("token has no client id")
	}
	return claims, nil
}
