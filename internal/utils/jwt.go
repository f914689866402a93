package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/DaDaTzz/gallery-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeLogin = "login"
	tokenIssuer    = "gallery-backend"
)

// LoginClaims 登录令牌携带的身份信息
type LoginClaims struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

func getSecret() []byte {
	return []byte(config.Get().JWT.Secret)
}

func GenerateLoginToken(id uint, username string, admin bool, duration time.Duration) (string, error) {
	claims := LoginClaims{
		ID:       id,
		Username: username,
		Admin:    admin,
		Type:     tokenTypeLogin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecret())
}

func ParseLoginToken(tokenString string) (*LoginClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LoginClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getSecret(), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*LoginClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != tokenTypeLogin {
		return nil, errors.New("invalid token type")
	}
	return claims, nil
}
