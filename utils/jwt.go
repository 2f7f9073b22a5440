package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

type Claims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

type JWTManager struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTManager(key string, ttl time.Duration, issuer string) *JWTManager {
	return &JWTManager{key: []byte(key), ttl: ttl, issuer: issuer, now: time.Now}
}

func (m *JWTManager) GenerateJWT(username string) (string, error) {
	if len(m.key) == 0 {
		return "", errors.New("jwt signing key is not configured")
	}
	now := m.now()

	claims := &Claims{
		Username: username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(m.ttl).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    m.issuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

func (m *JWTManager) ValidateJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.key, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid || claims.Issuer != m.issuer {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
