package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID    int64  `json:"userId"`
	Role      string `json:"role"`
	StationID int64  `json:"stationId,omitempty"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for the given user, valid for ttl.
func SignToken(secret []byte, userID int64, role Role, stationID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      string(role),
		StationID: stationID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the identity
// encoded in the token. Any failure maps to ErrInvalidToken.
func ParseToken(secret []byte, tokenString string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	role, ok := NormalizeRole(claims.Role)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		UserID:    claims.UserID,
		Role:      role,
		StationID: claims.StationID,
	}, nil
}
