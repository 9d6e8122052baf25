// Package token issues and parses the session tokens carried by admin and
// on-site operator requests.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleMaster = "master"
	RoleSite   = "site"
)

// Claims is the session principal. ProjectID is only set for site tokens,
// which are pinned to a single project.
type Claims struct {
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Role      string     `json:"role"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	jwt.RegisteredClaims
}

func GenerateMaster(secret string, userID uuid.UUID, expireHours int) (string, time.Time, error) {
	return generate(secret, Claims{UserID: &userID, Role: RoleMaster}, expireHours)
}

func GenerateSite(secret string, projectID uuid.UUID, expireHours int) (string, time.Time, error) {
	return generate(secret, Claims{Role: RoleSite, ProjectID: &projectID}, expireHours)
}

func generate(secret string, claims Claims, expireHours int) (string, time.Time, error) {
	expireAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expireAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "parkreg",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	tokenStr, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenStr, expireAt, nil
}

func Parse(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
