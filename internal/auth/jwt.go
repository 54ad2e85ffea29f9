// Package auth issues and verifies the HS256 access tokens that scope every
// JournalService call to a single user.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
}

func (c *Claims) userID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the signature and expiry of tokenString and
// returns the user it was issued for.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.userID() == "" {
		return "", common.ErrInvalidToken
	}

	return claims.userID(), nil
}

// PeekUserID reads the user id from tokenString without verifying the
// signature. The client uses it to learn who it is signed in as; the server
// never trusts it.
func PeekUserID(tokenString string) (string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.userID() == "" {
		return "", common.ErrInvalidToken
	}
	return claims.userID(), nil
}

// IsExpired reports whether an unverified token has passed its expiry.
func IsExpired(tokenString string, now time.Time) bool {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return true
	}
	return claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time)
}
