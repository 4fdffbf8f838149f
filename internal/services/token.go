package services

import (
	"errors"
	"fmt"
	"time"

	"blog-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity a session token carries
type Claims struct {
	UserID   string
	Username string
}

// TokenIssuer signs and verifies stateless session tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a token issuer. A zero ttl issues tokens that never
// expire.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue generates a signed token for a user
func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"username": user.Username,
		"id":       user.ID,
		"iat":      now.Unix(),
	}
	if t.ttl > 0 {
		claims["exp"] = now.Add(t.ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates a token's signature and returns its claims
func (t *TokenIssuer) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))

	if err != nil {
		return Claims{}, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid token claims")
	}

	userID, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if userID == "" || username == "" {
		return Claims{}, errors.New("id or username not found in token")
	}

	return Claims{UserID: userID, Username: username}, nil
}
