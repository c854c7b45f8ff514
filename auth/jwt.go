package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const hmacSecret = "c2FtYnVuZ2FuLXNvc2lhbA=="

type ExpireTime int

const (
	AWeek  ExpireTime = 604800
	ADay   ExpireTime = 86400
	AnHour ExpireTime = 3600
)

// member must started with capital and contains ID
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Cmd   string `json:"cmd"`
	jwt.StandardClaims
}

func (c *Claims) GetUID() string {
	return c.ID
}

func (c *Claims) GetEmail() string {
	return c.Email
}

func (c *Claims) GetCmd() string {
	return c.Cmd
}

func (c *Claims) IsExpired() bool {
	return c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt
}

// CreateJWTToken generates a signed session token for the given user id and email
func CreateJWTToken(id, email string) (string, error) {
	return CreateJWTWithExpire(id, email, "Login", ADay)
}

func CreateJWTWithExpire(id string, email string, cmd string, expired ExpireTime) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"ID":    id,
		"Email": email,
		"Cmd":   cmd,
		"exp":   time.Now().Unix() + int64(expired),
	})
	tokenString, err := token.SignedString([]byte(hmacSecret))

	return tokenString, err
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(hmacSecret), nil
	})
	// a malformed token string yields a nil token alongside the error
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
