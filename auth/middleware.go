package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware extracts the bearer token from the Authorization header or
// the jwt cookie and, when valid, stores the claims under "validuser".
// Handlers decide for themselves whether a missing "validuser" is fatal.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := ""

		header := ctx.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		} else if cookie, err := ctx.Cookie("jwt"); err == nil {
			tokenString = cookie
		}

		if tokenString != "" {
			claims, err := ValidateToken(tokenString)
			if err == nil {
				ctx.Set("validuser", claims)
			}
		}

		ctx.Next()
	}
}
