package middleware

import (
	"context"
	"errors"
	"fmt"

	"poll-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userContextKey = contextKey("user")

// JWTAuth rejects requests without a valid bearer token and puts the caller's
// identity into the request context.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization token required"})
			return
		}

		user, err := parseUser(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Request = c.Request.WithContext(withUser(c.Request.Context(), user))
		c.Next()
	}
}

// OptionalJWTAuth sets the caller's identity when a valid token is present
// but lets anonymous requests through. Used on reads where logged-in viewers
// additionally see their own choice.
func OptionalJWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if user, err := parseUser(tokenString, secret); err == nil {
				c.Request = c.Request.WithContext(withUser(c.Request.Context(), user))
			}
		}
		c.Next()
	}
}

// GetUserFromContext retrieves the authenticated user from context
func GetUserFromContext(ctx context.Context) (*models.AuthUser, error) {
	user, ok := ctx.Value(userContextKey).(*models.AuthUser)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

func withUser(ctx context.Context, user *models.AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func parseUser(tokenString, secret string) (*models.AuthUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("missing subject claim")
	}
	email, _ := claims["email"].(string)

	return &models.AuthUser{ID: sub, Email: email}, nil
}

func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && bearerToken[:7] == "Bearer " {
		return bearerToken[7:]
	}
	return ""
}
