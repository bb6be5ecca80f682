// Package auth issues and verifies the bearer tokens that identify the
// acting user on all resource endpoints.
package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/epargne/backend/internal/httperror"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenDuration is the validity period of issued tokens.
const TokenDuration = 24 * time.Hour

// ContextUserID is the gin context key under which the middleware stores the
// authenticated user's ID.
const ContextUserID = "userID"

var (
	ErrTokenRequired = errors.New("authentication required")
	ErrTokenFormat   = errors.New("the authorization header must be of the form 'Bearer <token>'")
	ErrTokenInvalid  = errors.New("the token is invalid or expired")
)

// secret returns the HMAC key for tokens. JWT_SECRET must be set for
// production use, the fallback only keeps local development working.
func secret() []byte {
	s, ok := os.LookupEnv("JWT_SECRET")
	if !ok {
		s = "epargne-development-secret"
	}
	return []byte(s)
}

// NewToken signs a token for the user.
func NewToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(TokenDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// Middleware verifies the bearer token and stores the user ID in the
// context. Requests without a valid token are rejected with 401.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(ErrTokenRequired))
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(ErrTokenFormat))
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return secret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(ErrTokenInvalid))
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(ErrTokenInvalid))
			return
		}

		userID, err := uuid.Parse(subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(ErrTokenInvalid))
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the context. It must only
// be called on routes behind Middleware.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextUserID).(uuid.UUID)
}
