package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restobook/pkg/constant"
	"github.com/restobook/pkg/entities"
	"github.com/restobook/pkg/state"
	"github.com/restobook/pkg/utils"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

func ClaimIp() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(state.CurrentUserIP, c.ClientIP())
		c.Next()
	}
}

// RequestID reuses the caller's X-Request-ID or mints one, and attaches a
// request scoped logger to the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(state.RequestID, id)
		c.Header(RequestIDHeader, id)

		logger := log.With().Str("request_id", id).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}
		event.
			Str("request_id", c.GetString(state.RequestID)).
			Str("ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func CheckAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": constant.TOKEN_REQUIRED})
			return
		}

		authToken := strings.Split(authHeader, " ")
		if len(authToken) != 2 || authToken[0] != "Bearer" || authToken[1] == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": constant.MALFORMED_TOKEN})
			return
		}

		claims, err := utils.ParseAccessToken(authToken[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": constant.INVALID_TOKEN})
			return
		}

		c.Set(state.CurrentUserId, claims.UserID)
		c.Set(state.CurrentUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole lets through only callers whose token carries one of roles.
// It must run after CheckAuth.
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entities.Role(state.CurrentRole(c))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(403, gin.H{"error": constant.STAFF_ONLY})
	}
}
