package main

import (
	"net/http"
	"strings"

	"financetracker/ledger"
	"financetracker/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Identity headers set by the authenticating proxy in front of the API.
const (
	userIDHeader = "X-User-Id"
	orgIDHeader  = "X-Org-Id"

	scopeKey = "scope"
)

// requireScope resolves the caller scope from the identity headers and
// rejects anonymous requests before any handler touches the store.
func requireScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := ledger.Scope{
			UserID: strings.TrimSpace(c.GetHeader(userIDHeader)),
			OrgID:  strings.TrimSpace(c.GetHeader(orgIDHeader)),
		}
		if !scope.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			return
		}

		log := logger.FromContext(c.Request.Context()).With().
			Str("user_id", scope.UserID).
			Str("org_id", scope.OrgID).
			Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), log))
		c.Set(scopeKey, scope)
		c.Next()
	}
}

func scopeFrom(c *gin.Context) ledger.Scope {
	scope, _ := c.MustGet(scopeKey).(ledger.Scope)
	return scope
}

func requestLogger(c *gin.Context) zerolog.Logger {
	return logger.FromContext(c.Request.Context())
}
