package middleware

import (
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// callerCtxKey is the key used to store the authenticated caller in the request
// context. Using a custom type prevents collisions.
const callerCtxKey = contextKey("caller")

// GetCallerFromContext retrieves the authenticated caller from the request
// context. It returns the caller and a boolean indicating if it was found.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	caller, ok := c.Request.Context().Value(callerCtxKey).(domain.Caller)
	return caller, ok
}
