package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gatherly-api/services"
)

// HostAuthorizer decides whether a principal may mutate a given activity.
type HostAuthorizer interface {
	Evaluate(ctx context.Context, principal, activityID string) services.Decision
}

// RequireHost gates a route on activity ownership. It must be attached to
// every route that mutates a specific activity (PUT, DELETE); the wrapped
// handler never runs unless the authenticated principal is the activity's
// host. A route without an :id parameter is rejected unconditionally.
//
// Not-found activities are reported with the same 403 body as a plain
// deny so that unauthorized callers cannot probe which ids exist.
func RequireHost(authz HostAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		activityID := c.Param("id")
		if activityID == "" {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "Access denied",
				Code:  http.StatusForbidden,
			})
			c.Abort()
			return
		}

		username := c.GetString("username")
		if username == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Authentication required",
				Code:  http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		decision := authz.Evaluate(c.Request.Context(), username, activityID)
		if decision != services.DecisionAllow {
			if decision == services.DecisionIndeterminate {
				log.Printf("host check: activity %s not found (user %s)", activityID, username)
			}
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "Access denied",
				Code:  http.StatusForbidden,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
