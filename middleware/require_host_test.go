package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gatherly-api/repositories"
	"gatherly-api/services"
)

type stubAuthorizer struct {
	decision  services.Decision
	evaluated bool
	principal string
	activity  string
}

func (s *stubAuthorizer) Evaluate(ctx context.Context, principal, activityID string) services.Decision {
	s.evaluated = true
	s.principal = principal
	s.activity = activityID
	return s.decision
}

func setPrincipal(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("username", username)
		c.Next()
	}
}

func newGateRouter(authz HostAuthorizer, principal string, handlerInvoked *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := []gin.HandlerFunc{}
	if principal != "" {
		handlers = append(handlers, setPrincipal(principal))
	}
	handlers = append(handlers, RequireHost(authz), func(c *gin.Context) {
		*handlerInvoked = true
		c.JSON(http.StatusOK, gin.H{"message": "updated"})
	})

	r.PUT("/activities/:id", handlers...)
	// A mutating route registered without an id parameter must fail closed
	r.PUT("/activities", handlers...)
	return r
}

func TestRequireHost_AllowRunsHandler(t *testing.T) {
	authz := &stubAuthorizer{decision: services.DecisionAllow}
	invoked := false
	r := newGateRouter(authz, "bob", &invoked)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/activities/abc-123", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !invoked {
		t.Fatal("handler should have run on allow")
	}
	if authz.principal != "bob" || authz.activity != "abc-123" {
		t.Fatalf("engine saw principal=%q activity=%q", authz.principal, authz.activity)
	}
}

func TestRequireHost_DenyRejectsBeforeHandler(t *testing.T) {
	authz := &stubAuthorizer{decision: services.DecisionDeny}
	invoked := false
	r := newGateRouter(authz, "tom", &invoked)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/activities/abc-123", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if invoked {
		t.Fatal("handler must not run on deny")
	}
}

func TestRequireHost_IndeterminateRejectsLikeDeny(t *testing.T) {
	authz := &stubAuthorizer{decision: services.DecisionIndeterminate}
	invoked := false
	r := newGateRouter(authz, "tom", &invoked)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/activities/missing-id", nil))

	// Not-found is indistinguishable from deny at the protocol boundary
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if invoked {
		t.Fatal("handler must not run on indeterminate")
	}
}

func TestRequireHost_MissingPrincipalRejected(t *testing.T) {
	authz := &stubAuthorizer{decision: services.DecisionAllow}
	invoked := false
	r := newGateRouter(authz, "", &invoked)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/activities/abc-123", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if invoked {
		t.Fatal("handler must not run without a principal")
	}
	if authz.evaluated {
		t.Fatal("engine must not be consulted without a principal")
	}
}

type mapHostStore map[string]string

func (m mapHostStore) HostUsername(ctx context.Context, activityID string) (string, error) {
	host, ok := m[activityID]
	if !ok {
		return "", repositories.ErrActivityNotFound
	}
	return host, nil
}

// Composed scenario: the real engine behind the gate. The host gets
// through, everyone else is turned away before the handler.
func TestRequireHost_WithEngine(t *testing.T) {
	activityID := uuid.New().String()
	authz := services.NewAuthorizationService(mapHostStore{activityID: "host-user"})

	gin.SetMode(gin.TestMode)

	run := func(principal string) (int, bool) {
		invoked := false
		r := gin.New()
		r.PUT("/activities/:id", setPrincipal(principal), RequireHost(authz), func(c *gin.Context) {
			invoked = true
			c.JSON(http.StatusOK, gin.H{"message": "updated"})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/activities/"+activityID, nil))
		return w.Code, invoked
	}

	if code, invoked := run("guest-user"); code != http.StatusForbidden || invoked {
		t.Fatalf("guest: expected 403 without handler run, got %d (invoked=%v)", code, invoked)
	}
	if code, invoked := run("host-user"); code != http.StatusOK || !invoked {
		t.Fatalf("host: expected 200 with handler run, got %d (invoked=%v)", code, invoked)
	}
}

func TestRequireHost_MissingRouteIDRejected(t *testing.T) {
	authz := &stubAuthorizer{decision: services.DecisionAllow}
	invoked := false
	r := newGateRouter(authz, "bob", &invoked)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/activities", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if invoked {
		t.Fatal("handler must not run without a route id")
	}
	if authz.evaluated {
		t.Fatal("engine must not be consulted without a route id")
	}
}
