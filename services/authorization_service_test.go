package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"gatherly-api/repositories"
)

// -------------------------
// Test host store (in-memory)
// -------------------------

type testHostStore struct {
	hosts map[string]string // activityID -> host username ("" = hostless)
	err   error
}

func (s *testHostStore) HostUsername(ctx context.Context, activityID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	host, ok := s.hosts[activityID]
	if !ok {
		return "", repositories.ErrActivityNotFound
	}
	if host == "" {
		return "", repositories.ErrNoHost
	}
	return host, nil
}

func TestEvaluate_HostAllowed(t *testing.T) {
	activityID := uuid.New().String()
	svc := NewAuthorizationService(&testHostStore{hosts: map[string]string{activityID: "bob"}})

	if got := svc.Evaluate(context.Background(), "bob", activityID); got != DecisionAllow {
		t.Fatalf("expected allow for host, got %v", got)
	}
}

func TestEvaluate_NonHostDenied(t *testing.T) {
	activityID := uuid.New().String()
	svc := NewAuthorizationService(&testHostStore{hosts: map[string]string{activityID: "bob"}})

	if got := svc.Evaluate(context.Background(), "tom", activityID); got != DecisionDeny {
		t.Fatalf("expected deny for non-host, got %v", got)
	}
}

func TestEvaluate_CaseSensitiveMatch(t *testing.T) {
	activityID := uuid.New().String()
	svc := NewAuthorizationService(&testHostStore{hosts: map[string]string{activityID: "Bob"}})

	if got := svc.Evaluate(context.Background(), "bob", activityID); got != DecisionDeny {
		t.Fatalf("expected deny for case-mismatched principal, got %v", got)
	}
}

func TestEvaluate_NotFoundIndeterminate(t *testing.T) {
	svc := NewAuthorizationService(&testHostStore{hosts: map[string]string{}})

	got := svc.Evaluate(context.Background(), "bob", uuid.New().String())
	if got != DecisionIndeterminate {
		t.Fatalf("expected indeterminate for missing activity, got %v", got)
	}
	// Callers must still treat it as a deny
	if got == DecisionAllow {
		t.Fatal("indeterminate must never admit")
	}
}

func TestEvaluate_EmptyPrincipalDenied(t *testing.T) {
	activityID := uuid.New().String()
	svc := NewAuthorizationService(&testHostStore{hosts: map[string]string{activityID: "bob"}})

	if got := svc.Evaluate(context.Background(), "", activityID); got != DecisionDeny {
		t.Fatalf("expected deny for empty principal, got %v", got)
	}
}

func TestEvaluate_MissingActivityIDDenied(t *testing.T) {
	svc := NewAuthorizationService(&testHostStore{hosts: map[string]string{}})

	if got := svc.Evaluate(context.Background(), "bob", ""); got != DecisionDeny {
		t.Fatalf("expected deny for missing activity id, got %v", got)
	}
}

func TestEvaluate_MalformedActivityIDDenied(t *testing.T) {
	svc := NewAuthorizationService(&testHostStore{hosts: map[string]string{"not-a-uuid": "bob"}})

	if got := svc.Evaluate(context.Background(), "bob", "not-a-uuid"); got != DecisionDeny {
		t.Fatalf("expected deny for malformed activity id, got %v", got)
	}
}

func TestEvaluate_HostlessActivityDenied(t *testing.T) {
	activityID := uuid.New().String()
	svc := NewAuthorizationService(&testHostStore{hosts: map[string]string{activityID: ""}})

	if got := svc.Evaluate(context.Background(), "bob", activityID); got != DecisionDeny {
		t.Fatalf("expected deny for hostless activity, got %v", got)
	}
}

func TestEvaluate_StoreFailureDenied(t *testing.T) {
	svc := NewAuthorizationService(&testHostStore{err: errors.New("connection refused")})

	if got := svc.Evaluate(context.Background(), "bob", uuid.New().String()); got != DecisionDeny {
		t.Fatalf("expected deny on store failure, got %v", got)
	}
}
