package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"gatherly-api/repositories"
)

// Decision is the outcome of an ownership check. Indeterminate means the
// activity could not be resolved at all; callers must treat it as a deny
// but may log it separately.
type Decision int

const (
	DecisionDeny Decision = iota
	DecisionAllow
	DecisionIndeterminate
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionIndeterminate:
		return "indeterminate"
	default:
		return "deny"
	}
}

// HostStore is the single read the engine needs from the persistence layer.
type HostStore interface {
	HostUsername(ctx context.Context, activityID string) (string, error)
}

// AuthorizationService decides whether a principal may mutate a specific
// activity. The policy is host-only: the one attendee recorded with the
// host flag is the only principal allowed through.
type AuthorizationService struct {
	store HostStore
}

func NewAuthorizationService(store HostStore) *AuthorizationService {
	return &AuthorizationService{store: store}
}

// Evaluate performs one consistent read of the host link and compares its
// username against the principal, case-sensitively. Missing inputs fail
// closed. The read holds no locks; a racing ownership transfer can yield a
// stale decision, which is acceptable because the mutation itself is
// re-scoped by activity id at the store.
func (s *AuthorizationService) Evaluate(ctx context.Context, principal, activityID string) Decision {
	if principal == "" {
		return DecisionDeny
	}
	if activityID == "" {
		return DecisionDeny
	}
	if _, err := uuid.Parse(activityID); err != nil {
		return DecisionDeny
	}

	host, err := s.store.HostUsername(ctx, activityID)
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			return DecisionIndeterminate
		}
		// Hostless activity or store failure: fail closed
		return DecisionDeny
	}

	if host == principal {
		return DecisionAllow
	}
	return DecisionDeny
}
