package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
)

// Enricher populates session claims with stable identity fields at issuance
// and lazily backfills a missing role from the user record store. It runs on
// every token refresh, so role changes in the store propagate into active
// sessions without a re-login.
type Enricher struct {
	users  Users
	logger Logger
}

// NewEnricher creates an Enricher backed by the given user store
func NewEnricher(users Users) *Enricher {
	return &Enricher{
		users:  users,
		logger: defLogger{},
	}
}

func (e *Enricher) WithLogger(l Logger) *Enricher {
	e.logger = l
	return e
}

// Enrich copies identity fields into the claims when an identity is present
// (initial issuance) and backfills the role by email when absent. A
// populated id or email is never overwritten with an empty value.
// Idempotent: re-running on enriched claims is a no-op besides the
// conditional store lookup.
func (e *Enricher) Enrich(ctx context.Context, claims *SessionClaims, identity Identity) error {
	if claims == nil {
		return errors.New("claims must not be nil", errors.CategoryInternal)
	}

	if identity != nil {
		if id := identity.ID(); id != "" {
			claims.UID = id
			claims.Subject = id
		}
		if email := identity.Email(); email != "" {
			claims.Email = email
		}
		if role := identity.Role(); role != "" {
			claims.UserRole = role
		}
		if name := identity.Name(); name != "" {
			claims.Name = name
		}
		if image := identity.Image(); image != "" {
			claims.Image = image
		}
	}

	if claims.UserRole != "" || claims.Email == "" {
		return nil
	}

	user, err := e.users.FindByEmail(ctx, strings.ToLower(claims.Email))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to backfill role from user store")
	}

	if user != nil && user.Role != "" {
		claims.UserRole = string(user.Role)
	}

	return nil
}
