package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (string, error)
	LoginFederated(ctx context.Context, profile ExternalProfile) (string, error)
	Refresh(ctx context.Context, token string) (string, error)
	SessionFromToken(token string) (*SessionObject, error)
}

// Identity holds the attributes of an identity
type Identity interface {
	ID() string
	Name() string
	Email() string
	Role() string
	Image() string
}

// IdentitySource tags which sign-in path produced a verified identity.
type IdentitySource string

const (
	SourceCredentials IdentitySource = "credentials"
	SourceFederated   IdentitySource = "federated"
)

// VerifiedIdentity is an identity together with the path that verified it.
// Both sign-in paths converge on the same token issuance pipeline.
type VerifiedIdentity struct {
	Identity
	Source IdentitySource
}

// ExternalProfile is the identity assertion we receive from a federated
// provider after it has verified the user.
type ExternalProfile struct {
	Provider      string
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Image         string
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetContextKey() string
	GetIssuer() string
	GetAudience() []string
	GetBaseURL() string
}

// IdentityProvider ensures we have a store to verify credential identities
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
}

// Provisioner ensures a local user record exists for a federated identity
type Provisioner interface {
	Provision(ctx context.Context, profile ExternalProfile) (Identity, error)
}

// Users is the user record store the auth subsystem reads and writes
type Users interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	UpsertFederated(ctx context.Context, email, name, image string) (*User, error)
}

// LoginPayload is what the HTTP layer hands to the sign-in entry point
type LoginPayload interface {
	GetIdentifier() string
	GetPassword() string
}

// DefaultLogger returns the fallback stdout logger
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
