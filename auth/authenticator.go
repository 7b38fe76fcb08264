package auth

import (
	"context"
)

// Auther implements Authenticator. Both the credential and federated paths
// converge here on one token issuance pipeline.
type Auther struct {
	provider    IdentityProvider
	provisioner Provisioner
	enricher    *Enricher
	tokens      *TokenService
	logger      Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, provisioner Provisioner, users Users, opts Config) *Auther {
	tokens := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:    provider,
		provisioner: provisioner,
		enricher:    NewEnricher(users),
		tokens:      tokens,
		logger:      defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.enricher = s.enricher.WithLogger(logger)
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() *TokenService {
	return s.tokens
}

// Login verifies a password identity and issues a session token
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("login verify identity", "error", err)
		return "", err
	}

	return s.issueToken(ctx, VerifiedIdentity{Identity: identity, Source: SourceCredentials})
}

// LoginFederated provisions a local record for a federated identity
// assertion and issues a session token
func (s *Auther) LoginFederated(ctx context.Context, profile ExternalProfile) (string, error) {
	identity, err := s.provisioner.Provision(ctx, profile)
	if err != nil {
		s.logger.Error("federated login provision", "provider", profile.Provider, "error", err)
		return "", err
	}

	return s.issueToken(ctx, VerifiedIdentity{Identity: identity, Source: SourceFederated})
}

// Refresh validates a token, re-runs enrichment, and re-signs it. The
// original expiry is preserved; there is no sliding renewal.
func (s *Auther) Refresh(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return "", err
	}

	if err := s.enricher.Enrich(ctx, claims, nil); err != nil {
		s.logger.Error("refresh enrich claims", "error", err)
		return "", err
	}

	return s.tokens.SignClaims(claims)
}

// SessionFromToken materializes the externally visible session from a token
func (s *Auther) SessionFromToken(raw string) (*SessionObject, error) {
	claims, err := s.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}

	return SessionFromClaims(claims), nil
}

func (s *Auther) issueToken(ctx context.Context, verified VerifiedIdentity) (string, error) {
	if verified.Identity == nil {
		return "", ErrInvalidCredentials
	}

	claims := s.tokens.NewClaims()
	if err := s.enricher.Enrich(ctx, claims, verified); err != nil {
		s.logger.Error("issue token enrich claims", "source", string(verified.Source), "error", err)
		return "", err
	}

	return s.tokens.SignClaims(claims)
}

var _ Authenticator = (*Auther)(nil)
