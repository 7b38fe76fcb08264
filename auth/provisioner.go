package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
)

// AccountProvisioner ensures a local user record exists for a federated
// identity: created on first sight, display fields refreshed on every
// sign-in. The upsert is a single atomic store operation keyed by
// lowercased email, so concurrent first sign-ins converge to one record.
type AccountProvisioner struct {
	store  Users
	logger Logger
}

// NewAccountProvisioner creates a provisioner backed by the given store
func NewAccountProvisioner(store Users) *AccountProvisioner {
	return &AccountProvisioner{
		store:  store,
		logger: defLogger{},
	}
}

func (p *AccountProvisioner) WithLogger(l Logger) *AccountProvisioner {
	p.logger = l
	return p
}

// Provision upserts the user record for the asserted email and returns the
// resulting identity. Rejects assertions that carry no email.
func (p *AccountProvisioner) Provision(ctx context.Context, profile ExternalProfile) (Identity, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		return nil, ErrFederatedEmailMissing
	}

	name := profile.Name
	if name == "" {
		name = EmailLocalPart(email)
	}

	user, err := p.store.UpsertFederated(ctx, email, name, profile.Image)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to provision federated account")
	}

	p.logger.Debug("provisioned federated account", "provider", profile.Provider, "email", email)

	return identityFromUser(user), nil
}

var _ Provisioner = (*AccountProvisioner)(nil)
