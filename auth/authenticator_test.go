package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Jakirhossain80/stockly/auth"
)

func TestAuther_Login(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()

	t.Run("issues a token carrying the verified identity", func(t *testing.T) {
		identity := testIdentity{
			id:    "64f0c2a9e13a4b2d9c8f1a2b",
			name:  "Ada",
			email: "ada@example.com",
			role:  auth.RoleAdmin,
		}

		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "ada@example.com", "secret123").Return(identity, nil).Once()

		auther := auth.NewAuthenticator(provider, &MockProvisioner{}, &MockUsers{}, cfg)

		token, err := auther.Login(ctx, "ada@example.com", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		session, err := auther.SessionFromToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "64f0c2a9e13a4b2d9c8f1a2b", session.GetUserID())
		assert.Equal(t, auth.RoleAdmin, session.GetRole())
		assert.Equal(t, "ada@example.com", session.User.Email)

		provider.AssertExpectations(t)
	})

	t.Run("propagates verification failure without issuing a token", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "ghost@example.com", "whatever").
			Return(nil, auth.ErrInvalidCredentials).Once()

		auther := auth.NewAuthenticator(provider, &MockProvisioner{}, &MockUsers{}, cfg)

		token, err := auther.Login(ctx, "ghost@example.com", "whatever")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		provider.AssertExpectations(t)
	})

	t.Run("nil identity from the provider never issues a token", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "ada@example.com", "secret123").Return(nil, nil).Once()

		auther := auth.NewAuthenticator(provider, &MockProvisioner{}, &MockUsers{}, cfg)

		token, err := auther.Login(ctx, "ada@example.com", "secret123")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuther_LoginFederated(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()

	profile := auth.ExternalProfile{
		Provider: "google",
		Subject:  "google-sub-1",
		Email:    "ada@example.com",
		Name:     "Ada",
	}

	t.Run("provisions the account and issues a token", func(t *testing.T) {
		identity := testIdentity{
			id:    "64f0c2a9e13a4b2d9c8f1a2b",
			name:  "Ada",
			email: "ada@example.com",
			role:  auth.RoleUser,
		}

		provisioner := &MockProvisioner{}
		provisioner.On("Provision", ctx, profile).Return(identity, nil).Once()

		auther := auth.NewAuthenticator(&MockIdentityProvider{}, provisioner, &MockUsers{}, cfg)

		token, err := auther.LoginFederated(ctx, profile)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		session, err := auther.SessionFromToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "64f0c2a9e13a4b2d9c8f1a2b", session.GetUserID())
		assert.Equal(t, auth.RoleUser, session.GetRole())

		provisioner.AssertExpectations(t)
	})

	t.Run("both sign-in paths produce equivalent sessions", func(t *testing.T) {
		identity := testIdentity{
			id:    "64f0c2a9e13a4b2d9c8f1a2b",
			name:  "Ada",
			email: "ada@example.com",
			role:  auth.RoleUser,
		}

		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "ada@example.com", "secret123").Return(identity, nil).Once()

		provisioner := &MockProvisioner{}
		provisioner.On("Provision", ctx, profile).Return(identity, nil).Once()

		auther := auth.NewAuthenticator(provider, provisioner, &MockUsers{}, cfg)

		credentialToken, err := auther.Login(ctx, "ada@example.com", "secret123")
		assert.NoError(t, err)

		federatedToken, err := auther.LoginFederated(ctx, profile)
		assert.NoError(t, err)

		credentialSession, err := auther.SessionFromToken(credentialToken)
		assert.NoError(t, err)
		federatedSession, err := auther.SessionFromToken(federatedToken)
		assert.NoError(t, err)

		assert.Equal(t, credentialSession.User, federatedSession.User)
	})

	t.Run("propagates provisioning failure", func(t *testing.T) {
		provisioner := &MockProvisioner{}
		provisioner.On("Provision", ctx, mock.Anything).
			Return(nil, auth.ErrFederatedEmailMissing).Once()

		auther := auth.NewAuthenticator(&MockIdentityProvider{}, provisioner, &MockUsers{}, cfg)

		token, err := auther.LoginFederated(ctx, auth.ExternalProfile{Provider: "google"})

		assert.Empty(t, token)
		assert.ErrorIs(t, err, auth.ErrFederatedEmailMissing)
	})
}

func TestAuther_Refresh(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()

	identity := testIdentity{
		id:    "64f0c2a9e13a4b2d9c8f1a2b",
		email: "ada@example.com",
		role:  auth.RoleUser,
	}

	newAutherWithSession := func(users *MockUsers) (*auth.Auther, string) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "ada@example.com", "secret123").Return(identity, nil).Once()

		auther := auth.NewAuthenticator(provider, &MockProvisioner{}, users, cfg)

		token, err := auther.Login(ctx, "ada@example.com", "secret123")
		assert.NoError(t, err)

		return auther, token
	}

	t.Run("preserves the original expiry", func(t *testing.T) {
		auther, token := newAutherWithSession(&MockUsers{})

		original, err := auther.SessionFromToken(token)
		assert.NoError(t, err)
		assert.NotNil(t, original.Expires)

		refreshed, err := auther.Refresh(ctx, token)
		assert.NoError(t, err)
		assert.NotEmpty(t, refreshed)

		session, err := auther.SessionFromToken(refreshed)
		assert.NoError(t, err)
		assert.NotNil(t, session.Expires)
		assert.True(t, session.Expires.Equal(*original.Expires))
		assert.Equal(t, original.User, session.User)
	})

	t.Run("backfills a role added to the store since issuance", func(t *testing.T) {
		bare := testIdentity{
			id:    "64f0c2a9e13a4b2d9c8f1a2b",
			email: "ada@example.com",
			// no role on the verified identity
		}

		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "ada@example.com", "secret123").Return(bare, nil).Once()

		users := &MockUsers{}
		users.On("FindByEmail", mock.Anything, "ada@example.com").Return(&auth.User{
			Email: "ada@example.com",
			Role:  auth.RoleAdmin,
		}, nil)

		auther := auth.NewAuthenticator(provider, &MockProvisioner{}, users, cfg)

		token, err := auther.Login(ctx, "ada@example.com", "secret123")
		assert.NoError(t, err)

		session, err := auther.SessionFromToken(token)
		assert.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, session.GetRole())
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		auther, _ := newAutherWithSession(&MockUsers{})

		refreshed, err := auther.Refresh(ctx, "not-a-token")

		assert.Empty(t, refreshed)
		assert.Error(t, err)
	})
}
