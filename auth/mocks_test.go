package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Jakirhossain80/stockly/auth"
)

// MockUsers implements auth.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*auth.User)
	return created, args.Error(1)
}

func (m *MockUsers) UpsertFederated(ctx context.Context, email, name, image string) (*auth.User, error) {
	args := m.Called(ctx, email, name, image)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

// MockIdentityProvider implements auth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(auth.Identity)
	return identity, args.Error(1)
}

// MockProvisioner implements auth.Provisioner
type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) Provision(ctx context.Context, profile auth.ExternalProfile) (auth.Identity, error) {
	args := m.Called(ctx, profile)
	identity, _ := args.Get(0).(auth.Identity)
	return identity, args.Error(1)
}

// testIdentity is a fixed identity projection for tests
type testIdentity struct {
	id    string
	name  string
	email string
	role  string
	image string
}

func (t testIdentity) ID() string    { return t.id }
func (t testIdentity) Name() string  { return t.name }
func (t testIdentity) Email() string { return t.email }
func (t testIdentity) Role() string  { return t.role }
func (t testIdentity) Image() string { return t.image }

// testConfig implements auth.Config
type testConfig struct {
	signingKey      string
	tokenExpiration int
	contextKey      string
	issuer          string
	audience        []string
	baseURL         string
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey:      "test-signing-key",
		tokenExpiration: 720,
		contextKey:      "stockly_session",
		issuer:          "stockly-test",
		baseURL:         "http://localhost:3000",
	}
}

func (c *testConfig) GetSigningKey() string   { return c.signingKey }
func (c *testConfig) GetTokenExpiration() int { return c.tokenExpiration }
func (c *testConfig) GetContextKey() string   { return c.contextKey }
func (c *testConfig) GetIssuer() string       { return c.issuer }
func (c *testConfig) GetAudience() []string   { return c.audience }
func (c *testConfig) GetBaseURL() string      { return c.baseURL }
