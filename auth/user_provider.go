package auth

import (
	"context"
	"regexp"
	"strings"

	"github.com/goliatone/go-errors"
)

// emailShape is the minimal local@domain.tld shape used to classify
// identifiers; anything else is treated as a username.
var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// UserProvider verifies password identities against the user record store.
// Read-only: it has no side effects on success or failure.
type UserProvider struct {
	store  Users
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store Users) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity finds the user by identifier, compares the password
// against the stored hash, and returns the identity projection. Every
// failure collapses into ErrInvalidCredentials so callers cannot tell an
// unknown account from a wrong password.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user *User
	var err error

	if emailShape.MatchString(identifier) {
		user, err = u.store.FindByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = u.store.FindByUsername(ctx, identifier)
	}

	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil || user.PasswordHash == "" {
		// federation-only accounts cannot sign in with a password
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return identityFromUser(user), nil
}

type authIdentity struct {
	id    string
	name  string
	email string
	role  string
	image string
}

func (a authIdentity) ID() string    { return a.id }
func (a authIdentity) Name() string  { return a.name }
func (a authIdentity) Email() string { return a.email }
func (a authIdentity) Image() string { return a.image }

func (a authIdentity) Role() string {
	if a.role == "" {
		return RoleUser
	}
	return a.role
}

var _ Identity = authIdentity{}

func identityFromUser(user *User) authIdentity {
	id := ""
	if !user.ID.IsZero() {
		id = user.ID.Hex()
	}

	return authIdentity{
		id:    id,
		name:  user.DisplayName(),
		email: user.Email,
		role:  string(user.Role),
		image: user.Image,
	}
}

var _ IdentityProvider = (*UserProvider)(nil)
