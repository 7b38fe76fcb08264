package auth

import (
	"github.com/goliatone/go-errors"
)

// ErrInvalidCredentials is the single outcome for every failed credential
// check: unknown identifier, wrong password, or a federation-only account
// used with the password path. Callers never learn which part failed.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrFederatedEmailMissing rejects federated sign-ins whose assertion
// carries no email.
var ErrFederatedEmailMissing = errors.New("federated profile has no email", errors.CategoryAuth).
	WithTextCode("FEDERATED_EMAIL_MISSING").
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for expired session tokens
var ErrTokenExpired = errors.New("session token is expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens we cannot parse or verify
var ErrTokenMalformed = errors.New("session token is malformed", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryValidation).
	WithTextCode("EMPTY_VALUE")

// ErrMismatchedHashAndPassword is the bcrypt mismatch outcome
var ErrMismatchedHashAndPassword = errors.New("credentials do not match", errors.CategoryAuth).
	WithTextCode("CREDENTIAL_MISMATCH").
	WithCode(errors.CodeUnauthorized)

// IsConflict reports whether err is a store conflict (duplicate key)
func IsConflict(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryConflict
}
