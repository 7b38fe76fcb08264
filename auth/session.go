package auth

import (
	"fmt"
	"time"
)

// SessionUser is the user sub-object of the externally visible session
type SessionUser struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role,omitempty"`
}

// SessionObject is the externally visible session consumed by clients.
// It is recomputed from the token on every access and never persisted.
type SessionObject struct {
	User     SessionUser `json:"user"`
	IssuedAt *time.Time  `json:"issued_at,omitempty"`
	Expires  *time.Time  `json:"expires,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.User.ID
}

func (s *SessionObject) GetRole() string {
	return s.User.Role
}

func (s SessionObject) String() string {
	expires := "<nil>"
	if s.Expires != nil {
		expires = s.Expires.Format(time.RFC1123)
	}
	return fmt.Sprintf("user=%s role=%s expires=%s", s.User.ID, s.User.Role, expires)
}

// SessionFromClaims projects session claims into the session object. Pure:
// it never reads the store and never fails; fields the claims lack simply
// remain absent.
func SessionFromClaims(claims *SessionClaims) *SessionObject {
	session := &SessionObject{}
	if claims == nil {
		return session
	}

	if id := claims.UserID(); id != "" {
		session.User.ID = id
	}
	if claims.UserRole != "" {
		session.User.Role = claims.UserRole
	}
	session.User.Name = claims.Name
	session.User.Email = claims.Email
	session.User.Image = claims.Image

	if iat := claims.IssuedTime(); !iat.IsZero() {
		session.IssuedAt = &iat
	}
	if exp := claims.Expires(); !exp.IsZero() {
		session.Expires = &exp
	}

	return session
}
