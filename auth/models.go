package auth

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the default role assigned on registration and provisioning
	RoleUser UserRole = "user"
	// RoleAdmin is an elevated role set out of band
	RoleAdmin UserRole = "admin"
)

// User is the persisted user record. Password accounts carry a PasswordHash;
// federation-only accounts do not.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Username     string             `bson:"username,omitempty" json:"username,omitempty"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	Role         UserRole           `bson:"role,omitempty" json:"role,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt    *time.Time         `bson:"createdAt,omitempty" json:"created_at,omitempty"`
	UpdatedAt    *time.Time         `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}

// DisplayName resolves the name shown for the user: stored name, then the
// local part of the email, then "User".
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if local := EmailLocalPart(u.Email); local != "" {
		return local
	}
	return "User"
}

// EmailLocalPart returns the part of an email address before the "@",
// or "" when the input does not look like an email.
func EmailLocalPart(email string) string {
	if !strings.Contains(email, "@") {
		return ""
	}
	return strings.SplitN(email, "@", 2)[0]
}
