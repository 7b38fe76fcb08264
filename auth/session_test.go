package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/Jakirhossain80/stockly/auth"
)

func TestSessionFromClaims(t *testing.T) {
	t.Run("projects full claims into the session object", func(t *testing.T) {
		issued := time.Now().Add(-time.Hour).Truncate(time.Second)
		expires := time.Now().Add(24 * time.Hour).Truncate(time.Second)

		claims := &auth.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "64f0c2a9e13a4b2d9c8f1a2b",
				IssuedAt:  jwt.NewNumericDate(issued),
				ExpiresAt: jwt.NewNumericDate(expires),
			},
			UID:      "64f0c2a9e13a4b2d9c8f1a2b",
			Email:    "ada@example.com",
			UserRole: auth.RoleAdmin,
			Name:     "Ada",
			Image:    "https://img.example/ada.png",
		}

		session := auth.SessionFromClaims(claims)

		assert.NotNil(t, session)
		assert.Equal(t, "64f0c2a9e13a4b2d9c8f1a2b", session.GetUserID())
		assert.Equal(t, auth.RoleAdmin, session.GetRole())
		assert.Equal(t, "ada@example.com", session.User.Email)
		assert.Equal(t, "Ada", session.User.Name)
		assert.Equal(t, "https://img.example/ada.png", session.User.Image)

		assert.NotNil(t, session.IssuedAt)
		assert.True(t, session.IssuedAt.Equal(issued))
		assert.NotNil(t, session.Expires)
		assert.True(t, session.Expires.Equal(expires))
	})

	t.Run("falls back to the subject for the user id", func(t *testing.T) {
		claims := &auth.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "subject-id"},
		}

		session := auth.SessionFromClaims(claims)

		assert.Equal(t, "subject-id", session.GetUserID())
	})

	t.Run("missing fields simply remain absent", func(t *testing.T) {
		session := auth.SessionFromClaims(&auth.SessionClaims{})

		assert.Empty(t, session.User.ID)
		assert.Empty(t, session.User.Role)
		assert.Nil(t, session.IssuedAt)
		assert.Nil(t, session.Expires)
	})

	t.Run("nil claims produce an empty session", func(t *testing.T) {
		session := auth.SessionFromClaims(nil)

		assert.NotNil(t, session)
		assert.Empty(t, session.GetUserID())
	})
}

func TestSessionObject_String(t *testing.T) {
	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	session := auth.SessionObject{
		User:    auth.SessionUser{ID: "u1", Role: auth.RoleUser},
		Expires: &expires,
	}

	s := session.String()
	assert.Contains(t, s, "user=u1")
	assert.Contains(t, s, "role=user")
	assert.Contains(t, s, "2026")

	empty := auth.SessionObject{}
	assert.Contains(t, empty.String(), "<nil>")
}
