package auth_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jakirhossain80/stockly/auth"
)

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user auth.User
		want string
	}{
		{
			name: "Stored name wins",
			user: auth.User{Name: "Ada Lovelace", Email: "ada@example.com"},
			want: "Ada Lovelace",
		},
		{
			name: "Falls back to the email local part",
			user: auth.User{Email: "ada@example.com"},
			want: "ada",
		},
		{
			name: "Falls back to a generic label",
			user: auth.User{},
			want: "User",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "ada", auth.EmailLocalPart("ada@example.com"))
	assert.Equal(t, "first.last", auth.EmailLocalPart("first.last@example.com"))
	assert.Equal(t, "", auth.EmailLocalPart("not-an-email"))
	assert.Equal(t, "", auth.EmailLocalPart(""))
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	user := auth.User{
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}

	raw, err := json.Marshal(user)

	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$10$")
	assert.NotContains(t, string(raw), "passwordHash")
}
