package google

import (
	"github.com/Jakirhossain80/stockly/auth"
)

// Profile is the userinfo document Google returns for the signed-in user
type Profile struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// ExternalProfile converts the Google profile into the identity assertion
// consumed by the account provisioner
func (p *Profile) ExternalProfile() auth.ExternalProfile {
	return auth.ExternalProfile{
		Provider:      "google",
		Subject:       p.Subject,
		Email:         p.Email,
		EmailVerified: p.EmailVerified,
		Name:          p.Name,
		Image:         p.Picture,
	}
}
