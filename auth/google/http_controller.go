package google

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Jakirhossain80/stockly/auth"
)

// Controller exposes the Google sign-in and callback endpoints
type Controller struct {
	Provider  *Provider
	States    *StateManager
	Auther    *auth.RouteAuthenticator
	Sanitizer *auth.RedirectSanitizer
	Logger    auth.Logger

	// LoginPath is where failed callbacks land, mirroring the sign-in page
	LoginPath string
}

// RegisterRoutes mounts the OAuth endpoints on the app
func RegisterRoutes(app fiber.Router, controller *Controller) {
	if controller.Logger == nil {
		controller.Logger = auth.DefaultLogger()
	}

	app.Get("/api/auth/signin/google", controller.SignIn)
	app.Get("/api/auth/callback/google", controller.Callback)
}

// SignIn starts the flow: signs a state token carrying the requested
// destination and redirects the browser to the consent screen.
func (g *Controller) SignIn(c *fiber.Ctx) error {
	state, err := g.States.Encode(&OAuthState{
		RedirectURL: c.Query("callbackUrl"),
	})
	if err != nil {
		g.Logger.Error("google signin encode state", "error", err)
		return c.Redirect(g.loginPath(), fiber.StatusSeeOther)
	}

	return c.Redirect(g.Provider.AuthCodeURL(state), fiber.StatusFound)
}

// Callback completes the flow: verifies the state, exchanges the code,
// fetches the profile, provisions the account, and sets the session
// cookie. Every failure lands back on the sign-in page.
func (g *Controller) Callback(c *fiber.Ctx) error {
	state, err := g.States.Decode(c.Query("state"))
	if err != nil {
		g.Logger.Warn("google callback state rejected", "error", err)
		return c.Redirect(g.loginPath(), fiber.StatusSeeOther)
	}

	code := c.Query("code")
	if code == "" {
		g.Logger.Warn("google callback missing code", "error_param", c.Query("error"))
		return c.Redirect(g.loginPath(), fiber.StatusSeeOther)
	}

	ctx := c.UserContext()

	token, err := g.Provider.Exchange(ctx, code)
	if err != nil {
		g.Logger.Error("google callback exchange", "error", err)
		return c.Redirect(g.loginPath(), fiber.StatusSeeOther)
	}

	profile, err := g.Provider.UserInfo(ctx, token)
	if err != nil {
		g.Logger.Error("google callback userinfo", "error", err)
		return c.Redirect(g.loginPath(), fiber.StatusSeeOther)
	}

	if err := g.Auther.LoginFederated(c, profile.ExternalProfile()); err != nil {
		g.Logger.Error("google callback login", "error", err)
		return c.Redirect(g.loginPath(), fiber.StatusSeeOther)
	}

	return c.Redirect(g.Sanitizer.Sanitize(state.RedirectURL), fiber.StatusSeeOther)
}

func (g *Controller) loginPath() string {
	if g.LoginPath != "" {
		return g.LoginPath
	}
	return "/login"
}
