package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// RouteAuthenticator wires the Authenticator into fiber: cookie handling,
// the protected-route middleware, and the sign-in/out entry points.
type RouteAuthenticator struct {
	auth           Authenticator
	cfg            Config
	cookieDuration time.Duration
	Logger         Logger
}

// NewHTTPAuthenticator builds a RouteAuthenticator for the given config
func NewHTTPAuthenticator(auther Authenticator, cfg Config) *RouteAuthenticator {
	cookieDuration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	return &RouteAuthenticator{
		auth:           auther,
		cfg:            cfg,
		cookieDuration: cookieDuration,
		Logger:         defLogger{},
	}
}

// Login authenticates the payload and sets the session cookie
func (a *RouteAuthenticator) Login(c *fiber.Ctx, payload LoginPayload) error {
	token, err := a.auth.Login(c.UserContext(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("login error", "error", err)
		return err
	}

	a.setCookieToken(c, token, a.cookieDuration)
	return nil
}

// LoginFederated provisions the federated identity and sets the session cookie
func (a *RouteAuthenticator) LoginFederated(c *fiber.Ctx, profile ExternalProfile) error {
	token, err := a.auth.LoginFederated(c.UserContext(), profile)
	if err != nil {
		a.Logger.Error("federated login error", "provider", profile.Provider, "error", err)
		return err
	}

	a.setCookieToken(c, token, a.cookieDuration)
	return nil
}

// Logout discards the session cookie
func (a *RouteAuthenticator) Logout(c *fiber.Ctx) {
	a.cookieDel(c, a.cfg.GetContextKey())
}

// Protected returns a middleware that validates the session cookie,
// refreshes the token so enrichment runs on every use, and stores the
// materialized session in the request locals.
func (a *RouteAuthenticator) Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(a.cfg.GetContextKey())
		if raw == "" {
			return a.unauthorized(c, nil)
		}

		refreshed, err := a.auth.Refresh(c.UserContext(), raw)
		if err != nil {
			a.cookieDel(c, a.cfg.GetContextKey())
			return a.unauthorized(c, err)
		}

		session, err := a.auth.SessionFromToken(refreshed)
		if err != nil {
			a.cookieDel(c, a.cfg.GetContextKey())
			return a.unauthorized(c, err)
		}

		if refreshed != raw {
			ttl := a.cookieDuration
			if session.Expires != nil {
				ttl = time.Until(*session.Expires)
			}
			a.setCookieToken(c, refreshed, ttl)
		}

		c.Locals(a.cfg.GetContextKey(), session)
		return c.Next()
	}
}

// FromContext returns the session stored by the Protected middleware
func (a *RouteAuthenticator) FromContext(c *fiber.Ctx) *SessionObject {
	session, ok := c.Locals(a.cfg.GetContextKey()).(*SessionObject)
	if !ok {
		return nil
	}
	return session
}

func (a *RouteAuthenticator) unauthorized(c *fiber.Ctx, err error) error {
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			a.Logger.Info("rejected request", "path", c.OriginalURL(), "text_code", richErr.TextCode)
		} else {
			a.Logger.Info("rejected request", "path", c.OriginalURL(), "error", err)
		}
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Authentication required",
	})
}

func (a *RouteAuthenticator) setCookieToken(c *fiber.Ctx, val string, duration time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cfg.GetContextKey(),
		Value:    val,
		Path:     "/",
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) cookieDel(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
