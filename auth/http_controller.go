package auth

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// AuthController exposes the authentication REST surface
type AuthController struct {
	Logger    Logger
	Users     Users
	Auther    *RouteAuthenticator
	Sanitizer *RedirectSanitizer
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(l Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = l
		return c
	}
}

func NewAuthController(users Users, auther *RouteAuthenticator, sanitizer *RedirectSanitizer, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:    defLogger{},
		Users:     users,
		Auther:    auther,
		Sanitizer: sanitizer,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// RegisterAuthRoutes mounts the auth endpoints on the app
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	app.Post("/api/auth/register", controller.Register)
	app.Post("/api/auth/login", controller.Login)
	app.Get("/api/auth/logout", controller.Logout)
	app.Post("/api/auth/logout", controller.Logout)
	app.Get("/api/auth/session", controller.Session)
}

// LoginRequest payload
type LoginRequest struct {
	Identifier  string `form:"identifier" json:"identifier"`
	Password    string `form:"password" json:"password"`
	CallbackURL string `form:"callbackUrl" json:"callbackUrl"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Identifier
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Identifier,
			validation.Required,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  err,
		})
	}

	if err := a.Auther.Login(c, payload); err != nil {
		// one generic outcome for every authentication failure
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	return c.JSON(fiber.Map{
		"ok":       true,
		"redirect": a.Sanitizer.Sanitize(payload.CallbackURL),
	})
}

func (a *AuthController) Logout(c *fiber.Ctx) error {
	a.Auther.Logout(c)
	return c.Redirect(a.Sanitizer.Sanitize(c.Query("callbackUrl")), fiber.StatusSeeOther)
}

// Session materializes the current session, or null when there is none
func (a *AuthController) Session(c *fiber.Ctx) error {
	raw := c.Cookies(a.Auther.cfg.GetContextKey())
	if raw == "" {
		return c.JSON(nil)
	}

	session, err := a.Auther.auth.SessionFromToken(raw)
	if err != nil {
		a.Auther.Logout(c)
		return c.JSON(nil)
	}

	return c.JSON(session)
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Match(emailShape)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to parse request body",
		})
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  err,
		})
	}

	user, err := a.registerUser(c.UserContext(), payload)
	if err != nil {
		if IsConflict(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "User already exists",
			})
		}

		a.Logger.Error("register user", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Registration failed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID.Hex(),
		"email": user.Email,
		"name":  user.Name,
	})
}

func (a *AuthController) registerUser(ctx context.Context, payload *RegisterRequest) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	now := time.Now()
	user := &User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: hash,
		Role:         RoleUser,
		CreatedAt:    &now,
	}

	created, err := a.Users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return created, nil
}
