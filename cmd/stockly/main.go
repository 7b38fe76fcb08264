package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/Jakirhossain80/stockly/auth"
	"github.com/Jakirhossain80/stockly/auth/google"
	"github.com/Jakirhossain80/stockly/catalog"
	"github.com/Jakirhossain80/stockly/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := NewConfigFromEnv()
	if cfg.SigningKey == "" {
		log.Fatal("AUTH_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := store.NewClient(cfg.MongoURI, cfg.MongoName)
	users := store.NewUserStore(client)
	products := store.NewProductStore(client)

	{
		indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := users.EnsureIndexes(indexCtx); err != nil {
			log.Printf("could not ensure user indexes: %v", err)
		}
		cancel()
	}

	sanitizer, err := auth.NewRedirectSanitizer(cfg.BaseURL)
	if err != nil {
		log.Fatalf("invalid BASE_URL: %v", err)
	}

	provider := auth.NewUserProvider(users)
	provisioner := auth.NewAccountProvisioner(users)
	auther := auth.NewAuthenticator(provider, provisioner, users, cfg)
	routeAuth := auth.NewHTTPAuthenticator(auther, cfg)

	app := fiber.New(fiber.Config{
		AppName: "stockly",
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		if err := client.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.RegisterAuthRoutes(app, auth.NewAuthController(users, routeAuth, sanitizer))

	if cfg.GoogleClientID != "" {
		googleProvider := google.New(google.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			CallbackURL:  cfg.BaseURL + "/api/auth/callback/google",
		})

		google.RegisterRoutes(app, &google.Controller{
			Provider:  googleProvider,
			States:    google.NewStateManager([]byte(cfg.SigningKey), 10*time.Minute),
			Auther:    routeAuth,
			Sanitizer: sanitizer,
		})
	}

	catalog.RegisterRoutes(app, &catalog.Controller{
		Products: products,
	}, routeAuth.Protected())

	go func() {
		if err := app.Listen(cfg.Addr); err != nil {
			log.Printf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Close(closeCtx); err != nil {
		log.Printf("store close: %v", err)
	}
}
