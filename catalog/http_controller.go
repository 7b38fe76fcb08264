package catalog

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/Jakirhossain80/stockly/auth"
)

// Controller serves the product catalog endpoints
type Controller struct {
	Products Products
	Logger   auth.Logger
}

// RegisterRoutes mounts the catalog endpoints. Creation requires an
// authenticated session; browsing is public.
func RegisterRoutes(app fiber.Router, controller *Controller, protected fiber.Handler) {
	if controller.Logger == nil {
		controller.Logger = auth.DefaultLogger()
	}

	app.Get("/api/products", controller.List)
	app.Get("/api/products/:id", controller.Get)
	app.Post("/api/products", protected, controller.Create)
}

func (p *Controller) List(c *fiber.Ctx) error {
	products, err := p.Products.List(c.UserContext())
	if err != nil {
		p.Logger.Error("list products", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load products",
		})
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, products[i].View())
	}

	return c.JSON(views)
}

// idWrapper matches ids that arrive wrapped as ObjectId("abc...")
var idWrapper = regexp.MustCompile(`^ObjectId\(["']?([a-fA-F0-9]{24})["']?\)$`)

func normalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if unescaped, err := url.PathUnescape(s); err == nil {
		s = unescaped
	}
	if m := idWrapper.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

func (p *Controller) Get(c *fiber.Ctx) error {
	id := normalizeID(c.Params("id"))

	product, err := p.Products.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}

		p.Logger.Error("get product", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load product",
		})
	}

	return c.JSON(product.View())
}

// CreateProductRequest is the creation payload
type CreateProductRequest struct {
	ProductName       string `form:"productname" json:"productname"`
	ImageLink         string `form:"imageLink" json:"imageLink"`
	Description       string `form:"description" json:"description"`
	DetailDescription string `form:"detaildescription" json:"detaildescription"`
}

// Validate will validate the payload
func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductName, validation.Required),
		validation.Field(&r.ImageLink, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.DetailDescription, validation.Required),
	)
}

func (p *Controller) Create(c *fiber.Ctx) error {
	payload := new(CreateProductRequest)

	if err := c.BodyParser(payload); err != nil {
		p.Logger.Error("create product parse payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "All fields are required",
			"errors":  err,
		})
	}

	now := time.Now()
	product := &Product{
		ProductName:       payload.ProductName,
		ImageLink:         payload.ImageLink,
		Description:       payload.Description,
		DetailDescription: payload.DetailDescription,
		CreatedAt:         &now,
	}

	created, err := p.Products.Create(c.UserContext(), product)
	if err != nil {
		p.Logger.Error("create product", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": created.ID.Hex(),
	})
}
