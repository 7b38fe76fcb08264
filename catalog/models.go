package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the persisted catalog document
type Product struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	ProductName       string             `bson:"productname"`
	ImageLink         string             `bson:"imageLink"`
	Description       string             `bson:"description"`
	DetailDescription string             `bson:"detaildescription"`
	CreatedAt         *time.Time         `bson:"createdAt,omitempty"`
}

// ProductView is the JSON shape served to clients, with the object id
// normalized to its hex form.
type ProductView struct {
	ID                string     `json:"id"`
	ProductName       string     `json:"productname"`
	ImageLink         string     `json:"imageLink"`
	Description       string     `json:"description"`
	DetailDescription string     `json:"detaildescription"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
}

// View projects the document into its response shape
func (p *Product) View() ProductView {
	id := ""
	if !p.ID.IsZero() {
		id = p.ID.Hex()
	}
	return ProductView{
		ID:                id,
		ProductName:       p.ProductName,
		ImageLink:         p.ImageLink,
		Description:       p.Description,
		DetailDescription: p.DetailDescription,
		CreatedAt:         p.CreatedAt,
	}
}

// Products is the catalog store
type Products interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, product *Product) (*Product, error)
}
