package store

import (
	"context"

	"github.com/goliatone/go-errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jakirhossain80/stockly/catalog"
)

const productsCollection = "products"

// ProductStore implements catalog.Products on top of the shared handle
type ProductStore struct {
	client *Client
}

// NewProductStore creates a product store
func NewProductStore(client *Client) *ProductStore {
	return &ProductStore{client: client}
}

// List returns all products, newest first
func (s *ProductStore) List(ctx context.Context) ([]catalog.Product, error) {
	coll, err := s.client.Collection(ctx, productsCollection)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to query products")
	}
	defer cursor.Close(ctx)

	var products []catalog.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to decode products")
	}

	return products, nil
}

// GetByID returns the product for a hex object id. Garbled or unknown ids
// are both reported as not found.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, productNotFound()
	}

	coll, err := s.client.Collection(ctx, productsCollection)
	if err != nil {
		return nil, err
	}

	var product catalog.Product
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, productNotFound()
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to query product")
	}

	return &product, nil
}

// Create inserts a new product
func (s *ProductStore) Create(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	coll, err := s.client.Collection(ctx, productsCollection)
	if err != nil {
		return nil, err
	}

	res, err := coll.InsertOne(ctx, product)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to insert product")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	return product, nil
}

func productNotFound() error {
	return errors.New("product not found", errors.CategoryNotFound).
		WithTextCode("PRODUCT_NOT_FOUND").
		WithCode(errors.CodeNotFound)
}

var _ catalog.Products = (*ProductStore)(nil)
