package store

import (
	"context"
	"sync"

	"github.com/goliatone/go-errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client is the shared MongoDB handle: initialized lazily on first use,
// safe for concurrent use, reused across requests for the life of the
// process.
type Client struct {
	uri    string
	dbName string

	once   sync.Once
	client *mongo.Client
	err    error
}

// NewClient configures a client for the given URI and database name. No
// connection is made until the first operation needs one.
func NewClient(uri, dbName string) *Client {
	return &Client{
		uri:    uri,
		dbName: dbName,
	}
}

func (c *Client) connect(ctx context.Context) (*mongo.Client, error) {
	c.once.Do(func() {
		if c.uri == "" {
			c.err = errors.New("store URI is not configured", errors.CategoryBadInput)
			return
		}

		api := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.uri).SetServerAPIOptions(api))
		if err != nil {
			c.err = errors.Wrap(err, errors.CategoryOperation, "failed to connect to store")
			return
		}
		c.client = client
	})

	return c.client, c.err
}

// Database returns the configured database, connecting on first use
func (c *Client) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.dbName), nil
}

// Collection returns a collection handle in the configured database
func (c *Client) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := c.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Ping verifies the store is reachable
func (c *Client) Ping(ctx context.Context) error {
	db, err := c.Database(ctx)
	if err != nil {
		return err
	}
	return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Close disconnects the underlying client if it was ever connected
func (c *Client) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}
