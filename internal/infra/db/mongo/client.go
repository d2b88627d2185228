package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	DB *mongo.Database
}

func New(uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Client().ApplyURI(uri).SetRetryWrites(true)
	m, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Client{DB: m.Database(database)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.Client().Ping(ctx, nil)
}

func (c *Client) Close(ctx context.Context) error {
	return c.DB.Client().Disconnect(ctx)
}

// EnsureIndexes creates the indexes the engine's invariants rely on. The
// unique (tenant_id, reference) index is what turns a lost reference race
// into a retryable duplicate-key error.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	_, err := c.DB.Collection(bookingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bsonD("tenant_id", 1, "reference", 1),
			Options: options.Index().SetUnique(true),
		},
		{Keys: bsonD("tenant_id", 1, "property_id", 1, "check_in", 1)},
		{Keys: bsonD("status", 1, "created_at", 1)},
	})
	if err != nil {
		return err
	}
	_, err = c.DB.Collection(periodsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bsonD("tenant_id", 1, "property_id", 1, "start_date", 1)},
	})
	if err != nil {
		return err
	}
	_, err = c.DB.Collection(blockedCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bsonD("property_id", 1, "start_date", 1)},
	})
	if err != nil {
		return err
	}
	_, err = c.DB.Collection(promosCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bsonD("tenant_id", 1, "code", 1),
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
