package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	pricingsvc "villastay/internal/app/services/pricing"
)

type ExtrasCatalog struct {
	col *mongo.Collection
}

func NewExtrasCatalog(db *mongo.Database) *ExtrasCatalog {
	return &ExtrasCatalog{col: db.Collection(extrasCollection)}
}

func (c *ExtrasCatalog) Option(ctx context.Context, tenantID, optionID string) (*pricingsvc.ExtraOption, error) {
	var doc extraDocument
	err := c.col.FindOne(ctx, bson.M{"_id": optionID, "tenant_id": tenantID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pricingsvc.ErrOptionNotFound
		}
		return nil, err
	}
	return &pricingsvc.ExtraOption{ID: doc.ID, Name: doc.Name, UnitPrice: doc.UnitPrice}, nil
}

type extraDocument struct {
	ID        string  `bson:"_id"`
	TenantID  string  `bson:"tenant_id"`
	Name      string  `bson:"name"`
	UnitPrice float64 `bson:"unit_price"`
}
