package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperty "villastay/internal/domain/property"
)

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection(propertiesCollection)}
}

func (r *PropertyRepository) ByID(ctx context.Context, tenantID, id string) (*domainproperty.Property, error) {
	var doc propertyDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainproperty.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	doc := newPropertyDocument(p)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID, "tenant_id": doc.TenantID}, doc, opts)
	return err
}

type propertyDocument struct {
	ID             string  `bson:"_id"`
	TenantID       string  `bson:"tenant_id"`
	Name           string  `bson:"name"`
	BasePrice      float64 `bson:"base_price"`
	WeekendPremium float64 `bson:"weekend_premium"`
	CleaningFee    float64 `bson:"cleaning_fee"`
	MinNights      int     `bson:"min_nights"`
	MaxGuests      int     `bson:"max_guests"`
	PetsAllowed    bool    `bson:"pets_allowed"`
}

func newPropertyDocument(p *domainproperty.Property) propertyDocument {
	return propertyDocument{
		ID:             p.ID,
		TenantID:       p.TenantID,
		Name:           p.Name,
		BasePrice:      p.BasePrice,
		WeekendPremium: p.WeekendPremium,
		CleaningFee:    p.CleaningFee,
		MinNights:      p.MinNights,
		MaxGuests:      p.MaxGuests,
		PetsAllowed:    p.PetsAllowed,
	}
}

func (d propertyDocument) toDomain() *domainproperty.Property {
	return &domainproperty.Property{
		ID:             d.ID,
		TenantID:       d.TenantID,
		Name:           d.Name,
		BasePrice:      d.BasePrice,
		WeekendPremium: d.WeekendPremium,
		CleaningFee:    d.CleaningFee,
		MinNights:      d.MinNights,
		MaxGuests:      d.MaxGuests,
		PetsAllowed:    d.PetsAllowed,
	}
}
