package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpricing "villastay/internal/domain/pricing"
	"villastay/internal/domain/shared/daterange"
)

type PeriodRepository struct {
	col *mongo.Collection
}

func NewPeriodRepository(db *mongo.Database) *PeriodRepository {
	return &PeriodRepository{col: db.Collection(periodsCollection)}
}

func (r *PeriodRepository) Intersecting(ctx context.Context, tenantID, propertyID string, dr daterange.DateRange) ([]domainpricing.RatePeriod, error) {
	lastNight := dr.CheckOut.AddDate(0, 0, -1)
	filter := bson.M{
		"tenant_id": tenantID,
		"is_active": true,
		"$or": bson.A{
			bson.M{"property_id": propertyID},
			bson.M{"is_global": true},
		},
		"start_date": bson.M{"$lte": timeToMillis(lastNight)},
		"end_date":   bson.M{"$gte": timeToMillis(dr.CheckIn)},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domainpricing.RatePeriod
	for cur.Next(ctx) {
		var doc periodDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *PeriodRepository) ByID(ctx context.Context, tenantID, id string) (*domainpricing.RatePeriod, error) {
	var doc periodDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainpricing.ErrPeriodNotFound
		}
		return nil, err
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *PeriodRepository) Save(ctx context.Context, p *domainpricing.RatePeriod) error {
	doc := newPeriodDocument(p)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID, "tenant_id": doc.TenantID}, doc, opts)
	return err
}

func (r *PeriodRepository) Delete(ctx context.Context, tenantID, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "tenant_id": tenantID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainpricing.ErrPeriodNotFound
	}
	return nil
}

type periodDocument struct {
	ID             string  `bson:"_id"`
	TenantID       string  `bson:"tenant_id"`
	PropertyID     string  `bson:"property_id,omitempty"`
	Name           string  `bson:"name"`
	StartDate      int64   `bson:"start_date"`
	EndDate        int64   `bson:"end_date"`
	Priority       int     `bson:"priority"`
	BasePrice      float64 `bson:"base_price"`
	WeekendPremium float64 `bson:"weekend_premium"`
	MinNights      *int    `bson:"min_nights,omitempty"`
	IsGlobal       bool    `bson:"is_global"`
	IsActive       bool    `bson:"is_active"`
}

func newPeriodDocument(p *domainpricing.RatePeriod) periodDocument {
	return periodDocument{
		ID:             p.ID,
		TenantID:       p.TenantID,
		PropertyID:     p.PropertyID,
		Name:           p.Name,
		StartDate:      timeToMillis(p.StartDate),
		EndDate:        timeToMillis(p.EndDate),
		Priority:       p.Priority,
		BasePrice:      p.BasePrice,
		WeekendPremium: p.WeekendPremium,
		MinNights:      p.MinNights,
		IsGlobal:       p.IsGlobal,
		IsActive:       p.IsActive,
	}
}

func (d periodDocument) toDomain() domainpricing.RatePeriod {
	return domainpricing.RatePeriod{
		ID:             d.ID,
		TenantID:       d.TenantID,
		PropertyID:     d.PropertyID,
		Name:           d.Name,
		StartDate:      millisToTime(d.StartDate),
		EndDate:        millisToTime(d.EndDate),
		Priority:       d.Priority,
		BasePrice:      d.BasePrice,
		WeekendPremium: d.WeekendPremium,
		MinNights:      d.MinNights,
		IsGlobal:       d.IsGlobal,
		IsActive:       d.IsActive,
	}
}
