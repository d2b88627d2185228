package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpromo "villastay/internal/domain/promo"
)

type PromoRepository struct {
	col *mongo.Collection
}

func NewPromoRepository(db *mongo.Database) *PromoRepository {
	return &PromoRepository{col: db.Collection(promosCollection)}
}

func (r *PromoRepository) ByCode(ctx context.Context, tenantID, code string) (*domainpromo.PromoCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	var doc promoDocument
	err := r.col.FindOne(ctx, bson.M{"tenant_id": tenantID, "code": normalized}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainpromo.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PromoRepository) ByID(ctx context.Context, tenantID, id string) (*domainpromo.PromoCode, error) {
	var doc promoDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainpromo.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PromoRepository) Save(ctx context.Context, p *domainpromo.PromoCode) error {
	doc := newPromoDocument(p)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID, "tenant_id": doc.TenantID}, doc, opts)
	return err
}

// IncrementUses bumps current_uses with the cap folded into the filter, so
// the check and the increment are one atomic write.
func (r *PromoRepository) IncrementUses(ctx context.Context, tenantID, id string) error {
	filter := bson.M{
		"_id":       id,
		"tenant_id": tenantID,
		"$or": bson.A{
			bson.M{"max_uses": 0},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$current_uses", "$max_uses"}}},
		},
	}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"current_uses": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := r.ByID(ctx, tenantID, id); err != nil {
			return err
		}
		return domainpromo.ErrExhausted
	}
	return nil
}

type promoDocument struct {
	ID             string   `bson:"_id"`
	TenantID       string   `bson:"tenant_id"`
	Code           string   `bson:"code"`
	Description    string   `bson:"description,omitempty"`
	DiscountType   string   `bson:"discount_type"`
	DiscountValue  float64  `bson:"discount_value"`
	MinAmount      float64  `bson:"min_amount"`
	MinNights      int      `bson:"min_nights"`
	PropertyIDs    []string `bson:"property_ids,omitempty"`
	ValidFrom      int64    `bson:"valid_from"`
	ValidUntil     int64    `bson:"valid_until"`
	MaxUses        int      `bson:"max_uses"`
	MaxUsesPerUser int      `bson:"max_uses_per_user"`
	CurrentUses    int      `bson:"current_uses"`
	IsActive       bool     `bson:"is_active"`
}

func newPromoDocument(p *domainpromo.PromoCode) promoDocument {
	return promoDocument{
		ID:             p.ID,
		TenantID:       p.TenantID,
		Code:           strings.ToUpper(strings.TrimSpace(p.Code)),
		Description:    p.Description,
		DiscountType:   string(p.DiscountType),
		DiscountValue:  p.DiscountValue,
		MinAmount:      p.MinAmount,
		MinNights:      p.MinNights,
		PropertyIDs:    p.PropertyIDs,
		ValidFrom:      timeToMillis(p.ValidFrom),
		ValidUntil:     timeToMillis(p.ValidUntil),
		MaxUses:        p.MaxUses,
		MaxUsesPerUser: p.MaxUsesPerUser,
		CurrentUses:    p.CurrentUses,
		IsActive:       p.IsActive,
	}
}

func (d promoDocument) toDomain() *domainpromo.PromoCode {
	return &domainpromo.PromoCode{
		ID:             d.ID,
		TenantID:       d.TenantID,
		Code:           d.Code,
		Description:    d.Description,
		DiscountType:   domainpromo.DiscountType(d.DiscountType),
		DiscountValue:  d.DiscountValue,
		MinAmount:      d.MinAmount,
		MinNights:      d.MinNights,
		PropertyIDs:    d.PropertyIDs,
		ValidFrom:      millisToTime(d.ValidFrom),
		ValidUntil:     millisToTime(d.ValidUntil),
		MaxUses:        d.MaxUses,
		MaxUsesPerUser: d.MaxUsesPerUser,
		CurrentUses:    d.CurrentUses,
		IsActive:       d.IsActive,
	}
}
