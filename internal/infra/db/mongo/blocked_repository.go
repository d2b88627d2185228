package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "villastay/internal/domain/availability"
	"villastay/internal/domain/shared/daterange"
)

type BlockedPeriodRepository struct {
	col *mongo.Collection
}

func NewBlockedPeriodRepository(db *mongo.Database) *BlockedPeriodRepository {
	return &BlockedPeriodRepository{col: db.Collection(blockedCollection)}
}

func (r *BlockedPeriodRepository) ByID(ctx context.Context, id string) (*domainavailability.BlockedPeriod, error) {
	var doc blockedDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainavailability.ErrBlockedPeriodNotFound
		}
		return nil, err
	}
	b := doc.toDomain()
	return &b, nil
}

func (r *BlockedPeriodRepository) OverlappingStay(ctx context.Context, propertyID string, dr daterange.DateRange) ([]domainavailability.BlockedPeriod, error) {
	// Inclusive block bounds against the half-open stay.
	filter := bson.M{
		"property_id": propertyID,
		"start_date":  bson.M{"$lte": timeToMillis(dr.CheckOut)},
		"end_date":    bson.M{"$gte": timeToMillis(dr.CheckIn)},
	}
	return r.find(ctx, filter)
}

func (r *BlockedPeriodRepository) ByProperty(ctx context.Context, propertyID string) ([]domainavailability.BlockedPeriod, error) {
	return r.find(ctx, bson.M{"property_id": propertyID})
}

func (r *BlockedPeriodRepository) find(ctx context.Context, filter bson.M) ([]domainavailability.BlockedPeriod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domainavailability.BlockedPeriod
	for cur.Next(ctx) {
		var doc blockedDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *BlockedPeriodRepository) Save(ctx context.Context, b *domainavailability.BlockedPeriod) error {
	doc := newBlockedDocument(b)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *BlockedPeriodRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainavailability.ErrBlockedPeriodNotFound
	}
	return nil
}

type blockedDocument struct {
	ID         string `bson:"_id"`
	PropertyID string `bson:"property_id"`
	StartDate  int64  `bson:"start_date"`
	EndDate    int64  `bson:"end_date"`
	Reason     string `bson:"reason"`
	Notes      string `bson:"notes,omitempty"`
	CreatedAt  int64  `bson:"created_at"`
}

func newBlockedDocument(b *domainavailability.BlockedPeriod) blockedDocument {
	return blockedDocument{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		StartDate:  timeToMillis(b.StartDate),
		EndDate:    timeToMillis(b.EndDate),
		Reason:     b.Reason,
		Notes:      b.Notes,
		CreatedAt:  timeToMillis(b.CreatedAt),
	}
}

func (d blockedDocument) toDomain() domainavailability.BlockedPeriod {
	return domainavailability.BlockedPeriod{
		ID:         d.ID,
		PropertyID: d.PropertyID,
		StartDate:  millisToTime(d.StartDate),
		EndDate:    millisToTime(d.EndDate),
		Reason:     d.Reason,
		Notes:      d.Notes,
		CreatedAt:  millisToTime(d.CreatedAt),
	}
}
