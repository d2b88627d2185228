package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "villastay/internal/domain/booking"
	"villastay/internal/domain/shared/daterange"
)

type BookingRepository struct {
	col   *mongo.Collection
	locks *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{
		col:   db.Collection(bookingsCollection),
		locks: db.Collection(locksCollection),
	}
}

func (r *BookingRepository) ByID(ctx context.Context, tenantID, id string) (*domainbooking.Booking, error) {
	var doc bookingDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) ByReference(ctx context.Context, tenantID, reference, guestEmail string) (*domainbooking.Booking, error) {
	filter := bson.M{
		"tenant_id":   tenantID,
		"reference":   strings.ToUpper(strings.TrimSpace(reference)),
		"guest.email": strings.ToLower(strings.TrimSpace(guestEmail)),
	}
	var doc bookingDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// Create enforces the exclusion invariant inside the surrounding transaction.
// It bumps a per-property lock document first, which makes two concurrent
// transactions for the same property conflict at the storage layer, then
// re-checks overlaps and inserts. The unique (tenant_id, reference) index
// turns a lost reference race into ErrReferenceTaken.
func (r *BookingRepository) Create(ctx context.Context, b *domainbooking.Booking) error {
	lockID := b.TenantID + "/" + b.PropertyID
	_, err := r.locks.UpdateOne(ctx,
		bson.M{"_id": lockID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if isWriteConflict(err) {
			return domainbooking.ErrDateConflict
		}
		return err
	}

	count, err := r.col.CountDocuments(ctx, overlapFilter(b.TenantID, b.PropertyID, b.Range, b.ID))
	if err != nil {
		return err
	}
	if count > 0 {
		return domainbooking.ErrDateConflict
	}

	if _, err := r.col.InsertOne(ctx, newBookingDocument(b)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainbooking.ErrReferenceTaken
		}
		return err
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID, "tenant_id": doc.TenantID}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainbooking.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Overlapping(ctx context.Context, tenantID, propertyID string, dr daterange.DateRange, excludeID string) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})
	cur, err := r.col.Find(ctx, overlapFilter(tenantID, propertyID, dr, excludeID), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domainbooking.Booking
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

func (r *BookingRepository) LastReference(ctx context.Context, tenantID, prefix string) (string, error) {
	filter := bson.M{
		"tenant_id": tenantID,
		"reference": bson.M{"$regex": "^" + prefix},
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "reference", Value: -1}}).
		SetProjection(bson.M{"reference": 1})
	var doc struct {
		Reference string `bson:"reference"`
	}
	err := r.col.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.Reference, nil
}

func (r *BookingRepository) CountPromoUses(ctx context.Context, tenantID, promoCodeID, guestEmail string) (int, error) {
	filter := bson.M{
		"tenant_id":     tenantID,
		"promo_code_id": promoCodeID,
		"guest.email":   strings.ToLower(strings.TrimSpace(guestEmail)),
		"status":        bson.M{"$ne": string(domainbooking.StatusCancelled)},
	}
	count, err := r.col.CountDocuments(ctx, filter)
	return int(count), err
}

func (r *BookingRepository) StalePending(ctx context.Context, before time.Time) ([]*domainbooking.Booking, error) {
	filter := bson.M{
		"status":     string(domainbooking.StatusPending),
		"created_at": bson.M{"$lt": timeToMillis(before)},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domainbooking.Booking
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

// overlapFilter is the canonical half-open overlap test over blocking
// statuses: existing.checkIn < checkOut AND existing.checkOut > checkIn.
func overlapFilter(tenantID, propertyID string, dr daterange.DateRange, excludeID string) bson.M {
	filter := bson.M{
		"tenant_id":   tenantID,
		"property_id": propertyID,
		"status": bson.M{"$in": bson.A{
			string(domainbooking.StatusPending),
			string(domainbooking.StatusConfirmed),
		}},
		"check_in":  bson.M{"$lt": timeToMillis(dr.CheckOut)},
		"check_out": bson.M{"$gt": timeToMillis(dr.CheckIn)},
	}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

func isWriteConflict(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.HasErrorLabel("TransientTransactionError") || cmdErr.Name == "WriteConflict"
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		return writeErr.HasErrorLabel("TransientTransactionError")
	}
	return false
}

type bookingDocument struct {
	ID         string        `bson:"_id"`
	TenantID   string        `bson:"tenant_id"`
	PropertyID string        `bson:"property_id"`
	Reference  string        `bson:"reference"`
	CheckIn    int64         `bson:"check_in"`
	CheckOut   int64         `bson:"check_out"`
	Adults     int           `bson:"adults"`
	Children   int           `bson:"children"`
	Infants    int           `bson:"infants"`
	Pets       int           `bson:"pets"`
	Guest      guestDocument `bson:"guest"`

	AccommodationTotal float64 `bson:"accommodation_total"`
	CleaningFee        float64 `bson:"cleaning_fee"`
	TouristTax         float64 `bson:"tourist_tax"`
	ExtraFeesTotal     float64 `bson:"extra_fees_total"`
	DiscountAmount     float64 `bson:"discount_amount"`
	Subtotal           float64 `bson:"subtotal"`
	Total              float64 `bson:"total"`
	CommissionAmount   float64 `bson:"commission_amount"`
	PayoutAmount       float64 `bson:"payout_amount"`
	PromoCodeID        string  `bson:"promo_code_id,omitempty"`

	Status    string `bson:"status"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

type guestDocument struct {
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Email     string `bson:"email"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:         b.ID,
		TenantID:   b.TenantID,
		PropertyID: b.PropertyID,
		Reference:  b.Reference,
		CheckIn:    timeToMillis(b.Range.CheckIn),
		CheckOut:   timeToMillis(b.Range.CheckOut),
		Adults:     b.Adults,
		Children:   b.Children,
		Infants:    b.Infants,
		Pets:       b.Pets,
		Guest: guestDocument{
			FirstName: b.Guest.FirstName,
			LastName:  b.Guest.LastName,
			Email:     strings.ToLower(strings.TrimSpace(b.Guest.Email)),
		},
		AccommodationTotal: b.AccommodationTotal,
		CleaningFee:        b.CleaningFee,
		TouristTax:         b.TouristTax,
		ExtraFeesTotal:     b.ExtraFeesTotal,
		DiscountAmount:     b.DiscountAmount,
		Subtotal:           b.Subtotal,
		Total:              b.Total,
		CommissionAmount:   b.CommissionAmount,
		PayoutAmount:       b.PayoutAmount,
		PromoCodeID:        b.PromoCodeID,
		Status:             string(b.Status),
		CreatedAt:          timeToMillis(b.CreatedAt),
		UpdatedAt:          timeToMillis(b.UpdatedAt),
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:         d.ID,
		TenantID:   d.TenantID,
		PropertyID: d.PropertyID,
		Reference:  d.Reference,
		Range: daterange.DateRange{
			CheckIn:  millisToTime(d.CheckIn),
			CheckOut: millisToTime(d.CheckOut),
		},
		Adults:   d.Adults,
		Children: d.Children,
		Infants:  d.Infants,
		Pets:     d.Pets,
		Guest: domainbooking.Guest{
			FirstName: d.Guest.FirstName,
			LastName:  d.Guest.LastName,
			Email:     d.Guest.Email,
		},
		AccommodationTotal: d.AccommodationTotal,
		CleaningFee:        d.CleaningFee,
		TouristTax:         d.TouristTax,
		ExtraFeesTotal:     d.ExtraFeesTotal,
		DiscountAmount:     d.DiscountAmount,
		Subtotal:           d.Subtotal,
		Total:              d.Total,
		CommissionAmount:   d.CommissionAmount,
		PayoutAmount:       d.PayoutAmount,
		PromoCodeID:        d.PromoCodeID,
		Status:             domainbooking.Status(d.Status),
		CreatedAt:          millisToTime(d.CreatedAt),
		UpdatedAt:          millisToTime(d.UpdatedAt),
	}
}
