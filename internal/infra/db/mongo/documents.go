package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	propertiesCollection = "properties"
	periodsCollection    = "rate_periods"
	bookingsCollection   = "bookings"
	blockedCollection    = "blocked_periods"
	promosCollection     = "promo_codes"
	extrasCollection     = "extra_options"
	locksCollection      = "property_locks"
)

// bsonD builds an ordered key document from alternating key/value pairs.
func bsonD(pairs ...interface{}) bson.D {
	d := make(bson.D, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		d = append(d, bson.E{Key: pairs[i].(string), Value: pairs[i+1]})
	}
	return d
}

func timeToMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
