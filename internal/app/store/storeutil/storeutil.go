// internal/app/store/storeutil/storeutil.go
package storeutil

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultLimit is the page size used when a caller passes none.
const DefaultLimit = 20

// MaxLimit caps the page size so a single delivery-API call cannot drag an
// entire catalog across the wire.
const MaxLimit = 100

// Paginate returns *options.FindOptions with skip/limit given a 1-based page.
// Callers add their own sort; it must end with a unique key (_id) so offset
// pagination stays stable across pages.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page <= 0 {
		page = 1
	}
	sk := (page - 1) * limit
	return options.Find().SetLimit(limit).SetSkip(sk)
}

// IsDuplicateKeyErr detects a unique-index violation across server flavors.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}
