// internal/app/store/tenants/tenantstore.go
package tenantstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/polysite/polysite/internal/app/store/storeutil"
	"github.com/polysite/polysite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the tenants collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new tenant store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tenants")}
}

// Create inserts a new tenant. The host and slug must be unique across all
// tenants; the unique indexes enforce this at the storage layer.
func (s *Store) Create(ctx context.Context, t models.Tenant) (models.Tenant, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Locale == "" {
		t.Locale = models.DefaultLocale
	}
	if t.Currency == "" {
		t.Currency = models.DefaultCurrency
	}

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if storeutil.IsDuplicateKeyErr(err) {
			return models.Tenant{}, models.ErrTenantExists
		}
		return models.Tenant{}, err
	}
	return t, nil
}

// GetByID returns a tenant by its id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Tenant, error) {
	var t models.Tenant
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Tenant{}, models.ErrTenantNotFound
	}
	if err != nil {
		return models.Tenant{}, err
	}
	return t, nil
}

// GetByHost returns the tenant whose host exactly matches. The port, if any,
// is the caller's problem; hosts are stored without one.
func (s *Store) GetByHost(ctx context.Context, host string) (models.Tenant, error) {
	host = strings.ToLower(strings.TrimSpace(host))
	var t models.Tenant
	err := s.c.FindOne(ctx, bson.M{"host": host}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Tenant{}, models.ErrTenantNotFound
	}
	if err != nil {
		return models.Tenant{}, err
	}
	return t, nil
}

// GetBySlug returns the tenant with the given slug identifier.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	var t models.Tenant
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Tenant{}, models.ErrTenantNotFound
	}
	if err != nil {
		return models.Tenant{}, err
	}
	return t, nil
}

// List returns all tenants sorted by slug. Inactive tenants are included;
// this is an administrative view.
func (s *Store) List(ctx context.Context) ([]models.Tenant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "slug", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tenants []models.Tenant
	if err := cur.All(ctx, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// Update applies the given field updates to a tenant and returns the updated
// document. Only fields present in the map are touched.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Tenant, error) {
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Tenant
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Tenant{}, models.ErrTenantNotFound
	}
	if err != nil {
		if storeutil.IsDuplicateKeyErr(err) {
			return models.Tenant{}, models.ErrTenantExists
		}
		return models.Tenant{}, err
	}
	return t, nil
}

// SetActive flips the active flag. Deactivation hides the tenant's site but
// never deletes its content.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (models.Tenant, error) {
	return s.Update(ctx, id, bson.M{"active": active})
}
